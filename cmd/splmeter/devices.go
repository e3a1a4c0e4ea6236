package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-spl/capture/miniaudio"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List capture devices",
	RunE:  runDevices,
}

func runDevices(cmd *cobra.Command, args []string) error {
	host, err := miniaudio.NewHost()
	if err != nil {
		return fmt.Errorf("open audio backend: %w", err)
	}
	defer host.Close()

	devices, err := host.Devices()
	if err != nil {
		return err
	}

	for _, d := range devices {
		fmt.Printf("%-40s  %s\n", d.Name, d.ID)
	}

	return nil
}
