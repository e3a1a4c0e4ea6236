package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-spl/internal/settings"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "splmeter",
	Short: "Real-time sound pressure level meter",
	Long: "Measures the sound pressure level of a live audio input: " +
		"A-weighting filter, RMS level, exponential smoothing and a " +
		"60-second history window.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "settings file path")

	rootCmd.AddCommand(devicesCmd)
	rootCmd.AddCommand(runCmd)
}

func loadSettings() (*settings.Settings, string, error) {
	if configPath != "" {
		s, err := settings.LoadFrom(configPath)

		return s, configPath, err
	}

	path, err := settings.DefaultPath()
	if err != nil {
		return settings.Default(), "", nil
	}

	s, err := settings.LoadFrom(path)

	return s, path, err
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
