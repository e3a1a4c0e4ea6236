package main

import (
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-spl/capture"
	"github.com/cwbudde/algo-spl/capture/miniaudio"
	"github.com/cwbudde/algo-spl/internal/settings"
)

var (
	runDeviceID string
	runRaw      bool
	runOffset   float64
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Capture and print the level once per second",
	Long: "Binds a capture device and prints the smoothed level once per " +
		"second until interrupted. The default mode is A-weighted and " +
		"calibrated; --raw switches to unweighted dBFS.",
	RunE: runMeter,
}

func init() {
	runCmd.Flags().StringVarP(&runDeviceID, "device", "D", "", "capture device ID (default: system default)")
	runCmd.Flags().BoolVar(&runRaw, "raw", false, "unweighted raw dBFS, no calibration")
	runCmd.Flags().Float64Var(&runOffset, "offset", 0, "calibration offset in dB [60,130] (default: persisted value)")
}

func runMeter(cmd *cobra.Command, args []string) error {
	cfg, cfgPath, err := loadSettings()
	if err != nil {
		return err
	}

	host, err := miniaudio.NewHost()
	if err != nil {
		return fmt.Errorf("open audio backend: %w", err)
	}
	defer host.Close()

	opts := []capture.SessionOption{
		capture.WithAWeighting(!runRaw && cfg.Capture.Weighted),
	}
	if !runRaw {
		if cfgPath != "" {
			opts = append(opts, capture.WithOffsetStore(settings.NewStore(cfgPath)))
		} else {
			opts = append(opts, capture.WithCalibrationOffset(cfg.Calibration.Offset))
		}
	}

	session := capture.NewSession(host, opts...)

	if runOffset != 0 && !runRaw {
		if err := session.SetCalibrationOffset(runOffset); err != nil {
			return err
		}
	}

	deviceID := runDeviceID
	if deviceID == "" {
		deviceID = cfg.Capture.Device
	}

	if err := session.Start(deviceID); err != nil {
		return err
	}
	defer session.Stop()

	format := session.Format()
	unit := "dB SPL"
	if runRaw {
		unit = "dBFS"
	}
	fmt.Printf("capturing at %g Hz, %d channel(s)\n", format.SampleRate, format.Channels)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-sig:
			fmt.Println()

			return nil
		case <-ticker.C:
			level := session.Level()
			if math.IsNaN(level) {
				fmt.Println("  ---")

				continue
			}
			fmt.Printf("%7.1f %s\n", level, unit)
		}
	}
}
