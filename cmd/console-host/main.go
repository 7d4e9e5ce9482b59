//go:build !(rp2040 || rp2350)

// console-host runs the device console application on a workstation, either
// on stdin/stdout with simulated peripherals or bridged to a real serial
// port.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"deviceconsole-go/app"
	"deviceconsole-go/config"
	"deviceconsole-go/console"
	"deviceconsole-go/platform"
)

func main() {
	var (
		cfgPath string
		device  string
		baud    int
	)

	root := &cobra.Command{
		Use:           "console-host",
		Short:         "Interactive device console on a host machine",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if device != "" {
				cfg.SerialDevice = device
			}
			if baud > 0 {
				cfg.SerialBaud = baud
			}

			var dev console.Device
			if cfg.SerialDevice != "" {
				sp, err := platform.OpenSerialDevice(cfg.SerialDevice, cfg.SerialBaud)
				if err != nil {
					return err
				}
				defer sp.Close()
				dev = sp
			} else {
				dev = platform.NewStdioDevice()
			}

			a, err := app.New(cfg, platform.NewHost(dev))
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.Run(ctx)
		},
	}

	root.Flags().StringVarP(&cfgPath, "config", "c", "", "path to a TOML config file")
	root.Flags().StringVarP(&device, "device", "d", "", "serial device to attach to (default: stdio)")
	root.Flags().IntVarP(&baud, "baud", "b", 0, "serial baud rate")

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
