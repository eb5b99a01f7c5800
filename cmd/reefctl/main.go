// reefctl runs the reef controller firmware core, exposing the
// line-oriented command protocol on a serial port or on stdio.
//
// Usage:
//
//	reefctl -c board.yaml                 # gpio backend, serial link
//	reefctl --board sim --stdio           # simulated board on stdio
//
// Copyright (C) 2026  ReefControl contributors
//
// This file may be distributed under the terms of the GNU GPLv3 license.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/jessevdk/go-flags"
	"go.bug.st/serial"

	"github.com/IM-Lab-france/ReefControl/pkg/config"
	"github.com/IM-Lab-france/ReefControl/pkg/controller"
	"github.com/IM-Lab-france/ReefControl/pkg/hal"
	"github.com/IM-Lab-france/ReefControl/pkg/log"
)

type options struct {
	Config string `short:"c" long:"config" description:"board configuration file" default:"board.yaml"`
	Board  string `long:"board" description:"board backend" choice:"gpio" choice:"sim" default:"gpio"`
	Port   string `short:"p" long:"port" description:"serial port override"`
	Stdio  bool   `long:"stdio" description:"run the command link on stdin/stdout"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "reefctl: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		if flags.WroteHelp(err) {
			return nil
		}
		return err
	}

	logger := log.New("reefctl")

	cfg, err := config.Load(opts.Config)
	if err != nil {
		return err
	}
	if opts.Port != "" {
		cfg.Serial.Port = opts.Port
	}

	var board hal.Board
	switch opts.Board {
	case "sim":
		board = hal.NewRealtimeSim()
		logger.Info("using simulated board")
	default:
		gb, err := hal.NewGPIOBoard(&cfg.Pins)
		if err != nil {
			return fmt.Errorf("gpio board: %w", err)
		}
		defer gb.Close()
		board = gb
	}

	var link io.ReadWriter
	if opts.Stdio {
		link = struct {
			io.Reader
			io.Writer
		}{os.Stdin, os.Stdout}
	} else {
		port, err := serial.Open(cfg.Serial.Port, &serial.Mode{BaudRate: cfg.Serial.Baud})
		if err != nil {
			return fmt.Errorf("open %s: %w", cfg.Serial.Port, err)
		}
		defer port.Close()
		logger.Info("command link on %s @ %d", cfg.Serial.Port, cfg.Serial.Baud)
		link = port
	}

	ctrl := controller.New(cfg, board, link)
	ctrl.Boot()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-stopCh
		logger.Info("received %v, shutting down", sig)
		cancel()
	}()

	// Transport goroutine: raw bytes from the link into the kernel.
	go func() {
		buf := make([]byte, 256)
		for {
			n, err := link.Read(buf)
			if n > 0 {
				ctrl.Feed(buf[:n])
			}
			if err != nil {
				logger.Error("command link read: %v", err)
				cancel()
				return
			}
		}
	}()

	ctrl.Run(ctx)
	logger.Info("final counters:\n%s", ctrl.Metrics().Render())
	return nil
}
