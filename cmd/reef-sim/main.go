// reef-sim runs the firmware core against a simulated board on stdio.
// Lines starting with '!' are simulator directives and never reach the
// firmware:
//
//	!TEMP <W|A|X|M> <celsius>   set a probe (use -127 for a fault)
//	!LEVEL <low> <high> <alert> set the level switches (0/1)
//	!PH <raw>                   set the pH ADC value
//
// Everything else is a firmware command and gets the firmware's reply.
//
// Copyright (C) 2026  ReefControl contributors
//
// This file may be distributed under the terms of the GNU GPLv3 license.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jessevdk/go-flags"

	"github.com/IM-Lab-france/ReefControl/pkg/config"
	"github.com/IM-Lab-france/ReefControl/pkg/controller"
	"github.com/IM-Lab-france/ReefControl/pkg/hal"
)

type options struct {
	Config string `short:"c" long:"config" description:"board configuration file" default:"board.yaml"`
}

var probeByLetter = map[string]int{
	"W": hal.ProbeWater,
	"A": hal.ProbeAir,
	"X": hal.ProbeAuxMin,
	"M": hal.ProbeAuxMax,
}

func main() {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		if flags.WroteHelp(err) {
			return
		}
		os.Exit(1)
	}

	cfg, err := config.Load(opts.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reef-sim: %v\n", err)
		os.Exit(1)
	}

	sim := hal.NewRealtimeSim()
	ctrl := controller.New(cfg, sim, os.Stdout)
	ctrl.Boot()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go ctrl.Run(ctx)

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "!") {
			directive(sim, line[1:])
			continue
		}
		ctrl.Feed([]byte(line + "\n"))
	}
}

// directive mutates the simulated board from the console.
func directive(sim *hal.Sim, line string) {
	fields := strings.Fields(strings.ToUpper(line))
	if len(fields) == 0 {
		return
	}
	switch fields[0] {
	case "TEMP":
		if len(fields) != 3 {
			fmt.Fprintln(os.Stderr, "usage: !TEMP <W|A|X|M> <celsius>")
			return
		}
		probe, ok := probeByLetter[fields[1]]
		if !ok {
			fmt.Fprintf(os.Stderr, "unknown probe %q\n", fields[1])
			return
		}
		v, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "bad temperature %q\n", fields[2])
			return
		}
		sim.SetProbe(probe, v)
	case "LEVEL":
		if len(fields) != 4 {
			fmt.Fprintln(os.Stderr, "usage: !LEVEL <low> <high> <alert>")
			return
		}
		sim.SetLevels(fields[1] == "1", fields[2] == "1", fields[3] == "1")
	case "PH":
		if len(fields) != 2 {
			fmt.Fprintln(os.Stderr, "usage: !PH <raw>")
			return
		}
		raw, err := strconv.Atoi(fields[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "bad raw value %q\n", fields[1])
			return
		}
		sim.SetPHRaw(raw)
	default:
		fmt.Fprintf(os.Stderr, "unknown directive %q\n", fields[0])
	}
}
