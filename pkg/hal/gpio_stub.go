//go:build !linux

// Copyright (C) 2026  ReefControl contributors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package hal

import (
	"fmt"
	"time"

	"github.com/IM-Lab-france/ReefControl/pkg/clock"
	"github.com/IM-Lab-france/ReefControl/pkg/config"
)

// GPIOBoard is only available on Linux. This stub keeps non-Linux
// development builds compiling; every method panics if reached.
type GPIOBoard struct{}

// NewGPIOBoard fails on non-Linux hosts; use the sim backend instead.
func NewGPIOBoard(cfg *config.PinConfig) (*GPIOBoard, error) {
	return nil, fmt.Errorf("gpio board backend requires linux")
}

func (b *GPIOBoard) Close()                           {}
func (b *GPIOBoard) Micros() clock.Micros             { panic("gpio: unsupported platform") }
func (b *GPIOBoard) SetStep(axis int, high bool)      { panic("gpio: unsupported platform") }
func (b *GPIOBoard) SetDirection(axis int, fwd bool)  { panic("gpio: unsupported platform") }
func (b *GPIOBoard) SetMotorEnable(on bool)           { panic("gpio: unsupported platform") }
func (b *GPIOBoard) SetHeater(ch int, on bool)        { panic("gpio: unsupported platform") }
func (b *GPIOBoard) SetFan(level uint8)               { panic("gpio: unsupported platform") }
func (b *GPIOBoard) SetServo(angle int)               { panic("gpio: unsupported platform") }
func (b *GPIOBoard) Levels() (low, high, alert bool)  { panic("gpio: unsupported platform") }
func (b *GPIOBoard) StartConversion()                 { panic("gpio: unsupported platform") }
func (b *GPIOBoard) ReadProbe(probe int) float64      { panic("gpio: unsupported platform") }
func (b *GPIOBoard) ReadPH() (raw int, volts float64) { panic("gpio: unsupported platform") }
func (b *GPIOBoard) Sleep(d time.Duration)            { panic("gpio: unsupported platform") }
