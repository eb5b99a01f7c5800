//go:build linux

// Linux GPIO board backend
//
// Digital lines go through the character-device GPIO API; the fan and
// servo ride sysfs PWM channels, the temperature probes are 1-wire
// devices under /sys/bus/w1, and the pH front-end is an IIO ADC channel.
//
// Copyright (C) 2026  ReefControl contributors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package hal

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/warthog618/go-gpiocdev"

	"github.com/IM-Lab-france/ReefControl/pkg/clock"
	"github.com/IM-Lab-france/ReefControl/pkg/config"
)

const (
	fanPWMPeriodNs   = 40000    // 25 kHz
	servoPWMPeriodNs = 20000000 // 50 Hz
	servoMinPulseNs  = 1000000
	servoMaxPulseNs  = 2000000
)

// GPIOBoard drives the real controller hardware on a Linux host.
type GPIOBoard struct {
	cfg  *config.PinConfig
	wall *clock.Wall

	step   [NumAxes]*gpiocdev.Line
	dir    [NumAxes]*gpiocdev.Line
	enable *gpiocdev.Line
	heater [NumHeaters]*gpiocdev.Line
	levels [3]*gpiocdev.Line

	fanPWM   *pwmChannel
	servoPWM *pwmChannel

	mu         sync.Mutex
	lastTemp   [NumProbes]float64
	converting bool
}

// NewGPIOBoard requests every line named in the pin map. Any line that
// cannot be requested fails the whole board: a partially driven
// controller is worse than none.
func NewGPIOBoard(cfg *config.PinConfig) (*GPIOBoard, error) {
	b := &GPIOBoard{cfg: cfg, wall: clock.NewWall()}
	for i := range b.lastTemp {
		b.lastTemp[i] = InvalidTempC
	}

	var err error
	for i := 0; i < NumAxes; i++ {
		if b.step[i], err = gpiocdev.RequestLine(cfg.Chip, cfg.AxisStep[i], gpiocdev.AsOutput(0)); err != nil {
			b.Close()
			return nil, fmt.Errorf("step line %d: %w", i, err)
		}
		if b.dir[i], err = gpiocdev.RequestLine(cfg.Chip, cfg.AxisDir[i], gpiocdev.AsOutput(0)); err != nil {
			b.Close()
			return nil, fmt.Errorf("dir line %d: %w", i, err)
		}
	}
	// Driver enable is active-low on the board.
	if b.enable, err = gpiocdev.RequestLine(cfg.Chip, cfg.MotorEnable, gpiocdev.AsOutput(0), gpiocdev.AsActiveLow); err != nil {
		b.Close()
		return nil, fmt.Errorf("enable line: %w", err)
	}
	for i := 0; i < NumHeaters; i++ {
		if b.heater[i], err = gpiocdev.RequestLine(cfg.Chip, cfg.Heaters[i], gpiocdev.AsOutput(0)); err != nil {
			b.Close()
			return nil, fmt.Errorf("heater line %d: %w", i, err)
		}
	}
	// Level switches are active-low with pull-ups.
	for i, offset := range []int{cfg.LevelLow, cfg.LevelHigh, cfg.LevelAlert} {
		if b.levels[i], err = gpiocdev.RequestLine(cfg.Chip, offset, gpiocdev.AsInput, gpiocdev.AsActiveLow, gpiocdev.WithPullUp); err != nil {
			b.Close()
			return nil, fmt.Errorf("level line %d: %w", i, err)
		}
	}

	if b.fanPWM, err = newPWMChannel(cfg.FanPWM, fanPWMPeriodNs); err != nil {
		b.Close()
		return nil, fmt.Errorf("fan pwm: %w", err)
	}
	if b.servoPWM, err = newPWMChannel(cfg.ServoPWM, servoPWMPeriodNs); err != nil {
		b.Close()
		return nil, fmt.Errorf("servo pwm: %w", err)
	}

	return b, nil
}

// Close releases every requested line.
func (b *GPIOBoard) Close() {
	for _, l := range b.step {
		if l != nil {
			l.Close()
		}
	}
	for _, l := range b.dir {
		if l != nil {
			l.Close()
		}
	}
	if b.enable != nil {
		b.enable.Close()
	}
	for _, l := range b.heater {
		if l != nil {
			l.Close()
		}
	}
	for _, l := range b.levels {
		if l != nil {
			l.Close()
		}
	}
	if b.fanPWM != nil {
		b.fanPWM.disable()
	}
	if b.servoPWM != nil {
		b.servoPWM.disable()
	}
}

// Micros implements Board.
func (b *GPIOBoard) Micros() clock.Micros {
	return b.wall.Micros()
}

func boolVal(high bool) int {
	if high {
		return 1
	}
	return 0
}

// SetStep implements Board.
func (b *GPIOBoard) SetStep(axis int, high bool) {
	b.step[axis].SetValue(boolVal(high))
}

// SetDirection implements Board.
func (b *GPIOBoard) SetDirection(axis int, forward bool) {
	b.dir[axis].SetValue(boolVal(forward))
}

// SetMotorEnable implements Board.
func (b *GPIOBoard) SetMotorEnable(on bool) {
	b.enable.SetValue(boolVal(on))
}

// SetHeater implements Board.
func (b *GPIOBoard) SetHeater(ch int, on bool) {
	b.heater[ch].SetValue(boolVal(on))
}

// SetFan implements Board.
func (b *GPIOBoard) SetFan(level uint8) {
	b.fanPWM.setDuty(int64(level) * fanPWMPeriodNs / 255)
}

// SetServo implements Board.
func (b *GPIOBoard) SetServo(angle int) {
	span := int64(servoMaxPulseNs - servoMinPulseNs)
	duty := servoMinPulseNs + span*int64(angle)/int64(ServoMaxAngle)
	b.servoPWM.setDuty(duty)
}

// Levels implements Board. Lines are requested active-low, so a value
// of 1 means asserted.
func (b *GPIOBoard) Levels() (low, high, alert bool) {
	read := func(l *gpiocdev.Line) bool {
		v, err := l.Value()
		return err == nil && v == 1
	}
	return read(b.levels[0]), read(b.levels[1]), read(b.levels[2])
}

// StartConversion implements Board. The w1 subsystem blocks on read for
// the conversion time, so one goroutine per round gathers all probes
// and publishes into the cache. The control loop never waits on it.
func (b *GPIOBoard) StartConversion() {
	b.mu.Lock()
	if b.converting {
		b.mu.Unlock()
		return
	}
	b.converting = true
	b.mu.Unlock()

	go func() {
		var temps [NumProbes]float64
		var wg sync.WaitGroup
		for i := 0; i < NumProbes; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				temps[i] = readW1Temp(b.cfg.ProbeIDs[i])
			}(i)
		}
		wg.Wait()

		b.mu.Lock()
		b.lastTemp = temps
		b.converting = false
		b.mu.Unlock()
	}()
}

// ReadProbe implements Board.
func (b *GPIOBoard) ReadProbe(probe int) float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastTemp[probe]
}

// ReadPH implements Board. The front-end is a 10-bit ADC at 5 V full
// scale.
func (b *GPIOBoard) ReadPH() (int, float64) {
	data, err := os.ReadFile(b.cfg.PHDevice)
	if err != nil {
		return 0, 0
	}
	raw, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, 0
	}
	return raw, float64(raw) * 5.0 / 1023.0
}

// Sleep implements Board.
func (b *GPIOBoard) Sleep(d time.Duration) {
	time.Sleep(d)
}

// readW1Temp reads one DS18B20 through sysfs. The file holds
// millidegrees Celsius.
func readW1Temp(id string) float64 {
	if id == "" {
		return InvalidTempC
	}
	data, err := os.ReadFile(filepath.Join("/sys/bus/w1/devices", id, "temperature"))
	if err != nil {
		return InvalidTempC
	}
	milli, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return InvalidTempC
	}
	return float64(milli) / 1000.0
}

// pwmChannel wraps one sysfs PWM channel.
type pwmChannel struct {
	path string
}

func newPWMChannel(path string, periodNs int64) (*pwmChannel, error) {
	p := &pwmChannel{path: path}
	if err := p.write("period", periodNs); err != nil {
		return nil, err
	}
	if err := p.write("enable", 1); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *pwmChannel) setDuty(ns int64) {
	p.write("duty_cycle", ns)
}

func (p *pwmChannel) disable() {
	p.write("enable", 0)
}

func (p *pwmChannel) write(file string, v int64) error {
	return os.WriteFile(filepath.Join(p.path, file), []byte(strconv.FormatInt(v, 10)), 0644)
}
