// Board configuration for the ReefControl firmware core
//
// Copyright (C) 2026  ReefControl contributors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the complete board configuration.
type Config struct {
	Identity IdentityConfig `yaml:"identity"`
	Serial   SerialConfig   `yaml:"serial"`
	Pins     PinConfig      `yaml:"pins"`
	Motion   MotionConfig   `yaml:"motion"`
	Heat     HeatConfig     `yaml:"heat"`
	Fan      FanConfig      `yaml:"fan"`
	Sensors  SensorConfig   `yaml:"sensors"`
	Feeder   FeederConfig   `yaml:"feeder"`
	Link     LinkConfig     `yaml:"link"`
}

// IdentityConfig names the firmware build on the wire.
type IdentityConfig struct {
	FirmwareVersion string `yaml:"firmware_version"`
	BoardID         string `yaml:"board_id"`
}

// SerialConfig describes the command link port.
type SerialConfig struct {
	Port string `yaml:"port"`
	Baud int    `yaml:"baud"`
}

// PinConfig maps logical lines to GPIO offsets for the gpio backend.
// Offsets are on the named gpiochip; PWM and 1-wire devices go through
// sysfs paths instead.
type PinConfig struct {
	Chip        string    `yaml:"chip"`
	AxisStep    [4]int    `yaml:"axis_step"`
	AxisDir     [4]int    `yaml:"axis_dir"`
	MotorEnable int       `yaml:"motor_enable"`
	Heaters     [2]int    `yaml:"heaters"`
	FanPWM      string    `yaml:"fan_pwm"`
	ServoPWM    string    `yaml:"servo_pwm"`
	LevelLow    int       `yaml:"level_low"`
	LevelHigh   int       `yaml:"level_high"`
	LevelAlert  int       `yaml:"level_alert"`
	ProbeIDs    [4]string `yaml:"probe_ids"`
	PHDevice    string    `yaml:"ph_device"`
}

// MotionConfig holds dosing pulse parameters.
type MotionConfig struct {
	MinHalfPeriodUs uint32 `yaml:"min_half_period_us"`
	StepPulseUs     uint32 `yaml:"step_pulse_us"`
}

// HeatConfig holds the per-channel PID defaults.
type HeatConfig struct {
	Water   PIDConfig `yaml:"water"`
	Reserve PIDConfig `yaml:"reserve"`
}

// PIDConfig holds one heater channel's gains, target and sensor window.
type PIDConfig struct {
	Kp       float64 `yaml:"kp"`
	Ki       float64 `yaml:"ki"`
	Kd       float64 `yaml:"kd"`
	TargetC  float64 `yaml:"target_c"`
	MinValid float64 `yaml:"min_valid_c"`
	MaxValid float64 `yaml:"max_valid_c"`
}

// FanConfig holds autocool parameters.
type FanConfig struct {
	AutocoolThresholdC float64 `yaml:"autocool_threshold_c"`
	RampBandC          float64 `yaml:"ramp_band_c"`
}

// SensorConfig holds the probe polling cadence.
type SensorConfig struct {
	ConversionMs uint32 `yaml:"conversion_ms"`
	PauseMs      uint32 `yaml:"pause_ms"`
}

// FeederConfig holds the feed servo geometry and macro timing.
type FeederConfig struct {
	BootAngle    int `yaml:"boot_angle"`
	OpenAngle    int `yaml:"open_angle"`
	CloseAngle   int `yaml:"close_angle"`
	OpenDelayMs  int `yaml:"open_delay_ms"`
	CloseDelayMs int `yaml:"close_delay_ms"`
	Cycles       int `yaml:"cycles"`
}

// LinkConfig bounds the command line buffer.
type LinkConfig struct {
	LineBufferSize int `yaml:"line_buffer_size"`
}

// Default returns the configuration matching the stock board.
func Default() *Config {
	return &Config{
		Identity: IdentityConfig{
			FirmwareVersion: "1.4.0",
			BoardID:         "REEF-MEGA",
		},
		Serial: SerialConfig{
			Port: "/dev/ttyACM0",
			Baud: 115200,
		},
		Pins: PinConfig{
			Chip:        "gpiochip0",
			AxisStep:    [4]int{54, 60, 46, 26},
			AxisDir:     [4]int{55, 61, 48, 28},
			MotorEnable: 38,
			Heaters:     [2]int{8, 9},
			FanPWM:      "/sys/class/pwm/pwmchip0/pwm0",
			ServoPWM:    "/sys/class/pwm/pwmchip0/pwm1",
			LevelLow:    18,
			LevelHigh:   19,
			LevelAlert:  23,
			PHDevice:    "/sys/bus/iio/devices/iio:device0/in_voltage0_raw",
		},
		Motion: MotionConfig{
			MinHalfPeriodUs: 50,
			StepPulseUs:     4,
		},
		Heat: HeatConfig{
			Water:   PIDConfig{Kp: 12.0, Ki: 0.4, Kd: 60.0, TargetC: 25.0, MinValid: 5.0, MaxValid: 40.0},
			Reserve: PIDConfig{Kp: 12.0, Ki: 0.4, Kd: 60.0, TargetC: 30.0, MinValid: 5.0, MaxValid: 40.0},
		},
		Fan: FanConfig{
			AutocoolThresholdC: 28.0,
			RampBandC:          5.0,
		},
		Sensors: SensorConfig{
			ConversionMs: 800,
			PauseMs:      500,
		},
		Feeder: FeederConfig{
			BootAngle:    10,
			OpenAngle:    90,
			CloseAngle:   0,
			OpenDelayMs:  600,
			CloseDelayMs: 400,
			Cycles:       2,
		},
		Link: LinkConfig{
			LineBufferSize: 96,
		},
	}
}

// Load reads a YAML configuration file on top of the defaults. A
// missing file is not an error: the stock configuration is returned.
func Load(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ensureDefaults()
	return cfg, nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(filename string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// ensureDefaults backfills zero-valued required fields after unmarshal.
func (c *Config) ensureDefaults() {
	def := Default()

	if c.Identity.FirmwareVersion == "" {
		c.Identity.FirmwareVersion = def.Identity.FirmwareVersion
	}
	if c.Identity.BoardID == "" {
		c.Identity.BoardID = def.Identity.BoardID
	}
	if c.Serial.Baud == 0 {
		c.Serial.Baud = def.Serial.Baud
	}
	if c.Pins.Chip == "" {
		c.Pins.Chip = def.Pins.Chip
	}
	if c.Motion.MinHalfPeriodUs == 0 {
		c.Motion.MinHalfPeriodUs = def.Motion.MinHalfPeriodUs
	}
	if c.Motion.StepPulseUs == 0 {
		c.Motion.StepPulseUs = def.Motion.StepPulseUs
	}
	if c.Fan.RampBandC == 0 {
		c.Fan.RampBandC = def.Fan.RampBandC
	}
	if c.Sensors.ConversionMs == 0 {
		c.Sensors.ConversionMs = def.Sensors.ConversionMs
	}
	if c.Sensors.PauseMs == 0 {
		c.Sensors.PauseMs = def.Sensors.PauseMs
	}
	if c.Feeder.Cycles == 0 {
		c.Feeder.Cycles = def.Feeder.Cycles
	}
	if c.Feeder.OpenDelayMs == 0 {
		c.Feeder.OpenDelayMs = def.Feeder.OpenDelayMs
	}
	if c.Feeder.CloseDelayMs == 0 {
		c.Feeder.CloseDelayMs = def.Feeder.CloseDelayMs
	}
	if c.Link.LineBufferSize == 0 {
		c.Link.LineBufferSize = def.Link.LineBufferSize
	}
}
