// Copyright (C) 2026  ReefControl contributors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Identity.FirmwareVersion != "1.4.0" {
		t.Errorf("fw = %q", cfg.Identity.FirmwareVersion)
	}
	if cfg.Serial.Baud != 115200 {
		t.Errorf("baud = %d", cfg.Serial.Baud)
	}
	if cfg.Motion.MinHalfPeriodUs != 50 || cfg.Motion.StepPulseUs != 4 {
		t.Errorf("motion = %+v", cfg.Motion)
	}
	if cfg.Heat.Water.TargetC != 25.0 || cfg.Heat.Reserve.TargetC != 30.0 {
		t.Errorf("targets = %v / %v", cfg.Heat.Water.TargetC, cfg.Heat.Reserve.TargetC)
	}
	if cfg.Heat.Water.Kp != 12.0 || cfg.Heat.Water.Ki != 0.4 || cfg.Heat.Water.Kd != 60.0 {
		t.Errorf("water gains = %+v", cfg.Heat.Water)
	}
	if cfg.Fan.AutocoolThresholdC != 28.0 {
		t.Errorf("autocool = %v", cfg.Fan.AutocoolThresholdC)
	}
	if cfg.Sensors.ConversionMs != 800 || cfg.Sensors.PauseMs != 500 {
		t.Errorf("sensors = %+v", cfg.Sensors)
	}
	if cfg.Link.LineBufferSize != 96 {
		t.Errorf("line buffer = %d", cfg.Link.LineBufferSize)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Identity.BoardID != "REEF-MEGA" {
		t.Errorf("board = %q", cfg.Identity.BoardID)
	}
}

func TestLoadOverridesAndBackfills(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.yaml")
	data := []byte(`
identity:
  board_id: REEF-TEST
heat:
  water:
    target_c: 26.5
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Identity.BoardID != "REEF-TEST" {
		t.Errorf("board = %q", cfg.Identity.BoardID)
	}
	if cfg.Heat.Water.TargetC != 26.5 {
		t.Errorf("water target = %v", cfg.Heat.Water.TargetC)
	}
	// Fields the file left out come back as defaults.
	if cfg.Identity.FirmwareVersion != "1.4.0" {
		t.Errorf("fw = %q", cfg.Identity.FirmwareVersion)
	}
	if cfg.Serial.Baud != 115200 {
		t.Errorf("baud = %d", cfg.Serial.Baud)
	}
	if cfg.Motion.MinHalfPeriodUs != 50 {
		t.Errorf("min half period = %d", cfg.Motion.MinHalfPeriodUs)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("identity: [not a map"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("Load accepted malformed YAML")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.yaml")

	cfg := Default()
	cfg.Identity.BoardID = "REEF-RT"
	cfg.Fan.AutocoolThresholdC = 27.5
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Identity.BoardID != "REEF-RT" {
		t.Errorf("board = %q", loaded.Identity.BoardID)
	}
	if loaded.Fan.AutocoolThresholdC != 27.5 {
		t.Errorf("autocool = %v", loaded.Fan.AutocoolThresholdC)
	}
}
