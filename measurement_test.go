// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package aht10

import "testing"

func TestRawMeasurementNibbleSplit(t *testing.T) {
	m := RawMeasurement{0x19, 0x19, 0x99, 0x9A, 0x66, 0x66}
	// Byte 3 (0x9A) belongs to both fields: high nibble 0x9 ends the
	// humidity field, low nibble 0xA starts the temperature field.
	if got := m.HumidityRaw(); got != 0x19999 {
		t.Errorf("HumidityRaw() = %#x, want 0x19999", got)
	}
	if got := m.TemperatureRaw(); got != 0xA6666 {
		t.Errorf("TemperatureRaw() = %#x, want 0xa6666", got)
	}
	if got := m.Status(); got != StatusIdle {
		t.Errorf("Status() = %#02x, want %#02x", byte(got), byte(StatusIdle))
	}

	// All humidity bits set, no temperature bits.
	m = RawMeasurement{0x19, 0xFF, 0xFF, 0xF0, 0x00, 0x00}
	if got := m.HumidityRaw(); got != 0xFFFFF {
		t.Errorf("HumidityRaw() = %#x, want 0xfffff", got)
	}
	if got := m.TemperatureRaw(); got != 0 {
		t.Errorf("TemperatureRaw() = %#x, want 0", got)
	}

	// And the inverse.
	m = RawMeasurement{0x19, 0x00, 0x00, 0x0F, 0xFF, 0xFF}
	if got := m.HumidityRaw(); got != 0 {
		t.Errorf("HumidityRaw() = %#x, want 0", got)
	}
	if got := m.TemperatureRaw(); got != 0xFFFFF {
		t.Errorf("TemperatureRaw() = %#x, want 0xfffff", got)
	}
}

func TestStatusBits(t *testing.T) {
	if !StatusIdle.Calibrated() || StatusIdle.Busy() || !StatusIdle.Valid() {
		t.Errorf("%#02x misclassified: %s", byte(StatusIdle), StatusIdle)
	}
	if !StatusBusyIncomplete.Busy() || StatusBusyIncomplete.Valid() {
		t.Errorf("%#02x misclassified: %s", byte(StatusBusyIncomplete), StatusBusyIncomplete)
	}
	// Busy wins regardless of the data bytes' content; only bits 7 and 3
	// matter.
	if Status(0x80).Valid() || Status(0x00).Valid() {
		t.Error("uncalibrated or busy status reported valid")
	}
	if !Status(0x08).Valid() {
		t.Error("calibrated idle status reported invalid")
	}
}

// The reduced 625/32768 ratio must match the unreduced datasheet formula
// raw*20000/2^20 for every 20-bit input, since 20000/2^20 = (625*32)/(32768*32).
func TestTemp100MatchesDatasheetFormula(t *testing.T) {
	for raw := uint32(0); raw < 1<<20; raw++ {
		want := int16(int64(raw)*20000/(1<<20) - 5000)
		if got := temp100(raw); got != want {
			t.Fatalf("temp100(%#x) = %d, want %d", raw, got, want)
		}
	}
}

// The /10486 divisor approximates 2^20/100 = 10485.76. The exact divisor
// would change the result by at most one count anywhere in the 20-bit range.
func TestHumid100Quantization(t *testing.T) {
	for raw := uint32(0); raw < 1<<20; raw++ {
		got := int64(humid100(raw))
		exact := int64(raw) * 100 / (1 << 20)
		if diff := got - exact; diff < -1 || diff > 1 {
			t.Fatalf("humid100(%#x) = %d, exact scaling gives %d", raw, got, exact)
		}
	}
	if humid100(0) != 0 {
		t.Error("humid100(0) != 0")
	}
	if humid100(1<<20-1) != 99 {
		t.Errorf("humid100(0xfffff) = %d, want 99", humid100(1<<20-1))
	}
}

func TestMeasurementRange(t *testing.T) {
	// Field extremes stay inside int16.
	if got := temp100(0); got != -5000 {
		t.Errorf("temp100(0) = %d, want -5000", got)
	}
	if got := temp100(1<<20 - 1); got != 14999 {
		t.Errorf("temp100(0xfffff) = %d, want 14999", got)
	}
}
