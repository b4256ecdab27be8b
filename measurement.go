// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package aht10

import "fmt"

const (
	bitBusy       byte = 1 << 7
	bitCalibrated byte = 1 << 3
)

// Status is the sensor status byte, the first byte of every measurement
// frame. Bit 7 is set while a conversion is in progress, bit 3 is set when
// the calibration coefficients are loaded. The remaining bits are not
// interpreted.
type Status byte

const (
	// StatusIdle is reported for a completed measurement on a calibrated
	// sensor.
	StatusIdle Status = 0x19
	// StatusBusyIncomplete is reported when the sensor was read back before
	// its conversion finished; the data bytes are unreliable.
	StatusBusyIncomplete Status = 0x99
)

// Busy reports whether a conversion was still in progress.
func (s Status) Busy() bool { return byte(s)&bitBusy != 0 }

// Calibrated reports whether the calibration coefficients are loaded.
func (s Status) Calibrated() bool { return byte(s)&bitCalibrated != 0 }

// Valid reports whether the measurement carrying this status can be trusted:
// calibrated and not busy.
func (s Status) Valid() bool { return s.Calibrated() && !s.Busy() }

func (s Status) String() string {
	switch {
	case s.Valid():
		return fmt.Sprintf("idle (%#02x)", byte(s))
	case s.Busy():
		return fmt.Sprintf("busy (%#02x)", byte(s))
	default:
		return fmt.Sprintf("uncalibrated (%#02x)", byte(s))
	}
}

// RawMeasurement is the 6 byte frame returned by a single sensor read
// transaction. Byte 0 is the status byte; bytes 1-5 are a packed 40-bit
// field holding humidity in bits [39:20] and temperature in bits [19:0].
// Byte 3 is shared: its high nibble is the low end of the humidity field,
// its low nibble the high end of the temperature field.
type RawMeasurement [6]byte

// Status returns the status byte of the frame.
func (m RawMeasurement) Status() Status { return Status(m[0]) }

// HumidityRaw extracts the 20-bit relative humidity field, bits [39:20] of
// the packed payload.
func (m RawMeasurement) HumidityRaw() uint32 {
	return (uint32(m[1])<<16 | uint32(m[2])<<8 | uint32(m[3])) >> 4
}

// TemperatureRaw extracts the 20-bit temperature field, bits [19:0] of the
// packed payload.
func (m RawMeasurement) TemperatureRaw() uint32 {
	return uint32(m[3]&0x0F)<<16 | uint32(m[4])<<8 | uint32(m[5])
}

// Measurement is a converted reading in centi-units.
type Measurement struct {
	// Temperature100 is the temperature in hundredths of a degree Celsius:
	// 2753 means 27.53°C.
	Temperature100 int16
	// Humidity100 is the relative humidity fraction times 100, i.e. whole
	// percent: 67 means 67% RH. The sensor's /10486 scaling resolves no
	// finer than a percentage point.
	Humidity100 int16
	// Status is the frame's status byte, passed through unmodified.
	Status Status
}

// temp100 scales a raw 20-bit temperature field to hundredths of a degree
// Celsius. The datasheet formula is tempC = raw/2^20*200 - 50; scaling by
// 100 and reducing 20000/2^20 to 625/32768 keeps every intermediate within
// 32 bits (max raw*625 = 655359375).
func temp100(raw uint32) int16 {
	return int16(int32(raw*625/32768) - 5000)
}

// humid100 scales a raw 20-bit humidity field to the RH fraction times 100.
// The divisor 10486 approximates 2^20/100 = 10485.76; the quantization error
// stays under 0.003 percentage points across the full range.
func humid100(raw uint32) int16 {
	return int16(raw / 10486)
}
