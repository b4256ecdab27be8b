// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package aht10

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

// SensorAddress is the fixed I²C address of the AHT10. The chip does not
// decode any other address, so it cannot share a bus with a second AHT10.
const SensorAddress uint16 = 0x38

const (
	cmdInitialize byte = 0xE1
	cmdMeasure    byte = 0xAC
	cmdSoftReset  byte = 0xBA
)

var (
	argsInitialize = []byte{cmdInitialize, 0x08, 0x00}
	argsMeasure    = []byte{cmdMeasure, 0x33, 0x00}
)

// Opts holds the configuration options for the device.
type Opts struct {
	// MeasurementDelay is the fixed wait between triggering a measurement and
	// reading it back. The sensor needs 75ms worst case to finish a
	// conversion; the wait is unconditional and the driver never polls the
	// busy bit. A reading taken with a shorter delay carries
	// StatusBusyIncomplete. Leave 0 to use the default.
	MeasurementDelay time.Duration
}

// DefaultOpts holds the default configuration options for the device.
var DefaultOpts = Opts{
	MeasurementDelay: 75 * time.Millisecond,
}

// Dev represents an AHT10 temperature/humidity sensor.
type Dev struct {
	opts Opts
	d    *i2c.Dev
	mu   sync.Mutex
	stop chan struct{}
}

// NewI2C returns an object that communicates over I²C with an AHT10 sensor.
// It sends the one-time calibration-load command the sensor requires after
// power-up; subsequent measurements need no further initialization. The Opts
// can be nil.
func NewI2C(b i2c.Bus, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	if opts.MeasurementDelay <= 0 {
		opts.MeasurementDelay = DefaultOpts.MeasurementDelay
	}

	d := &Dev{d: &i2c.Dev{Bus: b, Addr: SensorAddress}, opts: *opts}
	if err := d.initialize(); err != nil {
		return nil, fmt.Errorf("aht10: could not calibrate sensor: %w", err)
	}
	return d, nil
}

func (d *Dev) initialize() error {
	if err := d.d.Tx(argsInitialize, nil); err != nil {
		return err
	}
	time.Sleep(40 * time.Microsecond) // settle time after loading calibration
	return nil
}

// ReadRaw triggers a measurement and returns the raw 6 byte response.
//
// Trigger and read are two separate bus transactions with the fixed
// MeasurementDelay wait in between. The status byte rides along in the
// result unexamined: a rushed or uncalibrated reading is visible through
// RawMeasurement.Status(), never as an error. Only transport failures are
// returned.
func (d *Dev) ReadRaw() (RawMeasurement, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.readRaw()
}

func (d *Dev) readRaw() (RawMeasurement, error) {
	var m RawMeasurement
	if err := d.d.Tx(argsMeasure, nil); err != nil {
		return m, fmt.Errorf("aht10: error triggering measurement: %w", err)
	}
	time.Sleep(d.opts.MeasurementDelay)
	if err := d.d.Tx(nil, m[:]); err != nil {
		return m, fmt.Errorf("aht10: error reading measurement: %w", err)
	}
	time.Sleep(420 * time.Microsecond) // recovery time before the next transaction
	return m, nil
}

// Measure performs one measurement cycle and scales the raw fields to
// centi-units. The status byte is passed through unmodified; callers that
// care whether the reading is trustworthy must check Measurement.Status.
// The driver never retries.
func (d *Dev) Measure() (Measurement, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.measure()
}

func (d *Dev) measure() (Measurement, error) {
	raw, err := d.readRaw()
	if err != nil {
		return Measurement{}, err
	}
	return Measurement{
		Temperature100: temp100(raw.TemperatureRaw()),
		Humidity100:    humid100(raw.HumidityRaw()),
		Status:         raw.Status(),
	}, nil
}

// Sense implements physic.SenseEnv. It returns the current temperature and
// humidity; the pressure is always 0 since the AHT10 does not measure
// pressure. Unlike Measure, Sense interprets the status byte: a sensor that
// lost its calibration yields a NotCalibratedError and a conversion that was
// still running when read back yields a MeasurementIncompleteError.
func (d *Dev) Sense(e *physic.Env) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	m, err := d.measure()
	if err != nil {
		return err
	}
	if !m.Status.Calibrated() {
		return &NotCalibratedError{}
	}
	if m.Status.Busy() {
		return &MeasurementIncompleteError{}
	}
	e.Temperature = physic.Temperature(m.Temperature100)*10*physic.MilliCelsius + physic.ZeroCelsius
	e.Humidity = physic.RelativeHumidity(m.Humidity100) * physic.PercentRH
	e.Pressure = 0
	return nil
}

// SenseContinuous implements physic.SenseEnv. It returns a channel that
// receives a measurement every interval. It is the caller's responsibility
// to call Halt() when done. Readings whose status marks them unreliable are
// dropped rather than sent.
func (d *Dev) SenseContinuous(interval time.Duration) (<-chan physic.Env, error) {
	d.mu.Lock()
	if d.stop != nil {
		d.mu.Unlock()
		return nil, errors.New("aht10: SenseContinuous already running")
	}
	stop := make(chan struct{})
	d.stop = stop
	d.mu.Unlock()

	sensing := make(chan physic.Env)
	go func() {
		defer close(sensing)
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-stop:
				return
			case <-t.C:
				var e physic.Env
				if err := d.Sense(&e); err == nil {
					sensing <- e
				}
			}
		}
	}()
	return sensing, nil
}

// Precision implements physic.SenseEnv. Temperature resolves to hundredths
// of a degree, humidity to a whole percentage point.
func (d *Dev) Precision(e *physic.Env) {
	e.Temperature = 10 * physic.MilliKelvin
	e.Humidity = physic.PercentRH
	e.Pressure = 0
}

// SoftReset reboots the sensor and reloads its calibration. Give the device
// ~20ms afterwards before measuring.
func (d *Dev) SoftReset() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.d.Tx([]byte{cmdSoftReset}, nil); err != nil {
		return fmt.Errorf("aht10: error resetting: %w", err)
	}
	time.Sleep(20 * time.Millisecond)
	return nil
}

// Halt stops the AHT10 from acquiring measurements as initiated by
// SenseContinuous(). Implements conn.Resource.
func (d *Dev) Halt() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stop == nil {
		return nil
	}
	close(d.stop)
	d.stop = nil
	return nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("aht10: %s", d.d)
}

var _ conn.Resource = &Dev{}
var _ physic.SenseEnv = &Dev{}
