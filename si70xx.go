// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package si70xx

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

const (
	// DefaultAddress is the bus address of every chip in the family. It is
	// the only address the Si7006/20/21/34 respond to.
	DefaultAddress i2c.Addr = 0x40
	// Si7013AltAddress is the alternate address the Si7013 can be strapped
	// to. Only valid with NewSi7013.
	Si7013AltAddress i2c.Addr = 0x41
)

const (
	// CmdMeasureRH starts a relative humidity conversion in hold master
	// mode. The same conversion latches a temperature reading.
	CmdMeasureRH byte = 0xE5
	// CmdReadTemperature reads the temperature latched by the last relative
	// humidity conversion without starting a new one.
	CmdReadTemperature byte = 0xE0

	// A combined conversion takes at most 23ms at the default resolution.
	minSampleDuration = 25 * time.Millisecond
)

// Dev represents an Si70xx series temperature/humidity sensor.
//
// The Dev owns its side of the bus: no other code may address the device
// while the Dev is in use.
type Dev struct {
	d        *i2c.Dev
	shutdown chan struct{}
	mu       sync.Mutex
}

// New returns a driver for the fixed-address chips of the family
// (Si7006/20/21/34). No bus traffic happens until the first command.
func New(bus i2c.Bus) (*Dev, error) {
	return &Dev{d: &i2c.Dev{Bus: bus, Addr: uint16(DefaultAddress)}}, nil
}

// NewSi7013 returns a driver for the dual-address Si7013. addr must be
// DefaultAddress or Si7013AltAddress, matching the chip's address strap.
func NewSi7013(bus i2c.Bus, addr i2c.Addr) (*Dev, error) {
	if addr != DefaultAddress && addr != Si7013AltAddress {
		return nil, fmt.Errorf("si70xx: invalid Si7013 address %#02x", uint16(addr))
	}
	return &Dev{d: &i2c.Dev{Bus: bus, Addr: uint16(addr)}}, nil
}

// Measure starts a combined relative humidity and temperature conversion.
//
// In hold master mode the device stretches the clock until the conversion
// completes, so a subsequent read returns fresh data. On buses that do not
// honor clock stretching the caller must wait out the conversion time
// before reading; the driver never sleeps on the caller's behalf.
func (dev *Dev) Measure() error {
	if err := dev.d.Tx([]byte{CmdMeasureRH}, nil); err != nil {
		return &BusError{Err: err}
	}
	return nil
}

// ReadHumidity returns the relative humidity measured by the last call to
// Measure as a percentage scaled by 100, so 4586 means 45.86%RH.
//
// Calling it without a prior completed Measure returns whatever conversion
// the device has latched; the driver does not track command ordering.
func (dev *Dev) ReadHumidity() (uint16, error) {
	r := make([]byte, 2)
	if err := dev.d.Tx(nil, r); err != nil {
		return 0, &BusError{Err: err}
	}
	return CountToHumidity(uint16(r[0])<<8 | uint16(r[1])), nil
}

// ReadTemperature returns the temperature latched by the last call to
// Measure in degrees Celsius scaled by 100, so 2133 means 21.33°C.
//
// The command write and result read form a single bus transaction. The
// device aborts the readout if a stop condition separates them.
func (dev *Dev) ReadTemperature() (int16, error) {
	r := make([]byte, 2)
	if err := dev.d.Tx([]byte{CmdReadTemperature}, r); err != nil {
		return 0, &BusError{Err: err}
	}
	return CountToTemperature(uint16(r[0])<<8 | uint16(r[1])), nil
}

// CountToHumidity converts a raw conversion code to relative humidity in
// centi-percent.
//
// The device formula is %RH = 125*code/65536 - 6. The device can report
// codes slightly outside the 0..100%RH range; the result is not clamped,
// and codes below 3146 wrap around zero.
func CountToHumidity(count uint16) uint16 {
	return uint16(12500*int32(count)/65536 - 600)
}

// CountToTemperature converts a raw conversion code to a temperature in
// centi-degrees Celsius, per the device formula °C = 175.72*code/65536 - 46.85.
func CountToTemperature(count uint16) int16 {
	return int16(17572*int32(count)/65536 - 4685)
}

// Sense triggers a conversion and reads out both results in sequence,
// relying on hold master clock stretching. The pressure is always 0.
// Implements physic.SenseEnv.
func (dev *Dev) Sense(e *physic.Env) error {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	e.Pressure = 0
	if err := dev.Measure(); err != nil {
		return err
	}
	h, err := dev.ReadHumidity()
	if err != nil {
		return err
	}
	t, err := dev.ReadTemperature()
	if err != nil {
		return err
	}
	e.Humidity = physic.RelativeHumidity(h) * (physic.PercentRH / 100)
	e.Temperature = physic.Temperature(t)*(physic.Kelvin/100) + physic.ZeroCelsius
	return nil
}

// SenseContinuous continuously reads from the device and sends the output
// to the returned channel. To terminate the read, call Dev.Halt().
// Implements physic.SenseEnv.
func (dev *Dev) SenseContinuous(interval time.Duration) (<-chan physic.Env, error) {
	if dev.shutdown != nil {
		return nil, errors.New("si70xx: SenseContinuous already running")
	}
	if interval < minSampleDuration {
		return nil, errors.New("si70xx: sample interval is < device conversion time")
	}
	dev.shutdown = make(chan struct{})
	ch := make(chan physic.Env, 16)
	go func(ch chan<- physic.Env) {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		defer close(ch)
		for {
			select {
			case <-dev.shutdown:
				dev.mu.Lock()
				defer dev.mu.Unlock()
				dev.shutdown = nil
				return
			case <-ticker.C:
				env := physic.Env{}
				if err := dev.Sense(&env); err == nil {
					ch <- env
				}
			}
		}
	}(ch)
	return ch, nil
}

// Precision returns the smallest change in readings the device can produce.
// Implements physic.SenseEnv.
func (dev *Dev) Precision(e *physic.Env) {
	e.Temperature = physic.Kelvin / 100
	e.Humidity = physic.PercentRH / 100
	e.Pressure = 0
}

// Halt terminates a SenseContinuous command if one is running. The device
// itself has no shutdown state. Implements conn.Resource.
func (dev *Dev) Halt() error {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	if dev.shutdown != nil {
		close(dev.shutdown)
	}
	return nil
}

// String returns a string representation of the device.
func (dev *Dev) String() string {
	return fmt.Sprintf("si70xx{%s}", dev.d)
}

var _ conn.Resource = &Dev{}
var _ physic.SenseEnv = &Dev{}
