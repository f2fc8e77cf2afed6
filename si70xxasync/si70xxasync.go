// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package si70xxasync drives Si70xx sensors through a context-aware bus
// transport, for callers that schedule bus transactions cooperatively
// instead of blocking the calling goroutine on a kernel bus handle.
//
// The protocol and the conversion formulas are the ones from the si70xx
// package; only the transport capability differs.
package si70xxasync

import (
	"context"
	"fmt"

	"periph.io/x/conn/v3/i2c"

	"github.com/GermanBionicSystems/si70xx"
)

// Transport is the bus capability the sensor needs. Every call addresses a
// single device and returns once the transaction completed or failed.
//
// WriteRead must be issued as one combined transaction with no stop
// condition between the write and the read; the Si70xx aborts the
// temperature readout otherwise. Cancellation semantics belong to the
// implementation: a transport that cannot interrupt an in-flight
// transaction may ignore the context once the transaction started.
type Transport interface {
	Write(ctx context.Context, addr uint16, w []byte) error
	Read(ctx context.Context, addr uint16, r []byte) error
	WriteRead(ctx context.Context, addr uint16, w, r []byte) error
}

// Sensor is the suspendable counterpart of si70xx.Dev. It owns its
// Transport; no other code may use the transport concurrently while the
// Sensor is in use.
type Sensor struct {
	t    Transport
	addr uint16
}

// New returns a sensor for the fixed-address chips of the family
// (Si7006/20/21/34). No bus traffic happens until the first command.
func New(t Transport) *Sensor {
	return &Sensor{t: t, addr: uint16(si70xx.DefaultAddress)}
}

// NewSi7013 returns a sensor for the dual-address Si7013. addr must be
// si70xx.DefaultAddress or si70xx.Si7013AltAddress.
func NewSi7013(t Transport, addr i2c.Addr) (*Sensor, error) {
	if addr != si70xx.DefaultAddress && addr != si70xx.Si7013AltAddress {
		return nil, fmt.Errorf("si70xxasync: invalid Si7013 address %#02x", uint16(addr))
	}
	return &Sensor{t: t, addr: uint16(addr)}, nil
}

// Measure starts a combined relative humidity and temperature conversion
// in hold master mode. The caller owns the conversion delay on transports
// that do not honor clock stretching; the driver never waits on its own.
func (s *Sensor) Measure(ctx context.Context) error {
	if err := s.t.Write(ctx, s.addr, []byte{si70xx.CmdMeasureRH}); err != nil {
		return &si70xx.BusError{Err: err}
	}
	return nil
}

// ReadHumidity returns the relative humidity measured by the last Measure
// as a percentage scaled by 100. Call Measure first; the driver does not
// track command ordering.
func (s *Sensor) ReadHumidity(ctx context.Context) (uint16, error) {
	r := make([]byte, 2)
	if err := s.t.Read(ctx, s.addr, r); err != nil {
		return 0, &si70xx.BusError{Err: err}
	}
	return si70xx.CountToHumidity(uint16(r[0])<<8 | uint16(r[1])), nil
}

// ReadTemperature returns the temperature latched by the last Measure in
// degrees Celsius scaled by 100.
func (s *Sensor) ReadTemperature(ctx context.Context) (int16, error) {
	r := make([]byte, 2)
	if err := s.t.WriteRead(ctx, s.addr, []byte{si70xx.CmdReadTemperature}, r); err != nil {
		return 0, &si70xx.BusError{Err: err}
	}
	return si70xx.CountToTemperature(uint16(r[0])<<8 | uint16(r[1])), nil
}
