// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package si70xxasync

import (
	"context"
	"fmt"

	"periph.io/x/conn/v3/i2c"
)

var _ Transport = &PeriphBus{}

// PeriphBus adapts a periph.io I²C bus to the Transport interface.
//
// The context is checked before each transaction; a kernel bus transaction
// cannot be interrupted once started.
type PeriphBus struct {
	Bus i2c.Bus
}

func (b *PeriphBus) Write(ctx context.Context, addr uint16, w []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := b.Bus.Tx(addr, w, nil); err != nil {
		return fmt.Errorf("could not write to i2c device %#02x: %w", addr, err)
	}
	return nil
}

func (b *PeriphBus) Read(ctx context.Context, addr uint16, r []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := b.Bus.Tx(addr, nil, r); err != nil {
		return fmt.Errorf("could not read from i2c device %#02x: %w", addr, err)
	}
	return nil
}

func (b *PeriphBus) WriteRead(ctx context.Context, addr uint16, w, r []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	// A single Tx keeps the write and the read in one transaction without
	// an intervening stop condition.
	if err := b.Bus.Tx(addr, w, r); err != nil {
		return fmt.Errorf("could not transact with i2c device %#02x: %w", addr, err)
	}
	return nil
}
