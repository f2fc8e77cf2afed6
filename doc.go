// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package si70xx controls Silicon Labs Si70xx series relative humidity and
// temperature sensors (Si7006/13/20/21/34) over I²C.
//
// A single Measure command starts a combined humidity and temperature
// conversion in hold master mode. ReadHumidity and ReadTemperature return
// the results as integers scaled by 100, so 4586 means 45.86%RH and 2133
// means 21.33°C. The si70xx.Dev type also implements the physic.SenseEnv
// interface; the physic.Env results contain a temperature and humidity
// value, the pressure is not set.
//
// The Si7013 supports two bus addresses and is constructed with NewSi7013.
// Every other chip of the family sits at the fixed address 0x40.
//
// For callers that schedule bus transactions cooperatively, the si70xxasync
// subpackage provides the same protocol over a context-aware transport.
//
// # Datasheet
//
// https://www.silabs.com/documents/public/data-sheets/Si7021-A20.pdf
package si70xx
