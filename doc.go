// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package aht10 controls an AOSONG AHT10 temperature and humidity sensor
// over I²C.
//
// The sensor reports a 6 byte frame holding a status byte and two packed
// 20-bit fields. The driver converts those fields to centi-units (value×100)
// using integer arithmetic only, so it stays usable on targets without
// floating-point hardware. The aht10.Dev type also implements the
// physic.SenseEnv interface; the physic.Env results carry a temperature and
// humidity value, the pressure is never set.
//
// The companion centi package renders centi-unit values as one-decimal
// strings with round-half-away-from-zero semantics.
//
// **Datasheet:** https://server4.eca.ir/eshop/AHT10/Aosong_AHT10_en_draft_0c.pdf
package aht10
