// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package centi renders centi-unit values (value×100, two implied decimal
// places) as decimal strings using integer arithmetic only. It exists so a
// driver built around fixed-point readings never needs floating-point
// formatting.
package centi

import "strconv"

// Format renders a centi-unit value with exactly one decimal place, rounding
// half away from zero with carry into the whole part: 1236 ("12.36") becomes
// "12.4", -235 becomes "-2.4" and 1996 becomes "20.0".
func Format(v int16) string {
	x := int(v)
	neg := x < 0
	if neg {
		x = -x
	}
	w := x / 100 // whole part
	f := x % 100 // two-decimal fraction
	d := f / 10  // first decimal digit
	r := f % 10  // rounding digit
	if r >= 5 {
		d++
		if d == 10 {
			d = 0
			w++
		}
	}
	s := strconv.Itoa(w) + "." + strconv.Itoa(d)
	if neg {
		return "-" + s
	}
	return s
}
