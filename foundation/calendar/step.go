// File: step.go
// Title: Day Iteration
// Description: Lazy, restartable sequences of dates between two limits.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-16
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-16 v0.1.0: Initial implementation

package calendar

import (
	"iter"
	"math/big"
)

// Step yields d, d+stride, d+2*stride, ... while the value has not passed
// limit; limit itself is included when reached. The sequence is empty if
// stride is zero or points away from limit. It can be ranged over any
// number of times.
func (d Date) Step(limit Date, stride *big.Rat) iter.Seq[Date] {
	stride = ratCopy(stride)
	return func(yield func(Date) bool) {
		sign := stride.Sign()
		if sign == 0 {
			return
		}
		for cur := d; ; cur = cur.Add(stride) {
			c := cur.Cmp(limit)
			if (sign > 0 && c > 0) || (sign < 0 && c < 0) {
				return
			}
			if !yield(cur) {
				return
			}
		}
	}
}

// StepDays is Step with a whole-day stride.
func (d Date) StepDays(limit Date, stride int) iter.Seq[Date] {
	return d.Step(limit, ratInt(stride))
}

// Upto yields every day from d forward to max.
func (d Date) Upto(max Date) iter.Seq[Date] {
	return d.StepDays(max, 1)
}

// Downto yields every day from d back to min.
func (d Date) Downto(min Date) iter.Seq[Date] {
	return d.StepDays(min, -1)
}
