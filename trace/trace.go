// Package trace generates synthetic memory-access traces.
//
// A trace is an ordered list of byte addresses that a harness issues, in
// order, to a memory-system simulator. Three patterns are supported: a
// sequential stream with a fixed stride, addresses drawn uniformly at random
// from a power-of-two address space, and a random permutation of a sequential
// stream. Random patterns are driven by a per-call MT19937-64 engine, so the
// same parameters always produce the same trace and concurrent calls never
// share random state.
package trace

import (
	"strconv"
	"strings"
)

// Address is a byte offset into a simulated address space.
type Address int64

// Trace is an ordered sequence of addresses. The order is the issue order.
type Trace []Address

// String renders the addresses in decimal, separated by single spaces.
func (t Trace) String() string {
	var sb strings.Builder

	for i, addr := range t {
		if i > 0 {
			sb.WriteByte(' ')
		}

		sb.WriteString(strconv.FormatInt(int64(addr), 10))
	}

	return sb.String()
}
