package opcode

import (
	"testing"
)

// BenchmarkHasData measures HasData over a mix of data-carrying, plain and
// unknown opcodes.
func BenchmarkHasData(t *testing.B) {
	// Just so that we don't always test the same opcode.
	script := []Opcode{PUSH_IMM, ADD, RANGE, APPEND, 0xff, 0xf0}
	l := len(script)
	for n := 0; n < t.N; n++ {
		_ = script[n%l].HasData()
	}
}
