package opcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Nothing more to test here, really.
func TestStringer(t *testing.T) {
	tests := map[Opcode]string{
		ADD:    "ADD",
		SUB:    "SUB",
		ASSERT: "ASSERT",
		0xff:   "OPCODE_UNKNOWN",
	}
	for o, s := range tests {
		assert.Equal(t, s, o.String())
	}
}

func TestHasData(t *testing.T) {
	tests := map[Opcode]bool{
		PUSH_IMM:        true,
		LOAD:            true,
		JUMP:            true,
		JUMP_IF:         true,
		JUMP_IF_NOT:     true,
		CALL:            true,
		RETURN_INIT_PKG: true,
		IMPORT:          true,
		RANGE:           true,
		MAKE:            true,
		APPEND:          true,
		ADD:             false,
		POP:             false,
		RETURN:          false,
	}
	for o, want := range tests {
		assert.Equal(t, want, o.HasData(), o.String())
	}
}
