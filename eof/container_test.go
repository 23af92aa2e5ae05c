// Copyright 2024 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package eof

import (
	"errors"
	"testing"
)

func TestDecodeMinimalValid(t *testing.T) {
	raw := mustDecodeHex(t, minimalValid)
	c, err := Decode(raw, false)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if c.NumCodeSections() != 1 {
		t.Fatalf("NumCodeSections() = %d, want 1", c.NumCodeSections())
	}
	if got := c.CodeSection(0); len(got) != 1 || got[0] != byte(STOP) {
		t.Errorf("CodeSection(0) = %x, want [00]", got)
	}
	if c.Size() != len(raw) {
		t.Errorf("Size() = %d, want %d", c.Size(), len(raw))
	}
}

func TestDecodeMultipleCodeSections(t *testing.T) {
	// types: 2 entries (8 bytes), code sections [STOP] and [PUSH1 0x01 POP STOP],
	// no data.
	raw := mustDecodeHex(t, "ef0001010008020002000100040300000000800000008000000060015000")
	c, err := Decode(raw, false)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if c.NumCodeSections() != 2 {
		t.Fatalf("NumCodeSections() = %d, want 2", c.NumCodeSections())
	}
	if got := c.CodeSection(1); len(got) != 4 {
		t.Errorf("CodeSection(1) length = %d, want 4", len(got))
	}
}

func TestDecodeTypesCountMismatch(t *testing.T) {
	// num_code_sections=1 but types_size declares 2 entries (8 bytes).
	raw := mustDecodeHex(t, "ef0001010008020001000103000000008000000080000000")
	_, err := Decode(raw, false)
	if !errors.Is(err, ErrTypesCountMismatch) {
		t.Fatalf("Decode = %v, want ErrTypesCountMismatch", err)
	}
}

func TestDecodeTypeDescriptorOutOfRange(t *testing.T) {
	// inputs byte 0x80 exceeds the 0x7F maximum.
	raw := mustDecodeHex(t, "ef00010100040200010001030000008080000000")
	_, err := Decode(raw, false)
	if !errors.Is(err, OutOfRangeError{}) {
		t.Fatalf("Decode = %v, want OutOfRangeError", err)
	}
}

func TestDecodeEnforceTerminator(t *testing.T) {
	// Code section is a single ADD (0x01), which never terminates.
	raw := mustDecodeHex(t, "ef00010100040200010001030000000080000001")
	if _, err := Decode(raw, false); err != nil {
		t.Fatalf("Decode(enforceTerminator=false) = %v, want nil", err)
	}
	_, err := Decode(raw, true)
	if !errors.Is(err, ErrNonTerminatingCodeSection) {
		t.Fatalf("Decode(enforceTerminator=true) = %v, want ErrNonTerminatingCodeSection", err)
	}
}

func TestDecodeUndefinedInstruction(t *testing.T) {
	// Scenario 4 of §8: code section byte 0x0c is undefined in EOF v1.
	raw := mustDecodeHex(t, "ef0001010004020001000103000000008000000c")
	_, err := Decode(raw, false)
	var want UndefinedInstructionError
	if !errors.As(err, &want) {
		t.Fatalf("Decode = %v, want UndefinedInstructionError", err)
	}
	if want.Op != 0x0c || want.Pos != 0 {
		t.Errorf("UndefinedInstructionError = %+v, want {Op:0x0c Pos:0}", want)
	}
}

func TestDecodeQueryAccessors(t *testing.T) {
	raw := mustDecodeHex(t, minimalValid)
	c, err := Decode(raw, false)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if ty := c.TypeAt(0); ty.Outputs != 0x80 {
		t.Errorf("TypeAt(0).Outputs = %#x, want 0x80", ty.Outputs)
	}
	if data := c.Data(); len(data) != 0 {
		t.Errorf("Data() = %x, want empty", data)
	}
}
