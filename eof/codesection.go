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
	"encoding/binary"

	mapset "github.com/deckarep/golang-set/v2"
)

// ValidateCode performs the per-code-section analysis of §4.5: a single
// linear pass that checks opcode legality, frames every immediate operand,
// and verifies that every relative-jump destination lands inside the
// section and on the start of an instruction. It returns the set of byte
// offsets targeted by a relative jump, which callers can use for further
// analysis (e.g. a future stack-height pass); on any violation it returns
// the first error encountered and a nil set.
//
// enforceTerminator additionally requires the section's last instruction to
// be one of the terminating opcodes (§4.1). Decode passes its own
// enforceTerminator argument through unchanged.
func ValidateCode(code []byte, enforceTerminator bool) (mapset.Set[int], error) {
	rjumpdests := mapset.NewThreadUnsafeSet[int]()
	immediates := mapset.NewThreadUnsafeSet[int]()

	pos := 0
	var lastOp OpCode
	for pos < len(code) {
		opPos := pos
		op := OpCode(code[pos])
		pos++

		if !IsValid(op) {
			return nil, UndefinedInstructionError{Op: op, Pos: opPos}
		}

		pcPost := pos + ImmediateSize(op)

		switch op {
		case RJUMP, RJUMPI:
			if pos+2 > len(code) {
				return nil, ErrTruncatedRelativeJump
			}
			delta := int(int16(binary.BigEndian.Uint16(code[pos : pos+2])))
			dest := pcPost + delta
			if dest < 0 || dest >= len(code) {
				return nil, ErrJumpOutOfBounds
			}
			rjumpdests.Add(dest)

		case RJUMPV:
			if pos+1 > len(code) {
				return nil, ErrTruncatedJumpTable
			}
			k := int(code[pos])
			if k == 0 {
				return nil, ErrEmptyJumpTable
			}
			pcPost = pos + 1 + 2*k
			if pcPost > len(code) {
				return nil, ErrTruncatedJumpTable
			}
			for j := 0; j < k; j++ {
				off := pos + 1 + 2*j
				delta := int(int16(binary.BigEndian.Uint16(code[off : off+2])))
				dest := pcPost + delta
				if dest < 0 || dest >= len(code) {
					return nil, ErrJumpOutOfBounds
				}
				rjumpdests.Add(dest)
			}
		}

		for i := pos; i < pcPost; i++ {
			immediates.Add(i)
		}

		pos = pcPost
		lastOp = op
	}

	if pos != len(code) {
		return nil, ErrTruncatedImmediate
	}
	if rjumpdests.Intersect(immediates).Cardinality() != 0 {
		return nil, ErrJumpTargetsImmediate
	}
	if enforceTerminator && !IsTerminating(lastOp) {
		return nil, ErrNonTerminatingCodeSection
	}
	return rjumpdests, nil
}
