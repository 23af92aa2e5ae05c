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

	"github.com/pkg/errors"
)

// TypeDescriptor is one function-type entry of the types section: inputs,
// outputs, and the maximum stack height reached by the corresponding code
// section (§3.1).
type TypeDescriptor struct {
	Inputs         uint8
	Outputs        uint8
	MaxStackHeight uint16
}

// Body owns the parsed types section, the ordered code sections, and the
// data section (§3.1). Body never validates cross-field invariants; that is
// StructuralValidator's job (container.go).
type Body struct {
	Types        []TypeDescriptor
	CodeSections [][]byte
	Data         []byte
}

// size returns the byte width of the body as reconstructed from its parsed
// parts: 4 bytes per type descriptor, the code sections, then the data.
func (b *Body) size() int {
	s := 4 * len(b.Types)
	for _, cs := range b.CodeSections {
		s += len(cs)
	}
	s += len(b.Data)
	return s
}

// decodeBody slices the types section, code sections, and data section out
// of raw using the sizes already validated in h (§4.3). It raises
// Truncated if any slice would overrun raw, and TrailingBytes if bytes
// remain once the data section has been consumed.
func decodeBody(raw []byte, h Header) (Body, error) {
	var body Body

	pos := h.Size()
	typesLen := int(h.TypesSize)
	if len(raw) < pos+typesLen {
		return body, errors.Wrap(ErrTruncated, "types_section")
	}
	typesBytes := raw[pos : pos+typesLen]
	pos += typesLen

	numTypes := typesLen / 4
	body.Types = make([]TypeDescriptor, numTypes)
	for i := 0; i < numTypes; i++ {
		off := i * 4
		body.Types[i] = TypeDescriptor{
			Inputs:         typesBytes[off],
			Outputs:        typesBytes[off+1],
			MaxStackHeight: binary.BigEndian.Uint16(typesBytes[off+2 : off+4]),
		}
	}

	body.CodeSections = make([][]byte, len(h.CodeSizes))
	for i, sz := range h.CodeSizes {
		n := int(sz)
		if len(raw) < pos+n {
			return body, errors.Wrapf(ErrTruncated, "code_section[%d]", i)
		}
		body.CodeSections[i] = raw[pos : pos+n]
		pos += n
	}

	dataLen := int(h.DataSize)
	if len(raw) < pos+dataLen {
		return body, errors.Wrap(ErrTruncated, "data_section")
	}
	body.Data = raw[pos : pos+dataLen]
	pos += dataLen

	if pos != len(raw) {
		return body, ErrTrailingBytes
	}
	return body, nil
}
