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
	"fmt"

	"github.com/pkg/errors"
)

// Container is the whole decoded EOF v1 object. It exclusively owns a
// Header and a Body and is immutable once Decode returns it successfully;
// there is no partial or half-validated Container (§3.2, §7).
type Container struct {
	header Header
	body   Body
}

// Decode parses raw and validates every syntactic and local semantic rule
// of §3-§4: header fields, body slicing, cross-field structural invariants,
// and per-code-section opcode/jump analysis, in that fixed order (§5). The
// first violation encountered is returned; no partial Container is ever
// exposed. enforceTerminator controls the optional terminating-instruction
// check of §4.5/§9; the eofdump CLI passes false unless --enforce-terminator
// is given.
func Decode(raw []byte, enforceTerminator bool) (*Container, error) {
	h, err := decodeHeader(raw)
	if err != nil {
		return nil, err
	}

	b, err := decodeBody(raw, h)
	if err != nil {
		return nil, err
	}

	c := &Container{header: h, body: b}
	if err := c.validateStructure(); err != nil {
		return nil, err
	}

	for i, code := range c.body.CodeSections {
		if _, err := ValidateCode(code, enforceTerminator); err != nil {
			return nil, errors.Wrapf(err, "code section %d", i)
		}
	}
	return c, nil
}

// validateStructure runs the cross-field invariants of §3.1/§4.4: total
// size equation, types/code count agreement, per-section size agreement,
// and type-descriptor range checks.
func (c *Container) validateStructure() error {
	h := &c.header
	b := &c.body

	n := len(h.CodeSizes)
	if n != int(h.TypesSize)/4 || n != len(b.Types) {
		return ErrTypesCountMismatch
	}
	if n != len(b.CodeSections) {
		return ErrTypesCountMismatch
	}

	var sumCode int
	for i, cs := range b.CodeSections {
		if len(cs) != int(h.CodeSizes[i]) {
			return CodeSectionSizeMismatchError{Index: i}
		}
		sumCode += len(cs)
	}

	total := 13 + 2*n + int(h.TypesSize) + sumCode + int(h.DataSize)
	if total != h.Size()+b.size() || len(b.Data) != int(h.DataSize) {
		return ErrSizeMismatch
	}

	for i, t := range b.Types {
		if t.Inputs > 0x7F {
			return OutOfRangeError{Field: fmt.Sprintf("types[%d].inputs", i)}
		}
		// outputs 0x80 marks a non-returning function and is accepted.
		if t.Outputs > 0x7F && t.Outputs != 0x80 {
			return OutOfRangeError{Field: fmt.Sprintf("types[%d].outputs", i)}
		}
		if t.MaxStackHeight > 0x3FF {
			return OutOfRangeError{Field: fmt.Sprintf("types[%d].max_stack_height", i)}
		}
	}
	return nil
}

// NumCodeSections returns the number of code sections in the container.
func (c *Container) NumCodeSections() int { return len(c.body.CodeSections) }

// CodeSection returns the raw bytes of the i-th code section.
func (c *Container) CodeSection(i int) []byte { return c.body.CodeSections[i] }

// TypeAt returns the i-th function type descriptor.
func (c *Container) TypeAt(i int) TypeDescriptor { return c.body.Types[i] }

// Data returns the data section bytes.
func (c *Container) Data() []byte { return c.body.Data }

// Size returns the total byte length of the container (header + body).
func (c *Container) Size() int { return c.header.Size() + c.body.size() }
