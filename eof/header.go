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
	"fmt"

	"github.com/pkg/errors"
)

const (
	kindTypesV1    = 0x01
	kindCodeV1     = 0x02
	kindDataV1     = 0x03
	terminatorByte = 0x00
	versionV1      = 0x01

	maxCodeSections = 1024
)

// Header is the fixed-layout EOF prefix (§3.1). Every field is stored in
// its decoded numeric form; Container.Serialize reconstructs the original
// bytes field by field rather than keeping a raw copy.
type Header struct {
	Magic           [2]byte
	Version         byte
	KindTypes       byte
	TypesSize       uint16
	KindCode        byte
	NumCodeSections uint16
	CodeSizes       []uint16
	KindData        byte
	DataSize        uint16
	Terminator      byte
}

// Size returns the byte width of the header itself: 13 fixed bytes plus two
// per code section size entry (§3.1).
func (h *Header) Size() int {
	return 13 + 2*len(h.CodeSizes)
}

// decodeHeader slices and validates every header field in declaration order
// (§4.2), returning the first error encountered together with the offending
// field's name.
func decodeHeader(b []byte) (Header, error) {
	var h Header

	if len(b) < 2 {
		return h, errors.Wrap(ErrTruncated, "magic")
	}
	if b[0] != 0xEF || b[1] != 0x00 {
		return h, ErrBadMagic
	}
	h.Magic[0], h.Magic[1] = b[0], b[1]

	if len(b) < 3 {
		return h, errors.Wrap(ErrTruncated, "version")
	}
	h.Version = b[2]
	if h.Version != versionV1 {
		return h, ErrBadVersion
	}

	if len(b) < 4 {
		return h, errors.Wrap(ErrTruncated, "kind_types")
	}
	h.KindTypes = b[3]
	if h.KindTypes != kindTypesV1 {
		return h, BadKindError{Field: "kind_types"}
	}

	if len(b) < 6 {
		return h, errors.Wrap(ErrTruncated, "types_size")
	}
	h.TypesSize = binary.BigEndian.Uint16(b[4:6])
	if h.TypesSize < 4 || h.TypesSize%4 != 0 {
		return h, OutOfRangeError{Field: "types_size"}
	}

	if len(b) < 7 {
		return h, errors.Wrap(ErrTruncated, "kind_code")
	}
	h.KindCode = b[6]
	if h.KindCode != kindCodeV1 {
		return h, BadKindError{Field: "kind_code"}
	}

	if len(b) < 9 {
		return h, errors.Wrap(ErrTruncated, "num_code_sections")
	}
	n := binary.BigEndian.Uint16(b[7:9])
	if n < 1 {
		return h, OutOfRangeError{Field: "num_code_sections"}
	}
	if n > maxCodeSections {
		// Enforced here, at header parse time, so the error surfaces as
		// early as possible (§9 Open Questions).
		return h, ErrTooManyCodeSections
	}
	h.NumCodeSections = n

	pos := 9
	h.CodeSizes = make([]uint16, n)
	for i := 0; i < int(n); i++ {
		if len(b) < pos+2 {
			return h, errors.Wrapf(ErrTruncated, "code_size[%d]", i)
		}
		sz := binary.BigEndian.Uint16(b[pos : pos+2])
		if sz < 1 {
			return h, OutOfRangeError{Field: fmt.Sprintf("code_size[%d]", i)}
		}
		h.CodeSizes[i] = sz
		pos += 2
	}

	if len(b) < pos+1 {
		return h, errors.Wrap(ErrTruncated, "kind_data")
	}
	h.KindData = b[pos]
	if h.KindData != kindDataV1 {
		return h, BadKindError{Field: "kind_data"}
	}
	pos++

	if len(b) < pos+2 {
		return h, errors.Wrap(ErrTruncated, "data_size")
	}
	h.DataSize = binary.BigEndian.Uint16(b[pos : pos+2])
	pos += 2

	if len(b) < pos+1 {
		return h, errors.Wrap(ErrTruncated, "terminator")
	}
	h.Terminator = b[pos]
	if h.Terminator != terminatorByte {
		return h, BadKindError{Field: "terminator"}
	}

	if h.Size() < 15 {
		return h, ErrHeaderTooSmall
	}
	return h, nil
}
