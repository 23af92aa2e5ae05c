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
	"bytes"
	"encoding/binary"
)

// Serialize reconstructs the byte-exact wire representation of c (§4.6).
// For any Container obtained from Decode(b, ...) with b syntactically
// valid, Decode(c.Serialize(), ...) reproduces an equal Container and
// c.Serialize() equals b (the round-trip law, P1).
func (c *Container) Serialize() []byte {
	var buf bytes.Buffer
	buf.Grow(c.Size())

	buf.WriteByte(c.header.Magic[0])
	buf.WriteByte(c.header.Magic[1])
	buf.WriteByte(c.header.Version)
	buf.WriteByte(c.header.KindTypes)
	writeUint16(&buf, c.header.TypesSize)
	buf.WriteByte(c.header.KindCode)
	writeUint16(&buf, c.header.NumCodeSections)
	for _, sz := range c.header.CodeSizes {
		writeUint16(&buf, sz)
	}
	buf.WriteByte(c.header.KindData)
	writeUint16(&buf, c.header.DataSize)
	buf.WriteByte(c.header.Terminator)

	for _, t := range c.body.Types {
		buf.WriteByte(t.Inputs)
		buf.WriteByte(t.Outputs)
		writeUint16(&buf, t.MaxStackHeight)
	}
	for _, cs := range c.body.CodeSections {
		buf.Write(cs)
	}
	buf.Write(c.body.Data)

	return buf.Bytes()
}

func writeUint16(buf *bytes.Buffer, v uint16) {
	var tmp [2]byte
	binary.BigEndian.PutUint16(tmp[:], v)
	buf.Write(tmp[:])
}
