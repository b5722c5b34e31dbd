/**
 * Licensed to the Apache Software Foundation (ASF) under one
 * or more contributor license agreements.  See the NOTICE file
 * distributed with this work for additional information
 * regarding copyright ownership.  The ASF licenses this file
 * to you under the Apache License, Version 2.0 (the
 * "License"); you may not use this file except in compliance
 * with the License.  You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package bhfield

import (
	"encoding/binary"
	"fmt"
	"math"

	"mynewt.apache.org/bthome/bthome/bhdefs"
	"mynewt.apache.org/bthome/bthome/bhxutil"
)

// A field definition bound to a measurement.  Immutable once constructed.
type Field struct {
	def  *bhdefs.FieldDef
	data [bhdefs.FIELD_MAX_WIDTH]byte
}

// Converts a measurement to the integer that gets transmitted.  Rounds half
// away from zero; NaN becomes 0 and values outside the int64 range saturate.
func ScaleToRaw(val float64, scale float64) int64 {
	f := math.Round(val * scale)

	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt64:
		return math.MaxInt64
	case f <= math.MinInt64:
		return math.MinInt64
	default:
		return int64(f)
	}
}

// Applies the fixed-width conversion of the external type.  Out of range
// values wrap.
func CastExt(raw int64, extType bhdefs.ExtType) int64 {
	switch extType {
	case bhdefs.EXT_TYPE_UINT8:
		return int64(uint8(raw))
	case bhdefs.EXT_TYPE_SINT8:
		return int64(int8(raw))
	case bhdefs.EXT_TYPE_UINT16:
		return int64(uint16(raw))
	case bhdefs.EXT_TYPE_SINT16:
		return int64(int16(raw))
	case bhdefs.EXT_TYPE_UINT32:
		return int64(uint32(raw))
	case bhdefs.EXT_TYPE_SINT32:
		return int64(int32(raw))
	default:
		return raw
	}
}

// Builds a field from an already scaled integer.  Only the low DataLen bytes
// of the external representation are kept.
func EncodeFieldRaw(def *bhdefs.FieldDef, raw int64) Field {
	f := Field{def: def}

	var le [8]byte
	binary.LittleEndian.PutUint64(le[:], uint64(CastExt(raw, def.ExtType)))

	f.data[0] = def.ObjectId
	copy(f.data[1:1+def.DataLen], le[:def.DataLen])

	return f
}

// Builds a field from a measurement in the definition's unit.  Never fails;
// values that do not fit lose their high-order bits.
func EncodeField(def *bhdefs.FieldDef, val float64) Field {
	return EncodeFieldRaw(def, ScaleToRaw(val, def.Scale))
}

// Rebuilds a field from its wire form: the object ID followed by DataLen
// bytes.
func DecodeField(def *bhdefs.FieldDef, data []byte) (Field, error) {
	if len(data) != def.Width() {
		return Field{}, fmt.Errorf("field %s: expected %d bytes, got %d",
			def.Name, def.Width(), len(data))
	}
	if data[0] != def.ObjectId {
		return Field{}, fmt.Errorf("field %s: expected object ID 0x%02x, "+
			"got 0x%02x", def.Name, def.ObjectId, data[0])
	}

	f := Field{def: def}
	copy(f.data[:], data)

	return f, nil
}

func (f Field) Def() *bhdefs.FieldDef {
	return f.def
}

func (f Field) Width() int {
	return f.def.Width()
}

// The transmitted integer, sign- or zero-extended from DataLen bytes
// according to the external type.
func (f Field) Raw() int64 {
	n := f.def.DataLen

	var le [8]byte
	copy(le[:], f.data[1:1+n])
	u := binary.LittleEndian.Uint64(le[:])

	if f.def.ExtType.Signed() {
		shift := uint(64 - 8*n)
		return int64(u<<shift) >> shift
	}

	return int64(u)
}

// The measurement in the definition's unit.
func (f Field) Value() float64 {
	return float64(f.Raw()) / f.def.Scale
}

// The encoded object ID and data bytes.
func (f Field) Bytes() []byte {
	return f.data[:f.def.Width()]
}

func (f Field) String() string {
	return fmt.Sprintf("%s=%g [%s]",
		f.def.Name, f.Value(), bhxutil.HexString(f.Bytes()))
}
