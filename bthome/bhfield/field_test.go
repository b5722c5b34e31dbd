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
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mynewt.apache.org/bthome/bthome/bhdefs"
)

func TestEncodeFieldBytes(t *testing.T) {
	tests := []struct {
		name string
		def  *bhdefs.FieldDef
		val  float64
		want []byte
	}{
		{"packet id", bhdefs.FieldPacketId, 0x23, []byte{0x00, 0x23}},
		{"battery", bhdefs.FieldBattery, 55, []byte{0x01, 55}},
		{"positive temperature", bhdefs.FieldTemperatureCoarse, 27.3,
			[]byte{0x45, 0x11, 0x01}},
		{"negative temperature", bhdefs.FieldTemperatureCoarse, -25.2,
			[]byte{0x45, 0x04, 0xff}},
		{"three byte illuminance", bhdefs.FieldIlluminance, 13460.67,
			[]byte{0x05, 0x13, 0x8a, 0x14}},
		{"four byte count", bhdefs.FieldCount32, 0x01020304,
			[]byte{0x3e, 0x04, 0x03, 0x02, 0x01}},
		{"fine temperature", bhdefs.FieldTemperature, 22.51,
			[]byte{0x02, 0xcb, 0x08}},
		{"humidity", bhdefs.FieldHumidityCoarse, 50, []byte{0x2e, 0x32}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := EncodeField(tt.def, tt.val)
			assert.Equal(t, tt.want, f.Bytes())
			assert.Equal(t, tt.def.Width(), len(f.Bytes()))
			assert.Equal(t, tt.def, f.Def())
		})
	}
}

func TestDecodeSignedField(t *testing.T) {
	f := EncodeField(bhdefs.FieldTemperatureCoarse, -25.2)
	assert.Equal(t, int64(-252), f.Raw())
	assert.InDelta(t, -25.2, f.Value(), 1e-9)

	f = EncodeField(bhdefs.FieldTemperatureCoarse, 27.3)
	assert.Equal(t, int64(273), f.Raw())
	assert.InDelta(t, 27.3, f.Value(), 1e-9)

	f = EncodeField(bhdefs.FieldIlluminance, 13460.67)
	assert.Equal(t, int64(1346067), f.Raw())
	assert.InDelta(t, 13460.67, f.Value(), 1e-9)
}

func rawRange(def *bhdefs.FieldDef) (int64, int64) {
	bits := uint(8 * def.DataLen)
	if def.ExtType.Signed() {
		return -(int64(1) << (bits - 1)), int64(1)<<(bits-1) - 1
	}
	return 0, int64(1)<<bits - 1
}

func TestFieldRoundTrip(t *testing.T) {
	for _, def := range bhdefs.Fields() {
		def := def
		t.Run(def.Name, func(t *testing.T) {
			lo, hi := rawRange(def)
			for _, raw := range []int64{lo, lo + 1, 0, 1, hi / 3, hi - 1, hi} {
				val := float64(raw) / def.Scale

				f := EncodeField(def, val)
				require.Equal(t, raw, f.Raw(), "value %g", val)
				assert.InDelta(t, val, f.Value(), 1e-6)

				d, err := DecodeField(def, f.Bytes())
				require.NoError(t, err)
				assert.Equal(t, f.Bytes(), d.Bytes())
				assert.Equal(t, raw, d.Raw())
			}
		})
	}
}

func TestEncodeFieldRounds(t *testing.T) {
	// 0.35 degree steps.
	f := EncodeField(bhdefs.FieldTemperature8Fine, 21.0)
	assert.Equal(t, int64(60), f.Raw())
	assert.InDelta(t, 21.0, f.Value(), 1e-9)

	f = EncodeField(bhdefs.FieldTemperature8Fine, 21.1)
	assert.Equal(t, int64(60), f.Raw())

	f = EncodeField(bhdefs.FieldTemperature8Fine, 21.2)
	assert.Equal(t, int64(61), f.Raw())

	// Halves round away from zero.
	f = EncodeField(bhdefs.FieldTemperatureCoarse, 0.25)
	assert.Equal(t, int64(3), f.Raw())
	f = EncodeField(bhdefs.FieldTemperatureCoarse, -0.25)
	assert.Equal(t, int64(-3), f.Raw())
}

func TestEncodeFieldWraps(t *testing.T) {
	tests := []struct {
		name    string
		def     *bhdefs.FieldDef
		val     float64
		want    []byte
		wantRaw int64
	}{
		{"unsigned overflow", bhdefs.FieldBattery, 300,
			[]byte{0x01, 0x2c}, 44},
		{"negative unsigned", bhdefs.FieldBattery, -1,
			[]byte{0x01, 0xff}, 255},
		{"signed overflow", bhdefs.FieldTemperature, 400,
			[]byte{0x02, 0x40, 0x9c}, -25536},
		{"truncated unsigned", bhdefs.FieldIlluminance, 167772.16,
			[]byte{0x05, 0x00, 0x00, 0x00}, 0},
		{"nan", bhdefs.FieldBattery, math.NaN(), []byte{0x01, 0x00}, 0},
		{"positive infinity", bhdefs.FieldBattery, math.Inf(1),
			[]byte{0x01, 0xff}, 255},
		{"negative infinity", bhdefs.FieldCountS8, math.Inf(-1),
			[]byte{0x59, 0x00}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := EncodeField(tt.def, tt.val)
			assert.Equal(t, tt.want, f.Bytes())
			assert.Equal(t, tt.wantRaw, f.Raw())
		})
	}
}

func TestTruncatedSignedField(t *testing.T) {
	def := &bhdefs.FieldDef{
		Name:     "test_s24",
		ObjectId: 0xf0,
		ExtType:  bhdefs.EXT_TYPE_SINT32,
		Scale:    10,
		DataLen:  3,
	}

	f := EncodeField(def, -0.5)
	assert.Equal(t, []byte{0xf0, 0xfb, 0xff, 0xff}, f.Bytes())
	assert.Equal(t, int64(-5), f.Raw())
	assert.InDelta(t, -0.5, f.Value(), 1e-9)

	// The top bit of the third byte is the sign after truncation.
	f = EncodeFieldRaw(def, 0x800000)
	assert.Equal(t, []byte{0xf0, 0x00, 0x00, 0x80}, f.Bytes())
	assert.Equal(t, int64(-0x800000), f.Raw())

	d, err := DecodeField(def, []byte{0xf0, 0x04, 0xff, 0xff})
	require.NoError(t, err)
	assert.Equal(t, int64(-252), d.Raw())
	assert.InDelta(t, -25.2, d.Value(), 1e-9)
}

func TestDecodeFieldErrors(t *testing.T) {
	_, err := DecodeField(bhdefs.FieldTemperatureCoarse, []byte{0x45, 0x11})
	assert.Error(t, err)

	_, err = DecodeField(bhdefs.FieldTemperatureCoarse,
		[]byte{0x02, 0x11, 0x01})
	assert.Error(t, err)

	f, err := DecodeField(bhdefs.FieldTemperatureCoarse,
		[]byte{0x45, 0x04, 0xff})
	require.NoError(t, err)
	assert.InDelta(t, -25.2, f.Value(), 1e-9)
}

func TestFieldIsImmutable(t *testing.T) {
	f := EncodeField(bhdefs.FieldBattery, 10)
	b := f.Bytes()
	b[1] = 99

	assert.Equal(t, []byte{0x01, 10}, f.Bytes())
	assert.Equal(t, "battery=10 [01 0A]", f.String())
}

func TestCastExt(t *testing.T) {
	assert.Equal(t, int64(0xff), CastExt(-1, bhdefs.EXT_TYPE_UINT8))
	assert.Equal(t, int64(-1), CastExt(0xff, bhdefs.EXT_TYPE_SINT8))
	assert.Equal(t, int64(0xffff), CastExt(-1, bhdefs.EXT_TYPE_UINT16))
	assert.Equal(t, int64(-32768), CastExt(32768, bhdefs.EXT_TYPE_SINT16))
	assert.Equal(t, int64(0xffffffff), CastExt(-1, bhdefs.EXT_TYPE_UINT32))
	assert.Equal(t, int64(math.MinInt32),
		CastExt(1<<31, bhdefs.EXT_TYPE_SINT32))
}

func TestScaleToRaw(t *testing.T) {
	assert.Equal(t, int64(1346067), ScaleToRaw(13460.67, 100))
	assert.Equal(t, int64(-252), ScaleToRaw(-25.2, 10))
	assert.Equal(t, int64(0), ScaleToRaw(math.NaN(), 1))
	assert.Equal(t, int64(math.MaxInt64), ScaleToRaw(1e300, 1))
	assert.Equal(t, int64(math.MinInt64), ScaleToRaw(-1e300, 1))
}
