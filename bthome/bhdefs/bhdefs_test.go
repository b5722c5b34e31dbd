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

package bhdefs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mynewt.apache.org/bthome/bthome/bhxutil"
)

func TestAdvLimits(t *testing.T) {
	assert.Equal(t, 8, ADV_PREFIX_LEN)
	assert.Equal(t, 23, PAYLOAD_MAX_LEN)
	assert.Equal(t, 3, BTHOME_LEN_OFF)

	hdr := BthomeHdr()
	assert.Equal(t, [BTHOME_HDR_LEN]byte{0x04, 0x16, 0xd2, 0xfc, 0x40}, hdr)
	assert.Equal(t, [3]byte{0x02, 0x01, 0x06}, AdvFlagsRecord)
}

func TestCheckCatalog(t *testing.T) {
	require.NoError(t, CheckCatalog())

	assert.Len(t, Fields(), len(fieldDefs))
	assert.Len(t, Flags(), 28)

	prev := -1
	for _, d := range Fields() {
		assert.True(t, int(d.ObjectId) > prev, d.Name)
		prev = int(d.ObjectId)
		assert.True(t, d.Width() >= 2 && d.Width() <= FIELD_MAX_WIDTH)
	}
}

func TestCatalogWidths(t *testing.T) {
	assert.Equal(t, 2, FieldBattery.Width())
	assert.Equal(t, 3, FieldDistanceM.Width())
	assert.Equal(t, 4, FieldIlluminance.Width())
	assert.Equal(t, 5, FieldCount32.Width())
	assert.Equal(t, 2, FlagBatteryCharging.Width())
	assert.Equal(t, 2, FlagPresence.Width())
}

func TestLookup(t *testing.T) {
	d, err := FieldByName("temperature_coarse")
	require.NoError(t, err)
	assert.Equal(t, FieldTemperatureCoarse, d)
	assert.Equal(t, uint8(0x45), d.ObjectId)
	assert.Equal(t, float64(10), d.Scale)
	assert.True(t, d.ExtType.Signed())

	_, err = FieldByName("nope")
	assert.Error(t, err)

	g, err := FlagByName("battery_charging")
	require.NoError(t, err)
	assert.Equal(t, uint8(0x16), g.ObjectId)

	d, err = FieldByObjectId(0x05)
	require.NoError(t, err)
	assert.Equal(t, FieldIlluminance, d)

	g, err = FlagByObjectId(0x2d)
	require.NoError(t, err)
	assert.Equal(t, FlagWindow, g)

	fd, gd, err := DefByObjectId(0x2e)
	require.NoError(t, err)
	assert.Equal(t, FieldHumidityCoarse, fd)
	assert.Nil(t, gd)

	fd, gd, err = DefByObjectId(0x11)
	require.NoError(t, err)
	assert.Nil(t, fd)
	assert.Equal(t, FlagOpening, gd)

	_, _, err = DefByObjectId(0xfe)
	assert.True(t, bhxutil.IsUnknownObjectId(err))

	_, err = FieldByObjectId(0x0f)
	assert.True(t, bhxutil.IsUnknownObjectId(err))
}

func TestCheckFieldDef(t *testing.T) {
	good := FieldDef{"x", 0xf0, EXT_TYPE_SINT32, 10, 3}
	assert.NoError(t, CheckFieldDef(&good))

	bad := good
	bad.DataLen = 5
	assert.Error(t, CheckFieldDef(&bad))

	bad = good
	bad.DataLen = 0
	assert.Error(t, CheckFieldDef(&bad))

	bad = good
	bad.Scale = 0
	assert.Error(t, CheckFieldDef(&bad))

	bad = good
	bad.ExtType = ExtType(42)
	assert.Error(t, CheckFieldDef(&bad))
}

func TestExtTypeStrings(t *testing.T) {
	for et, name := range ExtTypeStringMap {
		parsed, err := ExtTypeFromString(name)
		require.NoError(t, err)
		assert.Equal(t, et, parsed)
		assert.Equal(t, name, et.String())
	}

	_, err := ExtTypeFromString("float")
	assert.Error(t, err)
	assert.Equal(t, "???", ExtTypeToString(ExtType(99)))

	assert.Equal(t, 1, EXT_TYPE_SINT8.Size())
	assert.Equal(t, 2, EXT_TYPE_UINT16.Size())
	assert.Equal(t, 4, EXT_TYPE_SINT32.Size())
	assert.False(t, EXT_TYPE_UINT32.Signed())
}

func TestJson(t *testing.T) {
	b, err := json.Marshal(struct {
		T ExtType
		K DefKind
	}{EXT_TYPE_SINT16, DEF_KIND_FLAG})
	require.NoError(t, err)
	assert.Equal(t, `{"T":"sint16","K":"flag"}`, string(b))

	var v struct {
		T ExtType
		K DefKind
	}
	require.NoError(t, json.Unmarshal([]byte(`{"T":"uint8","K":"field"}`), &v))
	assert.Equal(t, EXT_TYPE_UINT8, v.T)
	assert.Equal(t, DEF_KIND_FIELD, v.K)

	assert.Error(t, json.Unmarshal([]byte(`{"K":"widget"}`), &v))
}
