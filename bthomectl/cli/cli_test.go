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

package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mynewt.apache.org/bthome/bthome/adv"
	"mynewt.apache.org/bthome/bthome/bhdefs"
	"mynewt.apache.org/bthome/bthome/bhxutil"
	"mynewt.apache.org/bthome/bthomectl/bcutil"
)

func airSchema(t *testing.T) *adv.Schema {
	s, err := adv.NewSchema("air", []adv.SlotDef{
		adv.FieldSlotDef("t", bhdefs.FieldTemperatureCoarse),
		adv.FieldSlotDef("h", bhdefs.FieldHumidityCoarse),
		adv.FlagSlotDef("c", bhdefs.FlagBatteryCharging),
	})
	require.NoError(t, err)

	return s
}

func TestExtractSlotKv(t *testing.T) {
	sas, err := extractSlotKv([]string{"t=27.3", "c=\"true\"", "h="})
	require.NoError(t, err)
	assert.Equal(t, []slotArg{
		{"t", "27.3"},
		{"c", "true"},
		{"h", ""},
	}, sas)

	_, err = extractSlotKv([]string{"t"})
	assert.Error(t, err)
	_, err = extractSlotKv([]string{"=5"})
	assert.Error(t, err)
}

func TestApplySlotArgs(t *testing.T) {
	s := airSchema(t)

	sas, err := extractSlotKv([]string{"h=50", "t=20", "c=1", "t=27.3"})
	require.NoError(t, err)

	a, err := applySlotArgs(s.NewAdv(), sas)
	require.NoError(t, err)

	b, err := a.Encode()
	require.NoError(t, err)
	assert.Equal(t, "02 01 06 0B 16 D2 FC 40 45 11 01 2E 32 16 01",
		bhxutil.HexString(b))

	_, err = applySlotArgs(s.NewAdv(), []slotArg{{"wind", "3"}})
	assert.Error(t, err)
	_, err = applySlotArgs(s.NewAdv(), []slotArg{{"h", "wet"}})
	assert.Error(t, err)
}

func TestOutputFormat(t *testing.T) {
	defer func() { bcutil.Format = "" }()

	bcutil.Format = ""
	f, err := outputFormat(FORMAT_HEX, FORMAT_HEX, FORMAT_JSON)
	require.NoError(t, err)
	assert.Equal(t, FORMAT_HEX, f)

	bcutil.Format = "JSON"
	f, err = outputFormat(FORMAT_HEX, FORMAT_HEX, FORMAT_JSON)
	require.NoError(t, err)
	assert.Equal(t, FORMAT_JSON, f)

	bcutil.Format = "text"
	_, err = outputFormat(FORMAT_HEX, FORMAT_HEX, FORMAT_JSON)
	assert.Error(t, err)
}

func TestAdvReport(t *testing.T) {
	s := airSchema(t)
	a := s.NewAdv()

	a, err := a.Set("h", 50)
	require.NoError(t, err)
	a, err = a.Set("c", true)
	require.NoError(t, err)

	b, err := a.Encode()
	require.NoError(t, err)

	m := advReport(a, b)
	assert.Equal(t, "air", m["schema"])
	assert.Equal(t, 12, m["len"])
	assert.Equal(t, bhxutil.HexString(b), m["adv"])

	slots := m["slots"].([]interface{})
	require.Len(t, slots, 2)

	h := slots[0].(map[string]interface{})
	assert.Equal(t, "h", h["name"])
	assert.Equal(t, "field", h["kind"])
	assert.Equal(t, "humidity_coarse", h["def"])
	assert.Equal(t, float64(50), h["value"])
	assert.Equal(t, "2E 32", h["bytes"])

	c := slots[1].(map[string]interface{})
	assert.Equal(t, "flag", c["kind"])
	assert.Equal(t, true, c["value"])

	// The report survives a CBOR round trip.
	cb, err := bhxutil.EncodeCbor(m)
	require.NoError(t, err)
	dm, err := bhxutil.DecodeCbor(cb)
	require.NoError(t, err)
	assert.Equal(t, "air", dm["schema"])
	assert.EqualValues(t, 12, dm["len"])
}

func TestFieldCommands(t *testing.T) {
	f, err := fieldEncode("temperature_coarse", "27.3")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x45, 0x11, 0x01}, f.Bytes())

	f, err = fieldDecode("temperature_coarse", "45 04 FF")
	require.NoError(t, err)
	assert.InDelta(t, -25.2, f.Value(), 1e-9)

	_, err = fieldEncode("temperature_coarse", "warm")
	assert.Error(t, err)
	_, err = fieldEncode("flux", "1")
	assert.Error(t, err)
	_, err = fieldDecode("temperature_coarse", "45 04")
	assert.Error(t, err)
	_, err = fieldDecode("temperature_coarse", "4G")
	assert.Error(t, err)

	g, err := flagEncode("door", "true")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x1a, 0x01}, g.Bytes())

	g, err = flagDecode("door", "1a00")
	require.NoError(t, err)
	assert.False(t, g.Value())

	_, err = flagEncode("door", "ajar")
	assert.Error(t, err)
	_, err = flagDecode("door", "1b00")
	assert.Error(t, err)
}

func TestCatalogRows(t *testing.T) {
	rows := fieldRows()
	require.Len(t, rows, len(bhdefs.Fields()))
	assert.Equal(t, "packet_id", rows[0]["name"])
	assert.Equal(t, 0, rows[0]["object_id"])
	assert.Equal(t, "uint8", rows[0]["ext_type"])
	assert.Equal(t, 2, rows[0]["width"])

	frows := flagRows()
	require.Len(t, frows, len(bhdefs.Flags()))
	assert.Equal(t, 0x0f, frows[0]["object_id"])
	assert.Equal(t, bhdefs.FLAG_WIDTH, frows[0]["width"])
}

func TestAdvSession(t *testing.T) {
	as := newAdvSession(airSchema(t))

	require.NoError(t, as.set([]string{"t=27.3", "c=true"}))
	assert.True(t, as.cur.IsSet("t"))
	assert.Equal(t, 5, as.cur.Len())

	require.NoError(t, as.unset([]string{"c"}))
	assert.False(t, as.cur.IsSet("c"))
	assert.Equal(t, 3, as.cur.Len())

	// A failed command leaves the advertisement unchanged.
	assert.Error(t, as.set([]string{"h=10", "wind=3"}))
	assert.False(t, as.cur.IsSet("h"))
	assert.Error(t, as.unset([]string{"t", "wind"}))
	assert.True(t, as.cur.IsSet("t"))

	as.reset()
	assert.Equal(t, 0, as.cur.Len())
}

func TestCommandTree(t *testing.T) {
	root := Commands()

	for _, path := range [][]string{
		{"version"},
		{"fields"},
		{"flags"},
		{"field", "encode"},
		{"field", "decode"},
		{"flag", "encode"},
		{"flag", "decode"},
		{"schema", "add"},
		{"schema", "show"},
		{"schema", "delete"},
		{"schema", "import"},
		{"schema", "export"},
		{"encode"},
		{"interactive"},
	} {
		cmd, _, err := root.Find(path)
		require.NoError(t, err, "%v", path)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}
}
