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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mynewt.apache.org/bthome/bthome/bhdefs"
)

func TestEncodeFlag(t *testing.T) {
	f := EncodeFlag(bhdefs.FlagBatteryCharging, true)
	assert.Equal(t, []byte{0x16, 0x01}, f.Bytes())
	assert.True(t, f.Value())

	f = EncodeFlag(bhdefs.FlagPluggedIn, false)
	assert.Equal(t, []byte{0x24, 0x00}, f.Bytes())
	assert.False(t, f.Value())
	assert.Equal(t, bhdefs.FLAG_WIDTH, f.Width())
	assert.Equal(t, "plugged_in=false [24 00]", f.String())
}

func TestFlagRoundTrip(t *testing.T) {
	for _, def := range bhdefs.Flags() {
		for _, v := range []bool{true, false} {
			f := EncodeFlag(def, v)
			d, err := DecodeFlag(def, f.Bytes())
			require.NoError(t, err)
			assert.Equal(t, v, d.Value(), def.Name)
			assert.Equal(t, def.ObjectId, d.Bytes()[0])
		}
	}
}

func TestDecodeFlag(t *testing.T) {
	// Any nonzero data byte is true.
	f, err := DecodeFlag(bhdefs.FlagMotion, []byte{0x21, 0x05})
	require.NoError(t, err)
	assert.True(t, f.Value())

	_, err = DecodeFlag(bhdefs.FlagMotion, []byte{0x21})
	assert.Error(t, err)

	_, err = DecodeFlag(bhdefs.FlagMotion, []byte{0x22, 0x01})
	assert.Error(t, err)
}
