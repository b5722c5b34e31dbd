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

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mynewt.apache.org/bthome/bthome/bhdefs"
)

const airYaml = `
schemas:
  - name: air
    slots:
      - name: air_temperature
        def: temperature_coarse
      - name: air_humidity
        def: humidity_coarse
      - name: charging
        kind: flag
        def: battery_charging
  - name: soil
    slots:
      - name: wet
        kind: flag
        def: moisture
      - name: level
        kind: field
        def: moisture
`

func TestParseSchemaYaml(t *testing.T) {
	sps, err := ParseSchemaYaml([]byte(airYaml))
	require.NoError(t, err)
	require.Len(t, sps, 2)

	assert.Equal(t, airProfile(t), sps[0])

	soil := sps[1]
	assert.Equal(t, "soil", soil.Name)
	assert.Equal(t, []SlotProfile{
		{"wet", bhdefs.DEF_KIND_FLAG, "moisture"},
		{"level", bhdefs.DEF_KIND_FIELD, "moisture"},
	}, soil.Slots)

	s, err := soil.Build()
	require.NoError(t, err)
	assert.Equal(t, 2+3, s.Width())
}

func TestSchemaYamlRoundTrip(t *testing.T) {
	sps, err := ParseSchemaYaml([]byte(airYaml))
	require.NoError(t, err)

	b, err := SchemaYaml(sps)
	require.NoError(t, err)

	again, err := ParseSchemaYaml(b)
	require.NoError(t, err)
	assert.Equal(t, sps, again)
}

func TestParseSchemaYamlErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"unknown key", "schemas:\n  - name: a\n    color: red\n"},
		{"no schema name", "schemas:\n  - slots: []\n"},
		{"no slot name", "schemas:\n  - name: a\n    slots:\n" +
			"      - def: door\n"},
		{"ambiguous def", "schemas:\n  - name: a\n    slots:\n" +
			"      - name: m\n        def: moisture\n"},
		{"unknown def", "schemas:\n  - name: a\n    slots:\n" +
			"      - name: m\n        def: flux\n"},
		{"not yaml", "schemas: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSchemaYaml([]byte(tt.text))
			assert.Error(t, err)
		})
	}
}
