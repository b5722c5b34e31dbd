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
	"bytes"
	"io/ioutil"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"mynewt.apache.org/bthome/bthome/bhdefs"
	"mynewt.apache.org/newt/util"
)

// YAML schema file layout:
//
//	schemas:
//	  - name: air
//	    slots:
//	      - name: air_temperature
//	        def: temperature_coarse
//	      - name: charging
//	        kind: flag
//	        def: battery_charging
type yamlSlot struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind,omitempty"`
	Def  string `yaml:"def"`
}

type yamlSchema struct {
	Name  string     `yaml:"name"`
	Slots []yamlSlot `yaml:"slots"`
}

type yamlSchemaFile struct {
	Schemas []yamlSchema `yaml:"schemas"`
}

func (ys *yamlSlot) slotProfile() (SlotProfile, error) {
	if ys.Name == "" {
		return SlotProfile{}, util.NewNewtError("slot without a name")
	}

	def := ys.Def
	if ys.Kind != "" {
		def = ys.Kind + ":" + ys.Def
	}

	kind, name, err := resolveDefName(def)
	if err != nil {
		return SlotProfile{}, util.FmtNewtError("slot \"%s\": %s",
			ys.Name, err.Error())
	}

	return SlotProfile{
		Name: ys.Name,
		Kind: kind,
		Def:  name,
	}, nil
}

// Parses schema profiles from YAML text.  Unknown keys are rejected.
func ParseSchemaYaml(data []byte) ([]*SchemaProfile, error) {
	var yf yamlSchemaFile

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&yf); err != nil {
		return nil, util.FmtNewtError("invalid schema YAML: %s", err.Error())
	}

	sps := make([]*SchemaProfile, 0, len(yf.Schemas))
	for _, ys := range yf.Schemas {
		if ys.Name == "" {
			return nil, util.NewNewtError("schema without a name")
		}

		sp := NewSchemaProfile()
		sp.Name = ys.Name
		for i := range ys.Slots {
			slot, err := ys.Slots[i].slotProfile()
			if err != nil {
				return nil, util.FmtNewtError("schema \"%s\": %s",
					ys.Name, err.Error())
			}
			sp.Slots = append(sp.Slots, slot)
		}

		log.Debugf("Parsed schema profile: %s", sp.String())
		sps = append(sps, sp)
	}

	return sps, nil
}

func ReadSchemaYaml(filename string) ([]*SchemaProfile, error) {
	data, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, util.ChildNewtError(err)
	}

	return ParseSchemaYaml(data)
}

// Renders profiles in the same layout ParseSchemaYaml accepts.
func SchemaYaml(sps []*SchemaProfile) ([]byte, error) {
	yf := yamlSchemaFile{}
	for _, sp := range sps {
		ys := yamlSchema{Name: sp.Name}
		for _, slot := range sp.Slots {
			ys.Slots = append(ys.Slots, yamlSlot{
				Name: slot.Name,
				Kind: bhdefs.DefKindToString(slot.Kind),
				Def:  slot.Def,
			})
		}
		yf.Schemas = append(yf.Schemas, ys)
	}

	b, err := yaml.Marshal(&yf)
	if err != nil {
		return nil, util.ChildNewtError(err)
	}

	return b, nil
}
