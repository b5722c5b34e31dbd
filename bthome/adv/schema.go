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

package adv

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"mynewt.apache.org/bthome/bthome/bhdefs"
	"mynewt.apache.org/bthome/bthome/bhxutil"
)

// Every slot is at least two bytes wide, so a schema that passes the width
// check never has more slots than this.
const MAX_SLOTS = bhdefs.PAYLOAD_MAX_LEN / bhdefs.FLAG_WIDTH

// One named, optional position in an advertisement.  Exactly one of Field and
// Flag is set, according to Kind.
type SlotDef struct {
	Name  string
	Kind  bhdefs.DefKind
	Field *bhdefs.FieldDef
	Flag  *bhdefs.FlagDef
}

func FieldSlotDef(name string, def *bhdefs.FieldDef) SlotDef {
	return SlotDef{
		Name:  name,
		Kind:  bhdefs.DEF_KIND_FIELD,
		Field: def,
	}
}

func FlagSlotDef(name string, def *bhdefs.FlagDef) SlotDef {
	return SlotDef{
		Name: name,
		Kind: bhdefs.DEF_KIND_FLAG,
		Flag: def,
	}
}

// Maximum number of bytes the slot contributes to an advertisement.
func (sd *SlotDef) Width() int {
	switch sd.Kind {
	case bhdefs.DEF_KIND_FIELD:
		return sd.Field.Width()
	default:
		return sd.Flag.Width()
	}
}

func (sd *SlotDef) ObjectId() uint8 {
	if sd.Kind == bhdefs.DEF_KIND_FIELD {
		return sd.Field.ObjectId
	} else {
		return sd.Flag.ObjectId
	}
}

func (sd *SlotDef) DefName() string {
	if sd.Kind == bhdefs.DEF_KIND_FIELD {
		return sd.Field.Name
	} else {
		return sd.Flag.Name
	}
}

func checkSlotDef(sd *SlotDef) error {
	if sd.Name == "" {
		return bhxutil.NewSlotError(sd.Name, "slot name must not be empty")
	}

	switch sd.Kind {
	case bhdefs.DEF_KIND_FIELD:
		if sd.Field == nil || sd.Flag != nil {
			return bhxutil.FmtSlotError(sd.Name,
				"slot \"%s\" must reference exactly one field", sd.Name)
		}
		if err := bhdefs.CheckFieldDef(sd.Field); err != nil {
			return bhxutil.FmtSlotError(sd.Name,
				"slot \"%s\": %s", sd.Name, err.Error())
		}

		// An object ID always implies the same encoding.
		fd, gd, err := bhdefs.DefByObjectId(sd.Field.ObjectId)
		if err == nil && (gd != nil || !fd.SameShape(sd.Field)) {
			return bhxutil.FmtSlotError(sd.Name,
				"slot \"%s\": object ID 0x%02x conflicts with catalog",
				sd.Name, sd.Field.ObjectId)
		}

	case bhdefs.DEF_KIND_FLAG:
		if sd.Flag == nil || sd.Field != nil {
			return bhxutil.FmtSlotError(sd.Name,
				"slot \"%s\" must reference exactly one flag", sd.Name)
		}

		_, gd, err := bhdefs.DefByObjectId(sd.Flag.ObjectId)
		if err == nil && gd == nil {
			return bhxutil.FmtSlotError(sd.Name,
				"slot \"%s\": object ID 0x%02x conflicts with catalog",
				sd.Name, sd.Flag.ObjectId)
		}

	default:
		return bhxutil.FmtSlotError(sd.Name,
			"slot \"%s\" has invalid kind %d", sd.Name, int(sd.Kind))
	}

	return nil
}

// Validates a slot list and returns the sum of the declared slot widths.  The
// sum must not exceed the payload space of a legacy advertisement; this only
// depends on the declared definitions, never on runtime values.
func CheckSlots(name string, slots []SlotDef) (int, error) {
	seen := map[string]struct{}{}
	ids := map[uint8]*SlotDef{}
	width := 0

	for i := range slots {
		sd := &slots[i]
		if err := checkSlotDef(sd); err != nil {
			return 0, err
		}

		if _, ok := seen[sd.Name]; ok {
			return 0, bhxutil.FmtSlotError(sd.Name,
				"duplicate slot name \"%s\" in schema \"%s\"", sd.Name, name)
		}
		seen[sd.Name] = struct{}{}

		// Slots sharing an object ID must encode it identically.
		if prev := ids[sd.ObjectId()]; prev != nil {
			if prev.Kind != sd.Kind ||
				(sd.Kind == bhdefs.DEF_KIND_FIELD &&
					!prev.Field.SameShape(sd.Field)) {

				return 0, bhxutil.FmtSlotError(sd.Name,
					"slot \"%s\": object ID 0x%02x conflicts with slot \"%s\"",
					sd.Name, sd.ObjectId(), prev.Name)
			}
		} else {
			ids[sd.ObjectId()] = sd
		}

		width += sd.Width()
	}

	if width > bhdefs.PAYLOAD_MAX_LEN || len(slots) > MAX_SLOTS {
		return 0, bhxutil.NewSchemaOverflowError(name, width,
			bhdefs.PAYLOAD_MAX_LEN)
	}

	return width, nil
}

// An ordered, fixed set of optional slots.  Immutable after construction.
type Schema struct {
	name   string
	slots  []SlotDef
	byName map[string]int
	width  int
}

func (s *Schema) init(name string, slots []SlotDef) error {
	width, err := CheckSlots(name, slots)
	if err != nil {
		log.Debugf("rejecting BTHome schema %s: %s", name, err.Error())
		return err
	}

	s.name = name
	s.slots = make([]SlotDef, len(slots))
	copy(s.slots, slots)
	s.width = width

	s.byName = make(map[string]int, len(slots))
	for i, sd := range s.slots {
		s.byName[sd.Name] = i

		if i > 0 && sd.ObjectId() < s.slots[i-1].ObjectId() {
			log.Debugf("schema %s: slot %s (0x%02x) is not in object ID "+
				"order", name, sd.Name, sd.ObjectId())
		}
	}

	log.Debugf("built BTHome schema %s: %d slots, %d/%d payload bytes",
		name, len(s.slots), s.width, bhdefs.PAYLOAD_MAX_LEN)
	return nil
}

// Creates a schema from a slot list.  Slot handles can be retrieved with
// FieldSlot and FlagSlot.
func NewSchema(name string, slots []SlotDef) (*Schema, error) {
	s := &Schema{}
	if err := s.init(name, slots); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Schema) Name() string {
	return s.name
}

// Sum of the declared slot widths.
func (s *Schema) Width() int {
	return s.width
}

func (s *Schema) NumSlots() int {
	return len(s.slots)
}

func (s *Schema) Slots() []SlotDef {
	slots := make([]SlotDef, len(s.slots))
	copy(slots, s.slots)
	return slots
}

func (s *Schema) Slot(name string) (SlotDef, error) {
	idx, ok := s.byName[name]
	if !ok {
		return SlotDef{}, s.noSlotError(name)
	}

	return s.slots[idx], nil
}

func (s *Schema) noSlotError(name string) error {
	return bhxutil.FmtSlotError(name, "schema \"%s\" has no slot \"%s\"",
		s.name, name)
}

func (s *Schema) FieldSlot(name string) (FieldSlot, error) {
	idx, ok := s.byName[name]
	if !ok {
		return FieldSlot{}, s.noSlotError(name)
	}

	sd := &s.slots[idx]
	if sd.Kind != bhdefs.DEF_KIND_FIELD {
		return FieldSlot{}, bhxutil.FmtSlotError(name,
			"slot \"%s\" is not a field", name)
	}

	return FieldSlot{schema: s, idx: idx, Def: sd.Field}, nil
}

func (s *Schema) FlagSlot(name string) (FlagSlot, error) {
	idx, ok := s.byName[name]
	if !ok {
		return FlagSlot{}, s.noSlotError(name)
	}

	sd := &s.slots[idx]
	if sd.Kind != bhdefs.DEF_KIND_FLAG {
		return FlagSlot{}, bhxutil.FmtSlotError(name,
			"slot \"%s\" is not a flag", name)
	}

	return FlagSlot{schema: s, idx: idx, Def: sd.Flag}, nil
}

// Returns an advertisement with every slot unset.
func (s *Schema) NewAdv() Adv {
	return Adv{schema: s}
}

// Handle to a field slot of a particular schema.
type FieldSlot struct {
	schema *Schema
	idx    int
	Def    *bhdefs.FieldDef
}

// Handle to a flag slot of a particular schema.
type FlagSlot struct {
	schema *Schema
	idx    int
	Def    *bhdefs.FlagDef
}

// Declares a schema one slot at a time:
//
//     sb := adv.NewSchemaBuilder("outdoor")
//     temp := sb.Field("air_temperature", bhdefs.FieldTemperatureCoarse)
//     chg := sb.Flag("charging", bhdefs.FlagBatteryCharging)
//     schema, err := sb.Build()
//
// The returned handles are only usable with the built schema.
type SchemaBuilder struct {
	name   string
	slots  []SlotDef
	schema *Schema
}

func NewSchemaBuilder(name string) *SchemaBuilder {
	return &SchemaBuilder{
		name:   name,
		schema: &Schema{},
	}
}

func (b *SchemaBuilder) checkOpen(name string) {
	if b.schema.slots != nil {
		panic(fmt.Sprintf("adv: cannot add slot \"%s\" to schema \"%s\" "+
			"after Build", name, b.name))
	}
}

// Declares a field slot.  Panics if the schema has already been built.
func (b *SchemaBuilder) Field(name string, def *bhdefs.FieldDef) FieldSlot {
	b.checkOpen(name)
	b.slots = append(b.slots, FieldSlotDef(name, def))
	return FieldSlot{schema: b.schema, idx: len(b.slots) - 1, Def: def}
}

func (b *SchemaBuilder) Flag(name string, def *bhdefs.FlagDef) FlagSlot {
	b.checkOpen(name)
	b.slots = append(b.slots, FlagSlotDef(name, def))
	return FlagSlot{schema: b.schema, idx: len(b.slots) - 1, Def: def}
}

func (b *SchemaBuilder) Build() (*Schema, error) {
	if b.schema.slots != nil {
		return nil, bhxutil.FmtSlotError("",
			"schema \"%s\" already built", b.name)
	}

	if err := b.schema.init(b.name, b.slots); err != nil {
		return nil, err
	}

	return b.schema, nil
}
