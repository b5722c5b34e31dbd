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

	"github.com/pkg/errors"
	"github.com/spf13/cast"

	"mynewt.apache.org/bthome/bthome/bhdefs"
	"mynewt.apache.org/bthome/bthome/bhfield"
	"mynewt.apache.org/bthome/bthome/bhxutil"
)

type slotVal struct {
	set   bool
	field bhfield.Field
	flag  bhfield.Flag
}

// An advertisement under construction.  Adv is a small value type: every
// setter returns an updated copy and leaves the receiver unchanged, so calls
// can be chained in any order.
type Adv struct {
	schema *Schema
	vals   [MAX_SLOTS]slotVal
}

// A populated slot and its decoded value (float64 for fields, bool for
// flags).
type SlotValue struct {
	Name  string
	Kind  bhdefs.DefKind
	Def   string
	Value interface{}
	Bytes []byte
}

func (a *Adv) checkSchema(s *Schema) {
	if a.schema == nil || a.schema != s {
		panic("adv: slot does not belong to this advertisement's schema")
	}
}

func (a Adv) Schema() *Schema {
	return a.schema
}

func (a Adv) WithField(slot FieldSlot, val float64) Adv {
	a.checkSchema(slot.schema)

	a.vals[slot.idx] = slotVal{
		set:   true,
		field: bhfield.EncodeField(slot.Def, val),
	}
	return a
}

// Sets a field slot from an already encoded field.  The field must use the
// slot's definition.
func (a Adv) WithFieldInst(slot FieldSlot, f bhfield.Field) Adv {
	a.checkSchema(slot.schema)
	if f.Def() == nil || !f.Def().SameShape(slot.Def) {
		panic(fmt.Sprintf("adv: field %v does not match slot definition %s",
			f.Def(), slot.Def.String()))
	}

	a.vals[slot.idx] = slotVal{
		set:   true,
		field: f,
	}
	return a
}

func (a Adv) WithFlag(slot FlagSlot, val bool) Adv {
	a.checkSchema(slot.schema)

	a.vals[slot.idx] = slotVal{
		set:  true,
		flag: bhfield.EncodeFlag(slot.Def, val),
	}
	return a
}

// Sets a slot by name.  val is converted to a float for field slots and to a
// bool for flag slots; strings such as "21.5" and "true" are accepted.
func (a Adv) Set(name string, val interface{}) (Adv, error) {
	if a.schema == nil {
		return a, bhxutil.NewSlotError(name, "advertisement has no schema")
	}

	idx, ok := a.schema.byName[name]
	if !ok {
		return a, a.schema.noSlotError(name)
	}

	sd := &a.schema.slots[idx]
	switch sd.Kind {
	case bhdefs.DEF_KIND_FIELD:
		f, err := cast.ToFloat64E(val)
		if err != nil {
			return a, errors.Wrapf(bhxutil.NewSlotError(name, err.Error()),
				"slot \"%s\" needs a number", name)
		}
		a.vals[idx] = slotVal{
			set:   true,
			field: bhfield.EncodeField(sd.Field, f),
		}

	default:
		b, err := cast.ToBoolE(val)
		if err != nil {
			return a, errors.Wrapf(bhxutil.NewSlotError(name, err.Error()),
				"slot \"%s\" needs a boolean", name)
		}
		a.vals[idx] = slotVal{
			set:  true,
			flag: bhfield.EncodeFlag(sd.Flag, b),
		}
	}

	return a, nil
}

// Returns a copy with the named slot unset.
func (a Adv) Without(name string) (Adv, error) {
	if a.schema == nil {
		return a, bhxutil.NewSlotError(name, "advertisement has no schema")
	}

	idx, ok := a.schema.byName[name]
	if !ok {
		return a, a.schema.noSlotError(name)
	}

	a.vals[idx] = slotVal{}
	return a, nil
}

func (a Adv) IsSet(name string) bool {
	if a.schema == nil {
		return false
	}

	idx, ok := a.schema.byName[name]
	return ok && a.vals[idx].set
}

func (a *Adv) slotBytes(idx int) []byte {
	if a.schema.slots[idx].Kind == bhdefs.DEF_KIND_FIELD {
		return a.vals[idx].field.Bytes()
	} else {
		return a.vals[idx].flag.Bytes()
	}
}

// Number of payload bytes contributed by populated slots.
func (a Adv) Len() int {
	if a.schema == nil {
		return 0
	}

	n := 0
	for i := range a.schema.slots {
		if a.vals[i].set {
			n += a.schema.slots[i].Width()
		}
	}

	return n
}

// Lists populated slots in declared order.
func (a Adv) Values() []SlotValue {
	if a.schema == nil {
		return nil
	}

	var svs []SlotValue
	for i, sd := range a.schema.slots {
		v := &a.vals[i]
		if !v.set {
			continue
		}

		sv := SlotValue{
			Name: sd.Name,
			Kind: sd.Kind,
			Def:  sd.DefName(),
		}
		if sd.Kind == bhdefs.DEF_KIND_FIELD {
			sv.Value = v.field.Value()
		} else {
			sv.Value = v.flag.Value()
		}
		sv.Bytes = append([]byte(nil), a.slotBytes(i)...)

		svs = append(svs, sv)
	}

	return svs
}

// Writes the complete advertisement into buf, replacing its contents: the BLE
// flags structure, the BTHome service data header, and every populated slot
// in declared order.  The header's length byte grows with each slot.  On
// overflow, bytes written so far are left in buf.
func (a Adv) EncodeTo(buf *AdvBuf) error {
	if a.schema == nil {
		return bhxutil.NewSlotError("", "advertisement has no schema")
	}

	buf.Reset()

	if err := buf.Append(bhdefs.AdvFlagsRecord[:]); err != nil {
		return err
	}

	hdr := bhdefs.BthomeHdr()
	if err := buf.Append(hdr[:]); err != nil {
		return err
	}

	for i, sd := range a.schema.slots {
		if !a.vals[i].set {
			continue
		}

		b := a.slotBytes(i)
		if err := buf.Append(b); err != nil {
			return errors.Wrapf(err, "schema \"%s\" slot \"%s\"",
				a.schema.name, sd.Name)
		}
		buf.addSvcDataLen(len(b))
	}

	return nil
}

// Returns the advertisement as a newly allocated byte slice.
func (a Adv) Encode() ([]byte, error) {
	var buf AdvBuf
	if err := a.EncodeTo(&buf); err != nil {
		return nil, err
	}

	return append([]byte(nil), buf.Bytes()...), nil
}

func (a Adv) String() string {
	if a.schema == nil {
		return "<no schema>"
	}

	s := a.schema.name + ":"
	for _, sv := range a.Values() {
		s += fmt.Sprintf(" %s=%v", sv.Name, sv.Value)
	}

	return s
}
