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
	"fmt"
)

// Legacy (non-extended) advertising data limit.
const ADV_MAX_LEN = 31

// BLE "Flags" AD structure: LE general discoverable, BR/EDR not supported.
var AdvFlagsRecord = [...]byte{0x02, 0x01, 0x06}

const BLE_AD_TYPE_SVC_DATA_UUID16 = 0x16

const BTHOME_SVC_UUID16 = 0xfcd2

// Device information byte: no encryption, regular updates, BTHome version 2.
const BTHOME_DEV_INFO = 0x40

// Service data header: length, AD type, UUID (LE), device info.  The length
// byte counts everything after itself, so it starts at 4.
const BTHOME_HDR_LEN = 5
const BTHOME_HDR_BASE_LEN = BTHOME_HDR_LEN - 1

// Offset of the service data length byte within an advertisement.
const BTHOME_LEN_OFF = len(AdvFlagsRecord)

const ADV_PREFIX_LEN = len(AdvFlagsRecord) + BTHOME_HDR_LEN

// Bytes available for fields and flags.
const PAYLOAD_MAX_LEN = ADV_MAX_LEN - ADV_PREFIX_LEN

// Widths include the object ID byte.
const FLAG_WIDTH = 2
const FIELD_MAX_WIDTH = 5

func BthomeHdr() [BTHOME_HDR_LEN]byte {
	return [BTHOME_HDR_LEN]byte{
		BTHOME_HDR_BASE_LEN,
		BLE_AD_TYPE_SVC_DATA_UUID16,
		BTHOME_SVC_UUID16 & 0xff,
		BTHOME_SVC_UUID16 >> 8,
		BTHOME_DEV_INFO,
	}
}

// Integer representation a field value is converted to before it is
// truncated.
type ExtType int

const (
	EXT_TYPE_UINT8 ExtType = iota
	EXT_TYPE_SINT8
	EXT_TYPE_UINT16
	EXT_TYPE_SINT16
	EXT_TYPE_UINT32
	EXT_TYPE_SINT32
)

var ExtTypeStringMap = map[ExtType]string{
	EXT_TYPE_UINT8:  "uint8",
	EXT_TYPE_SINT8:  "sint8",
	EXT_TYPE_UINT16: "uint16",
	EXT_TYPE_SINT16: "sint16",
	EXT_TYPE_UINT32: "uint32",
	EXT_TYPE_SINT32: "sint32",
}

func ExtTypeToString(extType ExtType) string {
	s := ExtTypeStringMap[extType]
	if s == "" {
		return "???"
	}

	return s
}

func ExtTypeFromString(s string) (ExtType, error) {
	for extType, name := range ExtTypeStringMap {
		if s == name {
			return extType, nil
		}
	}

	return ExtType(0), fmt.Errorf("Invalid ExtType string: %s", s)
}

func (t ExtType) Size() int {
	switch t {
	case EXT_TYPE_UINT8, EXT_TYPE_SINT8:
		return 1
	case EXT_TYPE_UINT16, EXT_TYPE_SINT16:
		return 2
	case EXT_TYPE_UINT32, EXT_TYPE_SINT32:
		return 4
	default:
		return 0
	}
}

func (t ExtType) Signed() bool {
	return t == EXT_TYPE_SINT8 || t == EXT_TYPE_SINT16 || t == EXT_TYPE_SINT32
}

func (t ExtType) String() string {
	return ExtTypeToString(t)
}

func (t ExtType) MarshalJSON() ([]byte, error) {
	return json.Marshal(ExtTypeToString(t))
}

func (t *ExtType) UnmarshalJSON(data []byte) error {
	var err error

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	*t, err = ExtTypeFromString(s)
	return err
}

type DefKind int

const (
	DEF_KIND_FIELD DefKind = iota
	DEF_KIND_FLAG
)

var DefKindStringMap = map[DefKind]string{
	DEF_KIND_FIELD: "field",
	DEF_KIND_FLAG:  "flag",
}

func DefKindToString(kind DefKind) string {
	s := DefKindStringMap[kind]
	if s == "" {
		return "???"
	}

	return s
}

func DefKindFromString(s string) (DefKind, error) {
	for kind, name := range DefKindStringMap {
		if s == name {
			return kind, nil
		}
	}

	return DefKind(0), fmt.Errorf("Invalid DefKind string: %s", s)
}

func (k DefKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(DefKindToString(k))
}

func (k *DefKind) UnmarshalJSON(data []byte) error {
	var err error

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	*k, err = DefKindFromString(s)
	return err
}

// Describes how one BTHome measurement object is encoded.  A value is
// multiplied by Scale, rounded, converted to ExtType, and the low DataLen
// bytes are sent little-endian after the object ID.
type FieldDef struct {
	Name     string
	ObjectId uint8
	ExtType  ExtType
	Scale    float64
	DataLen  int
}

// Total encoded width, including the object ID.
func (d *FieldDef) Width() int {
	return 1 + d.DataLen
}

func (d *FieldDef) String() string {
	return fmt.Sprintf("%s(0x%02x,%s,x%g,%d)",
		d.Name, d.ObjectId, ExtTypeToString(d.ExtType), d.Scale, d.DataLen)
}

// Reports whether two definitions encode identically.  Names are ignored.
func (d *FieldDef) SameShape(o *FieldDef) bool {
	return d.ObjectId == o.ObjectId &&
		d.ExtType == o.ExtType &&
		d.Scale == o.Scale &&
		d.DataLen == o.DataLen
}

// A boolean BTHome object; always one data byte.
type FlagDef struct {
	Name     string
	ObjectId uint8
}

func (d *FlagDef) Width() int {
	return FLAG_WIDTH
}

func (d *FlagDef) String() string {
	return fmt.Sprintf("%s(0x%02x)", d.Name, d.ObjectId)
}
