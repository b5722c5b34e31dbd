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
	"fmt"
	"math"
	"sort"

	log "github.com/sirupsen/logrus"

	"mynewt.apache.org/bthome/bthome/bhxutil"
)

// These aliases just allow the catalog tables to fit within 79 columns.
const u8 = EXT_TYPE_UINT8
const s8 = EXT_TYPE_SINT8
const u16 = EXT_TYPE_UINT16
const s16 = EXT_TYPE_SINT16
const u32 = EXT_TYPE_UINT32
const s32 = EXT_TYPE_SINT32

// Units are those published for each object ID; Scale converts the unit into
// the transmitted integer.
var (
	FieldPacketId          = &FieldDef{"packet_id", 0x00, u8, 1, 1}
	FieldBattery           = &FieldDef{"battery", 0x01, u8, 1, 1}
	FieldTemperature       = &FieldDef{"temperature", 0x02, s16, 100, 2}
	FieldHumidity          = &FieldDef{"humidity", 0x03, u16, 100, 2}
	FieldPressure          = &FieldDef{"pressure", 0x04, u32, 100, 3}
	FieldIlluminance       = &FieldDef{"illuminance", 0x05, u32, 100, 3}
	FieldMassKg            = &FieldDef{"mass_kg", 0x06, u16, 100, 2}
	FieldMassLb            = &FieldDef{"mass_lb", 0x07, u16, 100, 2}
	FieldDewpoint          = &FieldDef{"dewpoint", 0x08, s16, 100, 2}
	FieldCount8            = &FieldDef{"count_u8", 0x09, u8, 1, 1}
	FieldEnergy            = &FieldDef{"energy", 0x0a, u32, 1000, 3}
	FieldPower             = &FieldDef{"power", 0x0b, u32, 100, 3}
	FieldVoltage           = &FieldDef{"voltage", 0x0c, u16, 1000, 2}
	FieldPm25              = &FieldDef{"pm2_5", 0x0d, u16, 1, 2}
	FieldPm10              = &FieldDef{"pm10", 0x0e, u16, 1, 2}
	FieldCo2               = &FieldDef{"co2", 0x12, u16, 1, 2}
	FieldTvoc              = &FieldDef{"tvoc", 0x13, u16, 1, 2}
	FieldMoisture          = &FieldDef{"moisture", 0x14, u16, 100, 2}
	FieldHumidityCoarse    = &FieldDef{"humidity_coarse", 0x2e, u8, 1, 1}
	FieldMoistureCoarse    = &FieldDef{"moisture_coarse", 0x2f, u8, 1, 1}
	FieldCount16           = &FieldDef{"count_u16", 0x3d, u16, 1, 2}
	FieldCount32           = &FieldDef{"count_u32", 0x3e, u32, 1, 4}
	FieldRotation          = &FieldDef{"rotation", 0x3f, s16, 10, 2}
	FieldDistanceMm        = &FieldDef{"distance_mm", 0x40, u16, 1, 2}
	FieldDistanceM         = &FieldDef{"distance_m", 0x41, u16, 10, 2}
	FieldDuration          = &FieldDef{"duration", 0x42, u32, 1000, 3}
	FieldCurrent           = &FieldDef{"current", 0x43, u16, 1000, 2}
	FieldSpeed             = &FieldDef{"speed", 0x44, u16, 100, 2}
	FieldTemperatureCoarse = &FieldDef{"temperature_coarse", 0x45, s16, 10, 2}
	FieldUvIndex           = &FieldDef{"uv_index", 0x46, u8, 10, 1}
	FieldVolumeCoarse      = &FieldDef{"volume_coarse", 0x47, u16, 10, 2}
	FieldVolumeMl          = &FieldDef{"volume_ml", 0x48, u16, 1, 2}
	FieldVolumeFlowRate    = &FieldDef{"volume_flow_rate", 0x49, u16, 1000, 2}
	FieldVoltageCoarse     = &FieldDef{"voltage_coarse", 0x4a, u16, 10, 2}
	FieldGas               = &FieldDef{"gas", 0x4b, u32, 1000, 3}
	FieldGas32             = &FieldDef{"gas_u32", 0x4c, u32, 1000, 4}
	FieldEnergy32          = &FieldDef{"energy_u32", 0x4d, u32, 1000, 4}
	FieldVolume            = &FieldDef{"volume", 0x4e, u32, 1000, 4}
	FieldWater             = &FieldDef{"water", 0x4f, u32, 1000, 4}
	FieldTimestamp         = &FieldDef{"timestamp", 0x50, u32, 1, 4}
	FieldAcceleration      = &FieldDef{"acceleration", 0x51, u16, 1000, 2}
	FieldGyroscope         = &FieldDef{"gyroscope", 0x52, u16, 1000, 2}
	FieldVolumeStorage     = &FieldDef{"volume_storage", 0x55, u32, 1000, 4}
	FieldConductivity      = &FieldDef{"conductivity", 0x56, u16, 1, 2}
	FieldTemperature8      = &FieldDef{"temperature_s8", 0x57, s8, 1, 1}
	FieldTemperature8Fine  = &FieldDef{"temperature_s8_fine", 0x58, s8, 1 / 0.35, 1}
	FieldCountS8           = &FieldDef{"count_s8", 0x59, s8, 1, 1}
	FieldCountS16          = &FieldDef{"count_s16", 0x5a, s16, 1, 2}
	FieldCountS32          = &FieldDef{"count_s32", 0x5b, s32, 1, 4}
	FieldPowerS32          = &FieldDef{"power_s32", 0x5c, s32, 100, 4}
	FieldCurrentS16        = &FieldDef{"current_s16", 0x5d, s16, 1000, 2}
	FieldDirection         = &FieldDef{"direction", 0x5e, u16, 100, 2}
	FieldPrecipitation     = &FieldDef{"precipitation", 0x5f, u16, 10, 2}
)

var (
	FlagGenericBoolean  = &FlagDef{"generic_boolean", 0x0f}
	FlagPower           = &FlagDef{"power", 0x10}
	FlagOpening         = &FlagDef{"opening", 0x11}
	FlagBattery         = &FlagDef{"battery", 0x15}
	FlagBatteryCharging = &FlagDef{"battery_charging", 0x16}
	FlagCarbonMonoxide  = &FlagDef{"carbon_monoxide", 0x17}
	FlagCold            = &FlagDef{"cold", 0x18}
	FlagConnectivity    = &FlagDef{"connectivity", 0x19}
	FlagDoor            = &FlagDef{"door", 0x1a}
	FlagGarageDoor      = &FlagDef{"garage_door", 0x1b}
	FlagGas             = &FlagDef{"gas", 0x1c}
	FlagHeat            = &FlagDef{"heat", 0x1d}
	FlagLight           = &FlagDef{"light", 0x1e}
	FlagLock            = &FlagDef{"lock", 0x1f}
	FlagMoisture        = &FlagDef{"moisture", 0x20}
	FlagMotion          = &FlagDef{"motion", 0x21}
	FlagMoving          = &FlagDef{"moving", 0x22}
	FlagOccupancy       = &FlagDef{"occupancy", 0x23}
	FlagPluggedIn       = &FlagDef{"plugged_in", 0x24}
	FlagPresence        = &FlagDef{"presence", 0x25}
	FlagProblem         = &FlagDef{"problem", 0x26}
	FlagRunning         = &FlagDef{"running", 0x27}
	FlagSafety          = &FlagDef{"safety", 0x28}
	FlagSmoke           = &FlagDef{"smoke", 0x29}
	FlagSound           = &FlagDef{"sound", 0x2a}
	FlagTamper          = &FlagDef{"tamper", 0x2b}
	FlagVibration       = &FlagDef{"vibration", 0x2c}
	FlagWindow          = &FlagDef{"window", 0x2d}
)

var fieldDefs = []*FieldDef{
	FieldPacketId, FieldBattery, FieldTemperature, FieldHumidity,
	FieldPressure, FieldIlluminance, FieldMassKg, FieldMassLb,
	FieldDewpoint, FieldCount8, FieldEnergy, FieldPower, FieldVoltage,
	FieldPm25, FieldPm10, FieldCo2, FieldTvoc, FieldMoisture,
	FieldHumidityCoarse, FieldMoistureCoarse, FieldCount16, FieldCount32,
	FieldRotation, FieldDistanceMm, FieldDistanceM, FieldDuration,
	FieldCurrent, FieldSpeed, FieldTemperatureCoarse, FieldUvIndex,
	FieldVolumeCoarse, FieldVolumeMl, FieldVolumeFlowRate,
	FieldVoltageCoarse, FieldGas, FieldGas32, FieldEnergy32, FieldVolume,
	FieldWater, FieldTimestamp, FieldAcceleration, FieldGyroscope,
	FieldVolumeStorage, FieldConductivity, FieldTemperature8,
	FieldTemperature8Fine, FieldCountS8, FieldCountS16, FieldCountS32,
	FieldPowerS32, FieldCurrentS16, FieldDirection, FieldPrecipitation,
}

var flagDefs = []*FlagDef{
	FlagGenericBoolean, FlagPower, FlagOpening, FlagBattery,
	FlagBatteryCharging, FlagCarbonMonoxide, FlagCold, FlagConnectivity,
	FlagDoor, FlagGarageDoor, FlagGas, FlagHeat, FlagLight, FlagLock,
	FlagMoisture, FlagMotion, FlagMoving, FlagOccupancy, FlagPluggedIn,
	FlagPresence, FlagProblem, FlagRunning, FlagSafety, FlagSmoke,
	FlagSound, FlagTamper, FlagVibration, FlagWindow,
}

var fieldNameMap = map[string]*FieldDef{}
var fieldIdMap = map[uint8]*FieldDef{}
var flagNameMap = map[string]*FlagDef{}
var flagIdMap = map[uint8]*FlagDef{}

func init() {
	for _, d := range fieldDefs {
		fieldNameMap[d.Name] = d
		fieldIdMap[d.ObjectId] = d
	}
	for _, d := range flagDefs {
		flagNameMap[d.Name] = d
		flagIdMap[d.ObjectId] = d
	}
}

// Returns every field definition, ordered by object ID.
func Fields() []*FieldDef {
	defs := make([]*FieldDef, len(fieldDefs))
	copy(defs, fieldDefs)

	sort.Slice(defs, func(i, j int) bool {
		return defs[i].ObjectId < defs[j].ObjectId
	})
	return defs
}

// Returns every flag definition, ordered by object ID.
func Flags() []*FlagDef {
	defs := make([]*FlagDef, len(flagDefs))
	copy(defs, flagDefs)

	sort.Slice(defs, func(i, j int) bool {
		return defs[i].ObjectId < defs[j].ObjectId
	})
	return defs
}

func FieldByName(name string) (*FieldDef, error) {
	d := fieldNameMap[name]
	if d == nil {
		return nil, fmt.Errorf("unknown BTHome field: %s", name)
	}

	return d, nil
}

func FlagByName(name string) (*FlagDef, error) {
	d := flagNameMap[name]
	if d == nil {
		return nil, fmt.Errorf("unknown BTHome flag: %s", name)
	}

	return d, nil
}

func FieldByObjectId(id uint8) (*FieldDef, error) {
	d := fieldIdMap[id]
	if d == nil {
		return nil, bhxutil.NewUnknownObjectIdError(id)
	}

	return d, nil
}

func FlagByObjectId(id uint8) (*FlagDef, error) {
	d := flagIdMap[id]
	if d == nil {
		return nil, bhxutil.NewUnknownObjectIdError(id)
	}

	return d, nil
}

// Looks up an object ID across both catalogs.  Exactly one of the returned
// definitions is non-nil on success.
func DefByObjectId(id uint8) (*FieldDef, *FlagDef, error) {
	if d := fieldIdMap[id]; d != nil {
		return d, nil, nil
	}
	if d := flagIdMap[id]; d != nil {
		return nil, d, nil
	}

	return nil, nil, bhxutil.NewUnknownObjectIdError(id)
}

func CheckFieldDef(d *FieldDef) error {
	sz := d.ExtType.Size()
	if sz == 0 {
		return fmt.Errorf("field %s: invalid external type %d",
			d.Name, int(d.ExtType))
	}
	if d.DataLen < 1 || d.DataLen > sz {
		return fmt.Errorf("field %s: data length %d not in [1,%d]",
			d.Name, d.DataLen, sz)
	}
	if d.Scale <= 0 || math.IsInf(d.Scale, 0) || math.IsNaN(d.Scale) {
		return fmt.Errorf("field %s: invalid scale %g", d.Name, d.Scale)
	}

	return nil
}

// Verifies that object IDs and names are unique across both catalogs and
// that every field definition is well formed.
func CheckCatalog() error {
	ids := map[uint8]string{}
	fieldNames := map[string]struct{}{}
	flagNames := map[string]struct{}{}

	claim := func(id uint8, name string) error {
		if other, ok := ids[id]; ok {
			return fmt.Errorf("object ID 0x%02x used by both %s and %s",
				id, other, name)
		}
		ids[id] = name
		return nil
	}

	for _, d := range fieldDefs {
		if err := CheckFieldDef(d); err != nil {
			return err
		}
		if _, ok := fieldNames[d.Name]; ok {
			return fmt.Errorf("duplicate field name: %s", d.Name)
		}
		fieldNames[d.Name] = struct{}{}

		if err := claim(d.ObjectId, d.Name); err != nil {
			return err
		}
	}

	for _, d := range flagDefs {
		if _, ok := flagNames[d.Name]; ok {
			return fmt.Errorf("duplicate flag name: %s", d.Name)
		}
		flagNames[d.Name] = struct{}{}

		if err := claim(d.ObjectId, d.Name); err != nil {
			return err
		}
	}

	log.Debugf("BTHome catalog ok: %d fields, %d flags",
		len(fieldDefs), len(flagDefs))
	return nil
}
