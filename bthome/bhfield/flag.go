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
	"fmt"

	"mynewt.apache.org/bthome/bthome/bhdefs"
	"mynewt.apache.org/bthome/bthome/bhxutil"
)

type Flag struct {
	def  *bhdefs.FlagDef
	data [bhdefs.FLAG_WIDTH]byte
}

func EncodeFlag(def *bhdefs.FlagDef, val bool) Flag {
	f := Flag{def: def}

	f.data[0] = def.ObjectId
	if val {
		f.data[1] = 0x01
	}

	return f
}

func DecodeFlag(def *bhdefs.FlagDef, data []byte) (Flag, error) {
	if len(data) != bhdefs.FLAG_WIDTH {
		return Flag{}, fmt.Errorf("flag %s: expected %d bytes, got %d",
			def.Name, bhdefs.FLAG_WIDTH, len(data))
	}
	if data[0] != def.ObjectId {
		return Flag{}, fmt.Errorf("flag %s: expected object ID 0x%02x, "+
			"got 0x%02x", def.Name, def.ObjectId, data[0])
	}

	f := Flag{def: def}
	copy(f.data[:], data)

	return f, nil
}

func (f Flag) Def() *bhdefs.FlagDef {
	return f.def
}

func (f Flag) Width() int {
	return bhdefs.FLAG_WIDTH
}

// Any nonzero data byte reads as true.
func (f Flag) Value() bool {
	return f.data[1] != 0
}

func (f Flag) Bytes() []byte {
	return f.data[:]
}

func (f Flag) String() string {
	return fmt.Sprintf("%s=%t [%s]",
		f.def.Name, f.Value(), bhxutil.HexString(f.Bytes()))
}
