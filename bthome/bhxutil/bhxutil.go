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

package bhxutil

import (
	"encoding/hex"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/ugorji/go/codec"
)

func SetLogLevel(level log.Level) {
	log.SetLevel(level)
}

// Renders a byte sequence as space separated upper-case hex, e.g.,
// "02 01 06".
func HexString(b []byte) string {
	if len(b) == 0 {
		return ""
	}

	s := strings.ToUpper(hex.EncodeToString(b))

	var sb strings.Builder
	sb.Grow(len(s) + len(b) - 1)
	for i := 0; i < len(s); i += 2 {
		if i != 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(s[i : i+2])
	}

	return sb.String()
}

// Parses hex text into bytes.  Whitespace, colons, and an optional "0x"
// prefix are ignored.
func ParseHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	s = strings.NewReplacer(" ", "", ":", "", "\t", "").Replace(s)

	return hex.DecodeString(s)
}

func EncodeCbor(val interface{}) ([]byte, error) {
	var b []byte
	enc := codec.NewEncoderBytes(&b, new(codec.CborHandle))
	if err := enc.Encode(val); err != nil {
		return nil, err
	}

	return b, nil
}

func DecodeCbor(b []byte) (map[string]interface{}, error) {
	m := map[string]interface{}{}

	dec := codec.NewDecoderBytes(b, new(codec.CborHandle))
	if err := dec.Decode(&m); err != nil {
		return nil, err
	}

	return m, nil
}

func EncodeJson(val interface{}) ([]byte, error) {
	jh := new(codec.JsonHandle)
	jh.Indent = 4

	var b []byte
	enc := codec.NewEncoderBytes(&b, jh)
	if err := enc.Encode(val); err != nil {
		return nil, err
	}

	return b, nil
}
