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
	"mynewt.apache.org/bthome/bthome/bhdefs"
	"mynewt.apache.org/bthome/bthome/bhxutil"
)

// Fixed-capacity advertising data buffer.  The zero value is empty and ready
// for use.
type AdvBuf struct {
	data [bhdefs.ADV_MAX_LEN]byte
	n    int
}

func (b *AdvBuf) Reset() {
	b.n = 0
}

func (b *AdvBuf) Len() int {
	return b.n
}

func (b *AdvBuf) Cap() int {
	return len(b.data)
}

// The buffer contents.  The slice aliases the buffer and is only valid until
// the next modification.
func (b *AdvBuf) Bytes() []byte {
	return b.data[:b.n]
}

// Appends p in full or not at all.  Previously appended bytes are kept when
// p does not fit.
func (b *AdvBuf) Append(p []byte) error {
	if b.n+len(p) > len(b.data) {
		return bhxutil.NewCapacityError(len(b.data), b.n+len(p))
	}

	copy(b.data[b.n:], p)
	b.n += len(p)

	return nil
}

func (b *AdvBuf) addSvcDataLen(delta int) {
	b.data[bhdefs.BTHOME_LEN_OFF] += byte(delta)
}
