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
	"fmt"

	"github.com/pkg/errors"
)

// Indicates that an append to a fixed-size advertisement buffer would exceed
// its capacity.  Bytes appended before the failing append are retained.
type CapacityError struct {
	Text string
	Cap  int
	Need int
}

func NewCapacityError(capacity int, need int) *CapacityError {
	return &CapacityError{
		Text: fmt.Sprintf("advertisement buffer overflow: need %d bytes, "+
			"capacity %d", need, capacity),
		Cap:  capacity,
		Need: need,
	}
}

func (e *CapacityError) Error() string {
	return e.Text
}

func IsCapacity(err error) bool {
	if err == nil {
		return false
	}

	_, ok := errors.Cause(err).(*CapacityError)
	return ok
}

// Indicates a schema whose declared slots could never fit in a legacy
// advertisement, regardless of which slots are populated.
type SchemaOverflowError struct {
	Text   string
	Schema string
	Width  int
	Limit  int
}

func NewSchemaOverflowError(schema string, width int,
	limit int) *SchemaOverflowError {

	return &SchemaOverflowError{
		Text: fmt.Sprintf("schema \"%s\" declares %d payload bytes; "+
			"limit is %d", schema, width, limit),
		Schema: schema,
		Width:  width,
		Limit:  limit,
	}
}

func (e *SchemaOverflowError) Error() string {
	return e.Text
}

func IsSchemaOverflow(err error) bool {
	if err == nil {
		return false
	}

	_, ok := errors.Cause(err).(*SchemaOverflowError)
	return ok
}

// Represents a badly declared or unknown advertisement slot.
type SlotError struct {
	Text string
	Slot string
}

func NewSlotError(slot string, text string) *SlotError {
	return &SlotError{
		Text: text,
		Slot: slot,
	}
}

func FmtSlotError(slot string, format string,
	args ...interface{}) *SlotError {

	return NewSlotError(slot, fmt.Sprintf(format, args...))
}

func (e *SlotError) Error() string {
	return e.Text
}

func IsSlot(err error) bool {
	if err == nil {
		return false
	}

	_, ok := errors.Cause(err).(*SlotError)
	return ok
}

func ToSlot(err error) *SlotError {
	if serr, ok := errors.Cause(err).(*SlotError); ok {
		return serr
	} else {
		return nil
	}
}

// Represents an object ID that is not present in the catalog.
type UnknownObjectIdError struct {
	Text     string
	ObjectId uint8
}

func NewUnknownObjectIdError(objectId uint8) *UnknownObjectIdError {
	return &UnknownObjectIdError{
		Text:     fmt.Sprintf("unknown BTHome object ID: 0x%02x", objectId),
		ObjectId: objectId,
	}
}

func (e *UnknownObjectIdError) Error() string {
	return e.Text
}

func IsUnknownObjectId(err error) bool {
	if err == nil {
		return false
	}

	_, ok := errors.Cause(err).(*UnknownObjectIdError)
	return ok
}
