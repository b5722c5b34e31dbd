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

package cli

import (
	"fmt"

	"github.com/fatih/structs"
	"github.com/spf13/cobra"

	"mynewt.apache.org/bthome/bthome/bhdefs"
	"mynewt.apache.org/bthome/bthome/bhxutil"
	"mynewt.apache.org/bthome/bthomectl/bcutil"
	"mynewt.apache.org/newt/util"
)

type fieldRow struct {
	Name     string  `structs:"name"`
	ObjectId int     `structs:"object_id"`
	ExtType  string  `structs:"ext_type"`
	Scale    float64 `structs:"scale"`
	DataLen  int     `structs:"data_len"`
	Width    int     `structs:"width"`
}

type flagRow struct {
	Name     string `structs:"name"`
	ObjectId int    `structs:"object_id"`
	Width    int    `structs:"width"`
}

func fieldRows() []map[string]interface{} {
	var rows []map[string]interface{}
	for _, d := range bhdefs.Fields() {
		rows = append(rows, structs.Map(fieldRow{
			Name:     d.Name,
			ObjectId: int(d.ObjectId),
			ExtType:  bhdefs.ExtTypeToString(d.ExtType),
			Scale:    d.Scale,
			DataLen:  d.DataLen,
			Width:    d.Width(),
		}))
	}

	return rows
}

func flagRows() []map[string]interface{} {
	var rows []map[string]interface{}
	for _, d := range bhdefs.Flags() {
		rows = append(rows, structs.Map(flagRow{
			Name:     d.Name,
			ObjectId: int(d.ObjectId),
			Width:    d.Width(),
		}))
	}

	return rows
}

// Writes rows as JSON or as hex-encoded CBOR.
func printRows(format string, rows []map[string]interface{}) error {
	var b []byte
	var err error

	switch format {
	case FORMAT_JSON:
		b, err = bhxutil.EncodeJson(rows)
		if err != nil {
			return util.ChildNewtError(err)
		}
		fmt.Printf("%s\n", b)

	case FORMAT_CBOR:
		b, err = bhxutil.EncodeCbor(rows)
		if err != nil {
			return util.ChildNewtError(err)
		}
		fmt.Printf("%s\n", bhxutil.HexString(b))
	}

	return nil
}

func fieldsRunCmd(cmd *cobra.Command, args []string) {
	format, err := outputFormat(FORMAT_TEXT, FORMAT_TEXT, FORMAT_JSON,
		FORMAT_CBOR)
	if err != nil {
		nmUsage(cmd, err)
	}

	if format != FORMAT_TEXT {
		if err := printRows(format, fieldRows()); err != nil {
			nmUsage(nil, err)
		}
		return
	}

	fmt.Printf("%-4s  %-28s %-6s  %8s  %s\n",
		"id", "name", "type", "scale", "bytes")
	for _, d := range bhdefs.Fields() {
		fmt.Printf("0x%02x  %-28s %-6s  %8g  %d\n",
			d.ObjectId, d.Name, d.ExtType.String(), d.Scale, d.DataLen)
	}
}

func flagsRunCmd(cmd *cobra.Command, args []string) {
	format, err := outputFormat(FORMAT_TEXT, FORMAT_TEXT, FORMAT_JSON,
		FORMAT_CBOR)
	if err != nil {
		nmUsage(cmd, err)
	}

	if format != FORMAT_TEXT {
		if err := printRows(format, flagRows()); err != nil {
			nmUsage(nil, err)
		}
		return
	}

	fmt.Printf("%-4s  %s\n", "id", "name")
	for _, d := range bhdefs.Flags() {
		fmt.Printf("0x%02x  %s\n", d.ObjectId, d.Name)
	}
}

func catalogCmds() []*cobra.Command {
	fieldsCmd := &cobra.Command{
		Use:     "fields",
		Short:   "List the BTHome measurement field catalog",
		Example: "  " + bcutil.ToolInfo.ExeName + " fields --format json",
		Run:     fieldsRunCmd,
	}

	flagsCmd := &cobra.Command{
		Use:   "flags",
		Short: "List the BTHome binary flag catalog",
		Run:   flagsRunCmd,
	}

	return []*cobra.Command{fieldsCmd, flagsCmd}
}
