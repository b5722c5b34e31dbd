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

	"mynewt.apache.org/bthome/bthome/adv"
	"mynewt.apache.org/bthome/bthome/bhdefs"
	"mynewt.apache.org/bthome/bthome/bhxutil"
	"mynewt.apache.org/bthome/bthomectl/bcutil"
	"mynewt.apache.org/newt/util"
)

type slotRow struct {
	Name  string      `structs:"name"`
	Kind  string      `structs:"kind"`
	Def   string      `structs:"def"`
	Value interface{} `structs:"value"`
	Bytes string      `structs:"bytes"`
}

type advRow struct {
	Schema string        `structs:"schema"`
	Len    int           `structs:"len"`
	Adv    string        `structs:"adv"`
	Slots  []interface{} `structs:"slots"`
}

// Describes an encoded advertisement as a generic map suitable for JSON or
// CBOR output.
func advReport(a adv.Adv, b []byte) map[string]interface{} {
	row := advRow{
		Schema: a.Schema().Name(),
		Len:    len(b),
		Adv:    bhxutil.HexString(b),
		Slots:  []interface{}{},
	}

	for _, sv := range a.Values() {
		row.Slots = append(row.Slots, structs.Map(slotRow{
			Name:  sv.Name,
			Kind:  bhdefs.DefKindToString(sv.Kind),
			Def:   sv.Def,
			Value: sv.Value,
			Bytes: bhxutil.HexString(sv.Bytes),
		}))
	}

	return structs.Map(row)
}

func printAdv(format string, a adv.Adv) error {
	b, err := a.Encode()
	if err != nil {
		return util.ChildNewtError(err)
	}

	switch format {
	case FORMAT_JSON:
		j, err := bhxutil.EncodeJson(advReport(a, b))
		if err != nil {
			return util.ChildNewtError(err)
		}
		fmt.Printf("%s\n", j)

	case FORMAT_CBOR:
		c, err := bhxutil.EncodeCbor(advReport(a, b))
		if err != nil {
			return util.ChildNewtError(err)
		}
		fmt.Printf("%s\n", bhxutil.HexString(c))

	default:
		fmt.Printf("%s\n", a.String())
		fmt.Printf("%s (%d bytes)\n", bhxutil.HexString(b), len(b))
	}

	return nil
}

func encodeRunCmd(cmd *cobra.Command, args []string) {
	format, err := outputFormat(FORMAT_HEX, FORMAT_HEX, FORMAT_JSON,
		FORMAT_CBOR)
	if err != nil {
		nmUsage(cmd, err)
	}

	s, err := getSchema()
	if err != nil {
		nmUsage(cmd, err)
	}

	sas, err := extractSlotKv(args)
	if err != nil {
		nmUsage(cmd, err)
	}

	a, err := applySlotArgs(s.NewAdv(), sas)
	if err != nil {
		nmUsage(nil, err)
	}

	if err := printAdv(format, a); err != nil {
		nmUsage(nil, err)
	}
}

func encodeCmd() *cobra.Command {
	encodeHelpText := "Build an advertisement from the selected schema profile.\n"
	encodeHelpText += "Slots not listed are left out of the advertisement.\n"

	return &cobra.Command{
		Use:   "encode <slot=value ...>",
		Short: "Encode a BTHome advertisement",
		Long:  encodeHelpText,
		Example: "  " + bcutil.ToolInfo.ExeName + " encode -s air " +
			"t=27.3 h=50 c=true",
		Run: encodeRunCmd,
	}
}
