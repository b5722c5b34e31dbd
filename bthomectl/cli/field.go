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

	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"mynewt.apache.org/bthome/bthome/bhdefs"
	"mynewt.apache.org/bthome/bthome/bhfield"
	"mynewt.apache.org/bthome/bthome/bhxutil"
	"mynewt.apache.org/bthome/bthomectl/bcutil"
	"mynewt.apache.org/newt/util"
)

func fieldEncode(name string, valStr string) (bhfield.Field, error) {
	def, err := bhdefs.FieldByName(name)
	if err != nil {
		return bhfield.Field{}, util.ChildNewtError(err)
	}

	val, err := cast.ToFloat64E(valStr)
	if err != nil {
		return bhfield.Field{}, util.FmtNewtError("invalid value for %s: %s",
			name, err.Error())
	}

	return bhfield.EncodeField(def, val), nil
}

func fieldDecode(name string, hexStr string) (bhfield.Field, error) {
	def, err := bhdefs.FieldByName(name)
	if err != nil {
		return bhfield.Field{}, util.ChildNewtError(err)
	}

	b, err := bhxutil.ParseHex(hexStr)
	if err != nil {
		return bhfield.Field{}, util.FmtNewtError("invalid hex \"%s\": %s",
			hexStr, err.Error())
	}

	f, err := bhfield.DecodeField(def, b)
	if err != nil {
		return bhfield.Field{}, util.ChildNewtError(err)
	}

	return f, nil
}

func flagEncode(name string, valStr string) (bhfield.Flag, error) {
	def, err := bhdefs.FlagByName(name)
	if err != nil {
		return bhfield.Flag{}, util.ChildNewtError(err)
	}

	val, err := cast.ToBoolE(valStr)
	if err != nil {
		return bhfield.Flag{}, util.FmtNewtError("invalid value for %s: %s",
			name, err.Error())
	}

	return bhfield.EncodeFlag(def, val), nil
}

func flagDecode(name string, hexStr string) (bhfield.Flag, error) {
	def, err := bhdefs.FlagByName(name)
	if err != nil {
		return bhfield.Flag{}, util.ChildNewtError(err)
	}

	b, err := bhxutil.ParseHex(hexStr)
	if err != nil {
		return bhfield.Flag{}, util.FmtNewtError("invalid hex \"%s\": %s",
			hexStr, err.Error())
	}

	f, err := bhfield.DecodeFlag(def, b)
	if err != nil {
		return bhfield.Flag{}, util.ChildNewtError(err)
	}

	return f, nil
}

func printField(f bhfield.Field) {
	fmt.Printf("%s\n", f.String())
	fmt.Printf("    raw=%d width=%d\n", f.Raw(), f.Width())
}

func fieldEncodeCmd(cmd *cobra.Command, args []string) {
	if len(args) != 2 {
		nmUsage(cmd, nil)
	}

	f, err := fieldEncode(args[0], args[1])
	if err != nil {
		nmUsage(cmd, err)
	}

	printField(f)
}

func fieldDecodeCmd(cmd *cobra.Command, args []string) {
	if len(args) != 2 {
		nmUsage(cmd, nil)
	}

	f, err := fieldDecode(args[0], args[1])
	if err != nil {
		nmUsage(cmd, err)
	}

	printField(f)
}

func flagEncodeCmd(cmd *cobra.Command, args []string) {
	if len(args) != 2 {
		nmUsage(cmd, nil)
	}

	f, err := flagEncode(args[0], args[1])
	if err != nil {
		nmUsage(cmd, err)
	}

	fmt.Printf("%s\n", f.String())
}

func flagDecodeCmd(cmd *cobra.Command, args []string) {
	if len(args) != 2 {
		nmUsage(cmd, nil)
	}

	f, err := flagDecode(args[0], args[1])
	if err != nil {
		nmUsage(cmd, err)
	}

	fmt.Printf("%s\n", f.String())
}

func fieldCmd() *cobra.Command {
	fieldCmd := &cobra.Command{
		Use:   "field",
		Short: "Encode or decode a single BTHome measurement field",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.HelpFunc()(cmd, args)
		},
	}

	encodeCmd := &cobra.Command{
		Use:     "encode <field-name> <value>",
		Short:   "Encode a measurement value",
		Example: "  " + bcutil.ToolInfo.ExeName + " field encode temperature_coarse 27.3",
		Run:     fieldEncodeCmd,
	}
	fieldCmd.AddCommand(encodeCmd)

	decodeCmd := &cobra.Command{
		Use:     "decode <field-name> <hex>",
		Short:   "Decode field bytes, including the object ID",
		Example: "  " + bcutil.ToolInfo.ExeName + " field decode temperature_coarse 450401",
		Run:     fieldDecodeCmd,
	}
	fieldCmd.AddCommand(decodeCmd)

	return fieldCmd
}

func flagCmd() *cobra.Command {
	flagCmd := &cobra.Command{
		Use:   "flag",
		Short: "Encode or decode a single BTHome binary flag",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.HelpFunc()(cmd, args)
		},
	}

	encodeCmd := &cobra.Command{
		Use:   "encode <flag-name> <true|false>",
		Short: "Encode a flag value",
		Run:   flagEncodeCmd,
	}
	flagCmd.AddCommand(encodeCmd)

	decodeCmd := &cobra.Command{
		Use:   "decode <flag-name> <hex>",
		Short: "Decode flag bytes, including the object ID",
		Run:   flagDecodeCmd,
	}
	flagCmd.AddCommand(decodeCmd)

	return flagCmd
}
