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

	"github.com/spf13/cobra"

	"mynewt.apache.org/bthome/bthome/bhdefs"
	"mynewt.apache.org/bthome/bthomectl/bcutil"
	"mynewt.apache.org/bthome/bthomectl/config"
	"mynewt.apache.org/newt/util"
)

func schemaAddCmd(cmd *cobra.Command, args []string) {
	spm := config.GlobalSchemaProfileMgr()

	// Schema name and at least one slot required.
	if len(args) < 2 {
		nmUsage(cmd, util.NewNewtError("Need schema name and slots"))
	}

	sp := config.NewSchemaProfile()
	sp.Name = args[0]

	for _, spec := range args[1:] {
		slot, err := config.ParseSlotProfile(spec)
		if err != nil {
			nmUsage(cmd, err)
		}
		sp.Slots = append(sp.Slots, slot)
	}

	if err := spm.AddSchemaProfile(sp); err != nil {
		nmUsage(nil, err)
	}

	fmt.Printf("Schema profile %s successfully added\n", sp.Name)
}

func printSchemaProfile(sp *config.SchemaProfile) {
	s, err := sp.Build()
	if err != nil {
		fmt.Printf("  %s: <invalid: %s>\n", sp.Name, err.Error())
		return
	}

	fmt.Printf("  %s: %d slots, %d/%d payload bytes\n",
		sp.Name, s.NumSlots(), s.Width(), bhdefs.PAYLOAD_MAX_LEN)
	for _, sd := range s.Slots() {
		fmt.Printf("    %-20s %-5s 0x%02x %s (%d bytes)\n",
			sd.Name, bhdefs.DefKindToString(sd.Kind), sd.ObjectId(),
			sd.DefName(), sd.Width())
	}
}

func schemaShowCmd(cmd *cobra.Command, args []string) {
	spm := config.GlobalSchemaProfileMgr()

	name := ""
	if len(args) > 0 {
		name = args[0]
	}

	found := false
	for _, sp := range spm.GetSchemaProfileList() {
		if name != "" && sp.Name != name {
			continue
		}

		if !found {
			found = true
			fmt.Printf("Schema profiles:\n")
		}
		printSchemaProfile(sp)
	}

	if !found {
		if name == "" {
			fmt.Printf("No schema profiles found!\n")
		} else {
			fmt.Printf("No schema profiles found matching %s\n", name)
		}
	}
}

func schemaDelCmd(cmd *cobra.Command, args []string) {
	spm := config.GlobalSchemaProfileMgr()

	if len(args) == 0 {
		nmUsage(cmd, util.NewNewtError("Need schema name"))
	}

	name := args[0]
	if err := spm.DeleteSchemaProfile(name); err != nil {
		nmUsage(cmd, err)
	}

	fmt.Printf("Schema profile %s successfully deleted.\n", name)
}

func schemaImportCmd(cmd *cobra.Command, args []string) {
	spm := config.GlobalSchemaProfileMgr()

	if len(args) != 1 {
		nmUsage(cmd, util.NewNewtError("Need YAML filename"))
	}

	sps, err := config.ReadSchemaYaml(args[0])
	if err != nil {
		nmUsage(nil, err)
	}

	for _, sp := range sps {
		if err := spm.AddSchemaProfile(sp); err != nil {
			nmUsage(nil, err)
		}
		fmt.Printf("Schema profile %s successfully imported\n", sp.Name)
	}
}

func schemaExportCmd(cmd *cobra.Command, args []string) {
	spm := config.GlobalSchemaProfileMgr()

	var sps []*config.SchemaProfile
	if len(args) > 0 {
		sp, err := spm.GetSchemaProfile(args[0])
		if err != nil {
			nmUsage(cmd, err)
		}
		sps = append(sps, sp)
	} else {
		sps = spm.GetSchemaProfileList()
	}

	b, err := config.SchemaYaml(sps)
	if err != nil {
		nmUsage(nil, err)
	}

	fmt.Printf("%s", b)
}

func schemaCmd() *cobra.Command {
	spCmd := &cobra.Command{
		Use:   "schema",
		Short: "Manage " + bcutil.ToolInfo.ShortName + " schema profiles",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.HelpFunc()(cmd, args)
		},
	}

	addHelpText := "Add or replace a schema profile.  Each slot is given as\n"
	addHelpText += "<slot>=<def>, where <def> names a catalog field or flag.\n"
	addHelpText += "Names present in both catalogs must be qualified as\n"
	addHelpText += "field:<def> or flag:<def>.\n"

	addCmd := &cobra.Command{
		Use:   "add <schema> <slot=def ...>",
		Short: "Add a " + bcutil.ToolInfo.ShortName + " schema profile",
		Long:  addHelpText,
		Example: "  " + bcutil.ToolInfo.ExeName + " schema add air " +
			"t=temperature_coarse h=humidity_coarse c=battery_charging",
		Run: schemaAddCmd,
	}
	spCmd.AddCommand(addCmd)

	deleCmd := &cobra.Command{
		Use:   "delete <schema>",
		Short: "Delete a " + bcutil.ToolInfo.ShortName + " schema profile",
		Run:   schemaDelCmd,
	}
	spCmd.AddCommand(deleCmd)

	showCmd := &cobra.Command{
		Use:   "show [schema]",
		Short: "Show " + bcutil.ToolInfo.ShortName + " schema profiles",
		Run:   schemaShowCmd,
	}
	spCmd.AddCommand(showCmd)

	importCmd := &cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Import schema profiles from a YAML file",
		Run:   schemaImportCmd,
	}
	spCmd.AddCommand(importCmd)

	exportCmd := &cobra.Command{
		Use:   "export [schema]",
		Short: "Print schema profiles as YAML",
		Run:   schemaExportCmd,
	}
	spCmd.AddCommand(exportCmd)

	return spCmd
}
