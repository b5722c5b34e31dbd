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

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"mynewt.apache.org/bthome/bthome/bhdefs"
	"mynewt.apache.org/bthome/bthome/bhxutil"
	"mynewt.apache.org/bthome/bthomectl/bcutil"
	"mynewt.apache.org/newt/util"
)

var BthomectlLogLevel log.Level

func Commands() *cobra.Command {
	logLevelStr := ""
	bcCmd := &cobra.Command{
		Use:   bcutil.ToolInfo.ExeName,
		Short: bcutil.ToolInfo.ShortName + " builds BTHome v2 advertisements",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			var err error
			BthomectlLogLevel, err = log.ParseLevel(logLevelStr)
			if err != nil {
				nmUsage(nil, util.ChildNewtError(err))
			}

			err = util.Init(BthomectlLogLevel, "", util.VERBOSITY_DEFAULT)
			if err != nil {
				nmUsage(nil, err)
			}
			bhxutil.SetLogLevel(BthomectlLogLevel)

			if err := bhdefs.CheckCatalog(); err != nil {
				log.Errorf("BTHome catalog is inconsistent: %s", err.Error())
			}
		},
		Run: func(cmd *cobra.Command, args []string) {
			cmd.HelpFunc()(cmd, args)
		},
	}

	bcCmd.PersistentFlags().StringVarP(&bcutil.SchemaName, "schema", "s", "",
		"schema profile to use")

	bcCmd.PersistentFlags().StringVarP(&logLevelStr, "loglevel", "l", "info",
		"log level to use")

	bcCmd.PersistentFlags().StringVarP(&bcutil.Format, "format", "f", "",
		"output format (text, hex, json, cbor); default depends on command")

	versCmd := &cobra.Command{
		Use:     "version",
		Short:   "Display the " + bcutil.ToolInfo.ShortName + " version number",
		Example: "  " + bcutil.ToolInfo.ExeName + " version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s %s\n",
				bcutil.ToolInfo.LongName,
				bcutil.ToolInfo.VersionString)
		},
	}
	bcCmd.AddCommand(versCmd)

	for _, c := range catalogCmds() {
		bcCmd.AddCommand(c)
	}
	bcCmd.AddCommand(fieldCmd())
	bcCmd.AddCommand(flagCmd())
	bcCmd.AddCommand(schemaCmd())
	bcCmd.AddCommand(encodeCmd())
	bcCmd.AddCommand(interactiveCmd())

	return bcCmd
}
