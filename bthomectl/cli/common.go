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
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"mynewt.apache.org/bthome/bthome/adv"
	"mynewt.apache.org/bthome/bthomectl/bcutil"
	"mynewt.apache.org/bthome/bthomectl/config"
	"mynewt.apache.org/newt/util"
)

const (
	FORMAT_TEXT = "text"
	FORMAT_HEX  = "hex"
	FORMAT_JSON = "json"
	FORMAT_CBOR = "cbor"
)

func nmExit(code int) {
	os.Exit(code)
}

// Reports an error (if any), prints the command's usage (if any), and exits.
func nmUsage(cmd *cobra.Command, err error) {
	if err != nil {
		if nerr, ok := err.(*util.NewtError); ok {
			log.Debugf("%s", nerr.StackTrace)
			fmt.Fprintf(os.Stderr, "Error: %s\n", nerr.Text)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err.Error())
		}
	}

	if cmd != nil {
		fmt.Printf("\n")
		fmt.Printf("%s - ", cmd.Name())
		cmd.Help()
	}

	nmExit(1)
}

// Returns the output format selected with --format, or def if none was
// specified.  Only the listed formats are accepted.
func outputFormat(def string, allowed ...string) (string, error) {
	f := strings.ToLower(bcutil.Format)
	if f == "" {
		return def, nil
	}

	for _, a := range allowed {
		if f == a {
			return f, nil
		}
	}

	return "", util.FmtNewtError("unsupported format \"%s\"; choose one of: %s",
		bcutil.Format, strings.Join(allowed, ", "))
}

func getSchemaProfile() (*config.SchemaProfile, error) {
	if bcutil.SchemaName == "" {
		return nil, util.NewNewtError("no schema specified; use --schema")
	}

	return config.GlobalSchemaProfileMgr().GetSchemaProfile(bcutil.SchemaName)
}

func getSchema() (*adv.Schema, error) {
	sp, err := getSchemaProfile()
	if err != nil {
		return nil, err
	}

	s, err := sp.Build()
	if err != nil {
		return nil, util.ChildNewtError(err)
	}

	return s, nil
}

type slotArg struct {
	Name  string
	Value string
}

// Splits "<slot>=<value>" arguments.  Quotes around a value are removed.
func extractSlotKv(params []string) ([]slotArg, error) {
	sas := make([]slotArg, 0, len(params))

	for _, param := range params {
		parts := strings.SplitN(param, "=", 2)
		if len(parts) != 2 || parts[0] == "" {
			return nil, util.FmtNewtError("invalid slot value: %s", param)
		}

		val := parts[1]
		if len(val) >= 2 && strings.HasPrefix(val, "\"") &&
			strings.HasSuffix(val, "\"") {

			val = val[1 : len(val)-1]
		}

		sas = append(sas, slotArg{parts[0], val})
	}

	return sas, nil
}

// Applies slot arguments to an advertisement in argument order.  A later
// argument for the same slot replaces an earlier one.
func applySlotArgs(a adv.Adv, sas []slotArg) (adv.Adv, error) {
	for _, sa := range sas {
		var err error
		a, err = a.Set(sa.Name, sa.Value)
		if err != nil {
			return a, util.ChildNewtError(err)
		}
	}

	return a, nil
}
