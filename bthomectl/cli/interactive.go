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
	"github.com/spf13/cobra"
	"gopkg.in/abiosoft/ishell.v2"

	"mynewt.apache.org/bthome/bthome/adv"
	"mynewt.apache.org/bthome/bthome/bhdefs"
	"mynewt.apache.org/bthome/bthome/bhxutil"
	"mynewt.apache.org/bthome/bthomectl/bcutil"
)

// Holds the advertisement being edited in an interactive session.  Each
// command replaces cur with an updated copy.
type advSession struct {
	cur adv.Adv
}

func newAdvSession(s *adv.Schema) *advSession {
	return &advSession{
		cur: s.NewAdv(),
	}
}

func (as *advSession) set(params []string) error {
	sas, err := extractSlotKv(params)
	if err != nil {
		return err
	}

	a, err := applySlotArgs(as.cur, sas)
	if err != nil {
		return err
	}

	as.cur = a
	return nil
}

func (as *advSession) unset(names []string) error {
	a := as.cur
	for _, name := range names {
		var err error
		a, err = a.Without(name)
		if err != nil {
			return err
		}
	}

	as.cur = a
	return nil
}

func (as *advSession) reset() {
	as.cur = as.cur.Schema().NewAdv()
}

func (as *advSession) setCmd(c *ishell.Context) {
	if len(c.Args) == 0 {
		c.Println(c.HelpText())
		return
	}

	if err := as.set(c.Args); err != nil {
		c.Println("Error:", err)
		return
	}

	as.showCmd(c)
}

func (as *advSession) unsetCmd(c *ishell.Context) {
	if len(c.Args) == 0 {
		c.Println(c.HelpText())
		return
	}

	if err := as.unset(c.Args); err != nil {
		c.Println("Error:", err)
		return
	}

	as.showCmd(c)
}

func (as *advSession) showCmd(c *ishell.Context) {
	b, err := as.cur.Encode()
	if err != nil {
		c.Println("Error:", err)
		return
	}

	c.Println(as.cur.String())
	c.Printf("%s (%d bytes)\n", bhxutil.HexString(b), len(b))
}

func (as *advSession) resetCmd(c *ishell.Context) {
	as.reset()
	as.showCmd(c)
}

func (as *advSession) slotsCmd(c *ishell.Context) {
	for _, sd := range as.cur.Schema().Slots() {
		mark := " "
		if as.cur.IsSet(sd.Name) {
			mark = "*"
		}
		c.Printf("%s %-20s %-5s %s\n", mark, sd.Name,
			bhdefs.DefKindToString(sd.Kind), sd.DefName())
	}
}

func startInteractive(cmd *cobra.Command, args []string) {
	s, err := getSchema()
	if err != nil {
		nmUsage(cmd, err)
	}

	as := newAdvSession(s)

	// By default, new shell includes 'exit', 'help' and 'clear' commands.
	shell := ishell.New()
	shell.SetPrompt(s.Name() + "> ")

	shell.Println()
	shell.Println(" " + bcutil.ToolInfo.LongName + " advertisement builder")
	shell.Println("	Schema profile: ", s.Name())
	shell.Println()

	shell.AddCmd(&ishell.Cmd{
		Name: "set",
		Help: "Set slot values: set slot=v [slot=v ...]",
		Func: as.setCmd,
	})

	shell.AddCmd(&ishell.Cmd{
		Name: "unset",
		Help: "Remove slots from the advertisement: unset slot [slot ...]",
		Func: as.unsetCmd,
	})

	shell.AddCmd(&ishell.Cmd{
		Name: "show",
		Help: "Print the current advertisement",
		Func: as.showCmd,
	})

	shell.AddCmd(&ishell.Cmd{
		Name: "reset",
		Help: "Unset every slot",
		Func: as.resetCmd,
	})

	shell.AddCmd(&ishell.Cmd{
		Name: "slots",
		Help: "List schema slots; populated slots are marked with *",
		Func: as.slotsCmd,
	})

	shell.Run()
	shell.Close()
}

func interactiveCmd() *cobra.Command {
	shellCmd := &cobra.Command{
		Use:   "interactive",
		Short: "Build an advertisement interactively from a schema profile",
		Run:   startInteractive,
	}

	return shellCmd
}
