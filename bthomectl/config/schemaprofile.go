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

package config

import (
	"github.com/mitchellh/go-homedir"
	log "github.com/sirupsen/logrus"

	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"mynewt.apache.org/bthome/bthome/adv"
	"mynewt.apache.org/bthome/bthome/bhdefs"
	"mynewt.apache.org/bthome/bthomectl/bcutil"
	"mynewt.apache.org/newt/util"
)

type SchemaProfileMgr struct {
	filename string
	profiles map[string]*SchemaProfile
}

// A named advertisement slot bound to a catalog definition.
type SlotProfile struct {
	Name string         `json:"Name"`
	Kind bhdefs.DefKind `json:"Kind"`
	Def  string         `json:"Def"`
}

type SchemaProfile struct {
	Name  string        `json:"Name"`
	Slots []SlotProfile `json:"Slots"`
}

func (sp *SlotProfile) String() string {
	return fmt.Sprintf("%s=%s:%s",
		sp.Name, bhdefs.DefKindToString(sp.Kind), sp.Def)
}

func (p *SchemaProfile) String() string {
	strs := make([]string, len(p.Slots))
	for i := range p.Slots {
		strs[i] = p.Slots[i].String()
	}

	return fmt.Sprintf("name=%s slots=[%s]", p.Name, strings.Join(strs, " "))
}

// Parses a slot specifier of the form "<slot>=<def>".  The definition may
// be qualified as "field:<def>" or "flag:<def>"; an unqualified name must
// match exactly one catalog.
func ParseSlotProfile(spec string) (SlotProfile, error) {
	parts := strings.SplitN(spec, "=", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return SlotProfile{}, util.FmtNewtError(
			"invalid slot specifier: \"%s\"; expected <slot>=<def>", spec)
	}

	kind, def, err := resolveDefName(parts[1])
	if err != nil {
		return SlotProfile{}, err
	}

	return SlotProfile{
		Name: parts[0],
		Kind: kind,
		Def:  def,
	}, nil
}

func resolveDefName(s string) (bhdefs.DefKind, string, error) {
	if i := strings.Index(s, ":"); i >= 0 {
		kind, err := bhdefs.DefKindFromString(s[:i])
		if err != nil {
			return 0, "", util.ChildNewtError(err)
		}

		name := s[i+1:]
		if kind == bhdefs.DEF_KIND_FIELD {
			_, err = bhdefs.FieldByName(name)
		} else {
			_, err = bhdefs.FlagByName(name)
		}
		if err != nil {
			return 0, "", util.ChildNewtError(err)
		}

		return kind, name, nil
	}

	_, ferr := bhdefs.FieldByName(s)
	_, gerr := bhdefs.FlagByName(s)
	switch {
	case ferr == nil && gerr == nil:
		return 0, "", util.FmtNewtError("definition \"%s\" is ambiguous; "+
			"use field:%s or flag:%s", s, s, s)
	case ferr == nil:
		return bhdefs.DEF_KIND_FIELD, s, nil
	case gerr == nil:
		return bhdefs.DEF_KIND_FLAG, s, nil
	default:
		return 0, "", util.FmtNewtError("unknown field or flag: \"%s\"", s)
	}
}

func (sp *SlotProfile) SlotDef() (adv.SlotDef, error) {
	if sp.Kind == bhdefs.DEF_KIND_FIELD {
		d, err := bhdefs.FieldByName(sp.Def)
		if err != nil {
			return adv.SlotDef{}, util.ChildNewtError(err)
		}
		return adv.FieldSlotDef(sp.Name, d), nil
	} else {
		d, err := bhdefs.FlagByName(sp.Def)
		if err != nil {
			return adv.SlotDef{}, util.ChildNewtError(err)
		}
		return adv.FlagSlotDef(sp.Name, d), nil
	}
}

// Builds the advertisement schema described by the profile.  The same
// static checks apply as for any schema.
func (p *SchemaProfile) Build() (*adv.Schema, error) {
	slots := make([]adv.SlotDef, 0, len(p.Slots))
	for i := range p.Slots {
		sd, err := p.Slots[i].SlotDef()
		if err != nil {
			return nil, err
		}
		slots = append(slots, sd)
	}

	return adv.NewSchema(p.Name, slots)
}

func NewSchemaProfile() *SchemaProfile {
	return &SchemaProfile{}
}

func schemaProfileCfgFilename() (string, error) {
	dir, err := homedir.Dir()
	if err != nil {
		return "", util.NewNewtError(err.Error())
	}

	return filepath.Join(dir, bcutil.ToolInfo.CfgFilename), nil
}

func NewSchemaProfileMgr() (*SchemaProfileMgr, error) {
	filename, err := schemaProfileCfgFilename()
	if err != nil {
		return nil, err
	}

	return NewSchemaProfileMgrFile(filename)
}

// Creates a profile manager backed by the specified file.  A missing file is
// treated as an empty profile set.
func NewSchemaProfileMgrFile(filename string) (*SchemaProfileMgr, error) {
	spm := &SchemaProfileMgr{
		filename: filename,
		profiles: map[string]*SchemaProfile{},
	}

	if err := spm.Init(); err != nil {
		return nil, err
	}

	return spm, nil
}

func (spm *SchemaProfileMgr) Init() error {
	log.Debugf("Reading schema profiles from %s", spm.filename)
	blob, err := ioutil.ReadFile(spm.filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		} else {
			return util.ChildNewtError(err)
		}
	}

	var profiles []*SchemaProfile
	if err := json.Unmarshal(blob, &profiles); err != nil {
		return util.FmtNewtError("error reading schema profile "+
			"config (%s): %s", spm.filename, err.Error())
	}

	for _, p := range profiles {
		spm.profiles[p.Name] = p
	}

	return nil
}

func (spm *SchemaProfileMgr) GetSchemaProfileList() []*SchemaProfile {
	log.Debugf("Getting list of schema profiles")

	spList := make([]*SchemaProfile, 0, len(spm.profiles))
	for _, p := range spm.profiles {
		spList = append(spList, p)
	}

	sort.Slice(spList, func(i, j int) bool {
		return spList[i].Name < spList[j].Name
	})

	return spList
}

func (spm *SchemaProfileMgr) save() error {
	b, err := json.MarshalIndent(spm.GetSchemaProfileList(), "", "    ")
	if err != nil {
		return util.NewNewtError(err.Error())
	}

	if err := ioutil.WriteFile(spm.filename, b, 0644); err != nil {
		return util.ChildNewtError(err)
	}

	return nil
}

func (spm *SchemaProfileMgr) DeleteSchemaProfile(name string) error {
	if spm.profiles[name] == nil {
		return util.FmtNewtError("schema profile \"%s\" doesn't exist", name)
	}

	delete(spm.profiles, name)

	return spm.save()
}

// Adds or replaces a profile.  The profile is rejected if it does not
// describe a valid schema.
func (spm *SchemaProfileMgr) AddSchemaProfile(sp *SchemaProfile) error {
	if _, err := sp.Build(); err != nil {
		return util.FmtNewtError("invalid schema profile \"%s\": %s",
			sp.Name, err.Error())
	}

	spm.profiles[sp.Name] = sp

	return spm.save()
}

func (spm *SchemaProfileMgr) GetSchemaProfile(
	name string) (*SchemaProfile, error) {

	p := spm.profiles[name]
	if p == nil {
		return nil, util.FmtNewtError("schema profile \"%s\" doesn't exist",
			name)
	}

	return p, nil
}

var globalSchemaProfileMgr *SchemaProfileMgr

func GlobalSchemaProfileMgr() *SchemaProfileMgr {
	if globalSchemaProfileMgr == nil {
		panic("schema profile manager not initialized")
	}
	return globalSchemaProfileMgr
}

func InitGlobalSchemaProfileMgr() error {
	if globalSchemaProfileMgr != nil {
		return util.NewNewtError("schema profile manager initialized twice")
	}

	var err error
	globalSchemaProfileMgr, err = NewSchemaProfileMgr()
	if err != nil {
		return err
	}

	return nil
}
