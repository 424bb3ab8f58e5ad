// Copyright 2026 Sauce Labs Inc., all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package cobrautil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// DescribeFormat selects how a run configuration is rendered.
type DescribeFormat int

const (
	Plain DescribeFormat = iota
	JSON
	YAML
)

func (f DescribeFormat) String() string {
	switch f {
	case Plain:
		return "plain"
	case JSON:
		return "json"
	case YAML:
		return "yaml"
	default:
		return fmt.Sprintf("DescribeFormat(%d)", int(f))
	}
}

// DescribeFlags renders the values of visible flags in fs.
func DescribeFlags(fs *pflag.FlagSet, format DescribeFormat) (string, error) {
	return RunDescriber{Format: format}.Describe(fs)
}

// RunDescriber renders the configuration a run actually used.
// Resolved values replace flag values of the same name, so a master seed
// minted for an empty --seed is printed instead of the empty flag.
type RunDescriber struct {
	Format     DescribeFormat
	ShowHidden bool
	Resolved   map[string]any
}

func (d RunDescriber) Describe(fs *pflag.FlagSet) (string, error) {
	values := d.values(fs)

	switch d.Format {
	case Plain:
		var sb strings.Builder
		for _, name := range slices.Sorted(maps.Keys(values)) {
			fmt.Fprintf(&sb, "%s=%v\n", name, values[name])
		}
		return sb.String(), nil
	case JSON:
		b, err := json.Marshal(values)
		return string(b), err
	case YAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(values); err != nil {
			return "", err
		}
		if err := enc.Close(); err != nil {
			return "", err
		}
		return buf.String(), nil
	default:
		return "", fmt.Errorf("unknown describe format: %s", d.Format)
	}
}

// Lines renders the plain description with every line prefixed by prefix.
func (d RunDescriber) Lines(fs *pflag.FlagSet, prefix string) []string {
	d.Format = Plain
	s, _ := d.Describe(fs) //nolint:errcheck // plain rendering cannot fail
	if s == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	for i := range lines {
		lines[i] = prefix + lines[i]
	}
	return lines
}

func (d RunDescriber) values(fs *pflag.FlagSet) map[string]any {
	values := make(map[string]any, len(d.Resolved))
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Name == "help" || (f.Hidden && !d.ShowHidden) {
			return
		}
		values[f.Name] = d.flagValue(f)
	})
	maps.Copy(values, d.Resolved)
	return values
}

func (d RunDescriber) flagValue(f *pflag.Flag) any {
	if sv, ok := f.Value.(pflag.SliceValue); ok {
		if d.Format == Plain {
			return strings.Join(sv.GetSlice(), ",")
		}
		return sv.GetSlice()
	}
	if f.Value.Type() == "bool" {
		return f.Value.String() == "true"
	}
	return f.Value.String()
}
