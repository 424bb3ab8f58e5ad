// Copyright 2026 Sauce Labs Inc., all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package randomized

import "strings"

// Scope groups threads that share one randomness lineage.
// Scopes form a parent-pointer tree, a context registered for a scope
// governs every descendant scope that has no context of its own.
type Scope struct {
	name   string
	parent *Scope

	// threads names root threads of the tree, only used on root scopes.
	threads siblings
}

var processScope = NewScope(nil, "process") //nolint:gochecknoglobals // process-wide root

// ProcessScope returns the root scope used for threads with no explicit scope.
func ProcessScope() *Scope {
	return processScope
}

// NewScope returns a scope with the given parent, nil parent makes a root scope.
func NewScope(parent *Scope, name string) *Scope {
	return &Scope{
		name:   name,
		parent: parent,
	}
}

func (s *Scope) Name() string {
	return s.name
}

func (s *Scope) Parent() *Scope {
	return s.parent
}

// Root returns the top of the scope chain.
func (s *Scope) Root() *Scope {
	for s.parent != nil {
		s = s.parent
	}
	return s
}

// String returns the slash separated path from the root scope.
func (s *Scope) String() string {
	var names []string
	for p := s; p != nil; p = p.parent {
		names = append(names, p.name)
	}
	var b strings.Builder
	for i := len(names) - 1; i >= 0; i-- {
		b.WriteString(names[i])
		if i > 0 {
			b.WriteByte('/')
		}
	}
	return b.String()
}
