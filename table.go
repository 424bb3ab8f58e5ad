// Copyright 2026 Sauce Labs Inc., all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package randomized

import (
	"slices"
	"weak"
)

const minReapWatermark = 64

type tableEntry struct {
	thread weak.Pointer[Thread]
	frames []*Randomness
}

func (e *tableEntry) top() *Randomness {
	if len(e.frames) == 0 {
		return nil
	}
	return e.frames[len(e.frames)-1]
}

func (e *tableEntry) dead() bool {
	t := e.thread.Value()
	return t == nil || t.Exited()
}

// threadTable maps live threads to their frame stacks.
// Entries reference threads weakly and frames only carry owner IDs, so the
// table never keeps a terminated thread reachable. Dead entries are reaped
// whenever the table doubles in size, which bounds it by the number of live
// threads rather than by the number of threads ever seen.
//
// threadTable is not safe for concurrent use, the owning Context locks it.
type threadTable struct {
	entries   map[ThreadID]*tableEntry
	watermark int
}

func newThreadTable() *threadTable {
	return &threadTable{
		entries:   make(map[ThreadID]*tableEntry),
		watermark: minReapWatermark,
	}
}

func (tt *threadTable) get(id ThreadID) *tableEntry {
	return tt.entries[id]
}

// add inserts an empty entry for t and returns it with the number of entries reaped to make room.
func (tt *threadTable) add(t *Thread) (e *tableEntry, reaped int) {
	if len(tt.entries) >= tt.watermark {
		reaped = tt.reap()
		tt.watermark = max(minReapWatermark, 2*len(tt.entries))
	}

	e = &tableEntry{thread: weak.Make(t)}
	tt.entries[t.ID()] = e
	return e, reaped
}

func (tt *threadTable) reap() int {
	n := 0
	for id, e := range tt.entries {
		if e.dead() {
			delete(tt.entries, id)
			n++
		}
	}
	return n
}

func (tt *threadTable) len() int {
	return len(tt.entries)
}

// live returns sorted names of threads that are still running.
func (tt *threadTable) live() []string {
	var names []string
	for _, e := range tt.entries {
		if t := e.thread.Value(); t != nil && !t.Exited() {
			names = append(names, t.Name())
		}
	}
	slices.Sort(names)
	return names
}

func (tt *threadTable) clear() {
	clear(tt.entries)
	tt.watermark = minReapWatermark
}
