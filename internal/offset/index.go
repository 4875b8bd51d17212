// Package offset lays the sequences of one assembly end to end, longest first,
// and maps each sequence name to the global coordinate of its local zero.
package offset

import (
	"errors"
	"fmt"
	"sort"
)

// End is the sentinel name whose offset is the total axis length.
const End = "end"

// ErrReservedName is returned when a length table names a sequence End.
var ErrReservedName = errors.New(`sequence name "end" is reserved`)

// Entry is one row of a length table.
type Entry struct {
	Name   string
	Length int
}

// Index is immutable after New.
type Index struct {
	offsets map[string]int
	lengths map[string]int
	order   []string // axis order, longest first
	total   int
}

// New sorts entries by length (descending, ties in input order) and assigns
// cumulative offsets. A repeated name keeps only its last entry.
func New(entries []Entry) (*Index, error) {
	last := make(map[string]int, len(entries))
	for i, e := range entries {
		if e.Name == End {
			return nil, ErrReservedName
		}
		if e.Length < 0 {
			return nil, fmt.Errorf("sequence %q: negative length %d", e.Name, e.Length)
		}
		last[e.Name] = i
	}
	uniq := make([]Entry, 0, len(last))
	for i, e := range entries {
		if last[e.Name] == i {
			uniq = append(uniq, e)
		}
	}
	sort.SliceStable(uniq, func(i, j int) bool { return uniq[i].Length > uniq[j].Length })

	idx := &Index{
		offsets: make(map[string]int, len(uniq)+1),
		lengths: make(map[string]int, len(uniq)),
		order:   make([]string, 0, len(uniq)),
	}
	cum := 0
	for _, e := range uniq {
		idx.offsets[e.Name] = cum
		idx.lengths[e.Name] = e.Length
		idx.order = append(idx.order, e.Name)
		cum += e.Length
	}
	idx.offsets[End] = cum
	idx.total = cum
	return idx, nil
}

// Lookup returns the offset of a real sequence. The End sentinel is not a
// sequence and reports false.
func (x *Index) Lookup(name string) (int, bool) {
	if name == End {
		return 0, false
	}
	off, ok := x.offsets[name]
	return off, ok
}

// Has reports whether name is a sequence of this assembly.
func (x *Index) Has(name string) bool {
	_, ok := x.Lookup(name)
	return ok
}

// Length returns the length recorded for name.
func (x *Index) Length(name string) (int, bool) {
	l, ok := x.lengths[name]
	return l, ok
}

// Total is the axis length; it equals the End sentinel's offset.
func (x *Index) Total() int { return x.total }

// Len is the number of sequences (the sentinel excluded).
func (x *Index) Len() int { return len(x.order) }

// Names returns the sequences in axis order.
func (x *Index) Names() []string { return append([]string(nil), x.order...) }

// Boundaries returns every sequence offset in axis order followed by the total,
// i.e. the positions where grid lines go.
func (x *Index) Boundaries() []int {
	out := make([]int, 0, len(x.order)+1)
	for _, n := range x.order {
		out = append(out, x.offsets[n])
	}
	return append(out, x.total)
}

// Offsets returns a copy of the full mapping including the End sentinel.
func (x *Index) Offsets() map[string]int {
	m := make(map[string]int, len(x.offsets))
	for k, v := range x.offsets {
		m[k] = v
	}
	return m
}
