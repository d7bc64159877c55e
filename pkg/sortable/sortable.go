// Package sortable provides the sort-state controller used by jobdeck list
// screens. It owns a single active sort key plus direction and produces a
// stably sorted view of a caller-supplied collection. The engine performs no
// I/O; rendering and data fetching belong to the caller.
package sortable

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Direction is the ordering applied to the active sort column.
type Direction string

const (
	DirectionNone Direction = "none"
	DirectionAsc  Direction = "asc"
	DirectionDesc Direction = "desc"
)

// Kind declares how a column's values compare. Declaring the kind avoids the
// classic inferred-comparison bug where a text column full of numeric-looking
// strings silently sorts numerically. KindAuto keeps the inferred behavior for
// callers that want it.
type Kind int

const (
	// KindAuto infers the comparison per value pair: numbers numerically,
	// ISO-date-like strings by timestamp, everything else case-insensitively.
	KindAuto Kind = iota
	KindString
	KindNumber
	KindTime
)

// Column describes one sortable field of a record collection. Columns are
// stable for the lifetime of a screen and are never mutated by the engine.
type Column struct {
	Key      string
	Title    string
	Sortable bool
	Kind     Kind
}

// ValueFunc looks up a record field by column key. Records are opaque to the
// engine beyond this lookup.
type ValueFunc[T any] func(rec T, key string) any

// Engine holds the sort state for one collection.
//
// Toggling the active key cycles asc -> desc -> none; toggling a different key
// starts over at asc. Unknown or unsortable keys are silently ignored so that
// clicking an arbitrary header can never break the screen.
type Engine[T any] struct {
	columns []Column
	value   ValueFunc[T]
	key     string
	dir     Direction
}

// caseInsensitive compares strings without regard to case, with a tie-break on
// the raw bytes so equal-but-for-case values still order deterministically.
var caseInsensitive = collate.New(language.Und, collate.IgnoreCase)

// New creates an engine over the given column set. The value function is
// required; a nil function yields an engine that treats every field as absent.
func New[T any](columns []Column, value ValueFunc[T]) *Engine[T] {
	return &Engine[T]{
		columns: columns,
		value:   value,
		dir:     DirectionNone,
	}
}

// Columns returns the column descriptors the engine was created with.
func (e *Engine[T]) Columns() []Column { return e.columns }

// State returns the active sort key and direction. The key is empty when no
// sort is applied.
func (e *Engine[T]) State() (string, Direction) {
	if e.dir == DirectionNone {
		return "", DirectionNone
	}
	return e.key, e.dir
}

// Icon reports the indicator for the given column key: the active direction
// for the current sort column, DirectionNone for every other key. Pure query,
// no side effects.
func (e *Engine[T]) Icon(key string) Direction {
	if key == e.key && e.dir != DirectionNone {
		return e.dir
	}
	return DirectionNone
}

// Toggle advances the sort state for key. Selecting a new sortable key starts
// at ascending; repeated toggles on the same key cycle asc -> desc -> none.
// Unknown and unsortable keys are no-ops.
func (e *Engine[T]) Toggle(key string) {
	col, ok := e.lookup(key)
	if !ok || !col.Sortable {
		return
	}

	if key != e.key || e.dir == DirectionNone {
		e.key = key
		e.dir = DirectionAsc
		return
	}

	switch e.dir {
	case DirectionAsc:
		e.dir = DirectionDesc
	case DirectionDesc:
		e.dir = DirectionNone
		e.key = ""
	}
}

// Set applies an explicit key and direction, the entry point for sort state
// arriving from query parameters rather than header clicks. Unknown or
// unsortable keys and DirectionNone both reset to input order.
func (e *Engine[T]) Set(key string, dir Direction) {
	col, ok := e.lookup(key)
	if !ok || !col.Sortable || dir == DirectionNone || (dir != DirectionAsc && dir != DirectionDesc) {
		e.Reset()
		return
	}
	e.key = key
	e.dir = dir
}

// Reset clears the sort state back to input order.
func (e *Engine[T]) Reset() {
	e.key = ""
	e.dir = DirectionNone
}

// Sort returns a sorted copy of rows according to the current state. With no
// active sort the copy preserves the original input order; the input slice is
// never reordered in place, so the caller's source order stays the ground
// truth across repeated toggles.
//
// The sort is stable: records with equal keys keep their relative input order
// in both directions. Absent values (nil, or values the column kind cannot
// interpret) sort after all present values regardless of direction.
func (e *Engine[T]) Sort(rows []T) []T {
	out := make([]T, len(rows))
	copy(out, rows)

	if e.dir == DirectionNone || e.key == "" {
		return out
	}

	col, ok := e.lookup(e.key)
	if !ok {
		return out
	}

	desc := e.dir == DirectionDesc
	sort.SliceStable(out, func(i, j int) bool {
		a := e.fieldOf(out[i])
		b := e.fieldOf(out[j])

		// Absent values stay last in both directions, so the direction flip
		// applies only to defined pairs.
		aAbsent := isAbsent(a, col.Kind)
		bAbsent := isAbsent(b, col.Kind)
		if aAbsent || bAbsent {
			return !aAbsent && bAbsent
		}

		c := compareDefined(a, b, col.Kind)
		if desc {
			c = -c
		}
		return c < 0
	})
	return out
}

func (e *Engine[T]) fieldOf(rec T) any {
	if e.value == nil {
		return nil
	}
	return e.value(rec, e.key)
}

func (e *Engine[T]) lookup(key string) (Column, bool) {
	for _, c := range e.columns {
		if c.Key == key {
			return c, true
		}
	}
	return Column{}, false
}

// compareDefined orders two present values; a before b when negative. Both
// arguments must have passed the isAbsent check for the column kind.
func compareDefined(a, b any, kind Kind) int {
	switch kind {
	case KindNumber:
		an, _ := toNumber(a)
		bn, _ := toNumber(b)
		return compareFloats(an, bn)
	case KindTime:
		at, _ := toTime(a)
		bt, _ := toTime(b)
		return at.Compare(bt)
	case KindString:
		return caseInsensitive.CompareString(toString(a), toString(b))
	default: // KindAuto: infer per pair, numbers first, then timestamps.
		if an, ok := toNumber(a); ok {
			if bn, ok := toNumber(b); ok {
				return compareFloats(an, bn)
			}
		}
		if at, ok := toTime(a); ok {
			if bt, ok := toTime(b); ok {
				return at.Compare(bt)
			}
		}
		return caseInsensitive.CompareString(toString(a), toString(b))
	}
}

func isAbsent(v any, kind Kind) bool {
	if v == nil {
		return true
	}
	switch kind {
	case KindNumber:
		_, ok := toNumber(v)
		return !ok
	case KindTime:
		_, ok := toTime(v)
		return !ok
	}
	return false
}

func compareFloats(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	}
	return 0, false
}

// timeLayouts covers the timestamp shapes the backend emits. Date-only strings
// are common in fixture data, so both forms parse.
var timeLayouts = []string{time.RFC3339, "2006-01-02"}

func toTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, true
	case string:
		for _, layout := range timeLayouts {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed, true
			}
		}
	}
	return time.Time{}, false
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
