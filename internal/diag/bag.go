package diag

import (
	"sort"
)

// Bag is an ordered, bounded collection of diagnostics.
type Bag struct {
	items   []Diagnostic
	max     int
	dropped int
	errored bool
}

// NewBag creates a bag that keeps at most max diagnostics (max <= 0 means unbounded).
func NewBag(max int) *Bag {
	return &Bag{max: max}
}

// Add appends d unless the bag is full. An error still marks the bag as
// failed when it is dropped, so HasErrors stays truthful under the cap.
func (b *Bag) Add(d Diagnostic) bool {
	if d.Severity >= SevError {
		b.errored = true
	}
	if b.max > 0 && len(b.items) >= b.max {
		b.dropped++
		return false
	}
	b.items = append(b.items, d)
	return true
}

// HasErrors reports whether an error-severity diagnostic was ever added.
func (b *Bag) HasErrors() bool {
	return b.errored
}

// HasWarnings reports whether a warning or worse is stored.
func (b *Bag) HasWarnings() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevWarning {
			return true
		}
	}
	return false
}

func (b *Bag) Len() int {
	return len(b.items)
}

// Dropped is the number of diagnostics rejected by the cap.
func (b *Bag) Dropped() int {
	return b.dropped
}

// Items returns the stored diagnostics in report order. Do not modify.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Merge appends every diagnostic of other, growing the cap if needed.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	if b.max > 0 && len(b.items)+len(other.items) > b.max {
		b.max = len(b.items) + len(other.items)
	}
	b.items = append(b.items, other.items...)
	b.errored = b.errored || other.errored
	b.dropped += other.dropped
}

// Sort orders by file, start, end, severity (desc) and code.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.Primary.File != dj.Primary.File {
			return di.Primary.File < dj.Primary.File
		}
		if di.Primary.Start != dj.Primary.Start {
			return di.Primary.Start < dj.Primary.Start
		}
		if di.Primary.End != dj.Primary.End {
			return di.Primary.End < dj.Primary.End
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		return di.Code < dj.Code
	})
}

// Dedup drops repeated diagnostics with the same code and primary span.
func (b *Bag) Dedup() {
	type key struct {
		code Code
		span string
	}
	seen := make(map[key]struct{}, len(b.items))
	out := b.items[:0]
	for _, d := range b.items {
		k := key{d.Code, d.Primary.String()}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, d)
	}
	b.items = out
}
