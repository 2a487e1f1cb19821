package diagnostics

import (
	"fmt"
	"sort"
)

// Bag collects the diagnostics of one compilation unit in report order.
// It is not safe for concurrent use: a unit is analyzed by one goroutine.
type Bag struct {
	File      string
	MaxErrors int // 0 means unlimited

	errors  []*DiagnosticError
	seen    map[string]bool
	dropped int
}

// NewBag creates an empty bag for file.
func NewBag(file string) *Bag {
	return &Bag{File: file, seen: make(map[string]bool)}
}

// Report records err unless an identical diagnostic (same position, code and
// message) was already recorded or the error cap is reached.
func (b *Bag) Report(err *DiagnosticError) {
	if err == nil {
		return
	}
	if err.File == "" {
		err.File = b.File
	}
	if b.seen == nil {
		b.seen = make(map[string]bool)
	}
	key := fmt.Sprintf("%d:%d:%s:%s", err.Token.Line, err.Token.Column, err.Code, err.Message)
	if b.seen[key] {
		return
	}
	if b.MaxErrors > 0 && len(b.errors) >= b.MaxErrors {
		b.dropped++
		return
	}
	b.seen[key] = true
	b.errors = append(b.errors, err)
}

// Errors returns the diagnostics in the order they were reported.
func (b *Bag) Errors() []*DiagnosticError {
	return append([]*DiagnosticError(nil), b.errors...)
}

// Sorted returns the diagnostics ordered by line, then column. Diagnostics
// at the same position keep their report order.
func (b *Bag) Sorted() []*DiagnosticError {
	result := b.Errors()
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Token.Line != result[j].Token.Line {
			return result[i].Token.Line < result[j].Token.Line
		}
		return result[i].Token.Column < result[j].Token.Column
	})
	return result
}

func (b *Bag) HasErrors() bool { return len(b.errors) > 0 }
func (b *Bag) Len() int        { return len(b.errors) }

// Dropped is the number of diagnostics discarded by MaxErrors.
func (b *Bag) Dropped() int { return b.dropped }

// Codes lists the codes in report order; handy in tests.
func (b *Bag) Codes() []ErrorCode {
	codes := make([]ErrorCode, len(b.errors))
	for i, e := range b.errors {
		codes[i] = e.Code
	}
	return codes
}
