package diagnostics

import (
	"encoding/json"
	"io"

	"github.com/google/uuid"
)

// Report is the machine-readable form of one unit's diagnostics, shaped
// like the LSP publishDiagnostics payload.
type Report struct {
	Unit        uuid.UUID    `json:"unit"`
	File        string       `json:"file,omitempty"`
	Diagnostics []ReportItem `json:"diagnostics"`
	Dropped     int          `json:"dropped,omitempty"`
}

type ReportItem struct {
	Code     string `json:"code"`
	Category string `json:"category"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Message  string `json:"message"`
	Help     string `json:"help,omitempty"`
	Note     string `json:"note,omitempty"`
}

// NewReport builds a report for the unit identified by id.
func NewReport(id uuid.UUID, bag *Bag) *Report {
	r := &Report{Unit: id, File: bag.File, Diagnostics: make([]ReportItem, 0, bag.Len()), Dropped: bag.Dropped()}
	for _, e := range bag.Sorted() {
		r.Diagnostics = append(r.Diagnostics, ReportItem{
			Code:     string(e.Code),
			Category: e.Code.Name(),
			Line:     e.Token.Line,
			Column:   e.Token.Column,
			Message:  e.Message,
			Help:     e.Help,
			Note:     e.Note,
		})
	}
	return r
}

// WriteJSON encodes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
