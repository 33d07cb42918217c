// Package types defines the cross-package constants and values used by the codeheader CLI.
package types

// Action selects what a run does to the header of selected files.
type Action string

const (
	ActionAdd    Action = "add"
	ActionRemove Action = "remove"
)

// Outcome describes what happened to one file.
type Outcome string

const (
	OutcomeCopied        Outcome = "copied"
	OutcomeAdded         Outcome = "added"
	OutcomeRemoved       Outcome = "removed"
	OutcomeHeaderMissing Outcome = "header_missing"
)

const (
	FormatRaw  = "raw"
	FormatJSON = "json"
)

// RunSummary captures aggregate information about a finished run.
type RunSummary struct {
	Directories   int   `json:"directories"`
	Files         int   `json:"files"`
	Copied        int   `json:"copied"`
	Added         int   `json:"added"`
	Removed       int   `json:"removed"`
	HeaderMissing int   `json:"headerMissing"`
	Skipped       int   `json:"skipped"`
	BytesWritten  int64 `json:"bytesWritten"`
}

// Record adds one processed file to the summary.
func (summary *RunSummary) Record(outcome Outcome, bytesWritten int64) {
	summary.Files++
	summary.BytesWritten += bytesWritten
	switch outcome {
	case OutcomeCopied:
		summary.Copied++
	case OutcomeAdded:
		summary.Added++
	case OutcomeRemoved:
		summary.Removed++
	case OutcomeHeaderMissing:
		summary.HeaderMissing++
	}
}

// Warnings reports how many recoverable problems the run met.
func (summary RunSummary) Warnings() int {
	return summary.HeaderMissing + summary.Skipped
}
