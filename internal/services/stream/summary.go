package stream

import (
	"github.com/temirov/codeheader/internal/types"
)

type summaryTracker struct {
	summary types.RunSummary
}

func newSummaryTracker() *summaryTracker {
	return &summaryTracker{}
}

func (tracker *summaryTracker) directory() {
	tracker.summary.Directories++
}

func (tracker *summaryTracker) file(outcome types.Outcome, bytesWritten int64) {
	tracker.summary.Record(outcome, bytesWritten)
}

func (tracker *summaryTracker) skipped() {
	tracker.summary.Skipped++
}

func (tracker *summaryTracker) result() types.RunSummary {
	return tracker.summary
}
