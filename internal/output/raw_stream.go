package output

import (
	"fmt"
	"io"

	"github.com/temirov/codeheader/internal/services/stream"
	"github.com/temirov/codeheader/internal/types"
)

type rawStreamRenderer struct {
	stdout         io.Writer
	includeSummary bool
	summary        *types.RunSummary
}

// NewRawStreamRenderer prints one human-readable line per event. Error events are
// not printed; the failed run returns the error to the caller.
func NewRawStreamRenderer(stdout io.Writer, includeSummary bool) StreamRenderer {
	return &rawStreamRenderer{
		stdout:         stdout,
		includeSummary: includeSummary,
	}
}

func (renderer *rawStreamRenderer) Handle(event stream.Event) error {
	switch event.Kind {
	case stream.EventKindExtension:
		if event.Extension != nil {
			return renderer.println(FormatExtensionLine(event.Extension.Extension))
		}
	case stream.EventKindHeader:
		if event.Header != nil {
			return renderer.println(FormatHeaderBlock(event.Header.Action, event.Header.Content))
		}
	case stream.EventKindFile:
		if event.File != nil {
			return renderer.println(FormatFileLine(event.File.Outcome, event.File.Source, event.File.Destination))
		}
	case stream.EventKindWarning:
		if event.Message != nil {
			return renderer.println(FormatSkippedLine(event.Message.Message, event.Message.Reason))
		}
	case stream.EventKindSummary:
		if event.Summary != nil {
			summary := *event.Summary
			renderer.summary = &summary
		}
	}
	return nil
}

func (renderer *rawStreamRenderer) Flush() error {
	if !renderer.includeSummary || renderer.summary == nil || renderer.stdout == nil {
		return nil
	}
	return renderer.println(FormatSummaryLine(renderer.summary))
}

func (renderer *rawStreamRenderer) println(line string) error {
	if renderer.stdout == nil {
		return nil
	}
	_, err := fmt.Fprintln(renderer.stdout, line)
	return err
}
