package output

import (
	"io"

	"github.com/schollz/progressbar/v3"

	"github.com/temirov/codeheader/internal/services/stream"
)

const progressDescription = "Processing"

type progressRenderer struct {
	inner StreamRenderer
	bar   *progressbar.ProgressBar
}

// NewProgressRenderer wraps inner and advances a progress bar written to writer
// for every file or warning event. totalFiles sizes the bar; a non-positive total renders a spinner.
func NewProgressRenderer(inner StreamRenderer, writer io.Writer, totalFiles int) StreamRenderer {
	if totalFiles <= 0 {
		totalFiles = -1
	}
	bar := progressbar.NewOptions(totalFiles,
		progressbar.OptionSetWriter(writer),
		progressbar.OptionSetDescription(progressDescription),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionClearOnFinish(),
	)
	return &progressRenderer{inner: inner, bar: bar}
}

func (renderer *progressRenderer) Handle(event stream.Event) error {
	if err := renderer.inner.Handle(event); err != nil {
		return err
	}
	if event.Kind == stream.EventKindFile || event.Kind == stream.EventKindWarning {
		// The total is counted before the walk and may be exceeded.
		_ = renderer.bar.Add(1)
	}
	return nil
}

func (renderer *progressRenderer) Flush() error {
	if err := renderer.bar.Finish(); err != nil {
		return err
	}
	return renderer.inner.Flush()
}
