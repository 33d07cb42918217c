package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/temirov/codeheader/internal/services/stream"
)

type jsonStreamRenderer struct {
	encoder        *json.Encoder
	includeSummary bool
}

// NewJSONStreamRenderer writes every event as one JSON object per line.
func NewJSONStreamRenderer(stdout io.Writer, includeSummary bool) StreamRenderer {
	encoder := json.NewEncoder(stdout)
	encoder.SetEscapeHTML(false)
	return &jsonStreamRenderer{
		encoder:        encoder,
		includeSummary: includeSummary,
	}
}

func (renderer *jsonStreamRenderer) Handle(event stream.Event) error {
	if event.Kind == stream.EventKindSummary && !renderer.includeSummary {
		return nil
	}
	if err := renderer.encoder.Encode(event); err != nil {
		return fmt.Errorf("encode %s event: %w", event.Kind, err)
	}
	return nil
}

func (renderer *jsonStreamRenderer) Flush() error {
	return nil
}
