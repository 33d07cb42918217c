// Package output renders run events for the operator.
package output

import (
	"github.com/temirov/codeheader/internal/services/stream"
)

// StreamRenderer consumes events in order and writes them out.
// Flush is called once after the last event.
type StreamRenderer interface {
	Handle(event stream.Event) error
	Flush() error
}
