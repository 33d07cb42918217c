package stream

import (
	"time"

	"github.com/temirov/codeheader/internal/types"
)

const SchemaVersion = 1

type EventKind string

const (
	EventKindStart     EventKind = "start"
	EventKindExtension EventKind = "extension"
	EventKindHeader    EventKind = "header"
	EventKindDirectory EventKind = "directory"
	EventKindFile      EventKind = "file"
	EventKindWarning   EventKind = "warning"
	EventKindError     EventKind = "error"
	EventKindSummary   EventKind = "summary"
	EventKindDone      EventKind = "done"
)

type Event struct {
	Version   int       `json:"version"`
	Kind      EventKind `json:"kind"`
	Path      string    `json:"path,omitempty"`
	EmittedAt time.Time `json:"emittedAt,omitempty"`

	Start     *StartEvent       `json:"start,omitempty"`
	Extension *ExtensionEvent   `json:"extension,omitempty"`
	Header    *HeaderEvent      `json:"header,omitempty"`
	Directory *DirectoryEvent   `json:"directory,omitempty"`
	File      *FileEvent        `json:"file,omitempty"`
	Message   *LogEvent         `json:"message,omitempty"`
	Err       *ErrorEvent       `json:"error,omitempty"`
	Summary   *types.RunSummary `json:"summary,omitempty"`
}

type StartEvent struct {
	Input  string       `json:"input"`
	Output string       `json:"output"`
	Action types.Action `json:"action"`
}

type ExtensionEvent struct {
	Extension string `json:"extension"`
}

type HeaderEvent struct {
	Path    string       `json:"path"`
	Action  types.Action `json:"action"`
	Content string       `json:"content"`
}

type DirectoryEvent struct {
	Source       string `json:"source"`
	Destination  string `json:"destination"`
	RelativePath string `json:"relativePath"`
	Depth        int    `json:"depth,omitempty"`
}

type FileEvent struct {
	Source       string        `json:"source"`
	Destination  string        `json:"destination"`
	RelativePath string        `json:"relativePath"`
	Depth        int           `json:"depth,omitempty"`
	Selected     bool          `json:"selected"`
	Outcome      types.Outcome `json:"outcome"`
	BytesWritten int64         `json:"bytesWritten"`
}

type LogEvent struct {
	Level   string `json:"level,omitempty"`
	Message string `json:"message"`
	Reason  string `json:"reason,omitempty"`
}

type ErrorEvent struct {
	Message string `json:"message"`
}
