package stream

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/temirov/codeheader/internal/config"
	"github.com/temirov/codeheader/internal/mirror"
)

const warningLevel = "warning"

// Options configures a streamed run.
type Options struct {
	Configuration config.Configuration
	Logger        *zap.Logger
}

type emitter struct {
	ctx context.Context
	out chan<- Event
}

func newEmitter(ctx context.Context, out chan<- Event) *emitter {
	if ctx == nil {
		ctx = context.Background()
	}
	return &emitter{ctx: ctx, out: out}
}

func (e *emitter) send(event Event) error {
	if e.out == nil {
		return fmt.Errorf("stream: event channel is nil")
	}
	event.Version = SchemaVersion
	if event.EmittedAt.IsZero() {
		event.EmittedAt = time.Now().UTC()
	}
	select {
	case <-e.ctx.Done():
		return e.ctx.Err()
	case e.out <- event:
		return nil
	}
}

// StreamRun announces the configuration, mirrors the tree, and reports a summary.
// Events are sent on out in walk order; the walk stops at the first error.
func StreamRun(ctx context.Context, opts Options, out chan<- Event) error {
	configuration := opts.Configuration
	if configuration.InputDirectory == "" {
		return fmt.Errorf("stream: input directory is empty")
	}

	emitter := newEmitter(ctx, out)
	if err := emitter.send(Event{
		Kind: EventKindStart,
		Path: configuration.InputDirectory,
		Start: &StartEvent{
			Input:  configuration.InputDirectory,
			Output: configuration.OutputDirectory,
			Action: configuration.Action,
		},
	}); err != nil {
		return err
	}
	for _, extension := range configuration.Extensions {
		if err := emitter.send(Event{Kind: EventKindExtension, Extension: &ExtensionEvent{Extension: extension}}); err != nil {
			return err
		}
	}
	if err := emitter.send(Event{
		Kind: EventKindHeader,
		Path: configuration.HeaderFile,
		Header: &HeaderEvent{
			Path:    configuration.HeaderFile,
			Action:  configuration.Action,
			Content: string(configuration.HeaderContent),
		},
	}); err != nil {
		return err
	}

	summary := newSummaryTracker()
	handler := func(evt mirror.Event) error {
		switch evt.Kind {
		case mirror.EventDirectory:
			summary.directory()
			return emitter.send(Event{
				Kind: EventKindDirectory,
				Path: evt.Destination,
				Directory: &DirectoryEvent{
					Source:       evt.Source,
					Destination:  evt.Destination,
					RelativePath: evt.RelativePath,
					Depth:        evt.Depth,
				},
			})
		case mirror.EventFile:
			summary.file(evt.Outcome, evt.BytesWritten)
			return emitter.send(Event{
				Kind: EventKindFile,
				Path: evt.Destination,
				File: &FileEvent{
					Source:       evt.Source,
					Destination:  evt.Destination,
					RelativePath: evt.RelativePath,
					Depth:        evt.Depth,
					Selected:     evt.Selected,
					Outcome:      evt.Outcome,
					BytesWritten: evt.BytesWritten,
				},
			})
		case mirror.EventSkipped:
			summary.skipped()
			return emitter.send(Event{
				Kind:    EventKindWarning,
				Path:    evt.Source,
				Message: &LogEvent{Level: warningLevel, Message: evt.Source, Reason: evt.Reason},
			})
		default:
			return nil
		}
	}

	if walkError := mirror.Run(ctx, mirror.Options{Configuration: configuration, Logger: opts.Logger}, handler); walkError != nil {
		_ = emitter.send(Event{Kind: EventKindError, Path: configuration.InputDirectory, Err: &ErrorEvent{Message: walkError.Error()}})
		return walkError
	}

	result := summary.result()
	if err := emitter.send(Event{Kind: EventKindSummary, Path: configuration.OutputDirectory, Summary: &result}); err != nil {
		return err
	}
	return emitter.send(Event{Kind: EventKindDone, Path: configuration.OutputDirectory})
}
