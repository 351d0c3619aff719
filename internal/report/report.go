// Package report renders progress and result reports. The pipeline emits
// structured events; sinks render them to the console or to side-channel
// files, keeping presentation out of the core logic.
package report

import "github.com/grokify/changelogconductor/pkg/model"

// EventType indicates the kind of progress event.
type EventType string

const (
	// EventBatchStart fires once before the first release of a batch run.
	EventBatchStart EventType = "batch_start"

	// EventRelease fires after each release is processed.
	EventRelease EventType = "release"

	// EventBatchComplete fires once after the last release of a batch run.
	EventBatchComplete EventType = "batch_complete"

	// EventRunComplete fires after a single-release run.
	EventRunComplete EventType = "run_complete"
)

// Event is one structured progress update.
type Event struct {
	Type    EventType
	Mode    model.RunMode
	Current int
	Total   int
	Outcome *model.ReleaseOutcome
	Stats   *model.BatchStats
	Batch   *model.BatchResult
	Run     *model.RunResult
}

// Sink consumes progress events.
type Sink interface {
	Emit(event Event)
}

// MultiSink fans events out to several sinks.
type MultiSink []Sink

// Emit forwards the event to every sink.
func (m MultiSink) Emit(event Event) {
	for _, s := range m {
		s.Emit(event)
	}
}

// NopSink discards all events.
type NopSink struct{}

// Emit discards the event.
func (NopSink) Emit(Event) {}
