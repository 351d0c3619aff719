package report

import (
	"encoding/json"
	"fmt"
	"os"
)

// JSONSink writes the final run or batch result as indented JSON to a file,
// for machine consumption. Progress events are ignored.
type JSONSink struct {
	path string
}

// NewJSONSink creates a sink writing the final result to path.
func NewJSONSink(path string) *JSONSink {
	return &JSONSink{path: path}
}

// Emit writes the result file on completion events.
func (j *JSONSink) Emit(event Event) {
	if j.path == "" {
		return
	}

	var payload any
	switch event.Type {
	case EventRunComplete:
		payload = event.Run
	case EventBatchComplete:
		payload = event.Batch
	default:
		return
	}
	if payload == nil {
		return
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to marshal result: %v\n", err)
		return
	}

	if err := os.WriteFile(j.path, data, 0600); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to write result file: %v\n", err)
	}
}
