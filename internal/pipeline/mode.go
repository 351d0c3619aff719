package pipeline

import (
	"fmt"
	"strings"

	"github.com/grokify/changelogconductor/pkg/model"
)

// TargetLatest selects the most recent release in manual mode.
const TargetLatest = "latest"

// TargetAll selects batch reprocessing of every release.
const TargetAll = "all"

// Params are the raw mode-selection inputs from the process surface.
type Params struct {
	// EventName distinguishes workflow-call invocations from manual ones.
	EventName string

	// Version and ReleaseID identify a single release for automatic modes.
	Version   string
	ReleaseID int64

	// Target names a tag, "latest", or "all" for manual invocations.
	Target string

	// Tag is the legacy spelling of Target.
	Tag string
}

// Selection is a validated run mode with its resolved inputs. Version holds
// the target tag, or TargetLatest for later resolution against the store.
type Selection struct {
	Mode      model.RunMode
	Version   string
	ReleaseID int64
}

// ResolveMode validates mode-selection inputs and determines the run mode.
// Inconsistent inputs are rejected here, before any network activity.
func ResolveMode(p Params) (Selection, error) {
	if p.EventName == "workflow_call" {
		if p.Version == "" || p.ReleaseID == 0 {
			return Selection{}, fmt.Errorf("workflow-call mode requires both a version and a release ID")
		}
		return Selection{Mode: model.ModeWorkflowCall, Version: p.Version, ReleaseID: p.ReleaseID}, nil
	}

	if p.Target != "" {
		switch strings.ToLower(p.Target) {
		case TargetLatest:
			return Selection{Mode: model.ModeManual, Version: TargetLatest}, nil
		case TargetAll:
			return Selection{Mode: model.ModeBatch}, nil
		default:
			return Selection{Mode: model.ModeManual, Version: p.Target}, nil
		}
	}

	if p.Tag != "" {
		if strings.ToLower(p.Tag) == TargetAll {
			return Selection{Mode: model.ModeBatch}, nil
		}
		return Selection{Mode: model.ModeManual, Version: p.Tag}, nil
	}

	if p.ReleaseID != 0 {
		if p.Version == "" {
			return Selection{}, fmt.Errorf("auto-release mode requires a version")
		}
		return Selection{Mode: model.ModeAutoRelease, Version: p.Version, ReleaseID: p.ReleaseID}, nil
	}

	return Selection{}, fmt.Errorf("manual mode requires --target (or the legacy --tag)")
}
