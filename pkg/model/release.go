package model

// ReleaseTarget is a release as read from the external release store.
// The body is always fully replaced on publish; ExistingBody is consulted
// only to decide whether a release was already optimized, never for merging.
type ReleaseTarget struct {
	Tag          string  `json:"tag"`
	StorageID    int64   `json:"storageId"`
	ExistingBody string  `json:"existingBody,omitempty"`
	Repo         RepoRef `json:"repo"`
}

// RunMode selects how releases are targeted for changelog generation.
type RunMode string

const (
	// ModeWorkflowCall processes a single release identified by an explicit
	// version and release ID, as passed from a calling workflow.
	ModeWorkflowCall RunMode = "workflow_call"

	// ModeAutoRelease is the legacy automatic trigger: release ID plus version.
	ModeAutoRelease RunMode = "auto_release"

	// ModeManual regenerates the changelog for a named tag or "latest".
	ModeManual RunMode = "manual"

	// ModeBatch reprocesses every release in the repository.
	ModeBatch RunMode = "batch"
)
