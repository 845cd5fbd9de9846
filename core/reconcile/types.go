package reconcile

import (
	"fmt"
	"time"

	"sheet-sync/core/value"
)

// Direction selects which halves of a pass run.
type Direction string

const (
	// DirectionBoth runs the local pass and then the remote pass.
	DirectionBoth Direction = "both"
	// DirectionPush only writes table rows to the store.
	DirectionPush Direction = "push"
	// DirectionPull only appends missing documents to the table.
	DirectionPull Direction = "pull"
)

// ParseDirection maps a user-supplied string to a Direction. Empty means both.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case "", DirectionBoth:
		return DirectionBoth, nil
	case DirectionPush:
		return DirectionPush, nil
	case DirectionPull:
		return DirectionPull, nil
	default:
		return "", fmt.Errorf("unknown direction %q (want both, push or pull)", s)
	}
}

func (d Direction) pushes() bool { return d == "" || d == DirectionBoth || d == DirectionPush }
func (d Direction) pulls() bool  { return d == "" || d == DirectionBoth || d == DirectionPull }

// Phase names a step of a pass.
type Phase string

const (
	PhaseValidating Phase = "validating"
	PhaseLocal      Phase = "local_pass"
	PhaseRemote     Phase = "remote_pass"
	PhaseReporting  Phase = "reporting"
	PhaseDone       Phase = "done"
)

// SyncCounters accumulates the outcome of one pass.
type SyncCounters struct {
	// Updated counts documents upserted from active rows.
	Updated int `json:"updated"`

	// Deleted counts documents deleted for inactive rows.
	Deleted int `json:"deleted"`

	// Added counts rows appended from remote documents.
	Added int `json:"added"`

	// MissingID counts rows skipped for an empty _id.
	MissingID int `json:"missing_id"`

	// MissingMandatory counts active rows skipped for an empty mandatory cell.
	MissingMandatory int `json:"missing_mandatory"`

	// Unsupported counts remote documents skipped because a field could not be
	// rendered as a cell.
	Unsupported int `json:"unsupported"`
}

// ActionType is the planned outcome for one row.
type ActionType string

const (
	// ActionSkipMissingID skips a row without an identity.
	ActionSkipMissingID ActionType = "skip_missing_id"
	// ActionSkipMissingMandatory skips an active row with an empty mandatory cell.
	ActionSkipMissingMandatory ActionType = "skip_missing_mandatory"
	// ActionDelete deletes the row's document.
	ActionDelete ActionType = "delete"
	// ActionUpsert merges the row's fields into its document.
	ActionUpsert ActionType = "upsert"
)

// Action is one planned row outcome.
type Action struct {
	// Type specifies what happens to the row.
	Type ActionType `json:"type"`

	// Row is the table row number.
	Row int `json:"row"`

	// ID is the row's identity, empty for ActionSkipMissingID.
	ID string `json:"id,omitempty"`

	// Path is the document path, set for deletes and upserts.
	Path string `json:"path,omitempty"`

	// Missing lists the empty mandatory columns for ActionSkipMissingMandatory.
	Missing []string `json:"missing,omitempty"`

	// Fields is the upsert payload.
	Fields value.Fields `json:"-"`
}

// Options controls a single pass.
type Options struct {
	// Direction selects the local pass, the remote pass or both.
	Direction Direction

	// DryRun plans and counts without writing to the store or the table.
	DryRun bool

	// Collection overrides the collection derived from the table name.
	Collection string
}

// Report is the result of a completed pass.
type Report struct {
	Collection string        `json:"collection"`
	Direction  Direction     `json:"direction"`
	DryRun     bool          `json:"dry_run"`
	Counters   SyncCounters  `json:"counters"`
	ViewerURL  string        `json:"viewer_url,omitempty"`
	Duration   time.Duration `json:"duration"`
}

// Lines renders the report as human-readable summary lines.
func (r *Report) Lines() []string {
	c := r.Counters
	lines := []string{
		fmt.Sprintf("%d deleted", c.Deleted),
		fmt.Sprintf("%d added", c.Added),
		fmt.Sprintf("%d updated", c.Updated),
		fmt.Sprintf("%d missing ID", c.MissingID),
		fmt.Sprintf("%d missing mandatory fields", c.MissingMandatory),
		fmt.Sprintf("%d unsupported fields", c.Unsupported),
	}
	if r.DryRun {
		lines = append(lines, "dry run: no changes were made")
	}
	if r.ViewerURL != "" {
		lines = append(lines, "Open collection: "+r.ViewerURL)
	}
	return lines
}
