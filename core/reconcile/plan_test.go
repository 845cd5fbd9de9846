package reconcile

import (
	"errors"
	"testing"

	"sheet-sync/core/schema"
	"sheet-sync/core/table"
	"sheet-sync/core/value"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productColumns() []schema.Column {
	return schema.DeriveColumns([]string{"_active", "_id", "Name*", "Price"})
}

func TestDecide(t *testing.T) {
	columns := productColumns()

	tests := []struct {
		name    string
		cells   []value.Cell
		want    ActionType
		id      string
		missing []string
	}{
		{"empty id", []value.Cell{true, "", "Widget", "10"}, ActionSkipMissingID, "", nil},
		{"nil id", []value.Cell{true, nil, "Widget", "10"}, ActionSkipMissingID, "", nil},
		{"active missing mandatory", []value.Cell{true, "p1", "", "10"}, ActionSkipMissingMandatory, "p1", []string{"Name"}},
		{"inactive", []value.Cell{false, "p2", "Gadget", "5"}, ActionDelete, "p2", nil},
		{"inactive missing mandatory is still deleted", []value.Cell{false, "p2", "", ""}, ActionDelete, "p2", nil},
		{"active string is not true", []value.Cell{"true", "p2", "Gadget", "5"}, ActionDelete, "p2", nil},
		{"active", []value.Cell{true, "p3", "Gizmo", "7"}, ActionUpsert, "p3", nil},
		{"numeric id", []value.Cell{true, int64(42), "Gizmo", ""}, ActionUpsert, "42", nil},
		{"short row", []value.Cell{true, "p4"}, ActionSkipMissingMandatory, "p4", []string{"Name"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, id, missing := Decide(tt.cells, columns)
			assert.Equal(t, tt.want, kind)
			assert.Equal(t, tt.id, id)
			assert.Equal(t, tt.missing, missing)
		})
	}
}

func TestPlanLocal(t *testing.T) {
	rows := table.FromCells([][]value.Cell{
		{true, "", "Widget", "10"},
		{true, "p1", "", "10"},
		{false, "p2", "Gadget", "5"},
		{true, "p3", "Gizmo", "7"},
	})

	actions := PlanLocal(rows, productColumns(), "products")
	require.Len(t, actions, 4)

	assert.Equal(t, Action{Type: ActionSkipMissingID, Row: 2}, actions[0])
	assert.Equal(t, Action{Type: ActionSkipMissingMandatory, Row: 3, ID: "p1", Missing: []string{"Name"}}, actions[1])
	assert.Equal(t, Action{Type: ActionDelete, Row: 4, ID: "p2", Path: "products/p2"}, actions[2])

	assert.Equal(t, ActionUpsert, actions[3].Type)
	assert.Equal(t, "products/p3", actions[3].Path)
	assert.Equal(t, value.Fields{"Name": value.String("Gizmo"), "Price": value.Integer(7)}, actions[3].Fields)

	assert.Equal(t, SyncCounters{Updated: 1, Deleted: 1, MissingID: 1, MissingMandatory: 1}, Summarize(actions))
}

func TestPlanLocal_SkipsUnsyncedAndEmptyCells(t *testing.T) {
	columns := schema.DeriveColumns([]string{"_active", "_id", "Name", "Notes~", "Stock"})
	rows := table.FromCells([][]value.Cell{{true, "p1", "Lamp", "internal", ""}})

	actions := PlanLocal(rows, columns, "products")
	require.Len(t, actions, 1)
	assert.Equal(t, value.Fields{"Name": value.String("Lamp")}, actions[0].Fields)
}

func TestLocalIDs(t *testing.T) {
	rows := table.FromCells([][]value.Cell{
		{true, "p1"},
		{true, int64(7)},
		{true, ""},
		{true},
	})

	ids := LocalIDs(rows, productColumns())
	assert.Equal(t, map[string]struct{}{"p1": {}, "7": {}, "": {}}, ids)

	assert.Empty(t, LocalIDs(rows, schema.DeriveColumns([]string{"Name"})))
}

func TestParseDirection(t *testing.T) {
	for in, want := range map[string]Direction{"": DirectionBoth, "both": DirectionBoth, "push": DirectionPush, "pull": DirectionPull} {
		got, err := ParseDirection(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseDirection("sideways")
	assert.Error(t, err)

	assert.True(t, DirectionPush.pushes())
	assert.False(t, DirectionPush.pulls())
	assert.True(t, DirectionPull.pulls())
	assert.False(t, DirectionPull.pushes())
}

func TestReportLines(t *testing.T) {
	report := &Report{
		Counters:  SyncCounters{Updated: 3, Deleted: 1, Added: 2, MissingID: 4, MissingMandatory: 5, Unsupported: 6},
		ViewerURL: "https://example.test/products",
	}

	assert.Equal(t, []string{
		"1 deleted",
		"2 added",
		"3 updated",
		"4 missing ID",
		"5 missing mandatory fields",
		"6 unsupported fields",
		"Open collection: https://example.test/products",
	}, report.Lines())

	report.DryRun = true
	report.ViewerURL = ""
	lines := report.Lines()
	assert.Equal(t, "dry run: no changes were made", lines[len(lines)-1])
}

func TestDocumentIdentity(t *testing.T) {
	assert.Equal(t, "op-1", Document{Name: "projects/p/databases/(default)/documents/products/op-1"}.Identity())
	assert.Equal(t, "op-1", Document{Name: "op-1"}.Identity())
	assert.Equal(t, "", Document{Name: "products/"}.Identity())
	assert.Equal(t, "products/op-1", DocumentPath("products", "op-1"))
}

func TestErrors(t *testing.T) {
	serr := &SchemaError{Missing: []string{"_id", "_active"}}
	assert.True(t, errors.Is(serr, ErrSchema))
	assert.Contains(t, serr.Error(), "_id, _active")

	cause := errors.New("unavailable")
	stErr := &StoreError{Phase: PhaseLocal, Op: "update", Path: "products/p1", Err: cause}
	assert.True(t, errors.Is(stErr, ErrStoreUnavailable))
	assert.True(t, errors.Is(stErr, cause))
	assert.Equal(t, "local_pass: update products/p1: unavailable", stErr.Error())
}

func TestConfigRetryPolicy(t *testing.T) {
	cfg := Config{Backend: BackendObjectStore, MaxRetries: 2, RetryBaseMillis: 50}
	assert.True(t, cfg.IsValidBackend())
	assert.Equal(t, RetryPolicy{MaxRetries: 2, Base: 50_000_000}, cfg.RetryPolicy())

	cfg = Config{Backend: "sheets", MaxRetries: -1}
	assert.False(t, cfg.IsValidBackend())
	assert.Equal(t, uint64(0), cfg.RetryPolicy().MaxRetries)
}
