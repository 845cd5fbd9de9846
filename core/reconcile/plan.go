package reconcile

import (
	"sheet-sync/core/convert"
	"sheet-sync/core/schema"
	"sheet-sync/core/table"
	"sheet-sync/core/utils"
	"sheet-sync/core/value"
)

// Decide applies the per-row policy. It returns the action type, the row's
// identity and, for ActionSkipMissingMandatory, the empty mandatory labels.
func Decide(cells []value.Cell, columns []schema.Column) (ActionType, string, []string) {
	view := convert.RowView(cells, columns)

	id := view[schema.IDLabel]
	if utils.IsEmpty(id) {
		return ActionSkipMissingID, "", nil
	}
	identity := utils.ToString(id)

	active := utils.IsTrue(view[schema.ActiveLabel])
	if active {
		var missing []string
		for _, label := range schema.MandatoryLabels(columns) {
			if utils.IsEmpty(view[label]) {
				missing = append(missing, label)
			}
		}
		if len(missing) > 0 {
			return ActionSkipMissingMandatory, identity, missing
		}
		return ActionUpsert, identity, nil
	}

	return ActionDelete, identity, nil
}

// PlanLocal plans the local pass. It performs no I/O.
func PlanLocal(rows []table.Row, columns []schema.Column, collection string) []Action {
	actions := make([]Action, 0, len(rows))
	for _, row := range rows {
		kind, id, missing := Decide(row.Cells, columns)
		action := Action{Type: kind, Row: row.Number, ID: id, Missing: missing}

		switch kind {
		case ActionDelete:
			action.Path = DocumentPath(collection, id)
		case ActionUpsert:
			action.Path = DocumentPath(collection, id)
			action.Fields = convert.RowToDocumentFields(row.Cells, columns)
		}
		actions = append(actions, action)
	}
	return actions
}

// LocalIDs collects the string form of every _id cell, empty ones included.
func LocalIDs(rows []table.Row, columns []schema.Column) map[string]struct{} {
	ids := make(map[string]struct{}, len(rows))
	idx, ok := schema.ColumnIndex(columns, schema.IDLabel)
	if !ok {
		return ids
	}
	for _, row := range rows {
		var cell value.Cell = ""
		if idx < len(row.Cells) {
			cell = row.Cells[idx]
		}
		ids[utils.ToString(cell)] = struct{}{}
	}
	return ids
}

// Summarize counts planned actions the way a pass would report them.
func Summarize(actions []Action) SyncCounters {
	var c SyncCounters
	for _, a := range actions {
		switch a.Type {
		case ActionSkipMissingID:
			c.MissingID++
		case ActionSkipMissingMandatory:
			c.MissingMandatory++
		case ActionDelete:
			c.Deleted++
		case ActionUpsert:
			c.Updated++
		}
	}
	return c
}
