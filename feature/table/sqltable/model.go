package sqltable

// TableName is the table holding every sheet.
const TableName = "sheet_rows"

// SheetRow is one stored row.
type SheetRow struct {
	ID     uint   `gorm:"primaryKey"`
	Sheet  string `gorm:"size:191;not null;uniqueIndex:idx_sheet_row"`
	RowNum int    `gorm:"column:row_num;not null;uniqueIndex:idx_sheet_row"`
	Cells  string `gorm:"type:text;not null"`
}

// TableName implements gorm's tabler.
func (SheetRow) TableName() string {
	return TableName
}
