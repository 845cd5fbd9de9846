package table

const (
	SourceCSV = "csv"
	SourceSQL = "sql"
)

// Config selects and locates the local table.
type Config struct {
	// Source is the table backend (csv, sql).
	Source string `mapstructure:"source" default:"csv"`
	// Path is the CSV file path, used by the csv source.
	Path string `mapstructure:"path" default:"sheet.csv"`
	// Name is the sheet name. The csv source defaults it to the file name.
	Name string `mapstructure:"name" default:""`
}

// IsValidSource checks if the configured source is known.
func (c Config) IsValidSource() bool {
	switch c.Source {
	case SourceCSV, SourceSQL:
		return true
	default:
		return false
	}
}
