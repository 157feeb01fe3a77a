package models

import "time"

// LinkColumn is the name of the output column carrying the source page URL
const LinkColumn = "Link"

// RequiredColumns are the holdings-table headers looked up on every fund page
var RequiredColumns = []string{
	"Stock Invested in",
	"Sector",
	"Value(Mn)",
	"% of Total Holdings",
	"1M Change",
	"1Y Highest Holding",
	"1Y Lowest Holding",
	"Quantity",
	"1M Change in Qty",
}

// Schema describes the ordered CSV output and which page columns feed it
type Schema struct {
	// Columns is the CSV header; every Row has exactly len(Columns) fields
	Columns []string
	// Required lists the page headers whose cells are copied into a Row
	Required []string
	// LinkColumn names the column that receives the page URL
	LinkColumn string
}

// DefaultSchema returns the holdings schema: the link column followed by RequiredColumns
func DefaultSchema() Schema {
	cols := make([]string, 0, len(RequiredColumns)+1)
	cols = append(cols, LinkColumn)
	cols = append(cols, RequiredColumns...)

	required := make([]string, len(RequiredColumns))
	copy(required, RequiredColumns)

	return Schema{
		Columns:    cols,
		Required:   required,
		LinkColumn: LinkColumn,
	}
}

// Header returns a copy of the column names for writing the CSV header row
func (s Schema) Header() []string {
	h := make([]string, len(s.Columns))
	copy(h, s.Columns)
	return h
}

// IsRequired reports whether name is one of the extracted page columns
func (s Schema) IsRequired(name string) bool {
	for _, r := range s.Required {
		if r == name {
			return true
		}
	}
	return false
}

// Row is one scraped holding, aligned to a Schema
type Row []string

// Summary reports the outcome of a scrape run
type Summary struct {
	Links      int           `json:"links"`
	Processed  int           `json:"processed"`
	Skipped    int           `json:"skipped"`
	Failed     int           `json:"failed"`
	Rows       int           `json:"rows"`
	OutputPath string        `json:"output_path,omitempty"`
	StartedAt  time.Time     `json:"started_at"`
	Duration   time.Duration `json:"duration"`
}

// FetchMode selects the page fetching engine
type FetchMode string

const (
	ModeStatic FetchMode = "static"
	ModeSPA    FetchMode = "spa"
)
