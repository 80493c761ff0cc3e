package domain

import "fmt"

// Table names
const (
	TableChildren     = "children"
	TableDisciplines  = "disciplines"
	TableGoalAreas    = "goal_areas"
	TableProgress     = "progress"
	TableSessionPlans = "session_plans"
	TableUsers        = "users"
)

// IDColumn is the surrogate key column of id-bearing tables
const IDColumn = "id"

// ColumnType is the declared type of a column
type ColumnType string

const (
	ColumnDate ColumnType = "date"
	ColumnInt  ColumnType = "int"
	ColumnText ColumnType = "text"
)

// Column is one declared column of a table
type Column struct {
	Name     string
	Required bool
	Type     ColumnType
}

// Schema is the ordered column list of a table
type Schema struct {
	Columns []Column
	Name    string
}

// HasID reports whether the table carries a surrogate id column
func (s Schema) HasID() bool {
	return len(s.Columns) > 0 && s.Columns[0].Name == IDColumn
}

// ColumnNames returns the header row for the table
func (s Schema) ColumnNames() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

// Column returns the declared column with the given name
func (s Schema) Column(name string) (Column, bool) {
	for _, c := range s.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// IsLookup reports whether the table is a name-only reference list
func (s Schema) IsLookup() bool {
	return len(s.Columns) == 1 && s.Columns[0].Name == "name"
}

func idCol() Column { return Column{Name: IDColumn, Type: ColumnInt} }

func text(name string) Column { return Column{Name: name, Type: ColumnText} }

func required(c Column) Column {
	c.Required = true
	return c
}

func date(name string) Column { return Column{Name: name, Type: ColumnDate} }

// Schemas declares every table known to the store, keyed by name
var Schemas = map[string]Schema{
	TableUsers: {
		Name: TableUsers,
		Columns: []Column{
			required(text("username")),
			required(text("password")),
			required(text("role")),
			text("child_link"),
		},
	},
	TableChildren: {
		Name: TableChildren,
		Columns: []Column{
			idCol(),
			required(text("child_name")),
			text("parent_username"),
			date("date_of_birth"),
		},
	},
	TableProgress: {
		Name: TableProgress,
		Columns: []Column{
			idCol(),
			required(date("date")),
			required(text("child_name")),
			text("discipline"),
			text("goal_area"),
			text("status"),
			text("notes"),
			text("media_path"),
		},
	},
	TableSessionPlans: {
		Name: TableSessionPlans,
		Columns: []Column{
			idCol(),
			required(date("date")),
			text("lead_staff"),
			text("support_staff"),
			text("warm_up"),
			text("learning_block"),
			text("regulation_break"),
			text("social_play"),
			text("closing_routine"),
			text("materials_needed"),
			text("internal_notes"),
		},
	},
	TableDisciplines: {
		Name:    TableDisciplines,
		Columns: []Column{required(text("name"))},
	},
	TableGoalAreas: {
		Name:    TableGoalAreas,
		Columns: []Column{required(text("name"))},
	},
}

// TableNames lists the declared tables in a stable order
var TableNames = []string{
	TableUsers,
	TableChildren,
	TableDisciplines,
	TableGoalAreas,
	TableProgress,
	TableSessionPlans,
}

// LookupSchema returns the declared schema of a table
func LookupSchema(name string) (Schema, error) {
	s, ok := Schemas[name]
	if !ok {
		return Schema{}, fmt.Errorf("%w: unknown table %q", ErrNotFound, name)
	}
	return s, nil
}
