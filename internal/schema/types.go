package schema

// Column describes one catalog column of a table.
type Column struct {
	Name       string
	SourceType string // catalog DATA_TYPE, e.g. "varchar", "character varying"
	Required   bool   // IS_NULLABLE = 'NO'
}

// Map is an insertion-ordered mapping from table name to its columns.
// The zero value is empty and ready to use.
type Map struct {
	order   []string
	columns map[string][]Column
}

// NewMap returns an empty Map.
func NewMap() *Map {
	return &Map{columns: make(map[string][]Column)}
}

// Add appends col to table, registering table on first sight.
func (m *Map) Add(table string, col Column) {
	if m.columns == nil {
		m.columns = make(map[string][]Column)
	}
	if _, ok := m.columns[table]; !ok {
		m.order = append(m.order, table)
	}
	m.columns[table] = append(m.columns[table], col)
}

// Tables returns table names in the order they were first added.
func (m *Map) Tables() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Columns returns the columns of table, in catalog order.
func (m *Map) Columns(table string) []Column {
	return m.columns[table]
}

// Has reports whether table is present.
func (m *Map) Has(table string) bool {
	_, ok := m.columns[table]
	return ok
}

// Len returns the number of tables.
func (m *Map) Len() int {
	return len(m.order)
}

// Each calls fn for every table in insertion order, stopping at the first error.
func (m *Map) Each(fn func(table string, cols []Column) error) error {
	for _, t := range m.order {
		if err := fn(t, m.columns[t]); err != nil {
			return err
		}
	}
	return nil
}
