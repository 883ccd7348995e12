package table

// Role declares the semantic meaning of a column. The loader uses roles
// to decide how to coerce raw cells, and later stages use them to pick
// which columns they operate on.
type Role string

const (
	RoleIdentifier Role = "identifier"
	RoleText       Role = "text"
	RoleContinuous Role = "numeric_continuous"
	RoleDiscrete   Role = "numeric_discrete"
	RoleNominal    Role = "categorical_nominal"
	RoleOrdinal    Role = "categorical_ordinal"
	RoleDate       Role = "date"
	RoleCurrency   Role = "currency"
	RoleBoolean    Role = "boolean"
	RoleTarget     Role = "target"
)

// IsNumeric reports whether the role carries numeric cells after load
func (r Role) IsNumeric() bool {
	return r == RoleContinuous || r == RoleDiscrete
}

// IsCategorical reports whether the role carries category strings
func (r Role) IsCategorical() bool {
	return r == RoleNominal || r == RoleOrdinal || r == RoleTarget
}

// Schema maps column names to their declared roles. Columns absent from
// the schema get their type inferred from content by the loader.
type Schema map[string]Role

// Role returns the declared role for a column, or "" if undeclared
func (s Schema) Role(column string) Role {
	if s == nil {
		return ""
	}
	return s[column]
}

// ColumnsWithRole returns the declared columns carrying the given role,
// filtered to the table's column order so results are deterministic.
func (s Schema) ColumnsWithRole(t *Table, role Role) []string {
	var out []string
	for _, c := range t.Columns {
		if s[c] == role {
			out = append(out, c)
		}
	}
	return out
}
