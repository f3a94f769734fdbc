package model

// Assignment is one "column = value" pair of an UPDATE statement.
type Assignment struct {
	Column string
	Value  any
}

func appendField[T any](a []Assignment, column string, f Field[T]) []Assignment {
	if !f.Set {
		return a
	}
	return append(a, Assignment{Column: column, Value: f.Arg()})
}
