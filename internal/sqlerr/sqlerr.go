// Package sqlerr translates database driver errors into API errors.
//
// PostgreSQL reports failures as SQLSTATE codes; this package classifies
// them (unique violation, not-null violation...) and turns them into
// errs.HTTPError values with messages a client can show.
package sqlerr

import "fmt"

// Code is a driver-independent classification of a database error.
type Code int

const (
	// Other covers every SQLSTATE this package does not classify.
	Other Code = iota
	ForeignKeyViolation
	UniqueViolation
	NotNullViolation
	CheckViolation
	InvalidTextRepresentation
	NumericValueOutOfRange
)

func (c Code) String() string {
	switch c {
	case ForeignKeyViolation:
		return "foreign_key_violation"
	case UniqueViolation:
		return "unique_violation"
	case NotNullViolation:
		return "not_null_violation"
	case CheckViolation:
		return "check_violation"
	case InvalidTextRepresentation:
		return "invalid_text_representation"
	case NumericValueOutOfRange:
		return "numeric_value_out_of_range"
	default:
		return "other"
	}
}

// Severity mirrors the PostgreSQL message severity.
type Severity int

const (
	SeverityError Severity = iota
	SeverityFatal
	SeverityPanic
	SeverityWarning
	SeverityNotice
	SeverityDebug
	SeverityInfo
	SeverityLog
)

// Error is a classified database error. It keeps the original driver error
// reachable through Unwrap.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string
	Message        string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string
	driverErr      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s (SQLSTATE %s)", e.Code, e.Message, e.DatabaseCode)
}

func (e *Error) Unwrap() error {
	return e.driverErr
}

// MapCode classifies a SQLSTATE.
// See https://www.postgresql.org/docs/current/errcodes-appendix.html
func MapCode(sqlState string) Code {
	switch sqlState {
	case "23503":
		return ForeignKeyViolation
	case "23505":
		return UniqueViolation
	case "23502":
		return NotNullViolation
	case "23514":
		return CheckViolation
	case "22P02":
		return InvalidTextRepresentation
	case "22003":
		return NumericValueOutOfRange
	default:
		return Other
	}
}

// MapSeverity parses the severity string reported by the server.
func MapSeverity(severity string) Severity {
	switch severity {
	case "FATAL":
		return SeverityFatal
	case "PANIC":
		return SeverityPanic
	case "WARNING":
		return SeverityWarning
	case "NOTICE":
		return SeverityNotice
	case "DEBUG":
		return SeverityDebug
	case "INFO":
		return SeverityInfo
	case "LOG":
		return SeverityLog
	default:
		return SeverityError
	}
}
