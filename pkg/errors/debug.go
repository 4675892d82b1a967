package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	pgUniqueViolation = "23505"
	sqliteUniqueText  = "UNIQUE constraint failed: "
)

// ErrorDump flattens an error chain for logs. DB fields are filled from
// the first Postgres or SQLite driver error found in the chain.
type ErrorDump struct {
	TopMessage string `json:"top_message"`
	Code       Code   `json:"code,omitempty"`

	Chain []string `json:"chain,omitempty"`

	DBDriver     string `json:"db_driver,omitempty"`
	DBCode       string `json:"db_code,omitempty"`
	DBConstraint string `json:"db_constraint,omitempty"`
	DBTable      string `json:"db_table,omitempty"`
	DBColumn     string `json:"db_column,omitempty"`
	DBDetail     string `json:"db_detail,omitempty"`
	DBMessage    string `json:"db_message,omitempty"`

	UniqueViolation bool `json:"unique_violation,omitempty"`
}

func Dump(err error) ErrorDump {
	if err == nil {
		return ErrorDump{}
	}

	d := ErrorDump{TopMessage: err.Error()}
	if te := As(err); te != nil {
		d.Code = te.Code()
	}
	for e := err; e != nil; e = errors.Unwrap(e) {
		d.Chain = append(d.Chain, fmt.Sprintf("%T: %v", e, e))
	}

	var pgxErr *pgconn.PgError
	var pqErr *pq.Error
	var liteErr sqlite3.Error
	switch {
	case errors.As(err, &pgxErr):
		d.DBDriver = DriverPostgres
		d.DBCode = pgxErr.Code
		d.DBConstraint = pgxErr.ConstraintName
		d.DBTable = pgxErr.TableName
		d.DBColumn = pgxErr.ColumnName
		d.DBDetail = pgxErr.Detail
		d.DBMessage = pgxErr.Message
		d.UniqueViolation = pgxErr.Code == pgUniqueViolation
	case errors.As(err, &pqErr):
		d.DBDriver = DriverPostgres
		d.DBCode = string(pqErr.Code)
		d.DBConstraint = pqErr.Constraint
		d.DBTable = pqErr.Table
		d.DBColumn = pqErr.Column
		d.DBDetail = pqErr.Detail
		d.DBMessage = pqErr.Message
		d.UniqueViolation = d.DBCode == pgUniqueViolation
	case errors.As(err, &liteErr):
		d.DBDriver = DriverSQLite
		d.DBCode = fmt.Sprintf("%d", int(liteErr.ExtendedCode))
		d.DBMessage = liteErr.Error()
		d.UniqueViolation = liteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
		if d.UniqueViolation {
			d.DBTable, d.DBColumn, d.DBConstraint = parseSQLiteUnique(d.DBMessage)
		}
	}
	return d
}

// parseSQLiteUnique reads "UNIQUE constraint failed: table.col[, table.col2]".
// The constraint is reported as the comma-joined column list.
func parseSQLiteUnique(msg string) (table, column, constraint string) {
	idx := strings.Index(msg, sqliteUniqueText)
	if idx < 0 {
		return "", "", ""
	}
	constraint = strings.TrimSpace(msg[idx+len(sqliteUniqueText):])
	first, _, _ := strings.Cut(constraint, ",")
	table, column, ok := strings.Cut(strings.TrimSpace(first), ".")
	if !ok {
		return "", strings.TrimSpace(first), constraint
	}
	return table, column, constraint
}
