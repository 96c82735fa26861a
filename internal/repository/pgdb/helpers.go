package pgdb

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
)

// pgErrCode возвращает SQLSTATE ошибки PostgreSQL или пустую строку.
func pgErrCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}

func postgresDuplicate(err error) bool {
	return pgErrCode(err) == pgUniqueViolation
}

func postgresForeignKey(err error) bool {
	return pgErrCode(err) == pgForeignKeyViolation
}
