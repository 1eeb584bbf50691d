package postgres

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"

	apperrors "github.com/yourusername/quizpang-api/internal/pkg/errors"
)

// SQLSTATE коды, которые переводятся в доменные ошибки
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	// класс 08 — ошибки соединения
	classConnectionException = "08"
)

// translateError переводит ошибку драйвера в доменную, сохраняя исходную в цепочке
func translateError(err error, op string) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", op, apperrors.ErrNotFound)
	case isUniqueViolation(err), isForeignKeyViolation(err):
		return fmt.Errorf("%s: %w: %v", op, apperrors.ErrConflict, err)
	case isConnectionError(err):
		return fmt.Errorf("%s: %w: %v", op, apperrors.ErrStorageUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// sqlState извлекает SQLSTATE из ошибок pgx и lib/pq
func sqlState(err error) string {
	// pgx/v5 driver (pgconn.PgError)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	// lib/pq driver
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// isUniqueViolation проверяет Postgres unique violation (23505) для pgconn и lib/pq драйверов
func isUniqueViolation(err error) bool {
	return sqlState(err) == codeUniqueViolation
}

// isForeignKeyViolation проверяет нарушение внешнего ключа (23503)
func isForeignKeyViolation(err error) bool {
	return sqlState(err) == codeForeignKeyViolation
}

func isConnectionError(err error) bool {
	if strings.HasPrefix(sqlState(err), classConnectionException) {
		return true
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	return errors.Is(err, driver.ErrBadConn)
}
