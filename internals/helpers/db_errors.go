// file: internals/helpers/db_errors.go
package helper

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// IsUniqueViolation: cek error Postgres 23505 (unique_violation).
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}

// IsUnavailable: timeout / batal karena deadline; boleh di-retry oleh caller.
func IsUnavailable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		// 57014 = query_canceled (statement_timeout)
		return pqErr.Code == "57014"
	}
	return false
}

// JsonDBError: mapping standar error DB → HTTP.
// NotFound TIDAK lewat sini: pembacaan tanpa data mengembalikan koleksi kosong.
func JsonDBError(c *fiber.Ctx, err error, fallbackMsg string) error {
	switch {
	case IsUnavailable(err):
		return JsonError(c, fiber.StatusServiceUnavailable, "Database sedang sibuk, silakan coba lagi")
	case errors.Is(err, gorm.ErrRecordNotFound):
		return JsonError(c, fiber.StatusNotFound, fallbackMsg)
	default:
		return JsonError(c, fiber.StatusInternalServerError, fallbackMsg)
	}
}
