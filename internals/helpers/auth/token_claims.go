// file: internals/helpers/auth/token_claims.go
package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Kunci Locals yang dihydrate oleh middleware AuthJWT.
const (
	LocUserID   = "user_id"   // string | uuid
	LocSchoolID = "school_id" // string UUID (tenant aktif)
	LocRole     = "role"      // string
)

func strLocal(c *fiber.Ctx, key string) string {
	v := c.Locals(key)
	if v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case uuid.UUID:
		return t.String()
	}
	return ""
}

// GetUserIDFromToken: identitas pelaku (dipakai sebagai recorded_by).
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	s := strLocal(c, LocUserID)
	if s == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "user_id tidak ditemukan di token")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "user_id tidak valid")
	}
	return id, nil
}

// GetSchoolIDFromToken: tenant scoping; semua query wajib difilter dengan ini.
func GetSchoolIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	s := strLocal(c, LocSchoolID)
	if s == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "school_id tidak ditemukan di token")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "school_id tidak valid")
	}
	return id, nil
}

func GetRole(c *fiber.Ctx) string {
	return strings.ToLower(strLocal(c, LocRole))
}
