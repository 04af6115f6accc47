package middleware

import (
	"github.com/gofiber/fiber/v2"

	"schoolku_backend/internals/constants"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

/* ==========================
   Gate kapabilitas di boundary API.
   Komponen inti (store/aggregator) tidak pernah cek role sendiri.
========================== */

func hasRole(role string, allowed []string) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

// IsSchoolAdmin: hanya admin/owner sekolah yang boleh lewat.
func IsSchoolAdmin(feature string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !hasRole(helperAuth.GetRole(c), constants.AdminAndAbove) {
			return fiber.NewError(fiber.StatusForbidden, constants.RoleErrorAdmin(feature))
		}
		return c.Next()
	}
}

// IsTeacherOrAbove: teacher/admin/owner (jalur penandaan kehadiran harian).
func IsTeacherOrAbove(feature string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !hasRole(helperAuth.GetRole(c), constants.TeacherAndAbove) {
			return fiber.NewError(fiber.StatusForbidden, constants.RoleErrorTeacher(feature))
		}
		return c.Next()
	}
}
