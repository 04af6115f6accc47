// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/configs"
	"schoolku_backend/internals/middlewares"
	authMiddleware "schoolku_backend/internals/middlewares/auth"
	routeDetails "schoolku_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	// ===================== PUBLIC =====================
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/public")
	public.Get("/uptime", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"uptime": time.Since(startTime).String(),
		})
	})

	// ===================== PRIVATE (per sekolah) =====================
	// Semua rute domain: JWT wajib, scope sekolah dari klaim token.
	log.Println("[INFO] Setting up PRIVATE group (Auth + RoleCheck)...")
	private := app.Group("/api/a",
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret:              configs.JWTSecret,
			AllowCookieFallback: true,
		}),
	)

	log.Println("[INFO] Setting up AttendanceRoutes...")
	routeDetails.AttendanceTeacherRoutes(private, db)
	routeDetails.AttendanceAdminRoutes(private, db, middlewares.ReportRateLimiter())

	log.Println("[INFO] Setting up SchoolCatalogRoutes...")
	routeDetails.SchoolCatalogRoutes(private, db)

	log.Println("[SUCCESS] Semua route berhasil didaftarkan 🚀")
}
