package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	alertController "schoolku_backend/internals/features/attendance/alerts/controller"
	analyticsController "schoolku_backend/internals/features/attendance/analytics/controller"
	attendanceController "schoolku_backend/internals/features/attendance/records/controller"
	ruleController "schoolku_backend/internals/features/attendance/rules/controller"
	reportController "schoolku_backend/internals/features/reports/controller"
	featuresMiddleware "schoolku_backend/internals/middlewares/features"
)

/* ===============================
   Rute kehadiran.
   - teacher: baca & catat kehadiran harian
   - admin: aturan, analitik, recompute, alert, export laporan
=================================*/

func AttendanceTeacherRoutes(r fiber.Router, db *gorm.DB) {
	attendance := attendanceController.NewAttendanceController(db)

	grp := r.Group("/attendance",
		featuresMiddleware.IsTeacherOrAbove("attendance"),
	)
	grp.Get("/", attendance.GetAttendance)
	grp.Get("/map", attendance.GetAttendanceMap)
	grp.Get("/summary", attendance.GetAttendanceSummary)
	grp.Post("/bulk", attendance.BulkUpsertAttendance)
}

func AttendanceAdminRoutes(r fiber.Router, db *gorm.DB, reportLimiter fiber.Handler) {
	rules := ruleController.NewAttendanceRuleController(db)
	analytics := analyticsController.NewAnalyticsController(db)
	alerts := alertController.NewAttendanceAlertController(db)
	reports := reportController.NewReportController(db)

	grp := r.Group("/attendance/enterprise",
		featuresMiddleware.IsSchoolAdmin("attendance"),
	)
	grp.Get("/rules", rules.GetRules)
	grp.Put("/rules", rules.UpdateRules)
	grp.Get("/analytics", analytics.GetAnalytics)
	grp.Post("/recompute", analytics.Recompute)
	grp.Get("/alerts", alerts.GetAlerts)

	// Export menyentuh renderer eksternal, dilindungi rate limiter sendiri.
	rep := r.Group("/reports",
		featuresMiddleware.IsSchoolAdmin("reports"),
		reportLimiter,
	)
	rep.Get("/attendance", reports.ExportAttendance)
}
