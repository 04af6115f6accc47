package controller

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	analyticsService "schoolku_backend/internals/features/attendance/analytics/service"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

type AnalyticsController struct {
	DB        *gorm.DB
	Analytics *analyticsService.AnalyticsService
}

func NewAnalyticsController(db *gorm.DB) *AnalyticsController {
	return &AnalyticsController{
		DB:        db,
		Analytics: analyticsService.NewAnalyticsService(db),
	}
}

var validate = validator.New()

/* ===============================
   GET /attendance/enterprise/analytics
   Query: start_date, end_date (wajib, YYYY-MM-DD), class_id (opsional)
=================================*/

func (ctrl *AnalyticsController) GetAnalytics(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	start, err := helper.ParseDateYMD(c.Query("start_date"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "start_date tidak valid (format YYYY-MM-DD)")
	}
	end, err := helper.ParseDateYMD(c.Query("end_date"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "end_date tidak valid (format YYYY-MM-DD)")
	}
	if end.Before(start) {
		return helper.JsonError(c, fiber.StatusBadRequest, "end_date tidak boleh sebelum start_date")
	}

	var classID *uuid.UUID
	if raw := c.Query("class_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "class_id tidak valid")
		}
		classID = &id
	}

	result, err := ctrl.Analytics.Build(c.UserContext(), schoolID, start, end, classID)
	if err != nil {
		log.Printf("[ERROR] gagal menghitung analitik kehadiran: %v", err)
		return helper.JsonDBError(c, err, "Gagal menghitung analitik kehadiran")
	}

	return helper.JsonOK(c, "Analitik kehadiran berhasil dihitung", result)
}

/* ===============================
   POST /attendance/enterprise/recompute
   Body: { start_date, end_date }: terapkan ulang aturan saat ini
   ke record check-in dalam rentang tersebut.
=================================*/

type RecomputeRequest struct {
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
}

func (ctrl *AnalyticsController) Recompute(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var req RecomputeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	start, err := helper.ParseDateYMD(req.StartDate)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "start_date tidak valid (format YYYY-MM-DD)")
	}
	end, err := helper.ParseDateYMD(req.EndDate)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "end_date tidak valid (format YYYY-MM-DD)")
	}
	if end.Before(start) {
		return helper.JsonError(c, fiber.StatusBadRequest, "end_date tidak boleh sebelum start_date")
	}

	scanned, updated, err := ctrl.Analytics.Recompute(c.UserContext(), schoolID, start, end)
	if err != nil {
		log.Printf("[ERROR] gagal recompute status kehadiran: %v", err)
		return helper.JsonDBError(c, err, "Gagal menghitung ulang status kehadiran")
	}

	return helper.JsonOK(c, "Status kehadiran dihitung ulang", fiber.Map{
		"scanned": scanned,
		"updated": updated,
	})
}
