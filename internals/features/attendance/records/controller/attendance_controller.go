package controller

import (
	"context"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/configs"
	alertService "schoolku_backend/internals/features/attendance/alerts/service"
	analyticsService "schoolku_backend/internals/features/attendance/analytics/service"
	"schoolku_backend/internals/features/attendance/records/dto"
	recordModel "schoolku_backend/internals/features/attendance/records/model"
	"schoolku_backend/internals/features/attendance/records/service"
	ruleService "schoolku_backend/internals/features/attendance/rules/service"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

/* ===============================
   Controller & Constructor (gaya sama)
=============================== */

type AttendanceController struct {
	DB      *gorm.DB
	Records *service.RecordService
	Rules   *ruleService.RuleService
	Alerts  *alertService.AlertService
}

func NewAttendanceController(db *gorm.DB) *AttendanceController {
	return &AttendanceController{
		DB:      db,
		Records: service.NewRecordService(db),
		Rules:   ruleService.NewRuleService(db),
		Alerts:  alertService.NewAlertService(db, alertService.NewWebhookSender(configs.NotifyWebhookURL)),
	}
}

// parse query umum: ?date=YYYY-MM-DD&type=staff|student&class_id&section_id&department
func parseListQuery(c *fiber.Ctx) (time.Time, recordModel.SubjectKind, service.QueryFilters, error) {
	date, err := helper.ParseDateYMD(c.Query("date"))
	if err != nil {
		return time.Time{}, "", service.QueryFilters{}, fiber.NewError(fiber.StatusBadRequest, "Query date wajib (YYYY-MM-DD)")
	}

	kind := recordModel.SubjectKind(c.Query("type"))
	if !kind.Valid() {
		return time.Time{}, "", service.QueryFilters{}, fiber.NewError(fiber.StatusBadRequest, "Query type wajib (staff|student)")
	}

	var f service.QueryFilters
	if raw := c.Query("class_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return time.Time{}, "", service.QueryFilters{}, fiber.NewError(fiber.StatusBadRequest, "class_id tidak valid")
		}
		f.ClassID = &id
	}
	if raw := c.Query("section_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return time.Time{}, "", service.QueryFilters{}, fiber.NewError(fiber.StatusBadRequest, "section_id tidak valid")
		}
		f.SectionID = &id
	}
	if raw := c.Query("department"); raw != "" {
		f.Department = &raw
	}

	return date, kind, f, nil
}

/* ===============================
   READ
=============================== */

// GET /attendance?date&type&class_id?&section_id?&department?
// Hari tanpa record = array kosong, BUKAN 404 (clean slate di UI).
func (ctrl *AttendanceController) GetAttendance(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	date, kind, filters, err := parseListQuery(c)
	if err != nil {
		return err
	}

	records, err := ctrl.Records.Query(c.UserContext(), schoolID, date, date, kind, filters)
	if err != nil {
		log.Printf("[ERROR] query attendance: %v", err)
		return helper.JsonDBError(c, err, "Gagal mengambil data kehadiran")
	}

	return helper.JsonOK(c, "ok", dto.FromAttendanceRecordModels(records))
}

// GET /attendance/map?date&type: peta sparse subject_id → record, untuk
// seed state UI per hari. "Belum dicatat" = key tidak ada, bukan absent.
func (ctrl *AttendanceController) GetAttendanceMap(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	date, kind, filters, err := parseListQuery(c)
	if err != nil {
		return err
	}

	records, err := ctrl.Records.Query(c.UserContext(), schoolID, date, date, kind, filters)
	if err != nil {
		log.Printf("[ERROR] get attendance map: %v", err)
		return helper.JsonDBError(c, err, "Gagal mengambil data kehadiran")
	}

	// peta sparse: hari tanpa data = objek kosong (clean slate), bukan 404
	return helper.JsonOK(c, "ok", dto.MapBySubject(records))
}

// GET /attendance/summary?date&type&class_id?&section_id?&department?
func (ctrl *AttendanceController) GetAttendanceSummary(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	date, kind, filters, err := parseListQuery(c)
	if err != nil {
		return err
	}

	records, err := ctrl.Records.Query(c.UserContext(), schoolID, date, date, kind, filters)
	if err != nil {
		log.Printf("[ERROR] query summary: %v", err)
		return helper.JsonDBError(c, err, "Gagal menghitung ringkasan")
	}

	sum := analyticsService.Summarize(records)
	resp := dto.DailySummaryResponse{
		Total:   sum.Total,
		Present: sum.Present,
		Absent:  sum.Absent,
		Late:    sum.Late,
		Leave:   sum.Leave,
	}
	if kind == recordModel.SubjectStaff {
		resp.ByDepartment = analyticsService.SummarizeByDepartment(records)
	}
	return helper.JsonOK(c, "ok", resp)
}

/* ===============================
   WRITE (bulk upsert)
=============================== */

// POST /attendance/bulk {date, type, records:[...]}
// Idempotent: batch yang sama dua kali menghasilkan state tersimpan yang sama.
func (ctrl *AttendanceController) BulkUpsertAttendance(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	recordedBy, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.BulkUpsertRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	date, err := helper.ParseDateYMD(req.Date)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Tanggal tidak valid (YYYY-MM-DD)")
	}

	rule, err := ctrl.Rules.Get(c.UserContext(), schoolID)
	if err != nil {
		log.Printf("[ERROR] ambil rule: %v", err)
		return helper.JsonDBError(c, err, "Gagal mengambil aturan kehadiran")
	}

	rows, err := ctrl.Records.BulkUpsert(c.UserContext(), schoolID, date, req.Type, req.Records, recordedBy, &rule)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		log.Printf("[ERROR] bulk upsert attendance: %v", err)
		return helper.JsonDBError(c, err, "Gagal menyimpan kehadiran")
	}

	// evaluasi alert streak di belakang; tidak pernah memblokir response
	subjectIDs := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		subjectIDs = append(subjectIDs, r.AttendanceRecordSubjectID)
	}
	go func() {
		bg, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		ctrl.Alerts.EvaluateAfterWrite(bg, schoolID, req.Type, date, subjectIDs, &rule)
	}()

	return helper.JsonOK(c, "Kehadiran berhasil disimpan", dto.FromAttendanceRecordModels(rows))
}
