package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/attendance/alerts/model"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

type AttendanceAlertController struct {
	DB *gorm.DB
}

func NewAttendanceAlertController(db *gorm.DB) *AttendanceAlertController {
	return &AttendanceAlertController{DB: db}
}

// GET /attendance/enterprise/alerts?status=pending|sent
func (ctrl *AttendanceAlertController) GetAlerts(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.WithContext(c.UserContext()).
		Model(&model.AttendanceAlertModel{}).
		Where("attendance_alert_school_id = ?", schoolID)

	switch c.Query("status") {
	case "pending":
		q = q.Where("attendance_alert_sent_at IS NULL")
	case "sent":
		q = q.Where("attendance_alert_sent_at IS NOT NULL")
	case "":
	default:
		return helper.JsonError(c, fiber.StatusBadRequest, "status harus pending atau sent")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonDBError(c, err, "Gagal menghitung alert")
	}

	var rows []model.AttendanceAlertModel
	if err := q.Order("attendance_alert_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonDBError(c, err, "Gagal mengambil daftar alert")
	}

	pg := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	pg.Count = len(rows)
	return helper.JsonList(c, "Daftar alert berhasil diambil", rows, &pg)
}
