package controller

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/configs"
	analyticsService "schoolku_backend/internals/features/attendance/analytics/service"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

/* ===============================
   Export laporan kehadiran.
   Payload analitik dikirim ke renderer eksternal (PDF/Excel),
   hasil binary diteruskan apa adanya ke klien.
=================================*/

type ReportController struct {
	DB        *gorm.DB
	Analytics *analyticsService.AnalyticsService
	Client    *http.Client
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{
		DB:        db,
		Analytics: analyticsService.NewAnalyticsService(db),
		Client:    &http.Client{Timeout: 30 * time.Second},
	}
}

var formatContentTypes = map[string]string{
	"pdf":   "application/pdf",
	"excel": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

type rendererPayload struct {
	Format    string                  `json:"format"`
	SchoolID  uuid.UUID               `json:"school_id"`
	StartDate string                  `json:"start_date"`
	EndDate   string                  `json:"end_date"`
	Analytics analyticsService.Result `json:"analytics"`
}

// GET /reports/attendance?start_date&end_date&format=pdf|excel
func (ctrl *ReportController) ExportAttendance(c *fiber.Ctx) error {
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

	format := c.Query("format", "pdf")
	contentType, ok := formatContentTypes[format]
	if !ok {
		return helper.JsonError(c, fiber.StatusBadRequest, "format harus pdf atau excel")
	}

	if configs.ReportRendererURL == "" {
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "Layanan render laporan belum dikonfigurasi")
	}

	result, err := ctrl.Analytics.Build(c.UserContext(), schoolID, start, end, nil)
	if err != nil {
		log.Printf("[ERROR] gagal menyiapkan data laporan: %v", err)
		return helper.JsonDBError(c, err, "Gagal menyiapkan data laporan")
	}

	body, err := sonic.Marshal(rendererPayload{
		Format:    format,
		SchoolID:  schoolID,
		StartDate: start.Format(helper.DateLayout),
		EndDate:   end.Format(helper.DateLayout),
		Analytics: result,
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyusun payload laporan")
	}

	req, err := http.NewRequestWithContext(c.Context(), http.MethodPost, configs.ReportRendererURL, bytes.NewReader(body))
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyiapkan permintaan render")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", contentType)

	resp, err := ctrl.Client.Do(req)
	if err != nil {
		log.Printf("[ERROR] renderer laporan tidak dapat dihubungi: %v", err)
		return helper.JsonError(c, fiber.StatusBadGateway, "Layanan render laporan tidak dapat dihubungi")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[ERROR] renderer laporan menolak permintaan: status %d", resp.StatusCode)
		return helper.JsonError(c, fiber.StatusBadGateway, "Layanan render laporan gagal memproses")
	}

	blob, err := io.ReadAll(resp.Body)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadGateway, "Gagal membaca hasil render laporan")
	}

	ext := "pdf"
	if format == "excel" {
		ext = "xlsx"
	}
	filename := fmt.Sprintf("laporan-kehadiran-%s-sd-%s.%s",
		start.Format(helper.DateLayout), end.Format(helper.DateLayout), ext)

	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(blob)
}
