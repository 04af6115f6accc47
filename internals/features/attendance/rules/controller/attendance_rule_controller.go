package controller

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/attendance/rules/dto"
	"schoolku_backend/internals/features/attendance/rules/service"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

type AttendanceRuleController struct {
	DB    *gorm.DB
	Rules *service.RuleService
}

func NewAttendanceRuleController(db *gorm.DB) *AttendanceRuleController {
	return &AttendanceRuleController{DB: db, Rules: service.NewRuleService(db)}
}

// GET /attendance/enterprise/rules
func (ctrl *AttendanceRuleController) GetRules(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	rule, err := ctrl.Rules.Get(c.UserContext(), schoolID)
	if err != nil {
		log.Printf("[ERROR] ambil rule: %v", err)
		return helper.JsonDBError(c, err, "Gagal mengambil aturan kehadiran")
	}
	return helper.JsonOK(c, "ok", dto.FromAttendanceRuleModel(rule))
}

// PUT /attendance/enterprise/rules
// Atomic: satu field invalid → seluruh update ditolak, rule lama utuh.
func (ctrl *AttendanceRuleController) UpdateRules(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.UpdateAttendanceRuleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	rule, err := ctrl.Rules.Update(c.UserContext(), schoolID, &req)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		log.Printf("[ERROR] update rule: %v", err)
		return helper.JsonDBError(c, err, "Gagal memperbarui aturan kehadiran")
	}
	return helper.JsonUpdated(c, "Aturan kehadiran diperbarui", dto.FromAttendanceRuleModel(rule))
}
