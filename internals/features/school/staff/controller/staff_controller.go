package controller

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/school/staff/dto"
	"schoolku_backend/internals/features/school/staff/model"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

type StaffController struct {
	DB *gorm.DB
}

func NewStaffController(db *gorm.DB) *StaffController {
	return &StaffController{DB: db}
}

var validate = validator.New()

// GET /staff?department=
func (ctrl *StaffController) GetStaff(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 20, 200)

	q := ctrl.DB.WithContext(c.UserContext()).
		Model(&model.StaffModel{}).
		Where("staff_school_id = ?", schoolID)

	if dept := c.Query("department"); dept != "" {
		q = q.Where("staff_department = ?", dept)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonDBError(c, err, "Gagal menghitung pegawai")
	}

	var rows []model.StaffModel
	if err := q.Order("staff_name ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonDBError(c, err, "Gagal mengambil daftar pegawai")
	}

	pg := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	pg.Count = len(rows)
	return helper.JsonList(c, "Daftar pegawai berhasil diambil", dto.FromStaffModels(rows), &pg)
}

// POST /staff
func (ctrl *StaffController) CreateStaff(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreateStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	row := model.StaffModel{
		StaffID:         uuid.New(),
		StaffSchoolID:   schoolID,
		StaffName:       req.StaffName,
		StaffDepartment: req.StaffDepartment,
		StaffIsActive:   true,
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Create(&row).Error; err != nil {
		log.Printf("[ERROR] gagal membuat pegawai: %v", err)
		return helper.JsonDBError(c, err, "Gagal membuat pegawai")
	}

	return helper.JsonCreated(c, "Pegawai berhasil dibuat", dto.FromStaffModel(row))
}
