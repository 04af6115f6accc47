package controller

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/school/classes/dto"
	"schoolku_backend/internals/features/school/classes/model"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

type ClassController struct {
	DB *gorm.DB
}

func NewClassController(db *gorm.DB) *ClassController {
	return &ClassController{DB: db}
}

var validate = validator.New()

// GET /classes
func (ctrl *ClassController) GetClasses(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.WithContext(c.UserContext()).
		Model(&model.ClassModel{}).
		Where("class_school_id = ?", schoolID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonDBError(c, err, "Gagal menghitung kelas")
	}

	var rows []model.ClassModel
	if err := q.Order("class_name ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonDBError(c, err, "Gagal mengambil daftar kelas")
	}

	pg := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	pg.Count = len(rows)
	return helper.JsonList(c, "Daftar kelas berhasil diambil", dto.FromClassModels(rows), &pg)
}

// POST /classes
func (ctrl *ClassController) CreateClass(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	row := model.ClassModel{
		ClassID:       uuid.New(),
		ClassSchoolID: schoolID,
		ClassName:     req.ClassName,
		ClassIsActive: true,
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Create(&row).Error; err != nil {
		log.Printf("[ERROR] gagal membuat kelas: %v", err)
		return helper.JsonDBError(c, err, "Gagal membuat kelas")
	}

	return helper.JsonCreated(c, "Kelas berhasil dibuat", dto.FromClassModel(row))
}

// GET /classes/:id/sections
func (ctrl *ClassController) GetSections(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	classID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "class_id tidak valid")
	}

	var rows []model.SectionModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("section_school_id = ? AND section_class_id = ?", schoolID, classID).
		Order("section_name ASC").
		Find(&rows).Error; err != nil {
		return helper.JsonDBError(c, err, "Gagal mengambil daftar rombel")
	}

	return helper.JsonOK(c, "Daftar rombel berhasil diambil", dto.FromSectionModels(rows))
}

// POST /sections
func (ctrl *ClassController) CreateSection(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreateSectionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	// Rombel wajib menempel ke kelas milik sekolah yang sama.
	var parent model.ClassModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("class_id = ? AND class_school_id = ?", req.SectionClassID, schoolID).
		First(&parent).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Kelas tidak ditemukan")
		}
		return helper.JsonDBError(c, err, "Gagal memeriksa kelas")
	}

	row := model.SectionModel{
		SectionID:       uuid.New(),
		SectionSchoolID: schoolID,
		SectionClassID:  req.SectionClassID,
		SectionName:     req.SectionName,
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Create(&row).Error; err != nil {
		log.Printf("[ERROR] gagal membuat rombel: %v", err)
		return helper.JsonDBError(c, err, "Gagal membuat rombel")
	}

	return helper.JsonCreated(c, "Rombel berhasil dibuat", dto.FromSectionModel(row))
}
