package controller

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	classModel "schoolku_backend/internals/features/school/classes/model"
	"schoolku_backend/internals/features/school/students/dto"
	"schoolku_backend/internals/features/school/students/model"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

type StudentController struct {
	DB *gorm.DB
}

func NewStudentController(db *gorm.DB) *StudentController {
	return &StudentController{DB: db}
}

var validate = validator.New()

// GET /students?class_id=&section_id=
func (ctrl *StudentController) GetStudents(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 20, 200)

	q := ctrl.DB.WithContext(c.UserContext()).
		Model(&model.StudentModel{}).
		Where("student_school_id = ?", schoolID)

	if raw := c.Query("class_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "class_id tidak valid")
		}
		q = q.Where("student_class_id = ?", id)
	}
	if raw := c.Query("section_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "section_id tidak valid")
		}
		q = q.Where("student_section_id = ?", id)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonDBError(c, err, "Gagal menghitung siswa")
	}

	var rows []model.StudentModel
	if err := q.Order("student_name ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonDBError(c, err, "Gagal mengambil daftar siswa")
	}

	pg := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	pg.Count = len(rows)
	return helper.JsonList(c, "Daftar siswa berhasil diambil", dto.FromStudentModels(rows), &pg)
}

// POST /students
func (ctrl *StudentController) CreateStudent(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var parent classModel.ClassModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("class_id = ? AND class_school_id = ?", req.StudentClassID, schoolID).
		First(&parent).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Kelas tidak ditemukan")
		}
		return helper.JsonDBError(c, err, "Gagal memeriksa kelas")
	}

	row := model.StudentModel{
		StudentID:        uuid.New(),
		StudentSchoolID:  schoolID,
		StudentName:      req.StudentName,
		StudentClassID:   req.StudentClassID,
		StudentSectionID: req.StudentSectionID,
		StudentIsActive:  true,
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Create(&row).Error; err != nil {
		log.Printf("[ERROR] gagal membuat siswa: %v", err)
		return helper.JsonDBError(c, err, "Gagal membuat siswa")
	}

	return helper.JsonCreated(c, "Siswa berhasil dibuat", dto.FromStudentModel(row))
}
