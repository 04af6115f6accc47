package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	classController "schoolku_backend/internals/features/school/classes/controller"
	staffController "schoolku_backend/internals/features/school/staff/controller"
	studentController "schoolku_backend/internals/features/school/students/controller"
	featuresMiddleware "schoolku_backend/internals/middlewares/features"
)

/* ===============================
   Rute katalog sekolah: kelas, rombel, siswa, pegawai.
   Baca boleh teacher ke atas, tulis hanya admin.
=================================*/

func SchoolCatalogRoutes(r fiber.Router, db *gorm.DB) {
	classes := classController.NewClassController(db)
	students := studentController.NewStudentController(db)
	staff := staffController.NewStaffController(db)

	read := r.Group("/",
		featuresMiddleware.IsTeacherOrAbove("school_catalog"),
	)
	read.Get("/classes", classes.GetClasses)
	read.Get("/classes/:id/sections", classes.GetSections)
	read.Get("/students", students.GetStudents)
	read.Get("/staff", staff.GetStaff)

	write := r.Group("/",
		featuresMiddleware.IsSchoolAdmin("school_catalog"),
	)
	write.Post("/classes", classes.CreateClass)
	write.Post("/sections", classes.CreateSection)
	write.Post("/students", students.CreateStudent)
	write.Post("/staff", staff.CreateStaff)
}
