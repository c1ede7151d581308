package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/abhinand128/project-fyugp-course-allotment/internal/app/controllers"
	"github.com/abhinand128/project-fyugp-course-allotment/internal/app/models"
	"github.com/abhinand128/project-fyugp-course-allotment/internal/middleware"
)

// Controllers bundles every controller the router mounts
type Controllers struct {
	Auth       *controllers.AuthController
	Department *controllers.DepartmentController
	Student    *controllers.StudentController
	Course     *controllers.CourseController
	Batch      *controllers.BatchController
	Settings   *controllers.SettingsController
	Preference *controllers.PreferenceController
	Allocation *controllers.AllocationController
	Report     *controllers.ReportController
}

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	c Controllers,
	authMiddleware *middleware.AuthMiddleware,
	devMode bool,
) {
	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", c.Auth.Login)
		auth.POST("/refresh", c.Auth.RefreshToken)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", c.Auth.Logout)
		authenticated.POST("/auth/change-password", c.Auth.ChangePassword)

		// Reference data readable by any authenticated user
		authenticated.GET("/departments", c.Department.GetDepartments)
		authenticated.GET("/pathways", c.Student.GetPathways)
		authenticated.GET("/departments/:id", c.Department.GetDepartmentByID)
		authenticated.GET("/courses", c.Course.GetCourses)
		authenticated.GET("/courses/:id", c.Course.GetCourseByID)
		authenticated.GET("/batches", c.Batch.GetBatches)
		authenticated.GET("/batches/:id", c.Batch.GetBatchByID)

		// --- Student routes ---
		student := authenticated.Group("")
		student.Use(authMiddleware.RoleRequired(models.RoleStudent))
		{
			student.GET("/preferences/form", c.Preference.GetForm)
			student.POST("/preferences", c.Preference.Submit)
			student.GET("/preferences", c.Preference.GetOwn)
			student.GET("/allotments/me", c.Report.GetOwnAllotments)
		}

		// --- Admin routes ---
		admin := authenticated.Group("")
		admin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
		{
			admin.POST("/departments", c.Department.CreateDepartment)
			admin.PUT("/departments/:id", c.Department.UpdateDepartment)
			admin.DELETE("/departments/:id", c.Department.DeleteDepartment)

			admin.POST("/students", c.Student.CreateStudent)
			admin.GET("/students", c.Student.GetStudents)
			admin.GET("/students/:id", c.Student.GetStudentByID)
			admin.PUT("/students/:id", c.Student.UpdateStudent)
			admin.DELETE("/students/:id", c.Student.DeleteStudent)
			admin.POST("/students/:id/credential", c.Student.ProvisionCredential)

			admin.POST("/courses", c.Course.CreateCourse)
			admin.PUT("/courses/:id", c.Course.UpdateCourse)
			admin.DELETE("/courses/:id", c.Course.DeleteCourse)

			admin.POST("/batches", c.Batch.CreateBatch)
			admin.PUT("/batches/:id/status", c.Batch.SetBatchStatus)
			admin.DELETE("/batches/:id", c.Batch.DeleteBatch)

			admin.PUT("/settings", c.Settings.SaveSettings)
			admin.GET("/settings", c.Settings.GetSettings)
			admin.GET("/settings/:departmentId", c.Settings.GetSettingsByDepartment)

			admin.GET("/allocation/status", c.Allocation.Status)
			admin.GET("/allocation/incomplete", c.Allocation.Incomplete)
			admin.POST("/allocation/run", c.Allocation.Run)
			admin.DELETE("/allocation", c.Allocation.Clear)

			admin.GET("/reports/allotments", c.Report.GetReport)
			admin.GET("/reports/allotments/csv", c.Report.ExportCSV)

			if devMode {
				admin.POST("/preferences/dummy", c.Preference.GenerateDummy)
			}
		}
	}
}
