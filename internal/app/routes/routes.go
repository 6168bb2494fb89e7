package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/yigit/gradebook/internal/app/controllers"
	"github.com/yigit/gradebook/internal/app/models"
	"github.com/yigit/gradebook/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	dashboardController *controllers.DashboardController,
	leaveController *controllers.LeaveController,
	gradeController *controllers.GradeController,
	studentController *controllers.StudentController,
	healthController *controllers.HealthController,
	authMiddleware *middleware.AuthMiddleware,
	metrics *middleware.Metrics,
) {
	// --- Operational routes ---
	router.GET("/healthz", healthController.Health)
	router.GET("/metrics", metrics.Handler())

	pages := router.Group("")
	pages.Use(authMiddleware.LoadSession())

	// --- Public routes ---
	pages.GET("/", authController.Index)
	pages.POST("/login", authController.Login)
	pages.GET("/logout", authController.Logout)
	pages.GET("/register_student_page", authController.RegisterStudentPage)
	pages.POST("/register_student", authController.RegisterStudent)
	pages.GET("/register_admin_page", authController.RegisterAdminPage)
	pages.POST("/register_admin", authController.RegisterAdmin)

	// --- Student routes ---
	student := pages.Group("")
	student.Use(authMiddleware.RoleRequired(models.RoleStudent))
	{
		student.GET("/dashboard_student", dashboardController.StudentDashboard)
		student.POST("/submit_leave", leaveController.SubmitLeave)
	}

	// --- Admin routes ---
	admin := pages.Group("")
	admin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
	{
		admin.GET("/dashboard_admin", dashboardController.AdminDashboard)
		admin.GET("/leave_approval", leaveController.LeaveApproval)
		admin.POST("/approve_leave", leaveController.ApproveLeave)
		admin.GET("/input_grades", gradeController.InputGradesPage)
		admin.POST("/input_grades", gradeController.SubmitGrades)
		admin.GET("/registered_students", dashboardController.RegisteredStudents)
		admin.POST("/add_subject", gradeController.AddSubject)
		admin.POST("/add_student_account", studentController.AddStudentAccount)
		admin.GET("/add_student_page", studentController.AddStudentPage)
	}
}
