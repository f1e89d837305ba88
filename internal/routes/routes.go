package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ethicraft/club-portal/internal/attendance"
	"github.com/ethicraft/club-portal/internal/config"
	"github.com/ethicraft/club-portal/internal/controllers"
	"github.com/ethicraft/club-portal/internal/identity"
	"github.com/ethicraft/club-portal/internal/middleware"
	"github.com/ethicraft/club-portal/internal/quiz"
	"github.com/ethicraft/club-portal/internal/reports"
	"github.com/ethicraft/club-portal/internal/sessions"
	"github.com/ethicraft/club-portal/internal/store"
	"github.com/ethicraft/club-portal/internal/students"
)

// Register wires storage, engines and controllers onto the router. The
// limiter guards the unauthenticated write paths (logins, registration,
// check-in).
func Register(r *gin.Engine, db *gorm.DB, cfg *config.Config, limiter gin.HandlerFunc) error {
	st := store.New(db)

	ident, err := identity.NewService(st, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		return err
	}
	attendanceSvc := attendance.NewService(st, st)
	quizSvc := quiz.NewService(st, st, st)
	studentsSvc := students.NewService(st)
	sessionsSvc := sessions.NewService(st, cfg.SessionCodeLength)
	reportsSvc := reports.NewService(st)

	authCtrl := &controllers.AuthController{Identity: ident, JWTSecret: cfg.JWTSecret, TTL: cfg.JWTTTL}
	studentCtrl := &controllers.StudentController{Students: studentsSvc}
	attendanceCtrl := &controllers.AttendanceController{Attendance: attendanceSvc}
	testCtrl := &controllers.TestController{Quiz: quizSvc, Sessions: sessionsSvc}
	sessionCtrl := &controllers.SessionController{Sessions: sessionsSvc}
	reportCtrl := &controllers.ReportController{Reports: reportsSvc}
	metaCtrl := &controllers.MetaController{}

	// Public
	public := r.Group("/api/v1")
	{
		public.GET("/sessions", sessionCtrl.ListPublic)
		public.GET("/meta", metaCtrl.Get)

		limited := public.Group("", limiter)
		limited.POST("/auth/student/login", authCtrl.StudentLogin)
		limited.POST("/auth/admin/login", authCtrl.AdminLogin)
		limited.POST("/students/register", studentCtrl.Register)
	}

	// Protected
	authMW := middleware.AuthMiddleware(db, middleware.AuthConfig{JWTSecret: cfg.JWTSecret})
	api := r.Group("/api/v1", authMW)
	{
		api.POST("/auth/logout", authCtrl.Logout)
		api.GET("/auth/me", authCtrl.Me)

		// Student self-service
		student := api.Group("", middleware.RequireKinds(identity.KindStudent))
		{
			student.POST("/attendance/checkin", limiter, attendanceCtrl.CheckIn)
			student.GET("/attendance", attendanceCtrl.ListMine)
			student.GET("/tests/:id", testCtrl.GetTest)
			student.POST("/tests/:id/submit", testCtrl.Submit)
			student.GET("/scores", testCtrl.MyScores)
			student.GET("/me/overview", reportCtrl.MyOverview)
			student.PUT("/students/me", studentCtrl.UpdateMe)
		}

		// Admin
		admin := api.Group("/admin", middleware.RequireKinds(identity.KindAdmin))
		{
			admin.GET("/students", studentCtrl.List)
			admin.GET("/students/:id", studentCtrl.Get)
			admin.PUT("/students/:id/payment", studentCtrl.SetPaid)
			admin.DELETE("/students/:id", studentCtrl.Delete)

			admin.GET("/sessions", sessionCtrl.List)
			admin.POST("/sessions", sessionCtrl.Create)
			admin.GET("/sessions/:id", sessionCtrl.Get)
			admin.PUT("/sessions/:id", sessionCtrl.Update)
			admin.DELETE("/sessions/:id", sessionCtrl.Delete)
			admin.POST("/sessions/:id/code", sessionCtrl.RegenerateCode)
			admin.PUT("/sessions/:id/attendance/:student_id", attendanceCtrl.SetStatus)

			admin.GET("/sessions/:id/test", testCtrl.GetAuthoring)
			admin.PUT("/sessions/:id/test", testCtrl.ReplaceTest)
			admin.DELETE("/sessions/:id/test", testCtrl.DeleteTest)

			admin.GET("/reports/sessions/:id/attendance", reportCtrl.SessionAttendance)
			admin.GET("/reports/students/:id/overview", reportCtrl.StudentOverview)
			admin.GET("/reports/mentors", reportCtrl.SummaryByMentor)
			admin.GET("/reports/branches", reportCtrl.SummaryByBranch)
			admin.GET("/reports/students.csv", reportCtrl.ExportStudentsCSV)
		}
	}
	return nil
}
