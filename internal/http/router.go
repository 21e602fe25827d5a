package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/you/hrmportal/internal/http/handlers"
	"github.com/you/hrmportal/internal/http/middleware"
	"github.com/you/hrmportal/internal/services"
)

// BuildRouter assembles the portal routes. Login routes are registered
// outside the guarded groups: the guards' login-path exemption is
// structural, not string matching.
func BuildRouter(
	ah *handlers.AuthHandlers,
	admh *handlers.AdminHandlers,
	emph *handlers.EmployeeHandlers,
	sessionMW *middleware.SessionMW,
	adminGuard *middleware.PortalGuard,
	employeeGuard *middleware.PortalGuard,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), sessionMW.Attach())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	r.GET("/session", ah.Session)
	r.POST("/logout", ah.Logout)
	r.POST(services.AdminLoginRoute, ah.AdminLogin)
	r.POST(services.EmployeeLoginRoute, ah.EmployeeLogin)

	adm := r.Group("/admin").Use(adminGuard.Guard())
	adm.GET("/dashboard", admh.Dashboard)
	adm.GET("/employees", admh.ListEmployees)
	adm.POST("/employees", admh.CreateEmployee)
	adm.GET("/employees/export", admh.ExportEmployees)
	adm.GET("/employees/:id", admh.EmployeeDetail)
	adm.PUT("/employees/:id/verify", admh.VerifyEmployee)
	adm.PUT("/employees/:id/toggle-status", admh.ToggleEmployeeStatus)
	adm.GET("/leaves", admh.ListLeaves)
	adm.PUT("/leaves/:id/action", admh.ActionLeave)
	adm.PUT("/leaves/:id/cancel-approve", admh.CancelApprove)

	emp := r.Group("/employee").Use(employeeGuard.Guard())
	emp.GET("/dashboard", emph.Dashboard)
	emp.PUT("/details", emph.SubmitDetails)
	emp.POST("/attendance", emph.MarkAttendance)
	emp.GET("/attendance", emph.MyAttendance)
	emp.GET("/attendance/summary", emph.AttendanceSummary)
	emp.GET("/leaves/balance", emph.LeaveBalance)
	emp.POST("/leaves", emph.ApplyLeave)
	emp.GET("/leaves", emph.MyLeaves)
	emp.PUT("/leaves/:id/cancel", emph.CancelLeave)

	return r
}
