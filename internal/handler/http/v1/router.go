package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/shenikar/geoface_attendance/internal/auth"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// Сессии отметки доступны без авторизации
	checkins := api.Group("/checkins")
	{
		create := []gin.HandlerFunc{h.createCheckin}
		if h.createLimit != nil {
			create = append([]gin.HandlerFunc{h.createLimit}, create...)
		}
		checkins.POST("", create...)
		checkins.GET("/:id", h.getCheckin)
		checkins.DELETE("/:id", h.cancelCheckin)
		checkins.POST("/:id/permissions", h.reportPermissions)
		checkins.POST("/:id/method/scan", h.chooseScan)
		checkins.POST("/:id/method/manual", h.submitManual)
		checkins.POST("/:id/id-card", h.captureID)
		checkins.POST("/:id/id-card/back", h.backToMethod)
		checkins.POST("/:id/id-card/confirm", h.confirmID)
		checkins.POST("/:id/id-card/reject", h.rejectID)
		checkins.POST("/:id/selfie", h.captureSelfie)
		checkins.POST("/:id/location", h.reportLocation)
		checkins.POST("/:id/submit", h.submitCheckin)
	}

	api.POST("/admin/login", h.login)

	// Кабинет администратора, нужен bearer-токен
	admin := api.Group("/admin")
	admin.Use(auth.AdminAuth(h.authenticator, h.logger))
	{
		h.selfieBase = admin.BasePath() + "/records"
		admin.GET("/records", h.listRecords)
		admin.DELETE("/records", h.clearRecords)
		admin.GET("/records/:id", h.getRecord)
		admin.GET("/records/:id/selfie", h.getSelfie)
		admin.PATCH("/records/:id/status", h.updateStatus)
		admin.GET("/export/records.csv", h.exportRecords)
		admin.GET("/export/recap.csv", h.exportRecap)
		admin.GET("/recap", h.getRecap)
		admin.GET("/stats", h.getStats)
		admin.GET("/settings", h.getSettings)
		admin.PUT("/settings", h.saveSettings)
		admin.GET("/students", h.listStudents)
		admin.POST("/students", h.upsertStudent)
	}

	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)
}
