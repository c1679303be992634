package v1

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/geoface_attendance/internal/models"
	"github.com/shenikar/geoface_attendance/internal/notification"
	"github.com/shenikar/geoface_attendance/internal/report"
	"github.com/shenikar/geoface_attendance/internal/service"
)

const csvContentType = "text/csv; charset=utf-8"

// @Summary List attendance records
// @Description Get all records, newest first, with distance and lateness computed from the current settings
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} AdminRecordResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/records [get]
func (h *Handler) listRecords(c *gin.Context) {
	log := h.logger.WithField("method", "listRecords")

	views, err := h.attendanceService.ListRecords(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to list records from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, ViewsToAdminRecordResponses(views, h.selfieBase))
}

// @Summary Attendance stats
// @Description Count records in total and per verification status
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} StatsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/stats [get]
func (h *Handler) getStats(c *gin.Context) {
	views, err := h.attendanceService.ListRecords(c.Request.Context())
	if err != nil {
		h.logger.WithField("method", "getStats").WithError(err).Error("Failed to list records from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, ViewsToStatsResponse(views))
}

// @Summary Get attendance record
// @Description Get a single record. whatsapp_link is set when the student has a parent number.
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Record ID"
// @Success 200 {object} AdminRecordResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Record not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/records/{id} [get]
func (h *Handler) getRecord(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "getRecord").WithField("id", id)
	ctx := c.Request.Context()

	view, ok := h.recordOr404(c, id)
	if !ok {
		return
	}
	resp := ViewToAdminRecordResponse(*view, h.selfieBase)

	student, err := h.attendanceService.GetStudent(ctx, view.Record.StudentID)
	switch {
	case err == nil && student.ParentWhatsapp != "":
		settings, err := h.attendanceService.GetSettings(ctx)
		if err != nil {
			log.WithError(err).Warn("Failed to read settings for WhatsApp link")
			break
		}
		template := settings.NotificationTemplate
		if template == "" {
			template = notification.DefaultTemplate
		}
		data := notification.NewData(view.Record.StudentName, settings.SchoolName, view.Record.CheckInTime, h.location)
		resp.WhatsAppLink = notification.WhatsAppLink(student.ParentWhatsapp, notification.FormatMessage(template, data))
	case err != nil && !errors.Is(err, models.ErrNotFound):
		log.WithError(err).Warn("Failed to look up student for WhatsApp link")
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Get record selfie
// @Tags Admin
// @Produce jpeg
// @Security BearerAuth
// @Param id path string true "Record ID"
// @Success 200 {file} binary
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Record not found"
// @Router /admin/records/{id}/selfie [get]
func (h *Handler) getSelfie(c *gin.Context) {
	view, ok := h.recordOr404(c, c.Param("id"))
	if !ok {
		return
	}
	if len(view.Record.SelfieImage) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "selfie not found"})
		return
	}
	c.Data(http.StatusOK, "image/jpeg", view.Record.SelfieImage)
}

// @Summary Review attendance record
// @Description Set the verification status of a record to verified or rejected
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Record ID"
// @Param status body UpdateStatusRequest true "New status"
// @Success 200 {object} AdminRecordResponse
// @Failure 400 {object} map[string]string "Invalid request body or status"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Record not found"
// @Failure 409 {object} map[string]string "Record already reviewed"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/records/{id}/status [patch]
func (h *Handler) updateStatus(c *gin.Context) {
	var input UpdateStatusRequest
	if !h.bind(c, "updateStatus", &input) {
		return
	}
	id := c.Param("id")
	log := h.logger.WithField("method", "updateStatus").WithField("id", id)

	view, err := h.attendanceService.UpdateStatus(c.Request.Context(), id, models.VerificationStatus(input.Status), input.Note)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, ViewToAdminRecordResponse(*view, h.selfieBase))
	case errors.Is(err, service.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": service.ErrInvalidStatus.Error()})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
	case errors.Is(err, service.ErrStatusFinal):
		c.JSON(http.StatusConflict, gin.H{"error": service.ErrStatusFinal.Error()})
	default:
		log.WithError(err).Error("Failed to update record status in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// @Summary Clear attendance records
// @Description Delete every attendance record
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ClearRecordsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/records [delete]
func (h *Handler) clearRecords(c *gin.Context) {
	log := h.logger.WithField("method", "clearRecords")

	removed, err := h.attendanceService.ClearRecords(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to clear records in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, ClearRecordsResponse{Removed: removed})
}

// @Summary Export attendance log
// @Description Download the attendance log as CSV
// @Tags Admin
// @Produce text/csv
// @Security BearerAuth
// @Success 200 {file} binary
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/export/records.csv [get]
func (h *Handler) exportRecords(c *gin.Context) {
	log := h.logger.WithField("method", "exportRecords")

	views, err := h.attendanceService.ListRecords(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to list records from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	var buf bytes.Buffer
	if err := report.WriteAttendanceCSV(&buf, views, h.location); err != nil {
		log.WithError(err).Error("Failed to write attendance CSV")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="attendance_log.csv"`)
	c.Data(http.StatusOK, csvContentType, buf.Bytes())
}

// @Summary Monthly recap
// @Description Per-student attendance for a month. Only verified records count as present.
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param month query string false "Month in YYYY-MM, defaults to the current month"
// @Param class query string false "Only students of this class, All or empty for every class"
// @Success 200 {object} report.Recap
// @Failure 400 {object} map[string]string "Invalid month"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/recap [get]
func (h *Handler) getRecap(c *gin.Context) {
	recap, ok := h.buildRecap(c, "getRecap")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, recap)
}

// @Summary Export monthly recap
// @Description Download the monthly recap as CSV
// @Tags Admin
// @Produce text/csv
// @Security BearerAuth
// @Param month query string false "Month in YYYY-MM, defaults to the current month"
// @Param class query string false "Only students of this class, All or empty for every class"
// @Success 200 {file} binary
// @Failure 400 {object} map[string]string "Invalid month"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/export/recap.csv [get]
func (h *Handler) exportRecap(c *gin.Context) {
	recap, ok := h.buildRecap(c, "exportRecap")
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := report.WriteRecapCSV(&buf, recap); err != nil {
		h.logger.WithField("method", "exportRecap").WithError(err).Error("Failed to write recap CSV")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="recap_`+recap.Month+`.csv"`)
	c.Data(http.StatusOK, csvContentType, buf.Bytes())
}

// @Summary Get settings
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SettingsDTO
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/settings [get]
func (h *Handler) getSettings(c *gin.Context) {
	settings, err := h.attendanceService.GetSettings(c.Request.Context())
	if err != nil {
		h.logger.WithField("method", "getSettings").WithError(err).Error("Failed to get settings from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, ModelToSettingsDTO(settings))
}

// @Summary Save settings
// @Description Replace the school settings. Past records are reclassified on the next read.
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param settings body SettingsDTO true "School settings"
// @Success 200 {object} SettingsDTO
// @Failure 400 {object} map[string]string "Invalid request body or settings"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/settings [put]
func (h *Handler) saveSettings(c *gin.Context) {
	var input SettingsDTO
	if !h.bind(c, "saveSettings", &input) {
		return
	}

	err := h.attendanceService.SaveSettings(c.Request.Context(), SettingsDTOToModel(input))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, input)
	case errors.Is(err, service.ErrInvalidSettings):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.WithField("method", "saveSettings").WithError(err).Error("Failed to save settings in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// @Summary List students
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} StudentDTO
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/students [get]
func (h *Handler) listStudents(c *gin.Context) {
	students, err := h.attendanceService.ListStudents(c.Request.Context())
	if err != nil {
		h.logger.WithField("method", "listStudents").WithError(err).Error("Failed to list students from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, ModelsToStudentDTOs(students))
}

// @Summary Add or update student
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param student body StudentDTO true "Student"
// @Success 200 {object} StudentDTO
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/students [post]
func (h *Handler) upsertStudent(c *gin.Context) {
	var input StudentDTO
	if !h.bind(c, "upsertStudent", &input) {
		return
	}

	student := StudentDTOToModel(input)
	err := h.attendanceService.UpsertStudent(c.Request.Context(), student)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, ModelsToStudentDTOs([]*models.Student{student})[0])
	case errors.Is(err, service.ErrInvalidStudent):
		c.JSON(http.StatusBadRequest, gin.H{"error": service.ErrInvalidStudent.Error()})
	default:
		h.logger.WithField("method", "upsertStudent").WithError(err).Error("Failed to save student in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func (h *Handler) recordOr404(c *gin.Context, id string) (*models.RecordView, bool) {
	view, err := h.attendanceService.GetRecord(c.Request.Context(), id)
	if errors.Is(err, models.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
		return nil, false
	}
	if err != nil {
		h.logger.WithField("method", "getRecord").WithField("id", id).WithError(err).Error("Failed to get record from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return nil, false
	}
	return view, true
}

func (h *Handler) buildRecap(c *gin.Context, method string) (*report.Recap, bool) {
	log := h.logger.WithField("method", method)
	ctx := c.Request.Context()
	month := c.DefaultQuery("month", h.now().In(h.location).Format("2006-01"))
	class := c.Query("class")

	students, err := h.attendanceService.ListStudents(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to list students from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return nil, false
	}
	views, err := h.attendanceService.ListRecords(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to list records from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return nil, false
	}
	records := make([]*models.AttendanceRecord, len(views))
	for i := range views {
		records[i] = &views[i].Record
	}

	recap, err := report.MonthlyRecap(month, report.FilterClass(students, class), records, h.location)
	if err != nil {
		log.WithError(err).WithField("month", month).Warn("Invalid recap month")
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be in YYYY-MM format"})
		return nil, false
	}
	return recap, true
}
