package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/geoface_attendance/internal/checkin"
	"github.com/sirupsen/logrus"
)

// @Summary Start a check-in session
// @Description Create a new check-in session in the awaiting_permissions state
// @Tags Check-in
// @Produce json
// @Success 201 {object} SessionResponse
// @Failure 429 {object} map[string]string "Too many sessions or requests"
// @Router /checkins [post]
func (h *Handler) createCheckin(c *gin.Context) {
	id, m, err := h.sessions.Create()
	if err != nil {
		h.logger.WithField("method", "createCheckin").WithError(err).Warn("Check-in session refused")
		c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
		return
	}
	h.logger.WithField("method", "createCheckin").WithField("session_id", id).Info("Check-in session started")
	c.JSON(http.StatusCreated, ViewToSessionResponse(id, m.Snapshot()))
}

// @Summary Get check-in session
// @Description Get a snapshot of a check-in session
// @Tags Check-in
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} SessionResponse
// @Failure 404 {object} map[string]string "Session not found"
// @Router /checkins/{id} [get]
func (h *Handler) getCheckin(c *gin.Context) {
	id, m, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, ViewToSessionResponse(id, m.Snapshot()))
}

// @Summary Report permission results
// @Description Report camera/microphone and geolocation results obtained by the browser
// @Tags Check-in
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param permissions body PermissionsRequest true "Permission results"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 409 {object} CheckinErrorResponse "Invalid transition"
// @Failure 422 {object} CheckinErrorResponse "Permission denied"
// @Router /checkins/{id}/permissions [post]
func (h *Handler) reportPermissions(c *gin.Context) {
	var input PermissionsRequest
	if !h.bind(c, "reportPermissions", &input) {
		return
	}
	id, m, ok := h.session(c)
	if !ok {
		return
	}

	devices := checkin.ReportedDevices{
		Fix: LocationFixToModel(input.Location),
	}
	if !input.MediaGranted {
		devices.MediaErr = errors.New(orDefault(input.MediaError, "media access denied"))
	}
	if input.LocationError != "" {
		devices.FixErr = errors.New(input.LocationError)
	}

	err := m.RequestPermissions(c.Request.Context(), devices)
	h.respond(c, "reportPermissions", id, m, err)
}

// @Summary Choose ID card scan
// @Tags Check-in
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} SessionResponse
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 409 {object} CheckinErrorResponse "Invalid transition"
// @Router /checkins/{id}/method/scan [post]
func (h *Handler) chooseScan(c *gin.Context) {
	id, m, ok := h.session(c)
	if !ok {
		return
	}
	h.respond(c, "chooseScan", id, m, m.ChooseScan())
}

// @Summary Enter identity manually
// @Tags Check-in
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param identity body ManualIdentityRequest true "Student ID and name"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 409 {object} CheckinErrorResponse "Invalid transition"
// @Failure 422 {object} CheckinErrorResponse "Missing ID or name"
// @Router /checkins/{id}/method/manual [post]
func (h *Handler) submitManual(c *gin.Context) {
	var input ManualIdentityRequest
	if !h.bind(c, "submitManual", &input) {
		return
	}
	id, m, ok := h.session(c)
	if !ok {
		return
	}
	h.respond(c, "submitManual", id, m, m.SubmitManual(input.StudentID, input.StudentName))
}

// @Summary Scan student ID card
// @Description Send an ID card frame to the recognition service
// @Tags Check-in
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param image body ImageRequest true "JPEG frame"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} map[string]string "Invalid image"
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 409 {object} CheckinErrorResponse "Invalid transition"
// @Failure 422 {object} CheckinErrorResponse "Unreadable card or service error"
// @Failure 429 {object} CheckinErrorResponse "Another operation is in progress"
// @Router /checkins/{id}/id-card [post]
func (h *Handler) captureID(c *gin.Context) {
	image, ok := h.bindImage(c, "captureID")
	if !ok {
		return
	}
	id, m, ok := h.session(c)
	if !ok {
		return
	}
	h.respond(c, "captureID", id, m, m.CaptureID(c.Request.Context(), image))
}

// @Summary Leave ID card scan
// @Tags Check-in
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} SessionResponse
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 409 {object} CheckinErrorResponse "Invalid transition"
// @Router /checkins/{id}/id-card/back [post]
func (h *Handler) backToMethod(c *gin.Context) {
	id, m, ok := h.session(c)
	if !ok {
		return
	}
	h.respond(c, "backToMethod", id, m, m.BackToMethod())
}

// @Summary Confirm extracted identity
// @Tags Check-in
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} SessionResponse
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 409 {object} CheckinErrorResponse "Invalid transition"
// @Router /checkins/{id}/id-card/confirm [post]
func (h *Handler) confirmID(c *gin.Context) {
	id, m, ok := h.session(c)
	if !ok {
		return
	}
	h.respond(c, "confirmID", id, m, m.ConfirmID())
}

// @Summary Reject extracted identity
// @Description Discard the extracted identity and scan again
// @Tags Check-in
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} SessionResponse
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 409 {object} CheckinErrorResponse "Invalid transition"
// @Router /checkins/{id}/id-card/reject [post]
func (h *Handler) rejectID(c *gin.Context) {
	id, m, ok := h.session(c)
	if !ok {
		return
	}
	h.respond(c, "rejectID", id, m, m.RejectID())
}

// @Summary Capture selfie
// @Description Store the selfie and verify it. A verifier outage yields the fallback verdict.
// @Tags Check-in
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param image body ImageRequest true "JPEG frame"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} map[string]string "Invalid image"
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 409 {object} CheckinErrorResponse "Invalid transition"
// @Failure 422 {object} CheckinErrorResponse "No frame captured"
// @Failure 429 {object} CheckinErrorResponse "Another operation is in progress"
// @Router /checkins/{id}/selfie [post]
func (h *Handler) captureSelfie(c *gin.Context) {
	image, ok := h.bindImage(c, "captureSelfie")
	if !ok {
		return
	}
	id, m, ok := h.session(c)
	if !ok {
		return
	}
	h.respond(c, "captureSelfie", id, m, m.CaptureSelfie(c.Request.Context(), image))
}

// @Summary Report location fix
// @Description Report a fresh geolocation fix. Cached fixes are refused.
// @Tags Check-in
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param location body LocationRequest true "Location fix or error"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 409 {object} CheckinErrorResponse "Invalid transition"
// @Failure 422 {object} CheckinErrorResponse "Location unavailable"
// @Router /checkins/{id}/location [post]
func (h *Handler) reportLocation(c *gin.Context) {
	var input LocationRequest
	if !h.bind(c, "reportLocation", &input) {
		return
	}
	id, m, ok := h.session(c)
	if !ok {
		return
	}

	locator := checkin.ReportedDevices{Fix: LocationFixToModel(input.Location)}
	if input.LocationError != "" {
		locator.FixErr = errors.New(input.LocationError)
	}
	h.respond(c, "reportLocation", id, m, m.AcquireLocation(c.Request.Context(), locator))
}

// @Summary Submit attendance
// @Description Persist the attendance record and queue the parent notification
// @Tags Check-in
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} SessionResponse
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 409 {object} CheckinErrorResponse "Invalid transition"
// @Failure 422 {object} CheckinErrorResponse "Settings unavailable"
// @Failure 429 {object} CheckinErrorResponse "Another operation is in progress"
// @Failure 500 {object} CheckinErrorResponse "Record could not be saved"
// @Router /checkins/{id}/submit [post]
func (h *Handler) submitCheckin(c *gin.Context) {
	id, m, ok := h.session(c)
	if !ok {
		return
	}
	_, err := m.Submit(c.Request.Context())
	h.respond(c, "submitCheckin", id, m, err)
}

// @Summary Cancel check-in session
// @Description Discard the session before an identification method is used
// @Tags Check-in
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} SessionResponse
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 409 {object} CheckinErrorResponse "Invalid transition"
// @Failure 429 {object} CheckinErrorResponse "Another operation is in progress"
// @Router /checkins/{id} [delete]
func (h *Handler) cancelCheckin(c *gin.Context) {
	id, m, ok := h.session(c)
	if !ok {
		return
	}
	h.respond(c, "cancelCheckin", id, m, m.Cancel())
}

func (h *Handler) session(c *gin.Context) (string, *checkin.Machine, bool) {
	id := c.Param("id")
	m, err := h.sessions.Get(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "check-in session not found"})
		return "", nil, false
	}
	return id, m, true
}

func (h *Handler) bind(c *gin.Context, method string, input any) bool {
	log := h.logger.WithField("method", method)
	if err := c.ShouldBindJSON(input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

func (h *Handler) bindImage(c *gin.Context, method string) ([]byte, bool) {
	var input ImageRequest
	if !h.bind(c, method, &input) {
		return nil, false
	}
	image, err := decodeImage(input.Image)
	if err != nil {
		h.logger.WithField("method", method).WithError(err).Warn("Failed to decode image")
		c.JSON(http.StatusBadRequest, gin.H{"error": "image must be base64 encoded"})
		return nil, false
	}
	return image, true
}

// respond отдает снимок сессии. Завершенные сессии убираются из реестра,
// клиент получает итог в этом ответе.
func (h *Handler) respond(c *gin.Context, method, id string, m *checkin.Machine, err error) {
	view := m.Snapshot()
	resp := ViewToSessionResponse(id, view)
	if view.State.Terminal() {
		h.sessions.Remove(id)
	}
	if err == nil {
		c.JSON(http.StatusOK, resp)
		return
	}

	log := h.logger.WithFields(logrus.Fields{"method": method, "session_id": id, "state": resp.State})

	var stepErr *checkin.StepError
	switch {
	case errors.As(err, &stepErr):
		status := http.StatusUnprocessableEntity
		if stepErr.Kind == checkin.KindPersistence {
			status = http.StatusInternalServerError
		}
		log.WithError(err).Warn("Check-in step failed")
		c.JSON(status, CheckinErrorResponse{Error: stepErr.Message, Kind: string(stepErr.Kind), Session: resp})
	case errors.Is(err, checkin.ErrInvalidTransition):
		log.WithError(err).Warn("Invalid check-in transition")
		c.JSON(http.StatusConflict, CheckinErrorResponse{Error: err.Error(), Session: resp})
	case errors.Is(err, checkin.ErrBusy):
		c.JSON(http.StatusTooManyRequests, CheckinErrorResponse{Error: err.Error(), Session: resp})
	default:
		log.WithError(err).Error("Unexpected check-in error")
		c.JSON(http.StatusInternalServerError, CheckinErrorResponse{Error: "internal server error", Session: resp})
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
