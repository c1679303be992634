package v1

import (
	"context"
	"encoding/base64"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shenikar/geoface_attendance/internal/auth"
	"github.com/shenikar/geoface_attendance/internal/checkin"
	"github.com/shenikar/geoface_attendance/internal/service"
	"github.com/sirupsen/logrus"
)

const healthTimeout = 3 * time.Second

// HealthCheck проверяет одну внешнюю зависимость
type HealthCheck func(ctx context.Context) error

type Handler struct {
	sessions          *checkin.Registry
	attendanceService service.AttendanceService
	authenticator     *auth.Authenticator
	location          *time.Location
	logger            *logrus.Logger
	validate          *validator.Validate
	healthChecks      map[string]HealthCheck
	selfieBase        string
	createLimit       gin.HandlerFunc
	now               func() time.Time
}

func NewHandler(
	sessions *checkin.Registry,
	attendanceService service.AttendanceService,
	authenticator *auth.Authenticator,
	location *time.Location,
	logger *logrus.Logger,
) *Handler {
	if location == nil {
		location = time.Local
	}
	return &Handler{
		sessions:          sessions,
		attendanceService: attendanceService,
		authenticator:     authenticator,
		location:          location,
		logger:            logger,
		validate:          validator.New(),
		healthChecks:      make(map[string]HealthCheck),
		selfieBase:        "/admin/records",
		now:               time.Now,
	}
}

// LimitCheckinCreation ставит middleware перед созданием сессии отметки.
// Вызывается до RegisterRoutes.
func (h *Handler) LimitCheckinCreation(limit gin.HandlerFunc) {
	h.createLimit = limit
}

// AddHealthCheck регистрирует проверку для /system/health
func (h *Handler) AddHealthCheck(name string, check HealthCheck) {
	h.healthChecks[name] = check
}

// @Summary Get application health status
// @Description Get health status of the application and its dependencies
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]any "Status OK"
// @Failure 503 {object} map[string]any "A dependency is unavailable"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	names := make([]string, 0, len(h.healthChecks))
	for name := range h.healthChecks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := http.StatusOK
	checks := make(map[string]string, len(names))
	for _, name := range names {
		if err := h.healthChecks[name](ctx); err != nil {
			h.logger.WithField("method", "healthCheck").WithField("dependency", name).WithError(err).Warn("Health check failed")
			checks[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		checks[name] = "ok"
	}

	body := gin.H{"status": "ok", "sessions": h.sessions.Len()}
	if status != http.StatusOK {
		body["status"] = "degraded"
	}
	if len(checks) > 0 {
		body["checks"] = checks
	}
	c.JSON(status, body)
}

// decodeImage принимает как чистый base64, так и data URL
func decodeImage(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if strings.HasPrefix(s, "data:") {
		if i := strings.Index(s, ","); i >= 0 {
			s = s[i+1:]
		}
	}
	return base64.StdEncoding.DecodeString(s)
}
