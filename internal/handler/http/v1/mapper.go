package v1

import (
	"strings"

	"github.com/shenikar/geoface_attendance/internal/checkin"
	"github.com/shenikar/geoface_attendance/internal/models"
)

// LocationFixToModel преобразует отметку браузера в координату.
// CapturedAt остается пустым, время приема ставит сессия.
func LocationFixToModel(fix *LocationFix) *models.Coordinate {
	if fix == nil {
		return nil
	}
	return &models.Coordinate{
		Latitude:  fix.Latitude,
		Longitude: fix.Longitude,
		Accuracy:  fix.Accuracy,
	}
}

// ModelToCoordinateResponse преобразует координату в DTO
func ModelToCoordinateResponse(c models.Coordinate) CoordinateResponse {
	return CoordinateResponse{
		Latitude:   c.Latitude,
		Longitude:  c.Longitude,
		Accuracy:   c.Accuracy,
		CapturedAt: c.CapturedAt,
	}
}

// ModelToRecordResponse преобразует запись в DTO без снимка
func ModelToRecordResponse(r models.AttendanceRecord) RecordResponse {
	return RecordResponse{
		ID:                 r.ID,
		StudentID:          r.StudentID,
		StudentName:        r.StudentName,
		CheckInTime:        r.CheckInTime,
		CheckInTimeMs:      r.CheckInTime.UnixMilli(),
		Location:           ModelToCoordinateResponse(r.Location),
		VerificationStatus: string(r.VerificationStatus),
		VerificationNote:   r.VerificationNote,
	}
}

// ViewToSessionResponse преобразует снимок сессии в DTO
func ViewToSessionResponse(id string, v checkin.View) *SessionResponse {
	resp := &SessionResponse{
		ID:             id,
		State:          v.State.String(),
		Processing:     v.Processing,
		IdentitySource: string(v.IdentitySource),
		SelfieCaptured: v.SelfieCaptured,
		CanSubmit:      v.CanSubmit,
	}
	if v.Error != nil {
		resp.Error = &StepErrorResponse{
			Kind:      string(v.Error.Kind),
			Message:   v.Error.Message,
			Retryable: v.Error.Retryable(),
		}
	}
	if v.Identity != nil {
		resp.Identity = &IdentityResponse{
			StudentID:   v.Identity.StudentID,
			StudentName: v.Identity.StudentName,
		}
	}
	if v.Verdict != nil {
		resp.Verdict = &VerdictResponse{
			Status: string(v.Verdict.Status),
			Note:   v.Verdict.Note,
		}
	}
	if v.Location != nil {
		loc := ModelToCoordinateResponse(*v.Location)
		resp.Location = &loc
	}
	if v.Outcome != nil {
		resp.Outcome = &OutcomeResponse{
			Record:         ModelToRecordResponse(v.Outcome.Record),
			IsLate:         v.Outcome.Lateness.IsLate,
			MinutesLate:    v.Outcome.Lateness.MinutesLate,
			DistanceMeters: v.Outcome.DistanceMeters,
			InRange:        v.Outcome.InRange,
		}
	}
	return resp
}

// ViewToAdminRecordResponse преобразует запись с производными полями в DTO журнала.
// selfieBase - префикс пути к снимку, к нему добавляется "/{id}/selfie".
func ViewToAdminRecordResponse(v models.RecordView, selfieBase string) *AdminRecordResponse {
	return &AdminRecordResponse{
		RecordResponse: ModelToRecordResponse(v.Record),
		DistanceMeters: v.DistanceMeters,
		InRange:        v.InRange,
		IsLate:         v.Lateness.IsLate,
		MinutesLate:    v.Lateness.MinutesLate,
		SelfieURL:      strings.TrimSuffix(selfieBase, "/") + "/" + v.Record.ID + "/selfie",
	}
}

// ViewsToAdminRecordResponses преобразует слайс записей в слайс DTO
func ViewsToAdminRecordResponses(views []models.RecordView, selfieBase string) []*AdminRecordResponse {
	responses := make([]*AdminRecordResponse, len(views))
	for i, v := range views {
		responses[i] = ViewToAdminRecordResponse(v, selfieBase)
	}
	return responses
}

// SettingsDTOToModel преобразует DTO настроек в модель
// ViewsToStatsResponse считает записи по статусам проверки
func ViewsToStatsResponse(views []models.RecordView) StatsResponse {
	stats := StatsResponse{Total: len(views)}
	for _, v := range views {
		switch v.Record.VerificationStatus {
		case models.StatusVerified:
			stats.Verified++
		case models.StatusPending:
			stats.Pending++
		case models.StatusRejected:
			stats.Rejected++
		}
	}
	return stats
}

func SettingsDTOToModel(dto SettingsDTO) models.Settings {
	return models.Settings{
		SchoolName: dto.SchoolName,
		Geofence: models.GeofenceConfig{
			OriginLat:    dto.SchoolLat,
			OriginLng:    dto.SchoolLng,
			RadiusMeters: dto.RadiusMeters,
		},
		Schedule: models.ScheduleWindow{
			StartTime: dto.StartTime,
			EndTime:   dto.EndTime,
		},
		TelegramBotToken:     dto.TelegramBotToken,
		NotificationTemplate: dto.NotificationTemplate,
	}
}

// ModelToSettingsDTO преобразует модель настроек в DTO
func ModelToSettingsDTO(s models.Settings) SettingsDTO {
	return SettingsDTO{
		SchoolName:           s.SchoolName,
		SchoolLat:            s.Geofence.OriginLat,
		SchoolLng:            s.Geofence.OriginLng,
		RadiusMeters:         s.Geofence.RadiusMeters,
		StartTime:            s.Schedule.StartTime,
		EndTime:              s.Schedule.EndTime,
		TelegramBotToken:     s.TelegramBotToken,
		NotificationTemplate: s.NotificationTemplate,
	}
}

// StudentDTOToModel преобразует DTO ученика в модель
func StudentDTOToModel(dto StudentDTO) *models.Student {
	return &models.Student{
		ID:             dto.ID,
		Name:           dto.Name,
		Class:          dto.Class,
		ParentWhatsapp: dto.ParentWhatsapp,
		TelegramChatID: dto.TelegramChatID,
	}
}

// ModelsToStudentDTOs преобразует слайс учеников в слайс DTO
func ModelsToStudentDTOs(students []*models.Student) []StudentDTO {
	dtos := make([]StudentDTO, len(students))
	for i, s := range students {
		dtos[i] = StudentDTO{
			ID:             s.ID,
			Name:           s.Name,
			Class:          s.Class,
			ParentWhatsapp: s.ParentWhatsapp,
			TelegramChatID: s.TelegramChatID,
		}
	}
	return dtos
}
