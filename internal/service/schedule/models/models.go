package models

import (
	"time"

	"github.com/m04kA/SMC-DonorService/internal/domain"
	"github.com/m04kA/SMC-DonorService/pkg/types"
)

// Request модели

// WeekdaySettingRequest настройки одного дня недели
type WeekdaySettingRequest struct {
	Enabled  bool `json:"enabled"`
	Capacity int  `json:"capacity"`
}

// UpdateScheduleRequest запрос на обновление расписания донаций
type UpdateScheduleRequest struct {
	Monday    WeekdaySettingRequest `json:"monday"`
	Tuesday   WeekdaySettingRequest `json:"tuesday"`
	Wednesday WeekdaySettingRequest `json:"wednesday"`
	Thursday  WeekdaySettingRequest `json:"thursday"`
	Friday    WeekdaySettingRequest `json:"friday"`
	Saturday  WeekdaySettingRequest `json:"saturday"`
	Sunday    WeekdaySettingRequest `json:"sunday"`
}

// ToDomainSchedule накладывает запрос на существующее расписание
func (r *UpdateScheduleRequest) ToDomainSchedule(existing *domain.Schedule) *domain.Schedule {
	s := *existing
	s.Monday = domain.WeekdaySetting(r.Monday)
	s.Tuesday = domain.WeekdaySetting(r.Tuesday)
	s.Wednesday = domain.WeekdaySetting(r.Wednesday)
	s.Thursday = domain.WeekdaySetting(r.Thursday)
	s.Friday = domain.WeekdaySetting(r.Friday)
	s.Saturday = domain.WeekdaySetting(r.Saturday)
	s.Sunday = domain.WeekdaySetting(r.Sunday)
	return &s
}

// AddExcludedDateRequest запрос на добавление исключённой даты
type AddExcludedDateRequest struct {
	Date   types.Date `json:"date"`
	Reason string     `json:"reason,omitempty"`
}

// ToDomainExcludedDate конвертирует запрос в domain модель
func (r *AddExcludedDateRequest) ToDomainExcludedDate() *domain.ExcludedDate {
	return &domain.ExcludedDate{
		Day:    r.Date,
		Reason: r.Reason,
	}
}

// Response модели

// WeekdaySettingResponse настройки одного дня недели
type WeekdaySettingResponse struct {
	Enabled  bool `json:"enabled"`
	Capacity int  `json:"capacity"`
}

// ScheduleResponse ответ с расписанием донаций
type ScheduleResponse struct {
	Monday    WeekdaySettingResponse `json:"monday"`
	Tuesday   WeekdaySettingResponse `json:"tuesday"`
	Wednesday WeekdaySettingResponse `json:"wednesday"`
	Thursday  WeekdaySettingResponse `json:"thursday"`
	Friday    WeekdaySettingResponse `json:"friday"`
	Saturday  WeekdaySettingResponse `json:"saturday"`
	Sunday    WeekdaySettingResponse `json:"sunday"`
	UpdatedAt time.Time              `json:"updatedAt"`
}

// ExcludedDateResponse ответ с исключённой датой
type ExcludedDateResponse struct {
	ID        int64     `json:"id"`
	Date      string    `json:"date"` // "2025-10-15"
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ExcludedDateListResponse ответ со списком исключённых дат
type ExcludedDateListResponse struct {
	Dates []ExcludedDateResponse `json:"dates"`
}

// Методы конвертации

// FromDomainSchedule конвертирует domain модель в DTO
func FromDomainSchedule(s *domain.Schedule) *ScheduleResponse {
	if s == nil {
		return nil
	}

	return &ScheduleResponse{
		Monday:    WeekdaySettingResponse(s.Monday),
		Tuesday:   WeekdaySettingResponse(s.Tuesday),
		Wednesday: WeekdaySettingResponse(s.Wednesday),
		Thursday:  WeekdaySettingResponse(s.Thursday),
		Friday:    WeekdaySettingResponse(s.Friday),
		Saturday:  WeekdaySettingResponse(s.Saturday),
		Sunday:    WeekdaySettingResponse(s.Sunday),
		UpdatedAt: s.UpdatedAt,
	}
}

// FromDomainExcludedDate конвертирует domain модель в DTO
func FromDomainExcludedDate(d *domain.ExcludedDate) *ExcludedDateResponse {
	if d == nil {
		return nil
	}

	return &ExcludedDateResponse{
		ID:        d.ID,
		Date:      d.Day.String(),
		Reason:    d.Reason,
		CreatedAt: d.CreatedAt,
	}
}

// FromDomainExcludedDateList конвертирует список domain моделей в DTO
func FromDomainExcludedDateList(dates []*domain.ExcludedDate) *ExcludedDateListResponse {
	resp := &ExcludedDateListResponse{
		Dates: make([]ExcludedDateResponse, 0, len(dates)),
	}

	for _, d := range dates {
		if dateResp := FromDomainExcludedDate(d); dateResp != nil {
			resp.Dates = append(resp.Dates, *dateResp)
		}
	}

	return resp
}
