package schedule

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DonorService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-DonorService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-DonorService/internal/service/schedule/models"
	"github.com/m04kA/SMC-DonorService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeScheduleRepo struct {
	schedule *domain.Schedule
	excluded []*domain.ExcludedDate
	addErr   error

	updated *domain.Schedule
	removed []int64
}

func (f *fakeScheduleRepo) Get(ctx context.Context) (*domain.Schedule, error) {
	if f.schedule == nil {
		return nil, scheduleRepo.ErrScheduleNotFound
	}
	return f.schedule, nil
}

func (f *fakeScheduleRepo) Update(ctx context.Context, s *domain.Schedule) error {
	f.updated = s
	return nil
}

func (f *fakeScheduleRepo) ListExcluded(ctx context.Context) ([]*domain.ExcludedDate, error) {
	return f.excluded, nil
}

func (f *fakeScheduleRepo) AddExcluded(ctx context.Context, excluded *domain.ExcludedDate) (*domain.ExcludedDate, error) {
	if f.addErr != nil {
		return nil, f.addErr
	}
	added := *excluded
	added.ID = 11
	f.excluded = append(f.excluded, &added)
	return &added, nil
}

func (f *fakeScheduleRepo) RemoveExcluded(ctx context.Context, id int64) error {
	for _, d := range f.excluded {
		if d.ID == id {
			f.removed = append(f.removed, id)
			return nil
		}
	}
	return scheduleRepo.ErrExcludedDateNotFound
}

func (f *fakeScheduleRepo) IsExcluded(ctx context.Context, day types.Date) (bool, error) {
	for _, d := range f.excluded {
		if d.Day.Equal(day) {
			return true, nil
		}
	}
	return false, nil
}

func date(t *testing.T, s string) types.Date {
	t.Helper()
	d, err := types.NewDateFromString(s)
	require.NoError(t, err)
	return d
}

func weekdaySchedule() *domain.Schedule {
	open := domain.WeekdaySetting{Enabled: true, Capacity: 10}
	closed := domain.WeekdaySetting{Enabled: false, Capacity: 0}
	return &domain.Schedule{
		ID:        1,
		Monday:    open,
		Tuesday:   open,
		Wednesday: open,
		Thursday:  open,
		Friday:    open,
		Saturday:  closed,
		Sunday:    closed,
	}
}

func openRequest() *models.UpdateScheduleRequest {
	open := models.WeekdaySettingRequest{Enabled: true, Capacity: 10}
	return &models.UpdateScheduleRequest{
		Monday:    open,
		Tuesday:   open,
		Wednesday: open,
		Thursday:  open,
		Friday:    open,
		Saturday:  open,
		Sunday:    open,
	}
}

func TestUpdate(t *testing.T) {
	t.Run("applies valid schedule", func(t *testing.T) {
		repo := &fakeScheduleRepo{schedule: weekdaySchedule()}
		svc := NewService(repo, nopLogger{})

		resp, err := svc.Update(context.Background(), openRequest())

		require.NoError(t, err)
		assert.True(t, resp.Saturday.Enabled)
		require.NotNil(t, repo.updated)
		assert.Equal(t, int64(1), repo.updated.ID)
	})

	t.Run("rejects enabled day without capacity", func(t *testing.T) {
		repo := &fakeScheduleRepo{schedule: weekdaySchedule()}
		svc := NewService(repo, nopLogger{})

		req := openRequest()
		req.Friday = models.WeekdaySettingRequest{Enabled: true, Capacity: 0}

		_, err := svc.Update(context.Background(), req)

		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Nil(t, repo.updated)
	})

	t.Run("missing schedule row", func(t *testing.T) {
		svc := NewService(&fakeScheduleRepo{}, nopLogger{})

		_, err := svc.Update(context.Background(), openRequest())

		assert.ErrorIs(t, err, ErrScheduleNotFound)
	})
}

func TestAddExcluded(t *testing.T) {
	t.Run("adds date", func(t *testing.T) {
		repo := &fakeScheduleRepo{schedule: weekdaySchedule()}
		svc := NewService(repo, nopLogger{})

		resp, err := svc.AddExcluded(context.Background(), &models.AddExcludedDateRequest{
			Date:   date(t, "2024-06-12"),
			Reason: "санитарный день",
		})

		require.NoError(t, err)
		assert.Equal(t, int64(11), resp.ID)
		assert.Equal(t, "2024-06-12", resp.Date)
	})

	t.Run("duplicate date conflicts", func(t *testing.T) {
		repo := &fakeScheduleRepo{addErr: scheduleRepo.ErrDuplicateExcludedDate}
		svc := NewService(repo, nopLogger{})

		_, err := svc.AddExcluded(context.Background(), &models.AddExcludedDateRequest{
			Date: date(t, "2024-06-12"),
		})

		assert.ErrorIs(t, err, ErrDuplicateExcludedDate)
	})

	t.Run("zero date rejected", func(t *testing.T) {
		svc := NewService(&fakeScheduleRepo{}, nopLogger{})

		_, err := svc.AddExcluded(context.Background(), &models.AddExcludedDateRequest{})

		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestRemoveExcluded(t *testing.T) {
	repo := &fakeScheduleRepo{
		excluded: []*domain.ExcludedDate{{ID: 11, Day: types.Date{}}},
	}
	svc := NewService(repo, nopLogger{})

	require.NoError(t, svc.RemoveExcluded(context.Background(), 11))
	assert.Equal(t, []int64{11}, repo.removed)

	assert.ErrorIs(t, svc.RemoveExcluded(context.Background(), 99), ErrExcludedDateNotFound)
}

func TestCapacityFor(t *testing.T) {
	schedule := weekdaySchedule()
	// Вместимость настроена, но день выключен
	schedule.Saturday = domain.WeekdaySetting{Enabled: false, Capacity: 7}

	repo := &fakeScheduleRepo{
		schedule: schedule,
		excluded: []*domain.ExcludedDate{{ID: 11, Day: date(t, "2024-06-03")}},
	}
	svc := NewService(repo, nopLogger{})

	tests := []struct {
		name string
		day  string
		want int
	}{
		{name: "open weekday", day: "2024-06-10", want: 10},
		{name: "disabled weekday has zero capacity", day: "2024-06-08", want: 0},
		{name: "excluded date has zero capacity", day: "2024-06-03", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			capacity, err := svc.CapacityFor(context.Background(), date(t, tt.day))
			require.NoError(t, err)
			assert.Equal(t, tt.want, capacity)
		})
	}
}

func TestIsBookable(t *testing.T) {
	repo := &fakeScheduleRepo{
		schedule: weekdaySchedule(),
		excluded: []*domain.ExcludedDate{{ID: 11, Day: date(t, "2024-06-12")}},
	}
	svc := NewService(repo, nopLogger{})

	tests := []struct {
		name string
		day  string
		want bool
	}{
		{name: "open weekday", day: "2024-06-10", want: true},
		{name: "closed weekend", day: "2024-06-08", want: false},
		{name: "excluded date", day: "2024-06-12", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := svc.IsBookable(context.Background(), date(t, tt.day))
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}
