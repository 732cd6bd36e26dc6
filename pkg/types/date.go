package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// DateLayout формат календарной даты (без времени)
const DateLayout = "2006-01-02"

var (
	// ErrInvalidDateFormat возвращается при некорректном формате даты
	ErrInvalidDateFormat = errors.New("invalid date format, expected YYYY-MM-DD")
)

// Date календарная дата без компонента времени.
// Все сравнения и арифметика выполняются по дням, в UTC.
type Date struct {
	t time.Time
}

// NewDate создает Date из time.Time, отбрасывая время и таймзону
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// NewDateFromString парсит дату в формате YYYY-MM-DD
func NewDateFromString(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
	}
	return NewDate(t), nil
}

// Time возвращает полночь UTC этой даты
func (d Date) Time() time.Time {
	return d.t
}

// IsZero возвращает true для нулевой даты
func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// String возвращает дату в формате YYYY-MM-DD
func (d Date) String() string {
	return d.t.Format(DateLayout)
}

// Weekday возвращает день недели
func (d Date) Weekday() time.Weekday {
	return d.t.Weekday()
}

// AddDays возвращает дату через n дней
func (d Date) AddDays(n int) Date {
	return NewDate(d.t.AddDate(0, 0, n))
}

// AddMonths возвращает дату через n календарных месяцев
func (d Date) AddMonths(n int) Date {
	return NewDate(d.t.AddDate(0, n, 0))
}

// Before сравнивает даты по дням
func (d Date) Before(other Date) bool {
	return d.t.Before(other.t)
}

// After сравнивает даты по дням
func (d Date) After(other Date) bool {
	return d.t.After(other.t)
}

// Equal возвращает true, если даты совпадают
func (d Date) Equal(other Date) bool {
	return d.t.Equal(other.t)
}

// MarshalJSON сериализует дату как строку YYYY-MM-DD
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON парсит дату из строки YYYY-MM-DD
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := NewDateFromString(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value реализует driver.Valuer для записи в колонку типа date
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.t, nil
}

// Scan реализует sql.Scanner для чтения из колонки типа date
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = NewDate(v)
		return nil
	case []byte:
		parsed, err := NewDateFromString(string(v))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case string:
		parsed, err := NewDateFromString(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		return fmt.Errorf("cannot scan %T into types.Date", src)
	}
}
