package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-StudioService/pkg/types"
)

// TimeRange абсолютный полуоткрытый интервал [Start, End)
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// Overlaps проверяет пересечение полуоткрытых интервалов
// Граничащие интервалы (конец одного равен началу другого) не пересекаются
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}

// ComputeTimeRange вычисляет абсолютные начало и конец сессии на дату
// Часовой пояс берётся из date
func ComputeTimeRange(date time.Time, startTime types.TimeString, durationMinutes int) (TimeRange, error) {
	if durationMinutes <= 0 {
		return TimeRange{}, fmt.Errorf("%w: %d minutes", ErrInvalidDuration, durationMinutes)
	}

	start, err := absoluteStart(date, startTime)
	if err != nil {
		return TimeRange{}, err
	}

	return TimeRange{
		Start: start,
		End:   start.Add(time.Duration(durationMinutes) * time.Minute),
	}, nil
}

// AbsoluteEquipmentWindow переводит относительное окно оборудования в абсолютное время
// Переполнение минут переносится в часы (и через полночь)
func AbsoluteEquipmentWindow(date time.Time, startTime types.TimeString, slot EquipmentSlot) (TimeRange, error) {
	start, err := absoluteStart(date, startTime)
	if err != nil {
		return TimeRange{}, err
	}

	return TimeRange{
		Start: start.Add(time.Duration(slot.StartMinute) * time.Minute),
		End:   start.Add(time.Duration(slot.EndMinute) * time.Minute),
	}, nil
}

// RowSpan количество часовых строк сетки, занимаемых сессией: ceil(duration/60)
func RowSpan(durationMinutes int) (int, error) {
	if durationMinutes <= 0 {
		return 0, fmt.Errorf("%w: %d minutes", ErrInvalidDuration, durationMinutes)
	}
	return (durationMinutes + RowMinutes - 1) / RowMinutes, nil
}

// ParseDate разбирает дату YYYY-MM-DD в указанном часовом поясе
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	date, err := time.ParseInLocation(DateFormat, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q", ErrInvalidTimeFormat, s)
	}
	return date, nil
}

// SameDate проверяет, что две даты совпадают по календарному дню
func SameDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func absoluteStart(date time.Time, startTime types.TimeString) (time.Time, error) {
	minutes, err := startTime.Minutes()
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: start time %q", ErrInvalidTimeFormat, startTime)
	}
	if date.IsZero() {
		return time.Time{}, fmt.Errorf("%w: date is required", ErrInvalidTimeFormat)
	}

	midnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return midnight.Add(time.Duration(minutes) * time.Minute), nil
}
