package drivingschool

import (
	"fmt"
	"regexp"
	"slices"
)

// Weekday は営業時間のキーとなる曜日です。
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// Weekdays は月曜始まりの曜日一覧を返します。
func Weekdays() []Weekday {
	return []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
}

// OpeningHours は曜日ごとの [開店, 閉店] の組です。空の場合はその日は休業です。
type OpeningHours map[Weekday][]string

var hoursAndMinutesPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// ParseOpeningHours は営業時間を検証し、7 曜日すべてを持つ新しい値を返します。
// 指定のない曜日は休業として扱います。
func ParseOpeningHours(raw OpeningHours) (OpeningHours, error) {
	for day := range raw {
		if !slices.Contains(Weekdays(), day) {
			return nil, fmt.Errorf("%q: %w", day, ErrInvalidOpeningHours)
		}
	}

	normalized := make(OpeningHours, len(Weekdays()))
	for _, day := range Weekdays() {
		slots := raw[day]
		if len(slots) != 0 && len(slots) != 2 {
			return nil, fmt.Errorf("%s: %w", day, ErrInvalidOpeningHours)
		}
		for _, slot := range slots {
			if !hoursAndMinutesPattern.MatchString(slot) {
				return nil, fmt.Errorf("%s: %w", day, ErrInvalidOpeningHours)
			}
		}
		normalized[day] = append([]string{}, slots...)
	}
	return normalized, nil
}

// Clone は内部スライスまで複製した営業時間を返します。
func (h OpeningHours) Clone() OpeningHours {
	if h == nil {
		return nil
	}
	cloned := make(OpeningHours, len(h))
	for day, slots := range h {
		cloned[day] = append([]string{}, slots...)
	}
	return cloned
}
