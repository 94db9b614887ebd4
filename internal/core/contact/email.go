package contact

import "regexp"

var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

// Email は検証済みのメールアドレスを表す値オブジェクトです。
type Email struct {
	value string
}

// ParseEmail は文字列を検証し Email を生成します。
func ParseEmail(raw string) (Email, error) {
	if !emailPattern.MatchString(raw) {
		return Email{}, ErrInvalidEmail
	}
	return Email{value: raw}, nil
}

// String はメールアドレスの文字列表現を返します。
func (e Email) String() string {
	return e.value
}
