package contact

import "regexp"

// +<国番号 1-3 桁>.<番号 3 桁以上>
var phonePattern = regexp.MustCompile(`^\+[0-9]{1,3}\.[0-9]{3,}$`)

// Phone は検証済みの電話番号を表す値オブジェクトです。
type Phone struct {
	value string
}

// ParsePhone は文字列を検証し Phone を生成します。
func ParsePhone(raw string) (Phone, error) {
	if !phonePattern.MatchString(raw) {
		return Phone{}, ErrInvalidPhoneNumber
	}
	return Phone{value: raw}, nil
}

// String は電話番号の文字列表現を返します。
func (p Phone) String() string {
	return p.value
}
