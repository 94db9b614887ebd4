package contact

import "errors"

var (
	// ErrInvalidEmail はメールアドレスが不正な場合に返却されます。
	ErrInvalidEmail = errors.New("invalid email")
	// ErrInvalidPhoneNumber は電話番号が不正な場合に返却されます。
	ErrInvalidPhoneNumber = errors.New("invalid phone number")
)
