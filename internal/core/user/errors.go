package user

import "errors"

var (
	// ErrUserNotFound はユーザーが存在しない場合に返却されます。
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidRole は役割が不正な場合に返却されます。
	ErrInvalidRole = errors.New("invalid role")
	// ErrMissingRelatedCompany は会社に所属する役割で所属会社が指定されていない場合に返却されます。
	ErrMissingRelatedCompany = errors.New("related company is required for this role")
	// ErrInvalidID はIDが不正な場合に返却されます。
	ErrInvalidID = errors.New("invalid id")
)
