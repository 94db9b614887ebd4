package company

import "errors"

var (
	// ErrNotFound は会社が存在しない場合に返却されます。
	ErrNotFound = errors.New("company: not found")
	// ErrInvalidCompanyName は会社名が不正な場合に返却されます。
	ErrInvalidCompanyName = errors.New("company: invalid name")
	// ErrInvalidID は ID が不正な場合に返却されます。
	ErrInvalidID = errors.New("company: invalid id")

	ErrNotAuthorizedToCreateACompany    = errors.New("company: not authorized to create a company")
	ErrNotAuthorizedToEditACompany      = errors.New("company: not authorized to edit a company")
	ErrNotAuthorizedToDeleteACompany    = errors.New("company: not authorized to delete a company")
	ErrNotAuthorizedToRetrieveACompany  = errors.New("company: not authorized to retrieve a company")
	ErrNotAuthorizedToRetrieveCompanies = errors.New("company: not authorized to retrieve companies")
)
