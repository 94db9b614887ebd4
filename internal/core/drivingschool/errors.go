package drivingschool

import "errors"

var (
	// ErrNotFound は教習所が存在しない場合に返却されます。
	ErrNotFound = errors.New("driving school: not found")
	// ErrCompanyNotFound は作成時に参照先の会社が存在しない場合に返却されます。
	ErrCompanyNotFound = errors.New("driving school: company not found")
	// ErrInvalidOpeningHours は営業時間の形式が不正な場合に返却されます。
	ErrInvalidOpeningHours = errors.New("driving school: invalid opening hours")
	// ErrInvalidID は ID が不正な場合に返却されます。
	ErrInvalidID = errors.New("driving school: invalid id")

	ErrNotAuthorizedToCreateADrivingSchool             = errors.New("driving school: not authorized to create a driving school")
	ErrNotAuthorizedToRetrieveADrivingSchool           = errors.New("driving school: not authorized to retrieve a driving school")
	ErrNotAuthorizedToRetrieveDrivingSchoolsOfACompany = errors.New("driving school: not authorized to retrieve driving schools of a company")
)
