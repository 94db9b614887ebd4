package drivingschool

import (
	"time"

	"github.com/ogurasousui/drivingschool-grpc-clean-arch/internal/core/company"
	"github.com/ogurasousui/drivingschool-grpc-clean-arch/internal/core/contact"
)

// ID は教習所 ID です。
type ID string

// Fingerprint は外部連携用に払い出される教習所の副 ID です。
type Fingerprint string

// Data は教習所のプレーンなスナップショットです。
type Data struct {
	ID           ID
	Fingerprint  Fingerprint
	CompanyID    company.ID
	Name         string
	Address      contact.Address
	Phone        string
	Email        string
	OpeningHours OpeningHours
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DrivingSchool は教習所エンティティです。生成後に変更されることはありません。
type DrivingSchool struct {
	id           ID
	fingerprint  Fingerprint
	companyID    company.ID
	name         string
	address      contact.Address
	phone        contact.Phone
	email        contact.Email
	openingHours OpeningHours
	createdAt    time.Time
	updatedAt    time.Time
}

// FromData は Data を検証して DrivingSchool を生成します。
// 検証は電話番号、メールアドレス、営業時間の順に行います。名前は検証しません。
func FromData(data Data) (*DrivingSchool, error) {
	phone, err := contact.ParsePhone(data.Phone)
	if err != nil {
		return nil, err
	}

	email, err := contact.ParseEmail(data.Email)
	if err != nil {
		return nil, err
	}

	hours, err := ParseOpeningHours(data.OpeningHours)
	if err != nil {
		return nil, err
	}

	return &DrivingSchool{
		id:           data.ID,
		fingerprint:  data.Fingerprint,
		companyID:    data.CompanyID,
		name:         data.Name,
		address:      data.Address,
		phone:        phone,
		email:        email,
		openingHours: hours,
		createdAt:    data.CreatedAt,
		updatedAt:    data.UpdatedAt,
	}, nil
}

// ID は教習所 ID を返します。
func (d *DrivingSchool) ID() ID {
	return d.id
}

// CompanyID は所属する会社の ID を返します。
func (d *DrivingSchool) CompanyID() company.ID {
	return d.companyID
}

// CreatedAt は作成日時を返します。
func (d *DrivingSchool) CreatedAt() time.Time {
	return d.createdAt
}

// Data は教習所のスナップショットを返します。営業時間は複製されます。
func (d *DrivingSchool) Data() Data {
	return Data{
		ID:           d.id,
		Fingerprint:  d.fingerprint,
		CompanyID:    d.companyID,
		Name:         d.name,
		Address:      d.address,
		Phone:        d.phone.String(),
		Email:        d.email.String(),
		OpeningHours: d.openingHours.Clone(),
		CreatedAt:    d.createdAt,
		UpdatedAt:    d.updatedAt,
	}
}
