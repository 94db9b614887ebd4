package handler

import (
	"time"

	"github.com/ogurasousui/drivingschool-grpc-clean-arch/internal/core/company"
	"github.com/ogurasousui/drivingschool-grpc-clean-arch/internal/core/contact"
	"github.com/ogurasousui/drivingschool-grpc-clean-arch/internal/core/drivingschool"
)

type contactDTO struct {
	Phone string `json:"phone"`
	Email string `json:"email"`
}

type idRequest struct {
	ID string `json:"id" validate:"required"`
}

type emptyRequest struct{}

type createCompanyRequest struct {
	Name        string          `json:"name"`
	Address     contact.Address `json:"address"`
	LegalStatus string          `json:"legalStatus"`
	Contact     contactDTO      `json:"contact"`
}

type editCompanyRequest struct {
	ID          string           `json:"id" validate:"required"`
	Name        *string          `json:"name,omitempty"`
	Address     *contact.Address `json:"address,omitempty"`
	LegalStatus *string          `json:"legalStatus,omitempty"`
	Contact     *contactDTO      `json:"contact,omitempty"`
}

type createDrivingSchoolRequest struct {
	CompanyID    string                     `json:"companyId"`
	Name         string                     `json:"name"`
	Address      contact.Address            `json:"address"`
	Phone        string                     `json:"phone"`
	Email        string                     `json:"email"`
	OpeningHours drivingschool.OpeningHours `json:"openingHours"`
}

type companyOfDrivingSchoolsRequest struct {
	CompanyID string `json:"companyId"`
}

type companyDTO struct {
	ID          string          `json:"id"`
	Fingerprint string          `json:"fingerprint"`
	Name        string          `json:"name"`
	Address     contact.Address `json:"address"`
	LegalStatus string          `json:"legalStatus"`
	Contact     contactDTO      `json:"contact"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type companiesDTO struct {
	Companies []companyDTO `json:"companies"`
}

type deletedDTO struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

type drivingSchoolDTO struct {
	ID           string                     `json:"id"`
	Fingerprint  string                     `json:"fingerprint,omitempty"`
	CompanyID    string                     `json:"companyId,omitempty"`
	Name         string                     `json:"name"`
	Address      contact.Address            `json:"address"`
	Phone        string                     `json:"phone"`
	Email        string                     `json:"email"`
	OpeningHours drivingschool.OpeningHours `json:"openingHours"`
	CreatedAt    *time.Time                 `json:"createdAt,omitempty"`
	UpdatedAt    *time.Time                 `json:"updatedAt,omitempty"`
}

type drivingSchoolsDTO struct {
	DrivingSchools []drivingSchoolDTO `json:"drivingSchools"`
}

func toCompanyDTO(c *company.Company) companyDTO {
	d := c.Data()
	return companyDTO{
		ID:          string(d.ID),
		Fingerprint: string(d.Fingerprint),
		Name:        d.Name,
		Address:     d.Address,
		LegalStatus: d.LegalStatus,
		Contact:     contactDTO{Phone: d.Contact.Phone, Email: d.Contact.Email},
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func toFullDrivingSchoolDTO(d drivingschool.Data) drivingSchoolDTO {
	createdAt, updatedAt := d.CreatedAt, d.UpdatedAt
	return drivingSchoolDTO{
		ID:           string(d.ID),
		Fingerprint:  string(d.Fingerprint),
		CompanyID:    string(d.CompanyID),
		Name:         d.Name,
		Address:      d.Address,
		Phone:        d.Phone,
		Email:        d.Email,
		OpeningHours: d.OpeningHours,
		CreatedAt:    &createdAt,
		UpdatedAt:    &updatedAt,
	}
}

// toViewDTO は View の種類に応じて公開するフィールドを切り替えます。
func toViewDTO(view drivingschool.View) drivingSchoolDTO {
	switch v := view.(type) {
	case drivingschool.AdminView:
		return toFullDrivingSchoolDTO(v.Data)
	case drivingschool.PublicView:
		return drivingSchoolDTO{
			ID:           string(v.ID),
			Name:         v.Name,
			Address:      v.Address,
			Phone:        v.Phone,
			Email:        v.Email,
			OpeningHours: v.OpeningHours,
		}
	default:
		return drivingSchoolDTO{}
	}
}
