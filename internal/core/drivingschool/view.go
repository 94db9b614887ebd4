package drivingschool

import (
	"github.com/ogurasousui/drivingschool-grpc-clean-arch/internal/core/contact"
	"github.com/ogurasousui/drivingschool-grpc-clean-arch/internal/core/user"
)

// View はロールに応じて投影された教習所の表現です。
type View interface {
	isView()
}

// AdminView は管理者向けの完全な表現です。
type AdminView struct {
	Data
}

// PublicView は管理者以外に公開される表現です。
type PublicView struct {
	ID           ID
	Name         string
	Phone        string
	Email        string
	Address      contact.Address
	OpeningHours OpeningHours
}

func (AdminView) isView() {}
func (PublicView) isView() {}

// Project はロールに応じた View を返します。
func Project(role user.Role, school *DrivingSchool) View {
	data := school.Data()
	if role == user.RoleAdmin {
		return AdminView{Data: data}
	}
	return PublicView{
		ID:           data.ID,
		Name:         data.Name,
		Phone:        data.Phone,
		Email:        data.Email,
		Address:      data.Address,
		OpeningHours: data.OpeningHours,
	}
}
