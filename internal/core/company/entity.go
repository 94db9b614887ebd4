package company

import (
	"time"
	"unicode/utf8"

	"github.com/ogurasousui/drivingschool-grpc-clean-arch/internal/core/contact"
)

// ID は会社 ID です。
type ID string

// Fingerprint は外部連携用に払い出される会社の副 ID です。
type Fingerprint string

const maxNameLength = 255

// Name は検証済みの会社名です。
type Name struct {
	value string
}

// ParseName は 1 文字以上 255 文字以下の会社名を受け付けます。
func ParseName(raw string) (Name, error) {
	length := utf8.RuneCountInString(raw)
	if length == 0 || length > maxNameLength {
		return Name{}, ErrInvalidCompanyName
	}
	return Name{value: raw}, nil
}

// String は会社名の文字列表現を返します。
func (n Name) String() string {
	return n.value
}

// Contact は会社の連絡先です。
type Contact struct {
	Phone string
	Email string
}

// Data は会社のプレーンなスナップショットです。値オブジェクトはすべて文字列に展開されます。
type Data struct {
	ID          ID
	Fingerprint Fingerprint
	Name        string
	Address     contact.Address
	LegalStatus string
	Contact     Contact
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Company は会社エンティティです。生成後に変更されることはありません。
type Company struct {
	id          ID
	fingerprint Fingerprint
	name        Name
	address     contact.Address
	legalStatus string
	phone       contact.Phone
	email       contact.Email
	createdAt   time.Time
	updatedAt   time.Time
}

// FromData は Data を検証して Company を生成します。
// 検証は会社名、電話番号、メールアドレスの順に行い、最初のエラーを返します。
func FromData(data Data) (*Company, error) {
	name, err := ParseName(data.Name)
	if err != nil {
		return nil, err
	}

	phone, err := contact.ParsePhone(data.Contact.Phone)
	if err != nil {
		return nil, err
	}

	email, err := contact.ParseEmail(data.Contact.Email)
	if err != nil {
		return nil, err
	}

	return &Company{
		id:          data.ID,
		fingerprint: data.Fingerprint,
		name:        name,
		address:     data.Address,
		legalStatus: data.LegalStatus,
		phone:       phone,
		email:       email,
		createdAt:   data.CreatedAt,
		updatedAt:   data.UpdatedAt,
	}, nil
}

// ID は会社 ID を返します。
func (c *Company) ID() ID {
	return c.id
}

// CreatedAt は作成日時を返します。
func (c *Company) CreatedAt() time.Time {
	return c.createdAt
}

// Data は会社のスナップショットを返します。
func (c *Company) Data() Data {
	return Data{
		ID:          c.id,
		Fingerprint: c.fingerprint,
		Name:        c.name.String(),
		Address:     c.address,
		LegalStatus: c.legalStatus,
		Contact: Contact{
			Phone: c.phone.String(),
			Email: c.email.String(),
		},
		CreatedAt: c.createdAt,
		UpdatedAt: c.updatedAt,
	}
}
