package user

// Role はユーザーの役割を表します。
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleDirector   Role = "director"
	RoleExecutive  Role = "executive"
	RoleInstructor Role = "instructor"
	RoleStudent    Role = "student"
)

// ParseRole は文字列から Role を生成します。
func ParseRole(raw string) (Role, error) {
	role := Role(raw)
	switch role {
	case RoleAdmin, RoleDirector, RoleExecutive, RoleInstructor, RoleStudent:
		return role, nil
	default:
		return "", ErrInvalidRole
	}
}

// IsCompanyScoped は会社に所属する役割かどうかを返します。
func (r Role) IsCompanyScoped() bool {
	switch r {
	case RoleDirector, RoleExecutive, RoleInstructor:
		return true
	default:
		return false
	}
}

// User は操作を行うアカウント(アクター)です。役割は生成後に変更されません。
type User struct {
	id             string
	name           string
	email          string
	role           Role
	relatedCompany string
}

// Data はユーザーのプレーンなスナップショットです。
type Data struct {
	ID             string
	Name           string
	Email          string
	Role           Role
	RelatedCompany string
}

// New は役割に応じたユーザーを生成します。
// director / executive / instructor は relatedCompany が必須で、それ以外では無視されます。
func New(id, name, email string, role Role, relatedCompany string) (*User, error) {
	if id == "" {
		return nil, ErrInvalidID
	}

	switch {
	case role.IsCompanyScoped():
		if relatedCompany == "" {
			return nil, ErrMissingRelatedCompany
		}
	case role == RoleAdmin, role == RoleStudent:
		relatedCompany = ""
	default:
		return nil, ErrInvalidRole
	}

	return &User{
		id:             id,
		name:           name,
		email:          email,
		role:           role,
		relatedCompany: relatedCompany,
	}, nil
}

// NewAdmin は管理者を生成します。
func NewAdmin(id, name, email string) (*User, error) {
	return New(id, name, email, RoleAdmin, "")
}

// NewDirector は会社の責任者を生成します。
func NewDirector(id, name, email, relatedCompany string) (*User, error) {
	return New(id, name, email, RoleDirector, relatedCompany)
}

// NewExecutive は会社の役員を生成します。
func NewExecutive(id, name, email, relatedCompany string) (*User, error) {
	return New(id, name, email, RoleExecutive, relatedCompany)
}

// NewInstructor は教官を生成します。
func NewInstructor(id, name, email, relatedCompany string) (*User, error) {
	return New(id, name, email, RoleInstructor, relatedCompany)
}

// NewStudent は教習生を生成します。
func NewStudent(id, name, email string) (*User, error) {
	return New(id, name, email, RoleStudent, "")
}

// ID はユーザー ID を返します。
func (u *User) ID() string {
	return u.id
}

func (u *User) Name() string {
	return u.name
}

func (u *User) Email() string {
	return u.email
}

// Role は役割を返します。
func (u *User) Role() Role {
	return u.role
}

// RelatedCompany は所属会社の ID を返します。会社に所属しない役割では空文字列です。
func (u *User) RelatedCompany() string {
	return u.relatedCompany
}

// Data はユーザーのスナップショットを返します。
func (u *User) Data() Data {
	return Data{
		ID:             u.id,
		Name:           u.name,
		Email:          u.email,
		Role:           u.role,
		RelatedCompany: u.relatedCompany,
	}
}
