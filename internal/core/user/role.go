package user

// IsAdmin はユーザーが管理者かどうかを返します。
func IsAdmin(u *User) bool {
	return u != nil && u.role == RoleAdmin
}

// IsDirector はユーザーが会社の責任者かどうかを返します。
func IsDirector(u *User) bool {
	return u != nil && u.role == RoleDirector
}

// IsAdminOrDirector はユーザーが管理者または責任者かどうかを返します。
func IsAdminOrDirector(u *User) bool {
	return IsAdmin(u) || IsDirector(u)
}
