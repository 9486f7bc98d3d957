package identityservice

// Роли пользователей в IdentityService
const (
	RoleMotorist  = "motorist"
	RoleShopOwner = "shop_owner"
	RoleAdmin     = "admin"
)

// User профиль пользователя из IdentityService
type User struct {
	ID          int64  `json:"id"`
	Role        string `json:"role"` // motorist | shop_owner | admin
	DisplayName string `json:"display_name"`
}

// IsShopOwner возвращает true для владельца мастерской
func (u *User) IsShopOwner() bool {
	return u.Role == RoleShopOwner
}

// ErrorResponse модель ошибки от IdentityService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
