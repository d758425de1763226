package models

// Role 令牌中携带的角色声明，闭合枚举
type Role string

const (
	RoleTeam  Role = "team"
	RoleAdmin Role = "admin"
)

// Valid 角色是否为已知取值
func (r Role) Valid() bool {
	switch r {
	case RoleTeam, RoleAdmin:
		return true
	}
	return false
}
