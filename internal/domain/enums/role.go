package enums

type Role string

const (
	RoleStartup   Role = "startup"
	RoleAdmin     Role = "admin"
	RoleIncubator Role = "incubator"
)

func ParseRole(raw string) (Role, bool) {
	switch Role(raw) {
	case RoleStartup, RoleAdmin, RoleIncubator:
		return Role(raw), true
	default:
		return "", false
	}
}
