package users

type Role string

const (
	RoleTourist    Role = "TOURIST"
	RoleGuide      Role = "GUIDE"
	RoleAdvertiser Role = "ADVERTISER"
	RoleAdmin      Role = "ADMIN"
)

func IsValidRole(role string) bool {
	switch Role(role) {
	case RoleTourist, RoleGuide, RoleAdvertiser, RoleAdmin:
		return true
	default:
		return false
	}
}

// CanManageListings reports whether the role may create and edit listings.
func CanManageListings(role string) bool {
	switch Role(role) {
	case RoleGuide, RoleAdvertiser, RoleAdmin:
		return true
	}
	return false
}
