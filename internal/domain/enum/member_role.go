package enum

// MemberRole is a user's role inside one school tenant
type MemberRole string

const (
	MemberRoleOwner  MemberRole = "owner"
	MemberRoleAdmin  MemberRole = "admin"
	MemberRoleMember MemberRole = "member"
)

// Role names seeded into the roles table
const (
	RoleSuperAdmin = "super-admin"
	RoleAdmin      = "admin"
	RoleBursar     = "bursar"
	RoleUser       = "user"
)

func (r MemberRole) IsValid() bool {
	switch r {
	case MemberRoleOwner, MemberRoleAdmin, MemberRoleMember:
		return true
	}
	return false
}
