package domain

// AdminRoleName is the role seeded during installation and assigned to the
// first provisioned user.
const AdminRoleName = "admin"

// Role is a named privilege group. Roles are created only by the installer
// and never updated or deleted by this service.
type Role struct {
	ID   int64
	Name string
}
