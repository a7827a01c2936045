package rbac

// Role names. Keep these stable; they are part of auth/RBAC contracts.
const (
	RoleOperator     = "operator"
	RoleBillingAdmin = "billing_admin"
	RoleSuperAdmin   = "super_admin"
)

func IsSuperAdmin(role string) bool { return role == RoleSuperAdmin }
