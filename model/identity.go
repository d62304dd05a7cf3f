package model

// Roles issued by the identity provider, highest privilege first.
const (
	RoleHRAdmin  = "HR Admin"
	RoleManager  = "Manager"
	RoleEmployee = "Employee"
)

// Identity is the authenticated caller as asserted by the identity provider.
// It carries no employee data; the caller's employee profile is resolved
// separately via the email join key and may not exist.
type Identity struct {
	Email    string   `json:"email"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}

func (i Identity) HasRole(role string) bool {
	for _, r := range i.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (i Identity) IsHRAdmin() bool  { return i.HasRole(RoleHRAdmin) }
func (i Identity) IsManager() bool  { return i.HasRole(RoleManager) }
func (i Identity) IsEmployee() bool { return i.HasRole(RoleEmployee) }

// DisplayName prefers the username, falling back to the email.
func (i Identity) DisplayName() string {
	if i.Username != "" {
		return i.Username
	}
	return i.Email
}
