package domain

// RoleCustomer is the baseline label every account carries. It is never
// evidence of an elevated role during equivalence expansion.
const RoleCustomer = "customer"

// Actor is the pre-verified identity record handed over by the auth
// collaborator. No credential checks happen in this service.
type Actor struct {
	ID          string
	PrimaryRole string
	Roles       []string
}

// HeldRoles returns the primary role plus the role set, deduplicated.
func (a *Actor) HeldRoles() []string {
	seen := make(map[string]struct{}, len(a.Roles)+1)
	held := make([]string, 0, len(a.Roles)+1)
	if a.PrimaryRole != "" {
		seen[a.PrimaryRole] = struct{}{}
		held = append(held, a.PrimaryRole)
	}
	for _, role := range a.Roles {
		if _, ok := seen[role]; ok {
			continue
		}
		seen[role] = struct{}{}
		held = append(held, role)
	}
	return held
}
