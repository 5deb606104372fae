package identity

import "strings"

// AdminPolicy decides the UI admin flag. The local override is a UI
// affordance only and is ignored unless AllowLocalOverride is set.
type AdminPolicy struct {
	Email              string
	AllowLocalOverride bool
}

func (p AdminPolicy) IsAdmin(u *User, localFlag bool) bool {
	if localFlag && p.AllowLocalOverride {
		return true
	}
	if u == nil || p.Email == "" {
		return false
	}
	if strings.EqualFold(u.Email, p.Email) {
		return true
	}
	return len(u.ProviderEmails) > 0 && strings.EqualFold(u.ProviderEmails[0], p.Email)
}
