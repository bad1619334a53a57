package domain

import "strings"

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleUser      Role = "user"
	RoleAnonymous Role = "anonymous"
)

// Actor is the caller identity handed to the core by the auth collaborator.
// The role is read-only here; nothing in this module assigns or upgrades it.
type Actor struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}

// AnonymousActor is used whenever a request carries no verifiable identity.
func AnonymousActor() Actor {
	return Actor{Role: RoleAnonymous}
}

// ParseRole normalizes external role claims. Unknown values fall back to user,
// an empty value means the caller is anonymous.
func ParseRole(raw string) Role {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return RoleAnonymous
	case string(RoleAdmin):
		return RoleAdmin
	case string(RoleAnonymous):
		return RoleAnonymous
	default:
		return RoleUser
	}
}

// CanEditRates reports whether the actor may mutate the rate table.
func CanEditRates(actor Actor) bool {
	return actor.Role == RoleAdmin
}

// CanViewCalculator reports whether the actor may see rates, payouts and exports.
func CanViewCalculator(actor Actor) bool {
	return actor.Role != "" && actor.Role != RoleAnonymous
}
