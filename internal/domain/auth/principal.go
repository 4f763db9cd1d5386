package auth

import (
	"errors"

	"github.com/google/uuid"
)

var ErrInvalidRole = errors.New("invalid role")

// Role is supplied by the identity collaborator and trusted as given.
type Role string

const (
	RoleGuest Role = "guest"
	RoleHost  Role = "host"
	RoleAdmin Role = "admin"
)

func NewRole(s string) (Role, error) {
	r := Role(s)
	if !r.IsValid() {
		return "", ErrInvalidRole
	}
	return r, nil
}

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleGuest, RoleHost, RoleAdmin:
		return true
	default:
		return false
	}
}

// Principal is the authenticated caller of a boundary operation.
type Principal struct {
	UserID uuid.UUID
	Role   Role
}

// ActsAsHost reports whether a cancellation by this principal follows the
// host-initiated policy. Admins cancel on the host's behalf.
func (p Principal) ActsAsHost(hostID uuid.UUID) bool {
	return p.Role == RoleAdmin || (p.Role == RoleHost && p.UserID == hostID)
}
