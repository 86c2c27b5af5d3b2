package inbound

import "github.com/techpro/techpromanager/domain/entity"

// Actor is the authenticated caller a use case acts on behalf of
type Actor struct {
	UserID string
	Role   entity.Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == entity.RoleAdmin
}
