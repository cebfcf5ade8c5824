package service

import "github.com/google/uuid"

// StaffSession identifies the authenticated operator for one request.
// It is built from JWT claims by the handler and passed explicitly into
// every operation — no ambient "active staff" global exists.
type StaffSession struct {
	ID   uuid.UUID
	Name string
	Role string
}
