package domain

import "time"

type UserRole string

const (
	RolePlayer     UserRole = "player"
	RoleFieldOwner UserRole = "field_owner"
	RoleAdmin      UserRole = "admin"
)

// User is a thin local projection of the account managed by the external
// auth service. Registration and token issuance happen there; this service
// only references users by id.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email" gorm:"uniqueIndex"`
	Name      string    `json:"name"`
	Role      UserRole  `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
