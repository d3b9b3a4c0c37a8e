package users

import "time"

// User is the owner identity persisted on first upload. The ID is the
// external identity subject and joins documents to their owner.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
