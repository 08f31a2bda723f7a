package domain

import "time"

// DirectoryUser is a row in the local federation directory: the user store
// consulted when federation validation runs against this process instead of
// a remote endpoint.
type DirectoryUser struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string // argon2id encoded
	FirstName    string
	LastName     string
	Enabled      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
