package ports

import "context"

// UsernameAvailability is the answer to a signup-time username check.
type UsernameAvailability struct {
	Username  string `json:"username"`
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

// UsernameService checks whether a subdomain can still be claimed.
type UsernameService interface {
	CheckUsername(ctx context.Context, username string) (*UsernameAvailability, error)
}
