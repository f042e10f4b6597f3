package labeling

import "example.com/trainingdata/internal/domain"

// UserFilter decides whether a user's data appears in the output at all.
type UserFilter interface {
	Include(user domain.UserID) bool
}

// AllUsers admits everyone.
type AllUsers struct{}

// Include always returns true.
func (AllUsers) Include(domain.UserID) bool { return true }

// SingleUser admits exactly one target user.
type SingleUser struct {
	Target domain.UserID
}

// Include returns true iff the user is the configured target.
func (f SingleUser) Include(user domain.UserID) bool { return user == f.Target }
