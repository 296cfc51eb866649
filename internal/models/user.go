package models

// User is the profile of an identity issued by the external auth provider.
//
// Only the fields needed to render a readable name are kept. Credentials and
// sessions live with the identity provider.
type User struct {
	// ID is the opaque identifier from the identity provider (token subject).
	ID string

	// Email is the user's email address, if the provider supplied one.
	Email string

	// DisplayName is the preferred human-readable name, if any.
	DisplayName string

	// UpdatedAt is the Unix timestamp of the last profile refresh.
	UpdatedAt int64
}

// Label returns the best human-readable name recorded for the user:
// the display name, then the email. It returns "" when neither is set.
func (u *User) Label() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Email
}
