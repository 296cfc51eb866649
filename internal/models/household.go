package models

// Household is a group of users who share expenses.
type Household struct {
	// ID is the unique identifier for the household (UUID format).
	ID string

	// Name is the display name of the household (e.g., "Flat 3B").
	Name string

	// OwnerUserID is the user who created the household.
	// Ownership is recorded but grants no extra permissions.
	OwnerUserID string

	// CreatedAt is the Unix timestamp when the household was created.
	CreatedAt int64
}

// Member is a user's enrollment in a household.
// A (HouseholdID, UserID) pair is unique.
type Member struct {
	HouseholdID string
	UserID      string

	// JoinedAt is the Unix timestamp of enrollment.
	JoinedAt int64
}

// HouseholdListing is a household as seen by a particular caller.
type HouseholdListing struct {
	Household
	IsMember bool
}
