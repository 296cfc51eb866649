package api

type Household struct {
	Id          string `json:"id"`
	Name        string `json:"name"`
	OwnerUserId string `json:"ownerUserId"`
	CreatedAt   int64  `json:"createdAt"`

	// IsMember is set on listings for the calling user.
	IsMember bool `json:"isMember,omitempty"`
}

type Member struct {
	UserId      string `json:"userId"`
	DisplayName string `json:"displayName"`
	JoinedAt    int64  `json:"joinedAt"`
}

type CreateHouseholdRequest struct {
	Name string `json:"name"`
}

type CreateHouseholdResponse struct {
	Household *Household `json:"household"`
}

type JoinHouseholdRequest struct {
	HouseholdId string `json:"householdId"`
}

type JoinHouseholdResponse struct {
	Success bool `json:"success"`
}

type ListHouseholdsRequest struct{}

type ListHouseholdsResponse struct {
	Households []*Household `json:"households"`
}

type ListMembersRequest struct {
	HouseholdId string `json:"householdId"`
}

type ListMembersResponse struct {
	Members []*Member `json:"members"`
}
