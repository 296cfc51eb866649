package ledger

import (
	"context"
	"fmt"
	"strings"

	"github.com/mmynk/households/internal/events"
	"github.com/mmynk/households/internal/models"
)

// MemberDetail is a household member with a resolved display name.
type MemberDetail struct {
	models.Member
	DisplayName string
}

type createHouseholdInput struct {
	Name    string `validate:"required,max=200"`
	OwnerID string `validate:"required"`
}

// CreateHousehold creates a household owned by the actor and enrolls the actor
// as its first member. Both rows are written in one transaction.
func (l *Ledger) CreateHousehold(ctx context.Context, actor Actor, name string) (*models.Household, error) {
	in := createHouseholdInput{Name: strings.TrimSpace(name), OwnerID: actor.UserID}
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	l.rememberActor(ctx, actor)

	household := &models.Household{Name: in.Name, OwnerUserID: actor.UserID}
	if err := l.store.CreateHousehold(ctx, household); err != nil {
		return nil, fmt.Errorf("create household: %w", err)
	}

	l.logger.InfoContext(ctx, "Household created",
		"household_id", household.ID,
		"owner_user_id", household.OwnerUserID,
	)
	return household, nil
}

// JoinHousehold enrolls the actor in a household. Joining a household the actor
// already belongs to succeeds without writing anything.
func (l *Ledger) JoinHousehold(ctx context.Context, actor Actor, householdID string) (bool, error) {
	if actor.UserID == "" {
		return false, fmt.Errorf("%w: 'user_id' is required", ErrValidation)
	}

	l.rememberActor(ctx, actor)

	added, err := l.store.AddMember(ctx, householdID, actor.UserID)
	if err != nil {
		return false, fmt.Errorf("join household: %w", err)
	}

	if added {
		l.logger.InfoContext(ctx, "Member joined household",
			"household_id", householdID,
			"user_id", actor.UserID,
		)
		l.publish(ctx, events.NewHouseholdJoined(householdID, actor.UserID))
	}
	return true, nil
}

// ListHouseholds returns every household, flagging those the user belongs to.
// An empty userID lists all households as non-member.
func (l *Ledger) ListHouseholds(ctx context.Context, userID string) ([]models.HouseholdListing, error) {
	households, err := l.store.ListHouseholds(ctx)
	if err != nil {
		return nil, fmt.Errorf("list households: %w", err)
	}

	memberOf := make(map[string]bool)
	if userID != "" {
		ids, err := l.store.ListHouseholdIDsForUser(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("list memberships: %w", err)
		}
		for _, id := range ids {
			memberOf[id] = true
		}
	}

	listings := make([]models.HouseholdListing, len(households))
	for i, h := range households {
		listings[i] = models.HouseholdListing{Household: *h, IsMember: memberOf[h.ID]}
	}
	return listings, nil
}

// ListMembers returns a household's members in enrollment order.
func (l *Ledger) ListMembers(ctx context.Context, householdID string) ([]MemberDetail, error) {
	if err := l.requireHousehold(ctx, householdID); err != nil {
		return nil, err
	}

	members, err := l.store.ListMembers(ctx, householdID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}

	names := l.newNameCache()
	details := make([]MemberDetail, len(members))
	for i, m := range members {
		details[i] = MemberDetail{Member: m, DisplayName: names.labelOrID(ctx, m.UserID)}
	}
	return details, nil
}

// rememberActor records the actor's profile so other members see a readable
// name. Failure only degrades name resolution.
func (l *Ledger) rememberActor(ctx context.Context, actor Actor) {
	if actor.Email == "" && actor.DisplayName == "" {
		return
	}
	err := l.store.UpsertUser(ctx, &models.User{
		ID:          actor.UserID,
		Email:       actor.Email,
		DisplayName: actor.DisplayName,
	})
	if err != nil {
		l.logger.WarnContext(ctx, "Failed to record user profile", "user_id", actor.UserID, "error", err)
	}
}
