package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/households/internal/ledger"
	"github.com/mmynk/households/internal/models"
	api "github.com/mmynk/households/pkg/api"
	"github.com/mmynk/households/pkg/api/apiconnect"
)

// HouseholdService implements the Connect HouseholdService
type HouseholdService struct {
	apiconnect.UnimplementedHouseholdServiceHandler
	ledger *ledger.Ledger
}

// NewHouseholdService creates a new HouseholdService backed by the given ledger.
func NewHouseholdService(l *ledger.Ledger) *HouseholdService {
	return &HouseholdService{ledger: l}
}

// CreateHousehold creates a household owned by the caller.
func (s *HouseholdService) CreateHousehold(ctx context.Context, req *connect.Request[api.CreateHouseholdRequest]) (*connect.Response[api.CreateHouseholdResponse], error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	slog.DebugContext(ctx, "CreateHousehold request received", "name", req.Msg.Name, "user_id", actor.UserID)

	household, err := s.ledger.CreateHousehold(ctx, actor, req.Msg.Name)
	if err != nil {
		return nil, toConnectError(ctx, "CreateHousehold", err)
	}

	return connect.NewResponse(&api.CreateHouseholdResponse{
		Household: householdToAPI(*household, true),
	}), nil
}

// JoinHousehold enrolls the caller in a household.
func (s *HouseholdService) JoinHousehold(ctx context.Context, req *connect.Request[api.JoinHouseholdRequest]) (*connect.Response[api.JoinHouseholdResponse], error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	if err := requireID("household_id", req.Msg.HouseholdId); err != nil {
		return nil, err
	}

	ok, err := s.ledger.JoinHousehold(ctx, actor, req.Msg.HouseholdId)
	if err != nil {
		return nil, toConnectError(ctx, "JoinHousehold", err)
	}

	return connect.NewResponse(&api.JoinHouseholdResponse{Success: ok}), nil
}

// ListHouseholds lists every household, flagging those the caller belongs to.
func (s *HouseholdService) ListHouseholds(ctx context.Context, req *connect.Request[api.ListHouseholdsRequest]) (*connect.Response[api.ListHouseholdsResponse], error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}

	listings, err := s.ledger.ListHouseholds(ctx, actor.UserID)
	if err != nil {
		return nil, toConnectError(ctx, "ListHouseholds", err)
	}

	households := make([]*api.Household, len(listings))
	for i, h := range listings {
		households[i] = householdToAPI(h.Household, h.IsMember)
	}

	return connect.NewResponse(&api.ListHouseholdsResponse{Households: households}), nil
}

// ListMembers lists a household's members in enrollment order.
func (s *HouseholdService) ListMembers(ctx context.Context, req *connect.Request[api.ListMembersRequest]) (*connect.Response[api.ListMembersResponse], error) {
	if err := requireID("household_id", req.Msg.HouseholdId); err != nil {
		return nil, err
	}

	details, err := s.ledger.ListMembers(ctx, req.Msg.HouseholdId)
	if err != nil {
		return nil, toConnectError(ctx, "ListMembers", err)
	}

	members := make([]*api.Member, len(details))
	for i, m := range details {
		members[i] = &api.Member{
			UserId:      m.UserID,
			DisplayName: m.DisplayName,
			JoinedAt:    m.JoinedAt,
		}
	}

	return connect.NewResponse(&api.ListMembersResponse{Members: members}), nil
}

func householdToAPI(h models.Household, isMember bool) *api.Household {
	return &api.Household{
		Id:          h.ID,
		Name:        h.Name,
		OwnerUserId: h.OwnerUserID,
		CreatedAt:   h.CreatedAt,
		IsMember:    isMember,
	}
}
