// Package service implements the households Connect services on top of the ledger.
package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/households/internal/calculator"
	"github.com/mmynk/households/internal/ledger"
	"github.com/mmynk/households/internal/middleware"
	"github.com/mmynk/households/internal/storage"
)

// toConnectError maps ledger and storage failures to Connect codes. Internal
// failures are logged here and returned with a generic message.
func toConnectError(ctx context.Context, op string, err error) error {
	var code connect.Code
	switch {
	case errors.Is(err, ledger.ErrValidation):
		code = connect.CodeInvalidArgument
	case errors.Is(err, ledger.ErrNotAMember):
		code = connect.CodePermissionDenied
	case errors.Is(err, calculator.ErrNoMembers):
		code = connect.CodeFailedPrecondition
	case errors.Is(err, storage.ErrNotFound):
		code = connect.CodeNotFound
	case errors.Is(err, context.Canceled):
		code = connect.CodeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		code = connect.CodeDeadlineExceeded
	default:
		slog.ErrorContext(ctx, op+" failed", "error", err)
		return connect.NewError(connect.CodeInternal, errors.New(op+" failed"))
	}
	return connect.NewError(code, err)
}

// actorFrom builds the ledger actor from the identity the auth interceptor
// put in the context.
func actorFrom(ctx context.Context) (ledger.Actor, error) {
	actor := ledger.Actor{
		UserID:      middleware.GetUserID(ctx),
		Email:       middleware.GetEmail(ctx),
		DisplayName: middleware.GetDisplayName(ctx),
	}
	if actor.UserID == "" {
		return actor, connect.NewError(connect.CodeUnauthenticated, errors.New("caller identity required"))
	}
	return actor, nil
}

func requireID(field, value string) error {
	if value == "" {
		return connect.NewError(connect.CodeInvalidArgument, errors.New(field+" required"))
	}
	return nil
}
