package ledger

import (
	"context"
	"errors"

	"github.com/mmynk/households/internal/storage"
)

// ResolveDisplayName looks up a readable name for a user: the display name,
// else the email. ok is false when the user has no recorded profile or the
// profile has neither field; the caller picks the fallback.
func (l *Ledger) ResolveDisplayName(ctx context.Context, userID string) (name string, ok bool) {
	user, err := l.store.GetUser(ctx, userID)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			l.logger.WarnContext(ctx, "Display name lookup failed", "user_id", userID, "error", err)
		}
		return "", false
	}
	label := user.Label()
	return label, label != ""
}

// nameCache memoizes display names for the duration of one operation.
type nameCache struct {
	l     *Ledger
	names map[string]string
}

func (l *Ledger) newNameCache() *nameCache {
	return &nameCache{l: l, names: make(map[string]string)}
}

// labelOrID returns the user's display name, falling back to the raw ID.
func (c *nameCache) labelOrID(ctx context.Context, userID string) string {
	if name, seen := c.names[userID]; seen {
		return name
	}
	name, ok := c.l.ResolveDisplayName(ctx, userID)
	if !ok {
		name = userID
	}
	c.names[userID] = name
	return name
}
