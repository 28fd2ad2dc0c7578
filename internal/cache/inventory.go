package cache

import (
	"context"
	"fmt"
	"time"

	"cardstack/internal/observability"
)

const (
	UserKeyPrefix     = "user:%d"
	CardKeyPrefix     = "card:%d:owner:%d"
	CardListKeyPrefix = "cards:owner:%d"
)

const (
	UserTTL     = 5 * time.Minute
	CardTTL     = 30 * time.Minute
	CardListTTL = 10 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

// CardKey is scoped by owner as well as ID so a cached entry can never be
// served to a caller who does not own the card.
func CardKey(cardID, ownerID uint) string {
	return fmt.Sprintf(CardKeyPrefix, cardID, ownerID)
}

func CardListKey(ownerID uint) string {
	return fmt.Sprintf(CardListKeyPrefix, ownerID)
}

func Invalidate(ctx context.Context, key string) {
	if client == nil {
		return
	}
	if err := client.Del(ctx, key).Err(); err != nil {
		observability.RecordRedisError("del")
	}
}

func InvalidateCard(ctx context.Context, cardID, ownerID uint) {
	Invalidate(ctx, CardKey(cardID, ownerID))
	Invalidate(ctx, CardListKey(ownerID))
}

func InvalidateCardList(ctx context.Context, ownerID uint) {
	Invalidate(ctx, CardListKey(ownerID))
}
