package cache

import (
	"context"
	"fmt"

	apperrors "ticketera/pkg/app_errors"

	"github.com/redis/go-redis/v9"
)

// EventInventory is a fast-path reservation gate in front of the database
// inventory. It keeps two concurrent purchases for the last ticket from both
// reaching the chain; the SQL decrement guard remains the source of truth.
type EventInventory interface {
	// WarmUp loads an event's remaining ticket count into Redis.
	WarmUp(ctx context.Context, eventID int, remaining int) error
	// Reserve atomically takes one ticket. Returns ErrSoldOut when the
	// counter is exhausted. An event that was never warmed up reserves
	// nothing and reports warmed=false so the caller can rely on the
	// database guard alone.
	Reserve(ctx context.Context, eventID int) (warmed bool, err error)
	// Rollback returns a reservation taken by Reserve.
	Rollback(ctx context.Context, eventID int) error

	// Cursor and SetCursor track the last block scanned by the mint
	// reconcile worker.
	Cursor(ctx context.Context) (uint64, error)
	SetCursor(ctx context.Context, block uint64) error
}

type EventInventoryImpl struct {
	client *redis.Client
}

func NewEventInventory(client *redis.Client) EventInventory {
	return &EventInventoryImpl{
		client: client,
	}
}

func (m *EventInventoryImpl) remainingKey(eventID int) string {
	return fmt.Sprintf("event:%d:remaining", eventID)
}

const cursorKey = "reconcile:last_block"

func (m *EventInventoryImpl) WarmUp(ctx context.Context, eventID int, remaining int) error {
	return m.client.Set(ctx, m.remainingKey(eventID), remaining, 0).Err()
}

// reserveScript decrements the counter only while it is positive, in a single
// atomic step.
var reserveScript = redis.NewScript(`
	local remaining = redis.call('GET', KEYS[1])
	if not remaining then
		return -2
	end
	if tonumber(remaining) <= 0 then
		return -1
	end
	return redis.call('DECR', KEYS[1])
`)

func (m *EventInventoryImpl) Reserve(ctx context.Context, eventID int) (bool, error) {
	result, err := reserveScript.Run(ctx, m.client, []string{m.remainingKey(eventID)}).Int64()
	if err != nil {
		return false, err
	}

	switch {
	case result == -2:
		// Inventory never warmed; do not block the purchase here.
		return false, nil
	case result == -1:
		return true, apperrors.ErrSoldOut
	default:
		return true, nil
	}
}

// rollbackScript only restores counters that still exist, so a rollback after
// a warm-up expiry cannot resurrect a stale key.
var rollbackScript = redis.NewScript(`
	if redis.call('EXISTS', KEYS[1]) == 1 then
		return redis.call('INCR', KEYS[1])
	end
	return -2
`)

func (m *EventInventoryImpl) Rollback(ctx context.Context, eventID int) error {
	return rollbackScript.Run(ctx, m.client, []string{m.remainingKey(eventID)}).Err()
}

func (m *EventInventoryImpl) Cursor(ctx context.Context) (uint64, error) {
	val, err := m.client.Get(ctx, cursorKey).Uint64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return val, nil
}

func (m *EventInventoryImpl) SetCursor(ctx context.Context, block uint64) error {
	return m.client.Set(ctx, cursorKey, block, 0).Err()
}
