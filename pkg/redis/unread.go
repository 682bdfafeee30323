package redis

import (
	"fmt"
	"time"
)

// unreadKeyPrefix namespaces the per-user unread-moment counters.
const unreadKeyPrefix = "pulse:unread:"

// counterTTL bounds stale counters; the source of truth stays in MySQL
// (moment_recipient.read_at), so an expired counter just reads as zero.
const counterTTL = 24 * time.Hour

// IncrementUnread bumps the unread-moment counter for a receiver.
func IncrementUnread(userID uint) error {
	if client == nil {
		return fmt.Errorf("redis client not initialized")
	}

	key := fmt.Sprintf("%s%d", unreadKeyPrefix, userID)

	if err := client.Incr(ctx, key).Err(); err != nil {
		return fmt.Errorf("increment unread counter failed: %w", err)
	}
	if err := client.Expire(ctx, key, counterTTL).Err(); err != nil {
		return fmt.Errorf("set unread counter ttl failed: %w", err)
	}

	return nil
}

// GetUnread returns the unread-moment counter for a user; 0 when absent.
func GetUnread(userID uint) (int64, error) {
	if client == nil {
		return 0, fmt.Errorf("redis client not initialized")
	}

	key := fmt.Sprintf("%s%d", unreadKeyPrefix, userID)

	count, err := client.Get(ctx, key).Int64()
	if err != nil {
		if err.Error() == "redis: nil" {
			return 0, nil
		}
		return 0, fmt.Errorf("get unread counter failed: %w", err)
	}

	return count, nil
}

// SetUnread overwrites the unread-moment counter; used to resync the cache
// from the database after a redis miss.
func SetUnread(userID uint, count int64) error {
	if client == nil {
		return fmt.Errorf("redis client not initialized")
	}

	key := fmt.Sprintf("%s%d", unreadKeyPrefix, userID)

	if err := client.Set(ctx, key, count, counterTTL).Err(); err != nil {
		return fmt.Errorf("set unread counter failed: %w", err)
	}

	return nil
}

// ResetUnread clears the unread-moment counter; called when the inbox is
// fetched.
func ResetUnread(userID uint) error {
	if client == nil {
		return fmt.Errorf("redis client not initialized")
	}

	key := fmt.Sprintf("%s%d", unreadKeyPrefix, userID)

	if err := client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("reset unread counter failed: %w", err)
	}

	return nil
}
