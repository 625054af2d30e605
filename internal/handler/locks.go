package handler

import (
	"context"
	"fmt"
	"time"
)

// Assignment changes read-then-write the same rows several times, so
// concurrent calls touching the same guard or the same slot are
// serialized with short-lived redis locks. The partial unique indexes on
// active assignments remain the storage-level second line of defense.

func guardLockKey(organizationID, guardID int64) string {
	return fmt.Sprintf("lock:assign:guard:%d:%d", organizationID, guardID)
}

func slotLockKey(organizationID, postID int64, slotNumber int32) string {
	return fmt.Sprintf("lock:assign:slot:%d:%d:%d", organizationID, postID, slotNumber)
}

// acquireLocks takes every key or none. The returned release function is
// safe to defer even on partial failure.
func (h *Handler) acquireLocks(ctx context.Context, keys ...string) (func(), bool, error) {
	expiration := time.Duration(h.config.Redis.LockExpiration) * time.Second

	acquired := make([]string, 0, len(keys))
	release := func() {
		if len(acquired) == 0 {
			return
		}
		releaseCtx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.Redis.ConnectTimeout)*time.Second)
		defer cancel()
		h.redisClient.Del(releaseCtx, acquired...)
	}

	for _, key := range keys {
		ok, err := h.redisClient.SetNX(ctx, key, 1, expiration).Result()
		if err != nil {
			release()
			return nil, false, err
		}
		if !ok {
			release()
			return nil, false, nil
		}
		acquired = append(acquired, key)
	}

	return release, true, nil
}
