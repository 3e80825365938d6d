package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

const queueLengthTTL = 15 * time.Second

// QueueLengths is a short-lived cache of waiting-queue sizes per shop, used
// by the public shop listing so every page view does not count bookings.
type QueueLengths struct {
	rdb *redis.Client
}

func NewQueueLengths(rdb *redis.Client) *QueueLengths {
	return &QueueLengths{rdb: rdb}
}

func lengthKey(shopID uint) string {
	return fmt.Sprintf("queue_len:%d", shopID)
}

func (q *QueueLengths) Get(ctx context.Context, shopID uint) (int, bool) {
	v, err := q.rdb.Get(ctx, lengthKey(shopID)).Result()
	if err != nil {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (q *QueueLengths) Set(ctx context.Context, shopID uint, length int) {
	q.rdb.Set(ctx, lengthKey(shopID), strconv.Itoa(length), queueLengthTTL)
}

// Invalidate drops the cached length after any queue mutation.
func (q *QueueLengths) Invalidate(ctx context.Context, shopID uint) {
	q.rdb.Del(ctx, lengthKey(shopID))
}
