package redis

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// LinkClicks summarizes the clicks recorded for one link.
type LinkClicks struct {
	LinkID               string     `json:"linkId"`
	Clicks               int64      `json:"clicks"`
	LatestClickTimestamp *time.Time `json:"latestClickTimestamp"`
}

// recordClick bumps the counter and keeps the newest timestamp seen.
var recordClick = redis.NewScript(`
redis.call('HINCRBY', KEYS[1], ARGV[1], 1)
local prev = tonumber(redis.call('HGET', KEYS[2], ARGV[1]) or '0')
if tonumber(ARGV[2]) > prev then
	redis.call('HSET', KEYS[2], ARGV[1], ARGV[2])
end
return 1
`)

// RecordClick increments the click counter of a link and remembers the
// latest time it was clicked.
func (s *Store) RecordClick(ctx context.Context, username, linkID string, at time.Time) error {
	keys := []string{ClicksKey(username), LastClickKey(username)}
	if err := recordClick.Run(ctx, s.client, keys, linkID, at.UnixMilli()).Err(); err != nil {
		return fmt.Errorf("failed to record click: %w", err)
	}
	return nil
}

// Analytics returns the click summary of every link of a user, most clicked
// first.
func (s *Store) Analytics(ctx context.Context, username string) ([]LinkClicks, error) {
	var counts, latest *redis.MapStringStringCmd
	_, err := s.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		counts = pipe.HGetAll(ctx, ClicksKey(username))
		latest = pipe.HGetAll(ctx, LastClickKey(username))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get analytics: %w", err)
	}

	stamps := latest.Val()
	out := make([]LinkClicks, 0, len(counts.Val()))
	for linkID, raw := range counts.Val() {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid click count for %s: %w", linkID, err)
		}
		entry := LinkClicks{LinkID: linkID, Clicks: n}
		if ms, err := strconv.ParseInt(stamps[linkID], 10, 64); err == nil {
			ts := time.UnixMilli(ms).UTC()
			entry.LatestClickTimestamp = &ts
		}
		out = append(out, entry)
	}

	slices.SortFunc(out, func(a, b LinkClicks) int {
		if c := cmp.Compare(b.Clicks, a.Clicks); c != 0 {
			return c
		}
		return cmp.Compare(a.LinkID, b.LinkID)
	})
	return out, nil
}
