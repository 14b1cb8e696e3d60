// Copyright (c) 2026 Vocaboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package access

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/vocaboard/internal/platform/constants"
	"github.com/taibuivan/vocaboard/internal/platform/sec"
)

// # Session-Scoped Role Memo

// RoleMemo remembers a resolved role for at most the lifetime of a session.
//
// Keys identify one session, never just a user: a new session always asks the
// backend again. Entries carry a TTL bounded by the session credential's
// expiry. DeleteUser drops every session entry of a user after a role update.
type RoleMemo interface {
	Get(ctx context.Context, key string) (sec.Role, bool, error)
	Set(ctx context.Context, userID, key string, role sec.Role, ttl time.Duration) error
	DeleteUser(ctx context.Context, userID string) error
}

// noMemo disables memoisation.
type noMemo struct{}

func (noMemo) Get(context.Context, string) (sec.Role, bool, error)                { return "", false, nil }
func (noMemo) Set(context.Context, string, string, sec.Role, time.Duration) error { return nil }
func (noMemo) DeleteUser(context.Context, string) error                           { return nil }

// ## In-Process

type memoEntry struct {
	role      sec.Role
	userID    string
	expiresAt time.Time
}

// MemoryMemo is an in-process [RoleMemo]. Expired entries are dropped lazily.
type MemoryMemo struct {
	mu      sync.Mutex
	entries map[string]memoEntry
	byUser  map[string]map[string]struct{}
	now     func() time.Time
}

// NewMemoryMemo constructs an empty in-process memo.
func NewMemoryMemo() *MemoryMemo {
	return &MemoryMemo{
		entries: make(map[string]memoEntry),
		byUser:  make(map[string]map[string]struct{}),
		now:     time.Now,
	}
}

// Get implements [RoleMemo].
func (memo *MemoryMemo) Get(_ context.Context, key string) (sec.Role, bool, error) {
	memo.mu.Lock()
	defer memo.mu.Unlock()

	entry, ok := memo.entries[key]
	if !ok {
		return "", false, nil
	}
	if !memo.now().Before(entry.expiresAt) {
		memo.drop(key, entry.userID)
		return "", false, nil
	}
	return entry.role, true, nil
}

// Set implements [RoleMemo]. A non-positive TTL is a no-op.
func (memo *MemoryMemo) Set(_ context.Context, userID, key string, role sec.Role, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	memo.mu.Lock()
	defer memo.mu.Unlock()

	memo.entries[key] = memoEntry{role: role, userID: userID, expiresAt: memo.now().Add(ttl)}
	if userID == "" {
		return nil
	}
	keys, ok := memo.byUser[userID]
	if !ok {
		keys = make(map[string]struct{})
		memo.byUser[userID] = keys
	}
	keys[key] = struct{}{}
	return nil
}

// DeleteUser implements [RoleMemo].
func (memo *MemoryMemo) DeleteUser(_ context.Context, userID string) error {
	memo.mu.Lock()
	defer memo.mu.Unlock()

	for key := range memo.byUser[userID] {
		delete(memo.entries, key)
	}
	delete(memo.byUser, userID)
	return nil
}

func (memo *MemoryMemo) drop(key, userID string) {
	delete(memo.entries, key)
	if keys, ok := memo.byUser[userID]; ok {
		delete(keys, key)
		if len(keys) == 0 {
			delete(memo.byUser, userID)
		}
	}
}

// ## Redis

// RedisMemo stores memo entries in Redis so every portal replica shares them.
//
// Each user has a set of their session keys next to the entries so a role
// update can delete all of them.
type RedisMemo struct {
	client *redis.Client
}

// NewRedisMemo wraps an already connected client.
func NewRedisMemo(client *redis.Client) *RedisMemo {
	return &RedisMemo{client: client}
}

func userSetKey(userID string) string {
	return constants.RedisPrefixRoleMemo + "user:" + userID
}

// Get implements [RoleMemo].
func (memo *RedisMemo) Get(ctx context.Context, key string) (sec.Role, bool, error) {
	value, err := memo.client.Get(ctx, constants.RedisPrefixRoleMemo+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("redis_role_memo_get_failed: %w", err)
	}

	role, ok := sec.ParseRole(value)
	if !ok {
		return "", false, nil
	}
	return role, true, nil
}

// Set implements [RoleMemo]. A non-positive TTL is a no-op.
func (memo *RedisMemo) Set(ctx context.Context, userID, key string, role sec.Role, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	_, err := memo.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, constants.RedisPrefixRoleMemo+key, string(role), ttl)
		if userID != "" {
			pipe.SAdd(ctx, userSetKey(userID), key)
			pipe.Expire(ctx, userSetKey(userID), constants.RoleMemoMaxTTL)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis_role_memo_set_failed: %w", err)
	}
	return nil
}

// DeleteUser implements [RoleMemo].
func (memo *RedisMemo) DeleteUser(ctx context.Context, userID string) error {
	setKey := userSetKey(userID)

	keys, err := memo.client.SMembers(ctx, setKey).Result()
	if err != nil {
		return fmt.Errorf("redis_role_memo_delete_failed: %w", err)
	}

	doomed := make([]string, 0, len(keys)+1)
	for _, key := range keys {
		doomed = append(doomed, constants.RedisPrefixRoleMemo+key)
	}
	doomed = append(doomed, setKey)

	if err := memo.client.Del(ctx, doomed...).Err(); err != nil {
		return fmt.Errorf("redis_role_memo_delete_failed: %w", err)
	}
	return nil
}
