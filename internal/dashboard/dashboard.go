// Copyright (c) 2026 Vocaboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package dashboard keeps one board of async state stores per signed-in
principal.

# Lifecycle

A board is created on first use and touched on every read or refresh. The
[Registry.Run] sweeper evicts boards idle for longer than the registry's TTL.

# Concurrency

Each store is independently safe. The registry map is guarded by one mutex
that is never held while a thunk runs.
*/
package dashboard

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/taibuivan/vocaboard/internal/asyncstate"
	"github.com/taibuivan/vocaboard/internal/learning/bookmark"
	"github.com/taibuivan/vocaboard/internal/learning/category"
	"github.com/taibuivan/vocaboard/internal/learning/roadmap"
	"github.com/taibuivan/vocaboard/internal/learning/topic"
	"github.com/taibuivan/vocaboard/internal/platform/apiclient"
	"github.com/taibuivan/vocaboard/internal/platform/apperr"
	"github.com/taibuivan/vocaboard/internal/platform/constants"
	"github.com/taibuivan/vocaboard/pkg/pagination"
)

// Board resource names, as used in refresh routes.
const (
	ResourceCategories = "categories"
	ResourceRoadmaps   = "roadmaps"
	ResourceTopics     = "topics"
	ResourceBookmarks  = "bookmarks"
)

// boardPage is what a board loads for each list.
var boardPage = pagination.Params{Page: pagination.DefaultPage, Limit: pagination.MaxLimit}

// # Sources

type CategoryLister interface {
	ListCategories(ctx context.Context, cred apiclient.Credential, params pagination.Params) (pagination.List[category.Category], error)
}

type RoadmapLister interface {
	ListRoadmaps(ctx context.Context, cred apiclient.Credential, filter roadmap.Filter, params pagination.Params) (pagination.List[roadmap.Roadmap], error)
}

type TopicLister interface {
	ListTopics(ctx context.Context, cred apiclient.Credential, filter topic.Filter, params pagination.Params) (pagination.List[topic.Topic], error)
}

type BookmarkLister interface {
	ListBookmarks(ctx context.Context, cred apiclient.Credential, params pagination.Params) (pagination.List[bookmark.Bookmark], error)
}

// Sources are the services a board loads from.
type Sources struct {
	Categories CategoryLister
	Roadmaps   RoadmapLister
	Topics     TopicLister
	Bookmarks  BookmarkLister
}

// # Board

// Board holds the list stores of one principal.
type Board struct {
	Categories *asyncstate.Store[[]category.Category]
	Roadmaps   *asyncstate.Store[[]roadmap.Roadmap]
	Topics     *asyncstate.Store[[]topic.Topic]
	Bookmarks  *asyncstate.Store[[]bookmark.Bookmark]

	lastSeen time.Time
}

func newBoard(now time.Time) *Board {
	return &Board{
		Categories: asyncstate.NewStore[[]category.Category](nil),
		Roadmaps:   asyncstate.NewStore[[]roadmap.Roadmap](nil),
		Topics:     asyncstate.NewStore[[]topic.Topic](nil),
		Bookmarks:  asyncstate.NewStore[[]bookmark.Bookmark](nil),
		lastSeen:   now,
	}
}

// Snapshot is the JSON view of a board.
type Snapshot struct {
	Categories asyncstate.State[[]category.Category] `json:"categories"`
	Roadmaps   asyncstate.State[[]roadmap.Roadmap]   `json:"roadmaps"`
	Topics     asyncstate.State[[]topic.Topic]       `json:"topics"`
	Bookmarks  asyncstate.State[[]bookmark.Bookmark] `json:"bookmarks"`
}

// Snapshot copies every store.
func (board *Board) Snapshot() Snapshot {
	return Snapshot{
		Categories: board.Categories.Snapshot(),
		Roadmaps:   board.Roadmaps.Snapshot(),
		Topics:     board.Topics.Snapshot(),
		Bookmarks:  board.Bookmarks.Snapshot(),
	}
}

// # Registry

// Registry maps principals to boards.
type Registry struct {
	idleTTL time.Duration
	logger  *slog.Logger

	categories *asyncstate.Thunk[apiclient.Credential, []category.Category]
	roadmaps   *asyncstate.Thunk[apiclient.Credential, []roadmap.Roadmap]
	topics     *asyncstate.Thunk[apiclient.Credential, []topic.Topic]
	bookmarks  *asyncstate.Thunk[apiclient.Credential, []bookmark.Bookmark]

	mu     sync.Mutex
	boards map[string]*Board
}

// NewRegistry builds the thunks for sources. Boards idle for idleTTL are evicted by [Registry.Run].
func NewRegistry(sources Sources, idleTTL time.Duration, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}

	// One board belongs to one principal, so every dispatch on it shares a key.
	sameKey := func(apiclient.Credential) string { return "" }

	return &Registry{
		idleTTL: idleTTL,
		logger:  logger,
		boards:  make(map[string]*Board),

		categories: asyncstate.NewThunk("board/categories", func(ctx context.Context, cred apiclient.Credential) ([]category.Category, error) {
			list, err := sources.Categories.ListCategories(ctx, cred, boardPage)
			return list.Items, err
		}).WithKey(sameKey).WithTimeout(constants.DefaultUpstreamTimeout),

		roadmaps: asyncstate.NewThunk("board/roadmaps", func(ctx context.Context, cred apiclient.Credential) ([]roadmap.Roadmap, error) {
			list, err := sources.Roadmaps.ListRoadmaps(ctx, cred, roadmap.Filter{}, boardPage)
			return list.Items, err
		}).WithKey(sameKey).WithTimeout(constants.DefaultUpstreamTimeout),

		topics: asyncstate.NewThunk("board/topics", func(ctx context.Context, cred apiclient.Credential) ([]topic.Topic, error) {
			list, err := sources.Topics.ListTopics(ctx, cred, topic.Filter{}, boardPage)
			return list.Items, err
		}).WithKey(sameKey).WithTimeout(constants.DefaultUpstreamTimeout),

		bookmarks: asyncstate.NewThunk("board/bookmarks", func(ctx context.Context, cred apiclient.Credential) ([]bookmark.Bookmark, error) {
			list, err := sources.Bookmarks.ListBookmarks(ctx, cred, boardPage)
			return list.Items, err
		}).WithKey(sameKey).WithTimeout(constants.DefaultUpstreamTimeout),
	}
}

// Board returns the board of userID, creating it when missing, and marks it used.
func (registry *Registry) Board(userID string) *Board {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	now := time.Now()
	board, ok := registry.boards[userID]
	if !ok {
		board = newBoard(now)
		registry.boards[userID] = board
		return board
	}
	board.lastSeen = now
	return board
}

// Refresh dispatches the thunk of resource against the board of userID and
// returns the resulting slice state. A failed fetch is not an error here: it
// is recorded in the returned state.
func (registry *Registry) Refresh(ctx context.Context, userID string, cred apiclient.Credential, resource string) (any, error) {
	board := registry.Board(userID)

	switch resource {
	case ResourceCategories:
		_, _ = registry.categories.Dispatch(ctx, board.Categories, cred)
		return board.Categories.Snapshot(), nil
	case ResourceRoadmaps:
		_, _ = registry.roadmaps.Dispatch(ctx, board.Roadmaps, cred)
		return board.Roadmaps.Snapshot(), nil
	case ResourceTopics:
		_, _ = registry.topics.Dispatch(ctx, board.Topics, cred)
		return board.Topics.Snapshot(), nil
	case ResourceBookmarks:
		_, _ = registry.bookmarks.Dispatch(ctx, board.Bookmarks, cred)
		return board.Bookmarks.Snapshot(), nil
	default:
		return nil, apperr.NotFound("Board resource")
	}
}

// Len reports how many boards are held.
func (registry *Registry) Len() int {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	return len(registry.boards)
}

// SweepIdle evicts boards last used before now minus the idle TTL.
func (registry *Registry) SweepIdle(now time.Time) int {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	evicted := 0
	for userID, board := range registry.boards {
		if now.Sub(board.lastSeen) > registry.idleTTL {
			delete(registry.boards, userID)
			evicted++
		}
	}
	return evicted
}

// Run sweeps idle boards every interval until ctx is done.
func (registry *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if evicted := registry.SweepIdle(now); evicted > 0 {
				registry.logger.DebugContext(ctx, "dashboard_boards_evicted", slog.Int("count", evicted))
			}
		}
	}
}
