package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/desk-portal-api/internal/gateway"
	"github.com/noah-isme/desk-portal-api/internal/models"
	"github.com/noah-isme/desk-portal-api/pkg/config"
	appErrors "github.com/noah-isme/desk-portal-api/pkg/errors"
)

type snapshotSource interface {
	ListAllDesks(ctx context.Context, token string, filter gateway.DeskFilter) ([]models.Desk, error)
	ListAllAssignments(ctx context.Context, token string, filter gateway.AssignmentFilter) ([]models.Assignment, error)
}

// Snapshot is one consistent fetch of the two raw collections the
// reconciler works from.
type Snapshot struct {
	Desks       []models.Desk
	Assignments []models.Assignment
	FetchedAt   time.Time
}

type refreshEntry struct {
	token      string
	snapshot   Snapshot
	lastAccess time.Time
}

// Refresher keeps per-session snapshots of the desk inventory warm. The
// background loop re-fetches tracked sessions on a fixed interval, while
// successful mutations invalidate everything so the next read hits the
// upstream directly. Sessions that stop reading are dropped.
type Refresher struct {
	source   snapshotSource
	interval time.Duration
	maxIdle  time.Duration
	logger   *zap.Logger
	now      func() time.Time

	mu      sync.RWMutex
	entries map[string]*refreshEntry
}

// NewRefresher constructs a Refresher.
func NewRefresher(source snapshotSource, cfg config.RefreshConfig, logger *zap.Logger) *Refresher {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 60 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Refresher{
		source:   source,
		interval: interval,
		maxIdle:  5 * interval,
		logger:   logger,
		now:      time.Now,
		entries:  make(map[string]*refreshEntry),
	}
}

// Snapshot returns a fresh snapshot for the session, if one exists.
func (r *Refresher) Snapshot(sessionID string) (Snapshot, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[sessionID]
	if !ok {
		return Snapshot{}, false
	}
	entry.lastAccess = r.now()
	if r.now().Sub(entry.snapshot.FetchedAt) > r.interval {
		return Snapshot{}, false
	}
	return entry.snapshot, true
}

// Store records a freshly fetched snapshot for the session and enrolls
// it in the background refresh loop.
func (r *Refresher) Store(sessionID, token string, snap Snapshot) {
	if snap.FetchedAt.IsZero() {
		snap.FetchedAt = r.now()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[sessionID] = &refreshEntry{token: token, snapshot: snap, lastAccess: r.now()}
}

// Invalidate drops every cached snapshot. Called after any successful
// mutation, since one session's write changes what every session sees.
func (r *Refresher) Invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, entry := range r.entries {
		entry.snapshot.FetchedAt = time.Time{}
		r.entries[id] = entry
	}
}

// Forget removes a single session from the loop, e.g. on logout.
func (r *Refresher) Forget(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, sessionID)
}

// Run drives the refresh loop until the context is cancelled.
func (r *Refresher) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("background refresh stopped")
			return
		case <-ticker.C:
			r.refreshAll(ctx)
		}
	}
}

func (r *Refresher) refreshAll(ctx context.Context) {
	type target struct {
		sessionID string
		token     string
	}

	r.mu.Lock()
	targets := make([]target, 0, len(r.entries))
	for id, entry := range r.entries {
		if r.now().Sub(entry.lastAccess) > r.maxIdle {
			delete(r.entries, id)
			continue
		}
		targets = append(targets, target{sessionID: id, token: entry.token})
	}
	r.mu.Unlock()

	for _, t := range targets {
		snap, err := r.fetch(ctx, t.token)
		if err != nil {
			if errors.Is(err, appErrors.ErrSessionExpired) {
				r.Forget(t.sessionID)
				continue
			}
			r.logger.Warn("background refresh failed", zap.String("session_id", t.sessionID), zap.Error(err))
			continue
		}

		r.mu.Lock()
		if entry, ok := r.entries[t.sessionID]; ok {
			entry.snapshot = snap
		}
		r.mu.Unlock()
	}
}

func (r *Refresher) fetch(ctx context.Context, token string) (Snapshot, error) {
	desks, err := r.source.ListAllDesks(ctx, token, gateway.DeskFilter{})
	if err != nil {
		return Snapshot{}, err
	}
	assignments, err := r.source.ListAllAssignments(ctx, token, gateway.AssignmentFilter{})
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Desks: desks, Assignments: assignments, FetchedAt: r.now()}, nil
}
