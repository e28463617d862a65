package stats

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/arcadehub/arcade/internal/dependencies/clock"
	"github.com/arcadehub/arcade/internal/model"
	"github.com/arcadehub/arcade/internal/storage"
)

// Service is the core's adapter to the player directory: read-only
// profile snapshots on the way in, stat deltas on the way out, and
// the leaderboard projection over stored stats.
//
// A single mutex guards every read-modify-write sequence against the
// store so two result applications for the same player cannot
// interleave. Store failures never propagate into a live game: reads
// degrade to a default snapshot and writes are logged and dropped.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger

	mu sync.Mutex
}

// New creates a new stats Service
func New(store storage.Storage, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: store,
		clock:   clk,
		logger:  logger,
	}
}

// Snapshot returns the player's profile, or a fresh default when the
// store has no record or is unavailable.
func (s *Service) Snapshot(ctx context.Context, id model.PlayerID) model.Profile {
	profile, err := s.storage.GetProfile(ctx, id)
	if err != nil {
		if !errors.Is(err, model.ErrPlayerNotFound) {
			s.logger.Warn("profile read failed, using default",
				slog.String("player", string(id)),
				slog.String("error", err.Error()),
			)
		}
		return defaultProfile(id)
	}
	return *profile
}

// RecordResult applies one finished game: a win for each winner, a
// loss for each loser, win rates recomputed.
func (s *Service) RecordResult(ctx context.Context, winners, losers []model.PlayerID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range winners {
		s.applyDelta(ctx, id, 1, 0)
	}
	for _, id := range losers {
		s.applyDelta(ctx, id, 0, 1)
	}
}

// Register stores a display name for a player the first time they are
// seen, leaving existing stats untouched.
func (s *Service) Register(ctx context.Context, id model.PlayerID, displayName string) model.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, err := s.storage.GetProfile(ctx, id)
	if err != nil {
		p := defaultProfile(id)
		profile = &p
	}
	if displayName != "" {
		profile.DisplayName = displayName
	}
	profile.UpdatedAt = s.clock.Now()
	if err := s.storage.SaveProfile(ctx, profile); err != nil {
		s.logger.Warn("profile write failed",
			slog.String("player", string(id)),
			slog.String("error", err.Error()),
		)
	}
	return *profile
}

// SubmitScore applies a legacy best-score-wins submission: the stored
// win count only moves up, never down.
func (s *Service) SubmitScore(ctx context.Context, id model.PlayerID, displayName string, score int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, err := s.storage.GetProfile(ctx, id)
	if err != nil {
		p := defaultProfile(id)
		profile = &p
	}
	if displayName != "" {
		profile.DisplayName = displayName
	}
	if score > profile.Stats.Wins {
		profile.Stats.Wins = score
		profile.Stats.Recompute()
	}
	profile.UpdatedAt = s.clock.Now()

	if err := s.storage.SaveProfile(ctx, profile); err != nil {
		s.logger.Warn("score write failed",
			slog.String("player", string(id)),
			slog.String("error", err.Error()),
		)
	}
}

// Leaderboard returns all known players sorted by rating, then wins
func (s *Service) Leaderboard(ctx context.Context) []model.LeaderboardEntry {
	profiles, err := s.storage.ListProfiles(ctx)
	if err != nil {
		s.logger.Warn("leaderboard read failed, returning empty",
			slog.String("error", err.Error()),
		)
		return []model.LeaderboardEntry{}
	}

	entries := make([]model.LeaderboardEntry, 0, len(profiles))
	for _, p := range profiles {
		entries = append(entries, model.LeaderboardEntry{
			PlayerID:    p.ID,
			DisplayName: p.DisplayName,
			Wins:        p.Stats.Wins,
			Losses:      p.Stats.Losses,
			Rating:      p.Stats.WinRate,
			UpdatedAt:   p.UpdatedAt,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Rating != entries[j].Rating {
			return entries[i].Rating > entries[j].Rating
		}
		if entries[i].Wins != entries[j].Wins {
			return entries[i].Wins > entries[j].Wins
		}
		return entries[i].PlayerID < entries[j].PlayerID
	})
	return entries
}

// applyDelta performs one guarded read-modify-write. Callers hold mu.
func (s *Service) applyDelta(ctx context.Context, id model.PlayerID, wins, losses int) {
	profile, err := s.storage.GetProfile(ctx, id)
	if err != nil {
		if !errors.Is(err, model.ErrPlayerNotFound) {
			s.logger.Warn("stat read failed, starting fresh",
				slog.String("player", string(id)),
				slog.String("error", err.Error()),
			)
		}
		p := defaultProfile(id)
		profile = &p
	}

	profile.Stats.Wins += wins
	profile.Stats.Losses += losses
	profile.Stats.Recompute()
	profile.UpdatedAt = s.clock.Now()

	if err := s.storage.SaveProfile(ctx, profile); err != nil {
		s.logger.Warn("stat write failed, delta dropped",
			slog.String("player", string(id)),
			slog.String("error", err.Error()),
		)
	}
}

func defaultProfile(id model.PlayerID) model.Profile {
	name := string(id)
	if len(name) > 8 {
		name = name[:8]
	}
	return model.Profile{
		ID:          id,
		DisplayName: fmt.Sprintf("Player-%s", name),
	}
}
