package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/arcadehub/arcade/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

// Profile tests

func (s *StorageSuite) TestSaveAndGetProfile() {
	profile := &model.Profile{
		ID:          "player-1",
		DisplayName: "Alice",
		Stats:       model.PlayerStats{Wins: 3, Losses: 1, WinRate: 0.75},
		UpdatedAt:   time.Now().UTC(),
	}
	s.Require().NoError(s.storage.SaveProfile(s.ctx, profile))

	got, err := s.storage.GetProfile(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(profile.DisplayName, got.DisplayName)
	s.Equal(3, got.Stats.Wins)
	s.InDelta(0.75, got.Stats.WinRate, 1e-9)
}

func (s *StorageSuite) TestGetProfileNotFound() {
	_, err := s.storage.GetProfile(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestListProfiles() {
	s.Require().NoError(s.storage.SaveProfile(s.ctx, &model.Profile{ID: "a"}))
	s.Require().NoError(s.storage.SaveProfile(s.ctx, &model.Profile{ID: "b"}))

	profiles, err := s.storage.ListProfiles(s.ctx)
	s.Require().NoError(err)
	s.Len(profiles, 2)
}

func (s *StorageSuite) TestSaveProfileOverwrites() {
	s.Require().NoError(s.storage.SaveProfile(s.ctx, &model.Profile{ID: "a", Stats: model.PlayerStats{Wins: 1}}))
	s.Require().NoError(s.storage.SaveProfile(s.ctx, &model.Profile{ID: "a", Stats: model.PlayerStats{Wins: 2}}))

	got, err := s.storage.GetProfile(s.ctx, "a")
	s.Require().NoError(err)
	s.Equal(2, got.Stats.Wins)

	profiles, err := s.storage.ListProfiles(s.ctx)
	s.Require().NoError(err)
	s.Len(profiles, 1)
}

// Session record tests

func (s *StorageSuite) TestAppendAndGetRecord() {
	winner := 1
	record := &model.SessionRecord{
		ID:       "room-1",
		GameType: model.GameRPS,
		Config:   model.Config{SeatCount: 2, WinsToWin: 2},
		Winner:   &winner,
		Rounds: []*model.Round{
			{Index: 1, Winner: &winner, Resolved: true},
		},
		CompletedAt: time.Now().UTC(),
	}
	s.Require().NoError(s.storage.AppendSessionRecord(s.ctx, record))

	got, err := s.storage.GetSessionRecord(s.ctx, "room-1")
	s.Require().NoError(err)
	s.Equal(model.GameRPS, got.GameType)
	s.Require().NotNil(got.Winner)
	s.Equal(1, *got.Winner)
	s.Len(got.Rounds, 1)
}

func (s *StorageSuite) TestGetRecordNotFound() {
	_, err := s.storage.GetSessionRecord(s.ctx, "nope")
	s.ErrorIs(err, model.ErrRecordNotFound)
}

func (s *StorageSuite) TestListRecordsKeepsAppendOrder() {
	s.Require().NoError(s.storage.AppendSessionRecord(s.ctx, &model.SessionRecord{ID: "r1"}))
	s.Require().NoError(s.storage.AppendSessionRecord(s.ctx, &model.SessionRecord{ID: "r2"}))
	s.Require().NoError(s.storage.AppendSessionRecord(s.ctx, &model.SessionRecord{ID: "r3"}))

	records, err := s.storage.ListSessionRecords(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(records, 3)
	s.Equal(model.SessionID("r1"), records[0].ID)
	s.Equal(model.SessionID("r3"), records[2].ID)
}

func (s *StorageSuite) TestExpiredRecordSkippedInList() {
	cfg := DefaultConfig()
	cfg.RecordTTL = time.Minute
	s.storage.cfg = cfg

	s.Require().NoError(s.storage.AppendSessionRecord(s.ctx, &model.SessionRecord{ID: "r1"}))
	s.Require().NoError(s.storage.AppendSessionRecord(s.ctx, &model.SessionRecord{ID: "r2"}))

	s.mini.FastForward(2 * time.Minute)

	records, err := s.storage.ListSessionRecords(s.ctx)
	s.Require().NoError(err)
	s.Empty(records)
}
