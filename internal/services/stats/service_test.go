package stats

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/arcadehub/arcade/internal/dependencies/mocks"
	"github.com/arcadehub/arcade/internal/model"
	"github.com/arcadehub/arcade/internal/storage/memory"
	"github.com/arcadehub/arcade/internal/testutil"
)

// brokenStore fails every operation, standing in for an unreachable
// backing store
type brokenStore struct{}

var errStoreDown = errors.New("store down")

func (b *brokenStore) SaveProfile(context.Context, *model.Profile) error { return errStoreDown }
func (b *brokenStore) GetProfile(context.Context, model.PlayerID) (*model.Profile, error) {
	return nil, errStoreDown
}
func (b *brokenStore) ListProfiles(context.Context) ([]*model.Profile, error) {
	return nil, errStoreDown
}
func (b *brokenStore) AppendSessionRecord(context.Context, *model.SessionRecord) error {
	return errStoreDown
}
func (b *brokenStore) GetSessionRecord(context.Context, model.SessionID) (*model.SessionRecord, error) {
	return nil, errStoreDown
}
func (b *brokenStore) ListSessionRecords(context.Context) ([]*model.SessionRecord, error) {
	return nil, errStoreDown
}

type ServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	clock   *mocks.MockClock
	store   *memory.Storage
	service *Service
}

func TestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

func (s *ServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.clock = mocks.NewMockClock(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))
	s.store = memory.New()
	s.service = New(s.store, s.clock, testutil.NopLogger())
}

func (s *ServiceTestSuite) TestSnapshotDefaultsForUnknownPlayer() {
	profile := s.service.Snapshot(s.ctx, "anonymous-visitor")

	s.Equal(model.PlayerID("anonymous-visitor"), profile.ID)
	s.Equal("Player-anonymou", profile.DisplayName)
	s.Zero(profile.Stats.Wins)
}

func (s *ServiceTestSuite) TestSnapshotDegradesWhenStoreDown() {
	service := New(&brokenStore{}, s.clock, testutil.NopLogger())

	profile := service.Snapshot(s.ctx, "alice")
	s.Equal(model.PlayerID("alice"), profile.ID)
}

func (s *ServiceTestSuite) TestRecordResultAppliesDeltas() {
	s.service.RecordResult(s.ctx, []model.PlayerID{"alice"}, []model.PlayerID{"bob", "carol"})
	s.service.RecordResult(s.ctx, []model.PlayerID{"bob"}, []model.PlayerID{"alice"})

	alice, err := s.store.GetProfile(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(1, alice.Stats.Wins)
	s.Equal(1, alice.Stats.Losses)
	s.InDelta(0.5, alice.Stats.WinRate, 1e-9)

	bob, err := s.store.GetProfile(s.ctx, "bob")
	s.Require().NoError(err)
	s.Equal(1, bob.Stats.Wins)
	s.Equal(1, bob.Stats.Losses)

	carol, err := s.store.GetProfile(s.ctx, "carol")
	s.Require().NoError(err)
	s.Equal(0, carol.Stats.Wins)
	s.Equal(1, carol.Stats.Losses)
	s.InDelta(0.0, carol.Stats.WinRate, 1e-9)
}

func (s *ServiceTestSuite) TestRecordResultSurvivesStoreFailure() {
	service := New(&brokenStore{}, s.clock, testutil.NopLogger())

	// must not panic or block; the delta is dropped
	service.RecordResult(s.ctx, []model.PlayerID{"alice"}, nil)
}

func (s *ServiceTestSuite) TestRegisterKeepsExistingStats() {
	s.service.RecordResult(s.ctx, []model.PlayerID{"alice"}, nil)

	profile := s.service.Register(s.ctx, "alice", "Alice the Great")

	s.Equal("Alice the Great", profile.DisplayName)
	s.Equal(1, profile.Stats.Wins)
}

func (s *ServiceTestSuite) TestSubmitScoreOnlyImproves() {
	s.service.SubmitScore(s.ctx, "alice", "Alice", 4)
	s.service.SubmitScore(s.ctx, "alice", "Alice", 2)

	profile, err := s.store.GetProfile(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(4, profile.Stats.Wins)

	s.service.SubmitScore(s.ctx, "alice", "Alice", 7)
	profile, err = s.store.GetProfile(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(7, profile.Stats.Wins)
}

func (s *ServiceTestSuite) TestLeaderboardOrdering() {
	// carol: 2-0, alice: 1-1, bob: 0-2
	s.service.RecordResult(s.ctx, []model.PlayerID{"carol"}, []model.PlayerID{"bob"})
	s.service.RecordResult(s.ctx, []model.PlayerID{"carol"}, []model.PlayerID{"bob"})
	s.service.RecordResult(s.ctx, []model.PlayerID{"alice"}, nil)
	s.service.RecordResult(s.ctx, nil, []model.PlayerID{"alice"})

	entries := s.service.Leaderboard(s.ctx)

	s.Require().Len(entries, 3)
	s.Equal(model.PlayerID("carol"), entries[0].PlayerID)
	s.Equal(model.PlayerID("alice"), entries[1].PlayerID)
	s.Equal(model.PlayerID("bob"), entries[2].PlayerID)
}

func (s *ServiceTestSuite) TestLeaderboardTiesBreakOnWinsThenID() {
	// same rating (1.0), different win counts
	s.service.RecordResult(s.ctx, []model.PlayerID{"few"}, nil)
	s.service.RecordResult(s.ctx, []model.PlayerID{"many"}, nil)
	s.service.RecordResult(s.ctx, []model.PlayerID{"many"}, nil)

	entries := s.service.Leaderboard(s.ctx)
	s.Require().Len(entries, 2)
	s.Equal(model.PlayerID("many"), entries[0].PlayerID)

	// identical records order by id for a stable listing
	s.service.RecordResult(s.ctx, []model.PlayerID{"few2"}, nil)
	s.service.RecordResult(s.ctx, []model.PlayerID{"few2"}, nil)
	entries = s.service.Leaderboard(s.ctx)
	s.Require().Len(entries, 3)
	s.Equal(model.PlayerID("few2"), entries[0].PlayerID)
	s.Equal(model.PlayerID("many"), entries[1].PlayerID)
}

func (s *ServiceTestSuite) TestLeaderboardEmptyWhenStoreDown() {
	service := New(&brokenStore{}, s.clock, testutil.NopLogger())

	s.Empty(service.Leaderboard(s.ctx))
}
