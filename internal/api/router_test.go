package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/arcadehub/arcade/internal/dependencies/mocks"
	"github.com/arcadehub/arcade/internal/model"
	"github.com/arcadehub/arcade/internal/services/stats"
	"github.com/arcadehub/arcade/internal/storage/memory"
	"github.com/arcadehub/arcade/internal/testutil"
)

type RouterTestSuite struct {
	suite.Suite
	store   *memory.Storage
	handler http.Handler
}

func (s *RouterTestSuite) SetupTest() {
	s.store = memory.New()
	clk := mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	statsService := stats.New(s.store, clk, testutil.NopLogger())

	s.handler = NewRouter(RouterConfig{
		Logger:  testutil.NopLogger(),
		Stats:   statsService,
		Storage: s.store,
	})
}

func (s *RouterTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *RouterTestSuite) TestHealth() {
	rec := s.do(http.MethodGet, "/api/v1/health", nil)

	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"status":"ok"}`, rec.Body.String())
}

func (s *RouterTestSuite) TestRegisterCreatesProfile() {
	rec := s.do(http.MethodPost, "/api/v1/players/register", map[string]any{
		"player_id":    "p1",
		"display_name": "Alice",
	})

	s.Equal(http.StatusOK, rec.Code)

	var profile model.Profile
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &profile))
	s.Equal(model.PlayerID("p1"), profile.ID)
	s.Equal("Alice", profile.DisplayName)
}

func (s *RouterTestSuite) TestRegisterRequiresPlayerID() {
	rec := s.do(http.MethodPost, "/api/v1/players/register", map[string]any{
		"display_name": "Nameless",
	})

	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *RouterTestSuite) TestScoreOnlyMovesUp() {
	s.Equal(http.StatusNoContent, s.do(http.MethodPost, "/api/v1/scores", map[string]any{
		"player_id": "p1", "display_name": "Alice", "score": 5,
	}).Code)
	s.Equal(http.StatusNoContent, s.do(http.MethodPost, "/api/v1/scores", map[string]any{
		"player_id": "p1", "display_name": "Alice", "score": 3,
	}).Code)

	profile, err := s.store.GetProfile(context.Background(), "p1")
	s.Require().NoError(err)
	s.Equal(5, profile.Stats.Wins)
}

func (s *RouterTestSuite) TestScoreRejectsNegative() {
	rec := s.do(http.MethodPost, "/api/v1/scores", map[string]any{
		"player_id": "p1", "score": -1,
	})

	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *RouterTestSuite) TestLeaderboardOrdering() {
	s.do(http.MethodPost, "/api/v1/scores", map[string]any{
		"player_id": "low", "display_name": "Low", "score": 1,
	})
	s.do(http.MethodPost, "/api/v1/scores", map[string]any{
		"player_id": "high", "display_name": "High", "score": 9,
	})

	rec := s.do(http.MethodGet, "/api/v1/leaderboard", nil)
	s.Equal(http.StatusOK, rec.Code)

	var body struct {
		Entries []model.LeaderboardEntry `json:"entries"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Require().Len(body.Entries, 2)
	s.Equal(model.PlayerID("high"), body.Entries[0].PlayerID)
	s.Equal(model.PlayerID("low"), body.Entries[1].PlayerID)
}

func (s *RouterTestSuite) TestHistoryListAndGet() {
	winner := 1
	record := &model.SessionRecord{
		ID:       "room-1",
		GameType: model.GameRPS,
		Config:   model.DefaultConfig(),
		Winner:   &winner,
	}
	s.Require().NoError(s.store.AppendSessionRecord(context.Background(), record))

	list := s.do(http.MethodGet, "/api/v1/history", nil)
	s.Equal(http.StatusOK, list.Code)

	var body struct {
		Records []model.SessionRecord `json:"records"`
	}
	s.Require().NoError(json.Unmarshal(list.Body.Bytes(), &body))
	s.Require().Len(body.Records, 1)
	s.Equal(model.SessionID("room-1"), body.Records[0].ID)

	get := s.do(http.MethodGet, "/api/v1/history/room-1", nil)
	s.Equal(http.StatusOK, get.Code)

	missing := s.do(http.MethodGet, "/api/v1/history/nope", nil)
	s.Equal(http.StatusNotFound, missing.Code)
}

func TestRouterTestSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}
