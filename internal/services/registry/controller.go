package registry

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/arcadehub/arcade/internal/dependencies/clock"
	"github.com/arcadehub/arcade/internal/model"
)

// Controller owns the live room table: creation, lookup, join,
// matchmaking-by-scan, and cleanup on departure.
//
// All mutation is serialized through the event dispatcher's single
// consumer goroutine, so the controller carries no locking of its
// own. Tests drive it from one goroutine for the same reason.
type Controller struct {
	sessions map[model.SessionID]*model.Session
	byPlayer map[model.PlayerID]model.SessionID
	clock    clock.Clock
	logger   *slog.Logger
}

// NewController creates an empty registry
func NewController(clk clock.Clock, logger *slog.Logger) *Controller {
	return &Controller{
		sessions: make(map[model.SessionID]*model.Session),
		byPlayer: make(map[model.PlayerID]model.SessionID),
		clock:    clk,
		logger:   logger,
	}
}

// Get returns the session with the given id
func (c *Controller) Get(id model.SessionID) (*model.Session, error) {
	session, ok := c.sessions[id]
	if !ok {
		return nil, model.ErrRoomNotFound
	}
	return session, nil
}

// SessionFor returns the session the player currently occupies, or nil
func (c *Controller) SessionFor(playerID model.PlayerID) *model.Session {
	id, ok := c.byPlayer[playerID]
	if !ok {
		return nil
	}
	return c.sessions[id]
}

// Count returns the number of live rooms
func (c *Controller) Count() int {
	return len(c.sessions)
}

// CreateRoom opens a new room hosted by the given player. The host is
// first removed from any room they occupy, so a stale membership can
// never block creation. For mode=ai the AI seats are synthesized
// immediately and the game starts running; for mode=pvp the room
// waits for players and readiness.
func (c *Controller) CreateRoom(host model.Profile, gameType model.GameType, mode model.Mode, cfg model.Config) (*model.Session, error) {
	if cfg == (model.Config{}) {
		cfg = model.DefaultConfig()
	}
	if gameType == model.GameConnectFour {
		// a board game has exactly two sides
		cfg.SeatCount = 2
	}
	if !cfg.Valid() {
		return nil, model.ErrInvalidConfigValue
	}

	c.RemovePlayerEverywhere(host.ID)

	now := c.clock.Now()
	session := &model.Session{
		ID:       model.SessionID(uuid.NewString()),
		GameType: gameType,
		Mode:     mode,
		Status:   model.StatusWaiting,
		Config:   cfg,
		Seats: []*model.Seat{{
			Number:      1,
			Kind:        model.SeatHuman,
			PlayerID:    host.ID,
			DisplayName: host.DisplayName,
		}},
		Spectators: make(map[model.PlayerID]bool),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if mode == model.ModeAI {
		for len(session.Seats) < cfg.SeatCount {
			session.Seats = append(session.Seats, c.newAISeat(session))
		}
		c.start(session)
	}

	c.sessions[session.ID] = session
	c.byPlayer[host.ID] = session.ID

	c.logger.Info("room created",
		slog.String("room_id", string(session.ID)),
		slog.String("game_type", string(gameType)),
		slog.String("mode", string(mode)),
		slog.String("host", string(host.ID)),
	)
	return session, nil
}

// JoinRoom seats a player in an existing room. The caller is removed
// from any other room first, preserving the one-room-per-player
// invariant.
func (c *Controller) JoinRoom(roomID model.SessionID, player model.Profile) (*model.Session, error) {
	session, err := c.Get(roomID)
	if err != nil {
		return nil, err
	}
	if session.SeatFor(player.ID) != nil {
		return nil, model.ErrAlreadyInRoom
	}
	if session.Status != model.StatusWaiting {
		return nil, model.ErrRoomNotJoinable
	}
	if len(session.Seats) >= session.Config.SeatCount {
		return nil, model.ErrRoomFull
	}

	c.RemovePlayerEverywhere(player.ID)

	session.Seats = append(session.Seats, &model.Seat{
		Number:      session.NextSeatNumber(),
		Kind:        model.SeatHuman,
		PlayerID:    player.ID,
		DisplayName: player.DisplayName,
	})
	session.UpdatedAt = c.clock.Now()
	c.byPlayer[player.ID] = session.ID

	c.logger.Info("player joined room",
		slog.String("room_id", string(roomID)),
		slog.String("player", string(player.ID)),
		slog.Int("seats", len(session.Seats)),
	)
	return session, nil
}

// Watch adds the player to a room's spectator set. Spectators receive
// the room's events but hold no seat; a seated player cannot also
// spectate.
func (c *Controller) Watch(roomID model.SessionID, player model.Profile) (*model.Session, error) {
	session, err := c.Get(roomID)
	if err != nil {
		return nil, err
	}
	if session.SeatFor(player.ID) != nil {
		return nil, model.ErrAlreadyInRoom
	}

	c.RemovePlayerEverywhere(player.ID)

	session.AddSpectator(player.ID)
	c.byPlayer[player.ID] = session.ID

	c.logger.Info("spectator joined",
		slog.String("room_id", string(roomID)),
		slog.String("player", string(player.ID)),
		slog.Int("spectators", len(session.Spectators)),
	)
	return session, nil
}

// QuickMatch joins the first waiting room of the requested game type
// with free capacity, creating a fresh pvp room when none exists.
// Scan order is whatever the room table yields; there is no fairness
// or ranking.
func (c *Controller) QuickMatch(player model.Profile, gameType model.GameType) (*model.Session, bool, error) {
	for _, session := range c.sessions {
		if session.GameType != gameType || session.Status != model.StatusWaiting {
			continue
		}
		if len(session.Seats) >= session.Config.SeatCount {
			continue
		}
		if session.SeatFor(player.ID) != nil {
			continue
		}
		joined, err := c.JoinRoom(session.ID, player)
		if err != nil {
			continue
		}
		return joined, false, nil
	}

	session, err := c.CreateRoom(player, gameType, model.ModePvP, model.DefaultConfig())
	if err != nil {
		return nil, false, err
	}
	return session, true, nil
}

// LeaveRoom removes the player's seat and applies the cleanup policy:
// a waiting room dies with its last human; a running or finished room
// dies as soon as no human seat remains, since an all-AI room has no
// reason to exist. Returns whether the room was deleted.
func (c *Controller) LeaveRoom(roomID model.SessionID, playerID model.PlayerID) (*model.Session, bool, error) {
	session, err := c.Get(roomID)
	if err != nil {
		return nil, false, err
	}

	if session.Spectators[playerID] {
		session.RemoveSpectator(playerID)
		delete(c.byPlayer, playerID)
		return session, false, nil
	}

	seat := session.SeatFor(playerID)
	if seat == nil {
		return nil, false, model.ErrNotInRoom
	}

	for i, s := range session.Seats {
		if s == seat {
			session.Seats = append(session.Seats[:i], session.Seats[i+1:]...)
			break
		}
	}
	delete(c.byPlayer, playerID)
	session.UpdatedAt = c.clock.Now()

	if len(session.HumanSeats()) == 0 {
		c.Remove(session.ID)
		c.logger.Info("room deleted, no humans remain",
			slog.String("room_id", string(roomID)),
		)
		return session, true, nil
	}

	c.logger.Info("player left room",
		slog.String("room_id", string(roomID)),
		slog.String("player", string(playerID)),
	)
	return session, false, nil
}

// RemovePlayerEverywhere drops the player from every room they occupy.
// Idempotent; safe to call for players who are nowhere.
func (c *Controller) RemovePlayerEverywhere(playerID model.PlayerID) {
	if id, ok := c.byPlayer[playerID]; ok {
		_, _, _ = c.LeaveRoom(id, playerID)
	}
	// byPlayer is authoritative but a defensive sweep keeps a corrupt
	// index from pinning a player in a room forever
	for id, session := range c.sessions {
		if session.SeatFor(playerID) != nil || session.Spectators[playerID] {
			_, _, _ = c.LeaveRoom(id, playerID)
		}
	}
}

// Ready flips a seat's readiness flag. When every seat is occupied
// and ready the room starts: this is the only path into running for
// pvp rooms. Returns whether the game started.
func (c *Controller) Ready(roomID model.SessionID, playerID model.PlayerID, ready bool) (*model.Session, bool, error) {
	session, err := c.Get(roomID)
	if err != nil {
		return nil, false, err
	}
	if session.Status != model.StatusWaiting {
		return nil, false, model.ErrGameNotRunning
	}
	seat := session.SeatFor(playerID)
	if seat == nil {
		return nil, false, model.ErrNotInRoom
	}

	seat.Ready = ready
	session.UpdatedAt = c.clock.Now()

	if session.AllReady() {
		c.start(session)
		c.logger.Info("game started",
			slog.String("room_id", string(roomID)),
			slog.Int("seats", len(session.Seats)),
		)
		return session, true, nil
	}
	return session, false, nil
}

// UpdateConfig adjusts one config field by a signed delta. Only
// waiting rooms are tunable; a delta that would leave bounds or strand
// seated players is rejected without being applied.
func (c *Controller) UpdateConfig(roomID model.SessionID, playerID model.PlayerID, field model.ConfigField, delta int) (*model.Session, error) {
	session, err := c.Get(roomID)
	if err != nil {
		return nil, err
	}
	if session.SeatFor(playerID) == nil {
		return nil, model.ErrNotInRoom
	}
	if session.Status != model.StatusWaiting {
		return nil, model.ErrRoomNotJoinable
	}

	next := session.Config
	switch field {
	case model.FieldSeatCount:
		next.SeatCount += delta
	case model.FieldWinsToWin:
		next.WinsToWin += delta
	default:
		return nil, model.ErrInvalidConfigValue
	}
	if !next.Valid() || next.SeatCount < len(session.Seats) {
		return nil, model.ErrInvalidConfigValue
	}
	if session.GameType == model.GameConnectFour && next.SeatCount != 2 {
		return nil, model.ErrInvalidConfigValue
	}

	session.Config = next
	session.UpdatedAt = c.clock.Now()
	return session, nil
}

// ManageAI adds (delta > 0) or removes (delta < 0) AI seats in a
// waiting room. Filling the room with AI seats can complete the
// readiness condition, so the start check runs here too.
func (c *Controller) ManageAI(roomID model.SessionID, playerID model.PlayerID, delta int) (*model.Session, bool, error) {
	session, err := c.Get(roomID)
	if err != nil {
		return nil, false, err
	}
	if session.SeatFor(playerID) == nil {
		return nil, false, model.ErrNotInRoom
	}
	if session.Status != model.StatusWaiting {
		return nil, false, model.ErrRoomNotJoinable
	}

	if delta > 0 && len(session.Seats)+delta > session.Config.SeatCount {
		return nil, false, model.ErrRoomFull
	}
	for ; delta > 0; delta-- {
		session.Seats = append(session.Seats, c.newAISeat(session))
	}
	for ; delta < 0; delta++ {
		removed := false
		for i := len(session.Seats) - 1; i >= 0; i-- {
			if !session.Seats[i].IsHuman() {
				session.Seats = append(session.Seats[:i], session.Seats[i+1:]...)
				removed = true
				break
			}
		}
		if !removed {
			break
		}
	}
	session.UpdatedAt = c.clock.Now()

	if session.AllReady() {
		c.start(session)
		return session, true, nil
	}
	return session, false, nil
}

// Remove drops a session from the live table and clears the player
// index entries pointing at it.
func (c *Controller) Remove(id model.SessionID) {
	session, ok := c.sessions[id]
	if !ok {
		return
	}
	delete(c.sessions, id)
	for _, seat := range session.Seats {
		if seat.IsHuman() {
			delete(c.byPlayer, seat.PlayerID)
		}
	}
	for playerID := range session.Spectators {
		delete(c.byPlayer, playerID)
	}
}

// start transitions a room into running and opens round 1
func (c *Controller) start(session *model.Session) {
	session.Status = model.StatusRunning
	session.Rounds = append(session.Rounds, model.NewRound(1))
	for _, seat := range session.Seats {
		seat.Active = true
		seat.Pending = nil
	}
	if session.GameType == model.GameConnectFour {
		session.Board = model.NewBoard()
	}
	session.UpdatedAt = c.clock.Now()
}

func (c *Controller) newAISeat(session *model.Session) *model.Seat {
	n := session.NextSeatNumber()
	return &model.Seat{
		Number:      n,
		Kind:        model.SeatAI,
		DisplayName: "CPU",
		Ready:       true,
	}
}
