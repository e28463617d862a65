package dispatch

import (
	"context"
	"log/slog"

	"github.com/arcadehub/arcade/internal/model"
)

func (d *Dispatcher) handleSetIdentity(ctx context.Context, cmd model.Command) {
	payload, ok := cmd.Payload.(model.SetIdentityPayload)
	if !ok || payload.PlayerID == "" {
		d.warn(cmd.Conn, model.ErrIdentityMissing)
		return
	}

	// rebinding a connection releases any previous identity on it
	if prev, bound := d.identities[cmd.Conn]; bound && prev != payload.PlayerID {
		delete(d.conns, prev)
	}
	d.identities[cmd.Conn] = payload.PlayerID
	d.conns[payload.PlayerID] = cmd.Conn

	d.logger.Info("identity bound",
		slog.String("conn", string(cmd.Conn)),
		slog.String("player", string(payload.PlayerID)),
	)

	// greet the connection with the current standings
	d.toConn(cmd.Conn, model.EventLeaderboard, "", model.LeaderboardPayload{
		Entries: d.stats.Leaderboard(ctx),
	})
}

func (d *Dispatcher) handleCreateRoom(ctx context.Context, cmd model.Command, playerID model.PlayerID) {
	payload, ok := cmd.Payload.(model.CreateRoomPayload)
	if !ok {
		d.warn(cmd.Conn, model.ErrInvalidMove)
		return
	}

	host := d.stats.Snapshot(ctx, playerID)
	session, err := d.registry.CreateRoom(host, payload.GameType, payload.Mode, payload.Config)
	if err != nil {
		d.warn(cmd.Conn, err)
		return
	}

	d.toConn(cmd.Conn, model.EventRoomCreated, session.ID, model.RoomPayload{Room: session.View()})
	if session.Status == model.StatusRunning {
		d.toConn(cmd.Conn, model.EventGameStart, session.ID, model.RoomPayload{Room: session.View()})
	}
}

func (d *Dispatcher) handleJoinRoom(ctx context.Context, cmd model.Command, playerID model.PlayerID) {
	payload, ok := cmd.Payload.(model.JoinRoomPayload)
	if !ok {
		d.warn(cmd.Conn, model.ErrRoomNotFound)
		return
	}

	player := d.stats.Snapshot(ctx, playerID)
	session, err := d.registry.JoinRoom(payload.RoomID, player)
	if err != nil {
		d.warn(cmd.Conn, err)
		return
	}

	d.toRoom(session, d.roomEvent(model.EventRoomJoined, session))
}

func (d *Dispatcher) handleWatchRoom(ctx context.Context, cmd model.Command, playerID model.PlayerID) {
	payload, ok := cmd.Payload.(model.WatchRoomPayload)
	if !ok {
		d.warn(cmd.Conn, model.ErrRoomNotFound)
		return
	}

	player := d.stats.Snapshot(ctx, playerID)
	session, err := d.registry.Watch(payload.RoomID, player)
	if err != nil {
		d.warn(cmd.Conn, err)
		return
	}

	// the watcher gets the snapshot; the seats learn someone is watching
	d.toConn(cmd.Conn, model.EventRoomJoined, session.ID, model.RoomPayload{Room: session.View()})
	d.toRoom(session, d.roomEvent(model.EventRoomUpdated, session))
}

func (d *Dispatcher) handleQuickMatch(ctx context.Context, cmd model.Command, playerID model.PlayerID) {
	payload, ok := cmd.Payload.(model.QuickMatchPayload)
	if !ok {
		d.warn(cmd.Conn, model.ErrRoomNotFound)
		return
	}

	player := d.stats.Snapshot(ctx, playerID)
	session, created, err := d.registry.QuickMatch(player, payload.GameType)
	if err != nil {
		d.warn(cmd.Conn, err)
		return
	}

	if created {
		// nobody to match against yet; the caller waits in their room
		d.toConn(cmd.Conn, model.EventRoomCreated, session.ID, model.RoomPayload{Room: session.View()})
		return
	}
	d.toRoom(session, d.roomEvent(model.EventRoomJoined, session))
}

func (d *Dispatcher) handleUpdateRoom(ctx context.Context, cmd model.Command, playerID model.PlayerID) {
	payload, ok := cmd.Payload.(model.UpdateRoomPayload)
	if !ok {
		d.warn(cmd.Conn, model.ErrInvalidConfigValue)
		return
	}

	session, err := d.registry.UpdateConfig(payload.RoomID, playerID, payload.Field, payload.Delta)
	if err != nil {
		d.warn(cmd.Conn, err)
		return
	}
	d.toRoom(session, d.roomEvent(model.EventRoomUpdated, session))
}

func (d *Dispatcher) handleManageAI(ctx context.Context, cmd model.Command, playerID model.PlayerID) {
	payload, ok := cmd.Payload.(model.ManageAIPayload)
	if !ok {
		d.warn(cmd.Conn, model.ErrInvalidMove)
		return
	}

	session, started, err := d.registry.ManageAI(payload.RoomID, playerID, payload.Delta)
	if err != nil {
		d.warn(cmd.Conn, err)
		return
	}

	d.toRoom(session, d.roomEvent(model.EventRoomUpdated, session))
	if started {
		d.toRoom(session, d.roomEvent(model.EventGameStart, session))
	}
}

func (d *Dispatcher) handlePlayerReady(ctx context.Context, cmd model.Command, playerID model.PlayerID) {
	payload, ok := cmd.Payload.(model.PlayerReadyPayload)
	if !ok {
		d.warn(cmd.Conn, model.ErrInvalidMove)
		return
	}

	session, started, err := d.registry.Ready(payload.RoomID, playerID, payload.Ready)
	if err != nil {
		d.warn(cmd.Conn, err)
		return
	}

	d.toRoom(session, d.roomEvent(model.EventRoomUpdated, session))
	if started {
		d.toRoom(session, d.roomEvent(model.EventGameStart, session))
	}
}

func (d *Dispatcher) handleSubmitMove(ctx context.Context, cmd model.Command, playerID model.PlayerID) {
	payload, ok := cmd.Payload.(model.SubmitMovePayload)
	if !ok {
		d.warn(cmd.Conn, model.ErrInvalidMove)
		return
	}

	// hold the session before resolution: a finished game leaves the
	// registry but its members still need the final events
	session, err := d.registry.Get(payload.RoomID)
	if err != nil {
		d.warn(cmd.Conn, err)
		return
	}

	events, err := d.match.SubmitMove(ctx, payload.RoomID, playerID, payload.Move)
	if err != nil {
		d.warn(cmd.Conn, err)
		return
	}
	gameOver := false
	for _, event := range events {
		d.toRoom(session, event)
		if event.Type == model.EventGameOver {
			gameOver = true
		}
	}

	// a finished game moves stats, so every live connection gets the
	// refreshed standings
	if gameOver {
		standings := model.LeaderboardPayload{Entries: d.stats.Leaderboard(ctx)}
		for _, conn := range d.conns {
			d.toConn(conn, model.EventLeaderboard, "", standings)
		}
	}
}

func (d *Dispatcher) handleQuitRoom(ctx context.Context, cmd model.Command, playerID model.PlayerID) {
	payload, ok := cmd.Payload.(model.QuitRoomPayload)
	if !ok {
		d.warn(cmd.Conn, model.ErrNotInRoom)
		return
	}
	d.removeFromRoom(ctx, payload.RoomID, playerID)
}

func (d *Dispatcher) handleDisconnect(ctx context.Context, cmd model.Command) {
	playerID, bound := d.identities[cmd.Conn]
	if bound {
		if session := d.registry.SessionFor(playerID); session != nil {
			d.removeFromRoom(ctx, session.ID, playerID)
		}
		delete(d.conns, playerID)
	}
	delete(d.identities, cmd.Conn)

	d.logger.Info("connection closed",
		slog.String("conn", string(cmd.Conn)),
		slog.String("player", string(playerID)),
	)
}

// removeFromRoom applies the departure and, when the room survives,
// tells the remaining seats who left. The game itself is not aborted;
// whether to play on is the remaining players' call.
func (d *Dispatcher) removeFromRoom(ctx context.Context, roomID model.SessionID, playerID model.PlayerID) {
	player := d.stats.Snapshot(ctx, playerID)

	session, deleted, err := d.registry.LeaveRoom(roomID, playerID)
	if err != nil {
		if conn, ok := d.conns[playerID]; ok {
			d.warn(conn, err)
		}
		return
	}
	if deleted {
		return
	}

	left := d.roomEvent(model.EventPlayerLeft, session)
	left.Payload = model.PlayerLeftPayload{
		PlayerID:    playerID,
		DisplayName: player.DisplayName,
	}
	d.toRoom(session, left)
	d.toRoom(session, d.roomEvent(model.EventRoomUpdated, session))
}

func (d *Dispatcher) roomEvent(t model.EventType, session *model.Session) model.Event {
	return model.Event{
		Type:      t,
		Timestamp: d.clock.Now(),
		RoomID:    session.ID,
		Payload:   model.RoomPayload{Room: session.View()},
	}
}
