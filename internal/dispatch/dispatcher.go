package dispatch

import (
	"context"
	"log/slog"

	"github.com/arcadehub/arcade/internal/dependencies/clock"
	"github.com/arcadehub/arcade/internal/model"
	"github.com/arcadehub/arcade/internal/services/match"
	"github.com/arcadehub/arcade/internal/services/registry"
	"github.com/arcadehub/arcade/internal/services/stats"
)

// Sink delivers outbound events to a connection. The wire format and
// transport are external collaborators; the core only routes.
type Sink interface {
	Send(conn model.ConnID, event model.Event)
}

// Dispatcher is the single logical thread of the engine: every
// inbound command is funneled through one buffered queue and handled
// by one consumer goroutine, so registry and session state never see
// parallel mutation and need no fine-grained locks.
type Dispatcher struct {
	cmds chan model.Command

	registry *registry.Controller
	match    *match.Controller
	stats    *stats.Service
	sink     Sink
	clock    clock.Clock
	logger   *slog.Logger

	// connection <-> identity bindings, owned by the consumer goroutine
	identities map[model.ConnID]model.PlayerID
	conns      map[model.PlayerID]model.ConnID
}

// queueSize bounds the inbound command queue
const queueSize = 1024

// New creates a Dispatcher wired to the given services
func New(
	reg *registry.Controller,
	matchController *match.Controller,
	statsService *stats.Service,
	sink Sink,
	clk clock.Clock,
	logger *slog.Logger,
) *Dispatcher {
	return &Dispatcher{
		cmds:       make(chan model.Command, queueSize),
		registry:   reg,
		match:      matchController,
		stats:      statsService,
		sink:       sink,
		clock:      clk,
		logger:     logger,
		identities: make(map[model.ConnID]model.PlayerID),
		conns:      make(map[model.PlayerID]model.ConnID),
	}
}

// Enqueue hands a command to the dispatcher. It never blocks the
// transport: when the queue is full the command is dropped with a
// warning, which a client experiences as a lost message rather than a
// stalled connection.
func (d *Dispatcher) Enqueue(cmd model.Command) {
	select {
	case d.cmds <- cmd:
	default:
		d.logger.Warn("command queue full, dropping",
			slog.String("type", string(cmd.Type)),
			slog.String("conn", string(cmd.Conn)),
		)
	}
}

// Run consumes commands until the context is cancelled. Call it from
// exactly one goroutine.
func (d *Dispatcher) Run(ctx context.Context) {
	d.logger.Info("dispatcher started")
	for {
		select {
		case <-ctx.Done():
			d.logger.Info("dispatcher stopped")
			return
		case cmd := <-d.cmds:
			d.Handle(ctx, cmd)
		}
	}
}

// Handle processes a single command synchronously. Run calls this
// from the consumer goroutine; tests call it directly.
func (d *Dispatcher) Handle(ctx context.Context, cmd model.Command) {
	switch cmd.Type {
	case model.CmdSetIdentity:
		d.handleSetIdentity(ctx, cmd)
	case model.CmdDisconnect:
		d.handleDisconnect(ctx, cmd)
	default:
		playerID, ok := d.identities[cmd.Conn]
		if !ok {
			d.warn(cmd.Conn, model.ErrIdentityMissing)
			return
		}
		d.handleAuthed(ctx, cmd, playerID)
	}
}

func (d *Dispatcher) handleAuthed(ctx context.Context, cmd model.Command, playerID model.PlayerID) {
	switch cmd.Type {
	case model.CmdCreateRoom:
		d.handleCreateRoom(ctx, cmd, playerID)
	case model.CmdJoinRoom:
		d.handleJoinRoom(ctx, cmd, playerID)
	case model.CmdWatchRoom:
		d.handleWatchRoom(ctx, cmd, playerID)
	case model.CmdQuickMatch:
		d.handleQuickMatch(ctx, cmd, playerID)
	case model.CmdUpdateRoom:
		d.handleUpdateRoom(ctx, cmd, playerID)
	case model.CmdManageAI:
		d.handleManageAI(ctx, cmd, playerID)
	case model.CmdPlayerReady:
		d.handlePlayerReady(ctx, cmd, playerID)
	case model.CmdSubmitMove:
		d.handleSubmitMove(ctx, cmd, playerID)
	case model.CmdQuitRoom:
		d.handleQuitRoom(ctx, cmd, playerID)
	default:
		d.warn(cmd.Conn, model.ErrInvalidMove)
	}
}

// toConn sends one event to a single connection
func (d *Dispatcher) toConn(conn model.ConnID, t model.EventType, roomID model.SessionID, payload any) {
	d.sink.Send(conn, model.Event{
		Type:      t,
		Timestamp: d.clock.Now(),
		RoomID:    roomID,
		Payload:   payload,
	})
}

// toRoom fans an event out to every human seat and spectator of the
// session that has a live connection
func (d *Dispatcher) toRoom(session *model.Session, event model.Event) {
	for _, seat := range session.HumanSeats() {
		if conn, ok := d.conns[seat.PlayerID]; ok {
			d.sink.Send(conn, event)
		}
	}
	for playerID := range session.Spectators {
		if conn, ok := d.conns[playerID]; ok {
			d.sink.Send(conn, event)
		}
	}
}

// warn reports a recoverable error back to the originating connection
func (d *Dispatcher) warn(conn model.ConnID, err error) {
	d.toConn(conn, model.EventWarning, "", model.WarningPayload{Reason: err.Error()})
}
