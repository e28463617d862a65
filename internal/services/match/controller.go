package match

import (
	"context"
	"log/slog"

	"github.com/arcadehub/arcade/internal/dependencies/clock"
	"github.com/arcadehub/arcade/internal/model"
	"github.com/arcadehub/arcade/internal/services/bot"
	"github.com/arcadehub/arcade/internal/services/registry"
	"github.com/arcadehub/arcade/internal/services/rules"
	"github.com/arcadehub/arcade/internal/services/stats"
	"github.com/arcadehub/arcade/internal/storage"
)

// maxAIOnlySteps bounds the AI-vs-AI elimination replay after every
// human seat has been knocked out of a round; random play decides
// such rounds almost immediately in practice.
const maxAIOnlySteps = 256

// Controller orchestrates round-to-round and step-to-step
// progression: it applies the move resolution engine, fills AI seats,
// checks the win threshold, and finalizes finished games against the
// stats and history collaborators.
type Controller struct {
	registry *registry.Controller
	stats    *stats.Service
	storage  storage.Storage
	symbols  bot.SymbolStrategy
	columns  bot.ColumnStrategy
	clock    clock.Clock
	logger   *slog.Logger
}

// NewController creates a new progression Controller
func NewController(
	reg *registry.Controller,
	statsService *stats.Service,
	store storage.Storage,
	symbols bot.SymbolStrategy,
	columns bot.ColumnStrategy,
	clk clock.Clock,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		registry: reg,
		stats:    statsService,
		storage:  store,
		symbols:  symbols,
		columns:  columns,
		clock:    clk,
		logger:   logger,
	}
}

// SubmitMove handles one inbound move for the in-flight step and
// returns the room-scoped events the resolution produced. A
// resubmission before the step resolves silently replaces the prior
// pending value.
func (c *Controller) SubmitMove(ctx context.Context, roomID model.SessionID, playerID model.PlayerID, move model.Move) ([]model.Event, error) {
	session, err := c.registry.Get(roomID)
	if err != nil {
		return nil, err
	}
	if session.Status != model.StatusRunning {
		return nil, model.ErrGameNotRunning
	}
	seat := session.SeatFor(playerID)
	if seat == nil {
		return nil, model.ErrNotInRoom
	}

	switch session.GameType {
	case model.GameRPS:
		return c.submitSymbol(ctx, session, seat, move.Symbol)
	case model.GameConnectFour:
		return c.submitColumn(ctx, session, seat, move.Column)
	}
	return nil, model.ErrInvalidMove
}

// submitSymbol records an RPS move and resolves the step once every
// active human seat has one pending.
func (c *Controller) submitSymbol(ctx context.Context, session *model.Session, seat *model.Seat, symbol model.Symbol) ([]model.Event, error) {
	if !symbol.Valid() {
		return nil, model.ErrInvalidMove
	}
	if !seat.Active {
		// eliminated seats sit the round out; drop the move quietly
		c.logger.Debug("move from eliminated seat ignored",
			slog.String("room_id", string(session.ID)),
			slog.Int("seat", seat.Number),
		)
		return nil, nil
	}

	seat.Pending = &model.Move{Symbol: symbol}
	session.UpdatedAt = c.clock.Now()

	for _, s := range session.ActiveSeats() {
		if s.IsHuman() && s.Pending == nil {
			return nil, nil // still awaiting moves
		}
	}

	var events []model.Event
	for i := 0; ; i++ {
		stepEvents := c.resolveStep(ctx, session)
		events = append(events, stepEvents...)

		if session.Status != model.StatusRunning || session.CurrentRound() == nil {
			break
		}
		// keep resolving only while no human seat is left to wait for
		humanPending := false
		for _, s := range session.ActiveSeats() {
			if s.IsHuman() {
				humanPending = true
				break
			}
		}
		if humanPending {
			break
		}
		if i >= maxAIOnlySteps {
			c.logger.Warn("ai-only round did not converge",
				slog.String("room_id", string(session.ID)),
			)
			break
		}
	}
	return events, nil
}

// resolveStep runs one elimination exchange: AI seats fill their
// moves, the engine decides survivors, and the step vector is
// appended to the round log whatever the outcome.
func (c *Controller) resolveStep(ctx context.Context, session *model.Session) []model.Event {
	round := session.CurrentRound()
	if round == nil {
		return nil
	}

	vector := make(model.StepMoves)
	for _, s := range session.ActiveSeats() {
		if s.Pending == nil {
			if s.IsHuman() {
				return nil
			}
			s.Pending = &model.Move{Symbol: c.symbols.ChooseSymbol()}
		}
		vector[s.Number] = s.Pending.Symbol
	}
	round.Steps = append(round.Steps, vector)

	result := rules.ResolveStep(vector)

	// every seat needs a fresh move next step
	for _, s := range session.Seats {
		s.Pending = nil
	}

	if !result.Stalemate {
		surviving := make(map[int]bool, len(result.Survivors))
		for _, n := range result.Survivors {
			surviving[n] = true
		}
		for _, s := range session.ActiveSeats() {
			if !surviving[s.Number] {
				s.Active = false
			}
		}
	}

	if len(result.Survivors) == 1 && !result.Stalemate {
		return c.finishRound(ctx, session, round, &result.Survivors[0])
	}

	return []model.Event{c.event(model.EventStepResult, session.ID, model.StepResultPayload{
		GameOver:  false,
		Winner:    nil,
		Round:     round.Index,
		Moves:     vector,
		Survivors: result.Survivors,
		Stalemate: result.Stalemate,
	})}
}

// submitColumn applies a connect-four drop and lets the AI answer
// inline. Out-of-turn and full-column submissions are ignored rather
// than surfaced, so racing clients cannot desync the board.
func (c *Controller) submitColumn(ctx context.Context, session *model.Session, seat *model.Seat, col int) ([]model.Event, error) {
	board := session.Board
	round := session.CurrentRound()
	if board == nil || round == nil {
		return nil, model.ErrGameNotRunning
	}

	var events []model.Event
	actor := seat.Number

	for {
		drop, outcome, err := rules.ApplyDrop(board, actor, col)
		if err != nil {
			c.logger.Debug("drop ignored",
				slog.String("room_id", string(session.ID)),
				slog.Int("seat", actor),
				slog.Int("column", col),
				slog.String("reason", err.Error()),
			)
			return events, nil
		}
		round.Drops = append(round.Drops, drop)
		session.UpdatedAt = c.clock.Now()

		switch outcome {
		case rules.OutcomeWin:
			winner := actor
			events = append(events, c.finishRound(ctx, session, round, &winner)...)
		case rules.OutcomeDraw:
			events = append(events, c.finishRound(ctx, session, round, nil)...)
		default:
			events = append(events, c.event(model.EventStepResult, session.ID, model.DropResultPayload{
				GameOver: false,
				Winner:   nil,
				Drop:     drop,
				NextSeat: rules.TurnSeat(board),
				Board:    *board,
			}))
		}

		if session.Status != model.StatusRunning {
			return events, nil
		}
		round = session.CurrentRound()
		if round == nil {
			return events, nil
		}

		next := session.SeatByNumber(rules.TurnSeat(board))
		if next == nil || next.IsHuman() {
			return events, nil
		}
		actor = next.Number
		col = c.columns.ChooseColumn(board, actor)
	}
}

// finishRound closes a decided round (winner == nil means a draw),
// applies win/loss counters, and either opens the next round or
// finalizes the game once the threshold is reached. A round that is
// already resolved is left untouched, so counters can never be
// double-incremented.
func (c *Controller) finishRound(ctx context.Context, session *model.Session, round *model.Round, winner *int) []model.Event {
	if winner == nil {
		if !round.SetDraw() {
			return nil
		}
		// a draw moves no counters and never counts toward the threshold
		return c.openNextRound(session, round, nil)
	}

	if !round.SetWinner(*winner) {
		return nil
	}

	winnerSeat := session.SeatByNumber(*winner)
	winnerSeat.Wins++
	for _, s := range session.Seats {
		if s.Number != *winner {
			s.Losses++
		}
	}

	c.logger.Info("round decided",
		slog.String("room_id", string(session.ID)),
		slog.Int("round", round.Index),
		slog.Int("winner_seat", *winner),
		slog.Int("wins", winnerSeat.Wins),
	)

	if session.MaxWins() >= session.Config.WinsToWin {
		return c.finishGame(ctx, session, winnerSeat)
	}
	return c.openNextRound(session, round, winner)
}

// openNextRound resets per-round state and reports the decided round
func (c *Controller) openNextRound(session *model.Session, closed *model.Round, winner *int) []model.Event {
	session.Rounds = append(session.Rounds, model.NewRound(closed.Index+1))
	for _, s := range session.Seats {
		s.Active = true
		s.Pending = nil
	}
	if session.Board != nil {
		session.Board.Reset()
	}
	session.UpdatedAt = c.clock.Now()

	wins := make(map[int]int, len(session.Seats))
	for _, s := range session.Seats {
		wins[s.Number] = s.Wins
	}
	return []model.Event{c.event(model.EventRoundResult, session.ID, model.RoundResultPayload{
		GameOver: false,
		Winner:   winner,
		Round:    closed.Index,
		Wins:     wins,
	})}
}

// finishGame transitions the session to over exactly once: stat
// deltas go to the player directory, the full session is archived,
// and the room leaves the live registry.
func (c *Controller) finishGame(ctx context.Context, session *model.Session, winnerSeat *model.Seat) []model.Event {
	session.Status = model.StatusOver
	session.UpdatedAt = c.clock.Now()

	var winners, losers []model.PlayerID
	for _, s := range session.HumanSeats() {
		if s.Number == winnerSeat.Number {
			winners = append(winners, s.PlayerID)
		} else {
			losers = append(losers, s.PlayerID)
		}
	}
	c.stats.RecordResult(ctx, winners, losers)

	view := session.View()
	winnerNumber := winnerSeat.Number
	record := &model.SessionRecord{
		ID:          session.ID,
		GameType:    session.GameType,
		Config:      session.Config,
		Winner:      &winnerNumber,
		Seats:       view.Seats,
		Rounds:      session.Rounds,
		CompletedAt: c.clock.Now(),
	}
	if err := c.storage.AppendSessionRecord(ctx, record); err != nil {
		// the game still finishes; history is best effort
		c.logger.Warn("session archive failed",
			slog.String("room_id", string(session.ID)),
			slog.String("error", err.Error()),
		)
	}

	c.registry.Remove(session.ID)

	c.logger.Info("game over",
		slog.String("room_id", string(session.ID)),
		slog.Int("winner_seat", winnerSeat.Number),
		slog.String("winner_player", string(winnerSeat.PlayerID)),
		slog.Int("rounds", len(session.Rounds)),
	)

	var winnerView model.SeatView
	for _, sv := range view.Seats {
		if sv.Number == winnerSeat.Number {
			winnerView = sv
		}
	}
	return []model.Event{c.event(model.EventGameOver, session.ID, model.GameOverPayload{
		GameOver: true,
		Winner:   winnerView,
		Record:   view,
	})}
}

func (c *Controller) event(t model.EventType, roomID model.SessionID, payload any) model.Event {
	return model.Event{
		Type:      t,
		Timestamp: c.clock.Now(),
		RoomID:    roomID,
		Payload:   payload,
	}
}
