// Package engine is the authoritative rules engine of a match. It is
// strictly single threaded: the transport layer feeds it one request at a
// time and every mutation happens inside that dispatch.
package engine

import (
	"errors"
	"fmt"
	"math/rand"

	"adrenaline/engine/actions"
	"adrenaline/engine/content"
	"adrenaline/engine/model"
	"adrenaline/shared/logger"
)

var ErrNotEnoughPlayers = errors.New("not enough players to start")

// Sink is everything the engine needs from the layer above: pushing fresh
// state to the players, snapshotting it and announcing the end of the game.
type Sink interface {
	SendPrivateUpdates()
	SendGrenadePrivateUpdates()
	Save()
	GameEnded(winners []string)
}

// PlayerSpec is one lobby seat handed to the engine at start.
type PlayerSpec struct {
	Username string
	Color    model.PlayerColor
}

// GameManager owns the match state machine. It verifies the sender of every
// request, rejects requests that are not legal in the current state and
// delegates the rest to the round manager.
type GameManager struct {
	game  *model.Game
	tm    *TurnManager
	rm    *RoundManager
	rng   *rand.Rand
	sink  Sink
	state PossibleGameState
}

// NewGameManager builds a match from a lobby: seats, config and the content
// catalogs. The game is not started yet.
func NewGameManager(sink Sink, cfg content.StartGameConfig, players []PlayerSpec, rng *rand.Rand) (*GameManager, error) {
	cfg.Normalize()
	gameMap, err := content.Map(cfg.MapID)
	if err != nil {
		return nil, err
	}

	g := model.NewGame(cfg.KillShotNum)
	for _, spec := range players {
		if err := g.AddPlayer(model.NewUserPlayer(spec.Username, spec.Color)); err != nil {
			return nil, err
		}
	}
	if err := g.SetBot(cfg.BotPresent); err != nil {
		return nil, err
	}

	g.Map = gameMap
	g.WeaponDeck = content.WeaponDeck(rng)
	g.PowerupDeck = content.PowerupDeck(rng)
	g.AmmoTileDeck = content.AmmoTileDeck(rng)

	return &GameManager{game: g, rng: rng, sink: sink, state: StateGameRoom}, nil
}

// RestoreGameManager rebuilds a match from a snapshot.
func RestoreGameManager(sink Sink, g *model.Game, tm *TurnManager, state PossibleGameState, rng *rand.Rand) *GameManager {
	tm.Bind(g)
	gm := &GameManager{game: g, tm: tm, rng: rng, sink: sink, state: state}
	gm.rm = newRoundManager(gm, g, tm, rng)
	return gm
}

// StartGame shuffles the ring, deals the first owner their spawn powerups
// and opens the first turn.
func (gm *GameManager) StartGame() error {
	if len(gm.game.Players) < model.MinPlayers {
		return ErrNotEnoughPlayers
	}
	if err := gm.game.Start(gm.rng); err != nil {
		return err
	}

	gm.tm = NewTurnManager(gm.game)
	gm.rm = newRoundManager(gm, gm.game, gm.tm, gm.rng)

	first := gm.tm.Owner()
	actions.SetStartingActions(first, gm.game.BotPresent)
	if gm.game.BotPresent {
		first.Actions.Add(model.ActionSpawnBot)
	}
	gm.rm.pickTwoPowerups()

	gm.changeState(StateGameStarted)
	gm.sendPrivateUpdates()
	gm.save()
	return nil
}

func (gm *GameManager) Game() *model.Game { return gm.game }

func (gm *GameManager) TurnManager() *TurnManager { return gm.tm }

func (gm *GameManager) State() PossibleGameState { return gm.state }

// TurnOwnerUsername is the player the engine currently listens to.
func (gm *GameManager) TurnOwnerUsername() string {
	if gm.tm == nil {
		return ""
	}
	return gm.tm.Owner().Username
}

// OnMessage applies one gameplay request. A panic inside a handler marks a
// fatal inconsistency: the dispatch is aborted and surfaced as an error
// without corrupting the actor loop.
func (gm *GameManager) OnMessage(req Request) (resp Response) {
	defer func() {
		if r := recover(); r != nil {
			logger.Criticalf("dispatch aborted: %v", r)
			resp = Response{Reason: "internal game error", Status: StatusError}
		}
	}()

	if gm.state == StateGameRoom {
		return Response{Reason: "game not started", Status: StatusError}
	}
	if gm.state == StateGameEnded {
		return Response{Reason: "game has ended", Status: StatusError}
	}
	if req.SenderUsername() != gm.tm.Owner().Username {
		return Response{Reason: "not your turn", Status: StatusError}
	}

	switch m := req.(type) {
	case BotSpawnRequest:
		switch gm.state {
		case StateGameStarted:
			return gm.rm.handleBotFirstSpawn(m)
		case StateBotRespawn:
			return gm.rm.handleBotRespawn(m)
		}

	case DiscardPowerupRequest:
		switch gm.state {
		case StateGameStarted:
			return gm.rm.handleFirstSpawn(m)
		case StateManageDeaths:
			return gm.rm.handlePlayerRespawn(m)
		}

	case MoveRequest:
		if gm.inActionState() {
			return gm.rm.handleMoveAction(m, gm.secondAction())
		}

	case MovePickRequest:
		if gm.inActionState() {
			return gm.rm.handlePickAction(m, gm.secondAction())
		}

	case ShootRequest:
		if gm.inActionState() {
			return gm.rm.handleShootAction(m, gm.secondAction())
		}

	case ReloadRequest:
		if gm.state == StateActionsDone {
			return gm.rm.handleReloadAction(m)
		}

	case BotUseRequest:
		switch gm.state {
		case StateGameStarted, StateSecondAction, StateFinalFrenzy, StateMissingBotAction:
			return gm.rm.handleBotAction(m, gm.state)
		}

	case PowerupRequest:
		switch gm.state {
		case StateGrenadeUsage:
			return gm.rm.handleGrenadeUsage(m)
		case StateScopeUsage:
			return gm.rm.handleScopeUsage(m)
		case StateGameStarted, StateSecondAction, StateFinalFrenzy, StateActionsDone, StateFrenzyActionsDone:
			return gm.rm.handlePowerupAction(m)
		}

	case PassTurnRequest:
		switch gm.state {
		case StateGameStarted, StateSecondAction, StateFinalFrenzy, StateActionsDone, StateFrenzyActionsDone:
			return gm.rm.handlePassAction()
		}

	default:
		return Response{Reason: "unknown request", Status: StatusError}
	}

	return Response{
		Reason: fmt.Sprintf("request not allowed in state %s", gm.state),
		Status: StatusError,
	}
}

// SetPlayerConnected flips a player's liveness. Disconnected players are
// skipped by turn advancement; a reconnecting player resumes as PLAYING.
func (gm *GameManager) SetPlayerConnected(username string, connected bool) error {
	p, err := gm.game.UserPlayerByUsername(username)
	if err != nil {
		return err
	}
	if connected {
		if p.State == model.PlayerDisconnected {
			p.State = model.PlayerPlaying
		}
		return nil
	}
	p.State = model.PlayerDisconnected
	logger.Infof("player %s disconnected, turns will skip them", username)
	return nil
}

// inActionState reports whether the owner may spend a main action now.
func (gm *GameManager) inActionState() bool {
	return gm.state == StateGameStarted || gm.state == StateSecondAction || gm.state == StateFinalFrenzy
}

// secondAction reports whether the next main action closes the turn. A
// light-frenzy set spends the whole turn in its single action.
func (gm *GameManager) secondAction() bool {
	if gm.state == StateSecondAction {
		return true
	}
	return gm.state == StateFinalFrenzy && actions.HasSingleActionSet(gm.tm.Owner())
}

func (gm *GameManager) changeState(next PossibleGameState) {
	logger.Debugf("game state %s -> %s", gm.state, next)
	gm.state = next
}

// endGame settles every board and the killshot track, then announces the
// winners. No snapshot is taken: a finished game replays from its last save.
func (gm *GameManager) endGame() {
	winners := finalScores(gm.game)
	gm.changeState(StateGameEnded)
	gm.sendPrivateUpdates()
	gm.sink.GameEnded(winners)
}

func (gm *GameManager) sendPrivateUpdates()        { gm.sink.SendPrivateUpdates() }
func (gm *GameManager) sendGrenadePrivateUpdates() { gm.sink.SendGrenadePrivateUpdates() }
func (gm *GameManager) save()                      { gm.sink.Save() }
