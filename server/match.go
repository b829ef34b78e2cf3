package server

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"adrenaline/domain"
	"adrenaline/engine"
	"adrenaline/engine/persistence"
	"adrenaline/shared/logger"
)

type matchPhase int

const (
	phaseLobby matchPhase = iota
	phasePlaying
	phaseEnded
)

type inboundFrame struct {
	raw  []byte
	from *Player
}

type joinRequest struct {
	player  *Player
	errChan chan error
}

// ResultRecorder is the slice of storage the match needs at endgame.
type ResultRecorder interface {
	RecordMatchResults(ctx context.Context, results []domain.MatchResult) error
}

// Match is one game room. A single goroutine owns all its state: sessions,
// the lobby settings and the engine. Everything reaches it through channels,
// which is what lets the engine stay lock free.
type Match struct {
	id      string
	hub     *Hub
	store   *persistence.Store
	results ResultRecorder
	rng     *rand.Rand

	phase   matchPhase
	lobby   *lobbyState
	players []*Player
	gm      *engine.GameManager

	inbox        chan inboundFrame
	joinRequests chan joinRequest
	removals     chan *Player
	ticks        chan struct{}
}

func newMatch(id string, hub *Hub, store *persistence.Store, results ResultRecorder, rng *rand.Rand) *Match {
	return &Match{
		id:           id,
		hub:          hub,
		store:        store,
		results:      results,
		rng:          rng,
		phase:        phaseLobby,
		lobby:        newLobbyState(),
		inbox:        make(chan inboundFrame, 1024),
		joinRequests: make(chan joinRequest),
		removals:     make(chan *Player, 64),
		ticks:        make(chan struct{}, 8),
	}
}

func (m *Match) run() {
	logger.Infof("[match %s] actor started", m.id)
	for {
		select {
		case req := <-m.joinRequests:
			req.errChan <- m.handleJoin(req.player)
		case frame := <-m.inbox:
			m.handleFrame(frame)
		case p := <-m.removals:
			m.handleRemoval(p)
		case <-m.ticks:
			for _, p := range m.players {
				p.Ping()
			}
		}
		if m.phase == phaseEnded && len(m.players) == 0 {
			break
		}
	}
	m.hub.remove(m)
	logger.Infof("[match %s] actor stopped", m.id)
}

func (m *Match) handleJoin(p *Player) error {
	p.match = m

	switch m.phase {
	case phaseLobby:
		if err := m.lobby.addSeat(p.username); err != nil {
			return err
		}
		m.adoptSession(p)
		m.broadcastLobbyState()
		return nil

	case phasePlaying:
		// only seated players may come back mid-game
		if _, err := m.gm.Game().UserPlayerByUsername(p.username); err != nil {
			return ErrMatchStarted
		}
		m.adoptSession(p)
		if err := m.gm.SetPlayerConnected(p.username, true); err != nil {
			return err
		}
		p.Send(encodeFrame(TypeGameUpdate, m.gm.SerializeFor(p.username)))
		return nil

	default:
		return ErrMatchEnded
	}
}

// adoptSession registers the session, kicking a zombie one with the same name.
func (m *Match) adoptSession(p *Player) {
	for i, old := range m.players {
		if old.username == p.username {
			logger.Warningf("[match %s] kicking zombie session of %s", m.id, old.username)
			m.players = append(m.players[:i], m.players[i+1:]...)
			old.Destroy()
			break
		}
	}
	m.players = append(m.players, p)
}

func (m *Match) handleFrame(frame inboundFrame) {
	var env clientEnvelope
	if err := json.Unmarshal(frame.raw, &env); err != nil {
		frame.from.Send(encodeFrame(TypeError, "malformed frame"))
		return
	}

	switch m.phase {
	case phaseLobby:
		m.handleLobbyFrame(env, frame.from)
	case phasePlaying:
		req, err := decodeRequest(env, frame.from.username)
		if err != nil {
			frame.from.Send(encodeFrame(TypeError, err.Error()))
			return
		}
		resp := m.gm.OnMessage(req)
		frame.from.Send(encodeFrame(TypeResponse, resp))
	default:
		frame.from.Send(encodeFrame(TypeError, "game has ended"))
	}
}

func (m *Match) handleRemoval(p *Player) {
	found := false
	for i, cur := range m.players {
		if cur == p {
			m.players = append(m.players[:i], m.players[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		return
	}
	p.Destroy()

	switch m.phase {
	case phaseLobby:
		m.lobby.dropSeat(p.username)
		m.broadcastLobbyState()
		if len(m.players) == 0 {
			m.phase = phaseEnded
		}
	case phasePlaying:
		if err := m.gm.SetPlayerConnected(p.username, false); err != nil {
			logger.Warningf("[match %s] removing %s: %v", m.id, p.username, err)
		}
		// the snapshot keeps the match resumable even if everyone drops
		m.Save()
	}
}

func (m *Match) broadcast(data []byte) {
	for _, p := range m.players {
		p.Send(data)
	}
}

// SendPrivateUpdates pushes each player their own view of the game: the
// public table plus only their hand, points and offered actions.
func (m *Match) SendPrivateUpdates() {
	for _, p := range m.players {
		p.Send(encodeFrame(TypeGameUpdate, m.gm.SerializeFor(p.username)))
	}
}

// SendGrenadePrivateUpdates is the same push flagged as a grenade window, so
// clients holding a tagback grenade know a reaction is being waited on.
func (m *Match) SendGrenadePrivateUpdates() {
	users := m.gm.TurnManager().GrenadePossibleUsers
	for _, p := range m.players {
		p.Send(encodeFrame(TypeGrenadeUpdate, grenadeUpdate{
			Game:         m.gm.SerializeFor(p.username),
			GrenadeUsers: users,
		}))
	}
}

type grenadeUpdate struct {
	Game         engine.GameSerialized `json:"game"`
	GrenadeUsers []string              `json:"grenadeUsers"`
}

func (m *Match) Save() {
	if err := m.store.Save(persistence.Capture(m.gm)); err != nil {
		logger.Criticalf("[match %s] snapshot failed: %v", m.id, err)
	}
}

// GameEnded records the scores, tells everyone and retires the room.
func (m *Match) GameEnded(winners []string) {
	logger.Infof("[match %s] game over, winners: %v", m.id, winners)

	finished := time.Now().UTC()
	winnerSet := make(map[string]bool, len(winners))
	for _, w := range winners {
		winnerSet[w] = true
	}
	results := make([]domain.MatchResult, 0, len(m.gm.Game().Players))
	for _, p := range m.gm.Game().Players {
		results = append(results, domain.MatchResult{
			MatchId:    m.id,
			Username:   p.Username,
			Points:     p.Points,
			Winner:     winnerSet[p.Username],
			FinishedAt: finished,
		})
	}
	go m.recordResults(results)

	m.broadcast(encodeFrame(TypeGameOver, winners))
	if err := m.store.Clear(); err != nil {
		logger.Warningf("[match %s] clearing snapshot: %v", m.id, err)
	}
	m.phase = phaseEnded
}

func (m *Match) recordResults(results []domain.MatchResult) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := m.results.RecordMatchResults(ctx, results); err != nil {
		logger.Criticalf("[match %s] recording results: %v", m.id, err)
	}
}
