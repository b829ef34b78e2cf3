package server

import (
	"encoding/json"
	"errors"

	"adrenaline/engine"
	"adrenaline/engine/content"
	"adrenaline/engine/model"
	"adrenaline/shared/logger"
)

var (
	ErrMatchFull    = errors.New("match is full")
	ErrMatchStarted = errors.New("match already started")
	ErrMatchEnded   = errors.New("match has ended")
)

// lobbyState is the pre-game room: who sat down, which color each seat
// picked, the map votes and whether the bot plays. The first seat is the
// host and is the only one who can start.
type lobbyState struct {
	seats    []string
	colors   map[string]model.PlayerColor
	mapVotes map[string]int
	botVotes map[string]bool
}

func newLobbyState() *lobbyState {
	return &lobbyState{
		colors:   make(map[string]model.PlayerColor),
		mapVotes: make(map[string]int),
		botVotes: make(map[string]bool),
	}
}

func (l *lobbyState) addSeat(username string) error {
	for _, s := range l.seats {
		if s == username {
			return nil // reconnecting into the lobby keeps the seat
		}
	}
	if len(l.seats) >= model.MaxPlayers {
		return ErrMatchFull
	}
	l.seats = append(l.seats, username)
	return nil
}

func (l *lobbyState) dropSeat(username string) {
	for i, s := range l.seats {
		if s == username {
			l.seats = append(l.seats[:i], l.seats[i+1:]...)
			break
		}
	}
	delete(l.colors, username)
	delete(l.mapVotes, username)
	delete(l.botVotes, username)
}

func (l *lobbyState) host() string {
	if len(l.seats) == 0 {
		return ""
	}
	return l.seats[0]
}

func (l *lobbyState) pickColor(username string, color model.PlayerColor) error {
	valid := false
	for _, c := range model.PlayerColors {
		if c == color {
			valid = true
			break
		}
	}
	if !valid {
		return errors.New("unknown color")
	}
	for user, picked := range l.colors {
		if picked == color && user != username {
			return errors.New("color already taken")
		}
	}
	l.colors[username] = color
	return nil
}

// assignColors fills the seats that never picked with the free colors.
func (l *lobbyState) assignColors() []engine.PlayerSpec {
	taken := make(map[model.PlayerColor]bool, len(l.colors))
	for _, c := range l.colors {
		taken[c] = true
	}

	specs := make([]engine.PlayerSpec, 0, len(l.seats))
	for _, username := range l.seats {
		color, ok := l.colors[username]
		if !ok {
			for _, c := range model.PlayerColors {
				if !taken[c] {
					color, taken[c] = c, true
					break
				}
			}
		}
		specs = append(specs, engine.PlayerSpec{Username: username, Color: color})
	}
	return specs
}

// config tallies the votes: the most voted map wins with ties broken by the
// lower id, and the bot joins on a strict majority.
func (l *lobbyState) config() content.StartGameConfig {
	counts := make(map[int]int)
	for _, id := range l.mapVotes {
		counts[id]++
	}
	mapID, best := content.MinMapID, 0
	for id := content.MinMapID; id <= content.MaxMapID; id++ {
		if counts[id] > best {
			mapID, best = id, counts[id]
		}
	}

	botYes := 0
	for _, yes := range l.botVotes {
		if yes {
			botYes++
		}
	}

	return content.StartGameConfig{
		BotPresent:  botYes*2 > len(l.seats),
		KillShotNum: model.MaxKillShots,
		MapID:       mapID,
	}
}

type lobbyView struct {
	Seats  []seatView `json:"seats"`
	Host   string     `json:"host"`
	Config lobbyVotes `json:"votes"`
}

type seatView struct {
	Username string            `json:"username"`
	Color    model.PlayerColor `json:"color,omitempty"`
}

type lobbyVotes struct {
	Maps map[string]int  `json:"maps"`
	Bot  map[string]bool `json:"bot"`
}

func (m *Match) broadcastLobbyState() {
	view := lobbyView{
		Host:   m.lobby.host(),
		Config: lobbyVotes{Maps: m.lobby.mapVotes, Bot: m.lobby.botVotes},
	}
	for _, username := range m.lobby.seats {
		view.Seats = append(view.Seats, seatView{Username: username, Color: m.lobby.colors[username]})
	}
	m.broadcast(encodeFrame(TypeLobbyState, view))
}

func (m *Match) handleLobbyFrame(env clientEnvelope, from *Player) {
	switch env.Type {
	case TypeLobbyColor:
		var color model.PlayerColor
		if err := json.Unmarshal(env.Data, &color); err != nil {
			from.Send(encodeFrame(TypeError, "malformed color"))
			return
		}
		if err := m.lobby.pickColor(from.username, color); err != nil {
			from.Send(encodeFrame(TypeError, err.Error()))
			return
		}
		m.broadcastLobbyState()

	case TypeLobbyMap:
		var id int
		if err := json.Unmarshal(env.Data, &id); err != nil || id < content.MinMapID || id > content.MaxMapID {
			from.Send(encodeFrame(TypeError, "unknown map"))
			return
		}
		m.lobby.mapVotes[from.username] = id
		m.broadcastLobbyState()

	case TypeLobbyBot:
		var present bool
		if err := json.Unmarshal(env.Data, &present); err != nil {
			from.Send(encodeFrame(TypeError, "malformed vote"))
			return
		}
		m.lobby.botVotes[from.username] = present
		m.broadcastLobbyState()

	case TypeLobbyStart:
		if from.username != m.lobby.host() {
			from.Send(encodeFrame(TypeError, "only the host can start"))
			return
		}
		if err := m.startGame(); err != nil {
			from.Send(encodeFrame(TypeError, err.Error()))
		}

	default:
		from.Send(encodeFrame(TypeError, "request not allowed in the lobby"))
	}
}

func (m *Match) startGame() error {
	cfg := m.lobby.config()
	specs := m.lobby.assignColors()

	gm, err := engine.NewGameManager(m, cfg, specs, m.rng)
	if err != nil {
		return err
	}

	// the sink callbacks fire inside StartGame, so wire the engine in first
	m.gm = gm
	if err := gm.StartGame(); err != nil {
		m.gm = nil
		return err
	}

	m.phase = phasePlaying
	logger.Infof("[match %s] started with %d players on map %d (bot: %v)",
		m.id, len(specs), cfg.MapID, cfg.BotPresent)
	return nil
}
