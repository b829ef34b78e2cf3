package engine

import "adrenaline/engine/model"

// FigureView is the public face of a figure: everything on the table that
// any player may inspect.
type FigureView struct {
	Username    string             `json:"username"`
	Color       model.PlayerColor  `json:"color"`
	Position    *model.Position    `json:"position"`
	Board       *model.PlayerBoard `json:"board"`
	FirstPlayer bool               `json:"firstPlayer"`
	Weapons     []model.WeaponCard `json:"weapons,omitempty"`
}

// GameSerialized is the full observable state for one receiver: the public
// table plus only that receiver's hand, points and pending actions.
type GameSerialized struct {
	GameState       model.GameState   `json:"gameState"`
	State           PossibleGameState `json:"state"`
	TurnOwner       string            `json:"turnOwner"`
	Players         []FigureView      `json:"players"`
	Bot             *FigureView       `json:"bot,omitempty"`
	KillShotNum     int               `json:"killShotNum"`
	KillShotTrack   []*model.KillShot `json:"killShotTrack"`
	FrenzyKillShots []model.KillShot  `json:"frenzyKillShots,omitempty"`
	Map             *model.GameMap    `json:"map"`

	Powerups        []model.PowerupCard `json:"powerups"`
	SpawningCard    *model.PowerupCard  `json:"spawningCard,omitempty"`
	Points          int                 `json:"points"`
	PossibleActions model.ActionSet     `json:"possibleActions,omitempty"`
}

// SerializeFor builds the receiver's view of the match.
func (gm *GameManager) SerializeFor(username string) GameSerialized {
	g := gm.game

	view := GameSerialized{
		GameState:       g.State,
		State:           gm.state,
		TurnOwner:       gm.TurnOwnerUsername(),
		KillShotNum:     g.KillShotNum,
		KillShotTrack:   g.KillShotTrack,
		FrenzyKillShots: g.FrenzyKillShots,
		Map:             g.Map,
	}

	for _, p := range g.Players {
		view.Players = append(view.Players, FigureView{
			Username:    p.Username,
			Color:       p.Color,
			Position:    p.Position,
			Board:       p.Board,
			FirstPlayer: p.FirstPlayer,
			Weapons:     p.Weapons,
		})
	}
	if g.BotPresent && g.Bot != nil {
		view.Bot = &FigureView{
			Username: g.Bot.Username,
			Color:    g.Bot.Color,
			Position: g.Bot.Position,
			Board:    g.Bot.Board,
		}
	}

	if receiver, err := g.UserPlayerByUsername(username); err == nil {
		view.Powerups = receiver.Powerups
		view.SpawningCard = receiver.SpawningCard
		view.Points = receiver.Points
		view.PossibleActions = receiver.Actions
	}
	return view
}
