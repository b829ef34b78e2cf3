package actions

import (
	"fmt"

	"adrenaline/engine/model"
)

// SpawnAction places a player on the spawn square matching the color of a
// powerup they discarded. The discard itself is handled by the round manager
// so that respawn's "drawn card" variant shares this action.
type SpawnAction struct {
	Player *model.UserPlayer
	Color  model.RoomColor
}

func (a *SpawnAction) Validate(g *model.Game) error {
	if a.Player.State != model.PlayerFirstSpawn && a.Player.State != model.PlayerDead {
		return fmt.Errorf("%w: player is not spawning", ErrInvalidAction)
	}
	if _, err := g.Map.SpawnSquare(a.Color); err != nil {
		return fmt.Errorf("%w: %s is not a spawn color", ErrInvalidAction, a.Color)
	}
	return nil
}

func (a *SpawnAction) Execute(g *model.Game) error {
	pos, err := g.Map.SpawnSquare(a.Color)
	if err != nil {
		return err
	}
	if err := g.Spawn(&a.Player.Figure, pos); err != nil {
		return err
	}
	a.Player.State = model.PlayerPlaying
	return nil
}

// BotSpawnAction places the bot on a spawn square of the chosen color.
type BotSpawnAction struct {
	Color model.RoomColor
}

func (a *BotSpawnAction) Validate(g *model.Game) error {
	if !g.BotPresent {
		return fmt.Errorf("%w: no bot in this game", ErrInvalidAction)
	}
	if _, err := g.Map.SpawnSquare(a.Color); err != nil {
		return fmt.Errorf("%w: %s is not a spawn color", ErrInvalidAction, a.Color)
	}
	return nil
}

func (a *BotSpawnAction) Execute(g *model.Game) error {
	pos, err := g.Map.SpawnSquare(a.Color)
	if err != nil {
		return err
	}
	if err := g.Spawn(&g.Bot.Figure, pos); err != nil {
		return err
	}
	g.Bot.State = model.PlayerPlaying
	return nil
}
