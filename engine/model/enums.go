package model

import "fmt"

// Ammo is one of the three cube colors used to pay costs. Powerups double as
// an ammo cube of their color when spent as payment.
type Ammo string

const (
	AmmoRed    Ammo = "RED"
	AmmoBlue   Ammo = "BLUE"
	AmmoYellow Ammo = "YELLOW"
)

func ParseAmmo(s string) (Ammo, error) {
	switch Ammo(s) {
	case AmmoRed, AmmoBlue, AmmoYellow:
		return Ammo(s), nil
	}
	return "", fmt.Errorf("unknown ammo color %q", s)
}

// RoomColor identifies a room on the map. Spawn rooms are always RED, BLUE
// and YELLOW.
type RoomColor string

const (
	RoomRed    RoomColor = "RED"
	RoomBlue   RoomColor = "BLUE"
	RoomYellow RoomColor = "YELLOW"
	RoomGreen  RoomColor = "GREEN"
	RoomPurple RoomColor = "PURPLE"
	RoomWhite  RoomColor = "WHITE"
	RoomGrey   RoomColor = "GREY"
)

func ParseRoomColor(s string) (RoomColor, error) {
	switch RoomColor(s) {
	case RoomRed, RoomBlue, RoomYellow, RoomGreen, RoomPurple, RoomWhite, RoomGrey:
		return RoomColor(s), nil
	}
	return "", fmt.Errorf("unknown room color %q", s)
}

// AmmoToRoom maps a payment color onto its spawn room.
func AmmoToRoom(a Ammo) RoomColor {
	return RoomColor(a)
}

// PlayerColor is the color a player picked in the lobby, unique per game.
type PlayerColor string

const (
	PlayerColorYellow PlayerColor = "YELLOW"
	PlayerColorGreen  PlayerColor = "GREEN"
	PlayerColorPurple PlayerColor = "PURPLE"
	PlayerColorGrey   PlayerColor = "GREY"
	PlayerColorBlue   PlayerColor = "BLUE"
)

// PlayerColors lists every assignable color, in assignment order for the bot.
var PlayerColors = []PlayerColor{
	PlayerColorYellow, PlayerColorGreen, PlayerColorPurple, PlayerColorGrey, PlayerColorBlue,
}

// SquareAdjacency describes what lies on one side of a square.
type SquareAdjacency string

const (
	AdjacencyWall   SquareAdjacency = "WALL"
	AdjacencyDoor   SquareAdjacency = "DOOR"
	AdjacencySquare SquareAdjacency = "SQUARE"
	AdjacencyNone   SquareAdjacency = ""
)

type SquareType string

const (
	SquareTile  SquareType = "TILE"
	SquareSpawn SquareType = "SPAWN"
)

// GameState is the coarse phase of the match.
type GameState string

const (
	GameNormal      GameState = "NORMAL"
	GameFinalFrenzy GameState = "FINAL_FRENZY"
)

// PlayerState tracks a player's lifecycle inside a started game.
type PlayerState string

const (
	PlayerFirstSpawn   PlayerState = "FIRST_SPAWN"
	PlayerPlaying      PlayerState = "PLAYING"
	PlayerDead         PlayerState = "DEAD"
	PlayerDisconnected PlayerState = "DISCONNECTED"
)

// WeaponState is the charge state of a weapon card. Semi-charged only exists
// during the final frenzy, when every uncharged weapon flips to it.
type WeaponState string

const (
	WeaponCharged     WeaponState = "CHARGED"
	WeaponUncharged   WeaponState = "UNCHARGED"
	WeaponSemiCharged WeaponState = "SEMI_CHARGED"
)

// PossibleAction enumerates everything a player may be offered during a turn.
type PossibleAction string

const (
	ActionSpawnBot         PossibleAction = "SPAWN_BOT"
	ActionChooseSpawn      PossibleAction = "CHOOSE_SPAWN"
	ActionMove             PossibleAction = "MOVE"
	ActionMoveAndPick      PossibleAction = "MOVE_AND_PICK"
	ActionShoot            PossibleAction = "SHOOT"
	ActionReload           PossibleAction = "RELOAD"
	ActionAdrenalinePick   PossibleAction = "ADRENALINE_PICK"
	ActionAdrenalineShoot  PossibleAction = "ADRENALINE_SHOOT"
	ActionFrenzyMove       PossibleAction = "FRENZY_MOVE"
	ActionFrenzyPick       PossibleAction = "FRENZY_PICK"
	ActionFrenzyShoot      PossibleAction = "FRENZY_SHOOT"
	ActionLightFrenzyPick  PossibleAction = "LIGHT_FRENZY_PICK"
	ActionLightFrenzyShoot PossibleAction = "LIGHT_FRENZY_SHOOT"
	ActionBot              PossibleAction = "BOT_ACTION"
)

// ActionSet is the set of actions currently offered to a player.
type ActionSet map[PossibleAction]bool

func NewActionSet(actions ...PossibleAction) ActionSet {
	set := make(ActionSet, len(actions))
	for _, a := range actions {
		set[a] = true
	}
	return set
}

func (s ActionSet) Has(a PossibleAction) bool { return s[a] }

func (s ActionSet) Add(a PossibleAction) { s[a] = true }

func (s ActionSet) Remove(a PossibleAction) { delete(s, a) }

// PowerupName is one of the four powerup kinds.
const (
	PowerupTeleporter     = "TELEPORTER"
	PowerupNewton         = "NEWTON"
	PowerupTagbackGrenade = "TAGBACK GRENADE"
	PowerupTargetingScope = "TARGETING SCOPE"
)
