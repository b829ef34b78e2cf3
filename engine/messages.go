package engine

import (
	"adrenaline/engine/actions"
	"adrenaline/engine/model"
)

// MessageStatus is the outcome class of a dispatched request.
type MessageStatus string

const (
	StatusOK               MessageStatus = "OK"
	StatusError            MessageStatus = "ERROR"
	StatusNeedPlayerAction MessageStatus = "NEED_PLAYER_ACTION"
	StatusNoResponse       MessageStatus = "NO_RESPONSE"
)

// Response is the single authoritative answer to a dispatched request.
type Response struct {
	Reason string        `json:"reason"`
	Status MessageStatus `json:"status"`
}

// Request is a gameplay message from a client, already authenticated by the
// transport layer. Sender is the claimed username, verified against the
// current turn owner by the dispatcher.
type Request interface {
	SenderUsername() string
}

// BaseRequest carries the envelope fields every request shares.
type BaseRequest struct {
	Sender string `json:"sender"`
	Token  string `json:"token"`
}

func (r BaseRequest) SenderUsername() string { return r.Sender }

// MoveRequest asks to walk to a square.
type MoveRequest struct {
	BaseRequest
	Target model.Position `json:"target"`
}

// MovePickRequest asks to move and pick up what the target square offers.
type MovePickRequest struct {
	BaseRequest
	Target          model.Position `json:"target"`
	WeaponIndex     *int           `json:"weaponIndex,omitempty"`
	DiscardWeapon   *int           `json:"discardWeapon,omitempty"`
	PaymentPowerups []int          `json:"paymentPowerups,omitempty"`
}

// ShootRequest asks to fire one effect of a hand weapon.
type ShootRequest struct {
	BaseRequest
	actions.ShootRequest
}

// ReloadRequest asks to recharge hand weapons before passing.
type ReloadRequest struct {
	BaseRequest
	Weapons         []int `json:"weapons"`
	PaymentPowerups []int `json:"paymentPowerups,omitempty"`
}

// PowerupRequest asks to use powerups: newton/teleporter during the owner's
// turn, grenades in GRANADE_USAGE, scopes in SCOPE_USAGE. Indexes address
// the sender's hand; an empty Powerups list in a sub-turn declines it.
type PowerupRequest struct {
	BaseRequest
	Powerups        []int           `json:"powerups"`
	PaymentPowerups []int           `json:"paymentPowerups,omitempty"`
	Targets         []string        `json:"targets,omitempty"`
	AmmoColors      []model.Ammo    `json:"ammoColors,omitempty"`
	Dest            *model.Position `json:"dest,omitempty"`
}

// DiscardPowerupRequest spawns or respawns by discarding a powerup; index 3
// means the drawn spawning card.
type DiscardPowerupRequest struct {
	BaseRequest
	Powerup int `json:"powerup"`
}

// BotSpawnRequest places the bot on a spawn square of the chosen color.
type BotSpawnRequest struct {
	BaseRequest
	Color model.RoomColor `json:"color"`
}

// BotUseRequest spends the round's bot action.
type BotUseRequest struct {
	BaseRequest
	Target string         `json:"target,omitempty"`
	Dest   model.Position `json:"dest"`
}

// PassTurnRequest ends the owner's round.
type PassTurnRequest struct {
	BaseRequest
}
