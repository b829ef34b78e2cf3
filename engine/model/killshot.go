package model

// KillShot is one filled slot of the killshot track. Points is 2 when the
// kill came with an overkill, 1 otherwise; at endgame each killshot counts as
// that many track tokens for its killer.
type KillShot struct {
	Killer string `json:"killer" msgpack:"killer"`
	Points int    `json:"points" msgpack:"points"`
}
