package server

import (
	"encoding/json"
	"fmt"

	"adrenaline/engine"
	"adrenaline/shared/logger"
)

// Every websocket frame is a JSON envelope with a type tag and a payload.
// Client to server gameplay types map one to one onto engine requests; the
// lobby types are handled by the match actor before a game exists.
const (
	// client -> server
	TypeLobbyColor = "lobby_color"
	TypeLobbyMap   = "lobby_map"
	TypeLobbyBot   = "lobby_bot"
	TypeLobbyStart = "lobby_start"

	TypeMove           = "move"
	TypeMovePick       = "move_pick"
	TypeShoot          = "shoot"
	TypeReload         = "reload"
	TypePowerup        = "powerup"
	TypeDiscardPowerup = "discard_powerup"
	TypeBotSpawn       = "bot_spawn"
	TypeBotUse         = "bot_use"
	TypePass           = "pass"

	// server -> client
	TypeLobbyState    = "lobby_state"
	TypeGameUpdate    = "game_update"
	TypeGrenadeUpdate = "grenade_update"
	TypeResponse      = "response"
	TypeGameOver      = "game_over"
	TypeError         = "error"
)

type clientEnvelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type serverEnvelope struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

func encodeFrame(frameType string, data any) []byte {
	raw, err := json.Marshal(serverEnvelope{Type: frameType, Data: data})
	if err != nil {
		logger.Criticalf("wire: failed to encode %s frame: %v", frameType, err)
		return nil
	}
	return raw
}

// decodeRequest turns a gameplay envelope into an engine request. The sender
// is taken from the authenticated session, never from the payload. The engine
// dispatches on value types, so requests are returned by value.
func decodeRequest(env clientEnvelope, sender string) (engine.Request, error) {
	switch env.Type {
	case TypeMove:
		var r engine.MoveRequest
		return fill(&r, &r.BaseRequest, env, sender)
	case TypeMovePick:
		var r engine.MovePickRequest
		return fill(&r, &r.BaseRequest, env, sender)
	case TypeShoot:
		var r engine.ShootRequest
		return fill(&r, &r.BaseRequest, env, sender)
	case TypeReload:
		var r engine.ReloadRequest
		return fill(&r, &r.BaseRequest, env, sender)
	case TypePowerup:
		var r engine.PowerupRequest
		return fill(&r, &r.BaseRequest, env, sender)
	case TypeDiscardPowerup:
		var r engine.DiscardPowerupRequest
		return fill(&r, &r.BaseRequest, env, sender)
	case TypeBotSpawn:
		var r engine.BotSpawnRequest
		return fill(&r, &r.BaseRequest, env, sender)
	case TypeBotUse:
		var r engine.BotUseRequest
		return fill(&r, &r.BaseRequest, env, sender)
	case TypePass:
		var r engine.PassTurnRequest
		return fill(&r, &r.BaseRequest, env, sender)
	default:
		return nil, fmt.Errorf("unknown frame type %q", env.Type)
	}
}

// fill decodes the payload into the request pointed at by dst and stamps the
// sender, returning the request by value for the engine's dispatch.
func fill[R engine.Request](dst *R, base *engine.BaseRequest, env clientEnvelope, sender string) (engine.Request, error) {
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, dst); err != nil {
			return nil, fmt.Errorf("malformed %s payload: %w", env.Type, err)
		}
	}
	base.Sender = sender
	return *dst, nil
}
