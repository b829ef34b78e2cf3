package engine

// PossibleGameState is the fine-grained state of the match state machine.
// The pass states are never rested in: they name the kind of pass in flight
// while deaths and respawns are resolved.
type PossibleGameState string

const (
	StateGameRoom    PossibleGameState = "GAME_ROOM"
	StateGameStarted PossibleGameState = "GAME_STARTED"
	StateGameEnded   PossibleGameState = "GAME_ENDED"
	StateFinalFrenzy PossibleGameState = "FINAL_FRENZY"

	StateSecondAction      PossibleGameState = "SECOND_ACTION"
	StateMissingBotAction  PossibleGameState = "MISSING_TERMINATOR_ACTION"
	StateGrenadeUsage      PossibleGameState = "GRANADE_USAGE"
	StateScopeUsage        PossibleGameState = "SCOPE_USAGE"
	StateActionsDone       PossibleGameState = "ACTIONS_DONE"
	StateFrenzyActionsDone PossibleGameState = "FRENZY_ACTIONS_DONE"
	StateManageDeaths      PossibleGameState = "MANAGE_DEATHS"
	StateBotRespawn        PossibleGameState = "TERMINATOR_RESPAWN"

	StatePassNormalTurn    PossibleGameState = "PASS_NORMAL_TURN"
	StatePassNormalBotTurn PossibleGameState = "PASS_NORMAL_BOT_TURN"
	StateReloadPass        PossibleGameState = "RELOAD_PASS"
	StatePassFrenzyTurn    PossibleGameState = "PASS_FRENZY_TURN"
)

// IsSubTurn reports whether the state temporarily hands the turn to someone
// other than the ring owner. At most one may be active at a time.
func (s PossibleGameState) IsSubTurn() bool {
	switch s {
	case StateGrenadeUsage, StateScopeUsage, StateManageDeaths, StateBotRespawn:
		return true
	}
	return false
}
