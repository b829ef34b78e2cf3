package engine

import (
	"fmt"
	"math/rand"
	"sort"

	"adrenaline/engine/actions"
	"adrenaline/engine/model"
)

// RoundManager resolves every gameplay request against the current round:
// the owner's two actions, the reactive grenade and scope windows, deaths,
// respawns and the turn pass. State transitions always go through the game
// manager so that dispatch legality stays in one place.
type RoundManager struct {
	game *model.Game
	gm   *GameManager
	tm   *TurnManager
	rng  *rand.Rand
}

func newRoundManager(gm *GameManager, g *model.Game, tm *TurnManager, rng *rand.Rand) *RoundManager {
	return &RoundManager{game: g, gm: gm, tm: tm, rng: rng}
}

// setInitialActions recomputes the owner's set for the start of their turn.
// Frenzy sets are assigned once at frenzy activation and never recomputed.
func (rm *RoundManager) setInitialActions() {
	owner := rm.tm.Owner()
	if rm.game.State != model.GameNormal {
		return
	}
	switch owner.State {
	case model.PlayerFirstSpawn:
		actions.SetStartingActions(owner, rm.game.BotPresent)
	case model.PlayerPlaying:
		actions.SetPossibleActions(owner, rm.game.BotPresent)
	}
}

func (rm *RoundManager) setReloadAction() {
	rm.tm.Owner().Actions = model.NewActionSet(model.ActionReload)
}

// pickTwoPowerups draws the two first-spawn powerups for the turn owner.
func (rm *RoundManager) pickTwoPowerups() {
	for i := 0; i < 2; i++ {
		if err := rm.tm.Owner().AddPowerup(rm.game.DrawPowerup(rm.rng)); err != nil {
			return
		}
	}
}

// handleBotFirstSpawn places the bot before the first player's own spawn.
func (rm *RoundManager) handleBotFirstSpawn(req BotSpawnRequest) Response {
	owner := rm.tm.Owner()
	if !owner.Actions.Has(model.ActionSpawnBot) {
		return rm.buildNegativeResponse("invalid action")
	}

	spawn := &actions.BotSpawnAction{Color: req.Color}
	if err := spawn.Validate(rm.game); err != nil {
		return rm.buildNegativeResponse(err.Error())
	}
	if err := spawn.Execute(rm.game); err != nil {
		return rm.buildNegativeResponse(err.Error())
	}

	owner.Actions.Remove(model.ActionSpawnBot)
	return rm.buildPositiveResponse("bot spawned")
}

// handleFirstSpawn spawns the owner on the room matching the color of the
// powerup they discard, then hands them their first action set.
func (rm *RoundManager) handleFirstSpawn(req DiscardPowerupRequest) Response {
	owner := rm.tm.Owner()
	if !owner.Actions.Has(model.ActionChooseSpawn) {
		return rm.buildNegativeResponse("invalid action")
	}
	if req.Powerup < 0 || req.Powerup >= len(owner.Powerups) {
		return rm.buildNegativeResponse("invalid powerup index")
	}

	color := model.AmmoToRoom(owner.Powerups[req.Powerup].Color)
	spawn := &actions.SpawnAction{Player: owner, Color: color}
	if err := spawn.Validate(rm.game); err != nil {
		return rm.buildNegativeResponse(err.Error())
	}

	card, _ := owner.DiscardPowerup(req.Powerup)
	rm.game.PowerupDeck.Discard(card)
	if err := spawn.Execute(rm.game); err != nil {
		return rm.buildNegativeResponse(err.Error())
	}

	rm.setInitialActions()
	// the first player spends their opening turn spawning the bot instead
	if rm.game.BotPresent && owner.FirstPlayer {
		owner.Actions.Remove(model.ActionBot)
	}
	return rm.buildPositiveResponse("player spawned with chosen powerup")
}

// handleBotAction moves the bot and resolves its attack, opening the grenade
// window for the hit player before the round resumes.
func (rm *RoundManager) handleBotAction(req BotUseRequest, gameState PossibleGameState) Response {
	owner := rm.tm.Owner()
	if !owner.Actions.Has(model.ActionBot) {
		return rm.buildNegativeResponse("invalid action")
	}

	action := &actions.BotAction{Owner: owner, Target: req.Target, Dest: req.Dest}
	if err := action.Validate(rm.game); err != nil {
		return rm.buildNegativeResponse(err.Error())
	}
	if err := action.Execute(rm.game); err != nil {
		return rm.buildNegativeResponse(err.Error())
	}
	if req.Target != "" {
		rm.tm.SetDamagedPlayers([]string{req.Target})
	} else {
		// a plain move hit nobody; drop any queue left by an earlier shot
		rm.tm.SetDamagedPlayers(nil)
	}

	if len(rm.tm.GrenadePossibleUsers) > 0 {
		rm.gm.changeState(StateGrenadeUsage)
		rm.tm.MarkedByGrenade = owner.Username
		rm.tm.MarkingBot = true
		rm.tm.GiveTurn(rm.tm.GrenadePossibleUsers[0])
		rm.tm.ResetCount()
		rm.tm.ArrivingState = gameState
		return rm.buildGrenadePositiveResponse("bot action used, a damaged player may answer with a grenade")
	}

	rm.afterBotActionHandler(gameState)
	return rm.buildPositiveResponse("bot action used")
}

// afterBotActionHandler resumes the round at the state interrupted by the
// bot action.
func (rm *RoundManager) afterBotActionHandler(gameState PossibleGameState) {
	switch gameState {
	case StateGameStarted, StateFinalFrenzy, StateSecondAction:
		rm.gm.changeState(gameState)
		rm.tm.Owner().Actions.Remove(model.ActionBot)
	case StateMissingBotAction:
		if rm.game.State == model.GameNormal {
			rm.setReloadAction()
			rm.gm.changeState(StateActionsDone)
		} else {
			rm.gm.changeState(StateFrenzyActionsDone)
		}
	default:
		panic(fmt.Sprintf("bot action cannot resume state %s", gameState))
	}
}

// handleGrenadeUsage resolves one damaged player's grenade window: every
// listed grenade marks whoever damaged them, then the window moves to the
// next player in the queue or the turn returns to the real owner. Marks are
// rolled back in full when any grenade in the batch is invalid.
func (rm *RoundManager) handleGrenadeUsage(req PowerupRequest) Response {
	user := rm.tm.Owner()
	if len(req.Powerups) > len(user.Powerups) {
		return rm.buildNegativeResponse("too many powerups")
	}

	oldMarks := rm.snapshotMarks()
	seen := map[int]bool{}
	for _, index := range req.Powerups {
		if seen[index] {
			rm.restoreMarks(oldMarks)
			return rm.buildNegativeResponse("invalid powerup index")
		}
		seen[index] = true
		if resp, ok := rm.useGrenade(user, index); !ok {
			rm.restoreMarks(oldMarks)
			return resp
		}
	}
	rm.discardPowerups(user, req.Powerups)

	rm.tm.IncreaseCount()
	if rm.tm.SubCounter > len(rm.tm.GrenadePossibleUsers)-1 {
		rm.tm.GiveTurn(rm.tm.MarkedByGrenade)
		if rm.tm.MarkingBot {
			rm.afterBotActionHandler(rm.tm.ArrivingState)
			return rm.buildPositiveResponse("grenade window closed, turn back to the owner")
		}
		rm.gm.changeState(rm.handleAfterActionState(rm.tm.SecondAction))
		return rm.buildPositiveResponse("grenade window closed, turn back to the owner")
	}

	rm.tm.GiveTurn(rm.tm.GrenadePossibleUsers[rm.tm.SubCounter])
	return rm.buildGrenadePositiveResponse("grenade used, window moves to the next damaged player")
}

func (rm *RoundManager) useGrenade(user *model.UserPlayer, index int) (Response, bool) {
	if index < 0 || index >= len(user.Powerups) {
		return rm.buildNegativeResponse("invalid powerup index"), false
	}
	if user.Powerups[index].Name != model.PowerupTagbackGrenade {
		return rm.buildNegativeResponse("invalid powerup"), false
	}

	var victim *model.Figure
	if rm.tm.MarkingBot {
		victim = &rm.game.Bot.Figure
	} else if p, err := rm.game.UserPlayerByUsername(rm.tm.MarkedByGrenade); err == nil {
		victim = &p.Figure
	}

	grenade := &actions.GrenadeAction{User: user, Victim: victim}
	if err := grenade.Validate(rm.game); err != nil {
		return rm.buildNegativeResponse(err.Error()), false
	}
	if err := grenade.Execute(rm.game); err != nil {
		return rm.buildNegativeResponse(err.Error()), false
	}
	return Response{}, true
}

// handleScopeUsage resolves the shooter's scope window right after a shot.
// An empty powerup list declines it. Scopes distribute over the targets by
// count: one each when they match, otherwise the surplus lands on the first
// target. Damages are rolled back in full when any scope is invalid.
func (rm *RoundManager) handleScopeUsage(req PowerupRequest) Response {
	shooter := rm.tm.Owner()

	if len(req.Powerups) == 0 {
		if len(rm.tm.GrenadePossibleUsers) > 0 {
			rm.openGrenadeWindow(shooter)
			return rm.buildGrenadePositiveResponse("targeting scope not used, a damaged player may answer with a grenade")
		}
		rm.gm.changeState(rm.handleAfterActionState(rm.tm.SecondAction))
		return rm.buildPositiveResponse("targeting scope not used")
	}
	if resp, ok := rm.checkScopeRequest(shooter, req); !ok {
		return resp
	}

	// scopes beyond the target count pile on the first target
	perTarget := make([]int, 0, len(req.Powerups))
	switch len(req.Powerups) - len(req.Targets) {
	case 0:
		for i := range req.Powerups {
			perTarget = append(perTarget, i)
		}
	case 1:
		if len(req.Powerups) == 3 {
			perTarget = append(perTarget, 0, 0, 1)
		} else {
			perTarget = append(perTarget, 0, 0)
		}
	case 2:
		perTarget = append(perTarget, 0, 0, 0)
	default:
		return rm.buildNegativeResponse("invalid scope distribution")
	}

	oldDamages := rm.snapshotDamages()
	payments := append([]int(nil), req.PaymentPowerups...)
	ammoColors := append([]model.Ammo(nil), req.AmmoColors...)

	for use := range req.Powerups {
		target, err := rm.game.PlayerByUsername(req.Targets[perTarget[use]])
		if err != nil {
			rm.restoreDamages(oldDamages)
			return rm.buildNegativeResponse(err.Error())
		}

		scope := &actions.ScopeAction{Shooter: shooter, Target: target, PaymentPowerup: -1}
		if len(payments) > 0 {
			scope.PaymentPowerup = payments[0]
			payments = payments[1:]
		} else {
			scope.AmmoColor = ammoColors[0]
			ammoColors = ammoColors[1:]
		}

		if err := scope.Validate(rm.game); err != nil {
			rm.restoreDamages(oldDamages)
			return rm.buildNegativeResponse(err.Error())
		}
		if err := scope.Execute(rm.game); err != nil {
			rm.restoreDamages(oldDamages)
			return rm.buildNegativeResponse(err.Error())
		}
	}

	rm.checkBotAction()
	rm.discardPowerups(shooter, append(append([]int(nil), req.Powerups...), req.PaymentPowerups...))

	// scope damage never queues new grenade holders, but a window armed by
	// the shot itself still opens once the scope is resolved
	if len(rm.tm.GrenadePossibleUsers) > 0 {
		rm.openGrenadeWindow(shooter)
		return rm.buildGrenadePositiveResponse("targeting scope used, a damaged player may answer with a grenade")
	}
	rm.gm.changeState(rm.handleAfterActionState(rm.tm.SecondAction))
	return rm.buildPositiveResponse("targeting scope used")
}

func (rm *RoundManager) checkScopeRequest(shooter *model.UserPlayer, req PowerupRequest) (Response, bool) {
	if len(req.Powerups) > len(shooter.Powerups) || len(req.Powerups) < len(req.PaymentPowerups) {
		return rm.buildNegativeResponse("invalid indexes in request"), false
	}
	seen := map[int]bool{}
	for _, index := range req.Powerups {
		if index < 0 || index >= len(shooter.Powerups) || seen[index] {
			return rm.buildNegativeResponse("invalid indexes in request"), false
		}
		seen[index] = true
		if shooter.Powerups[index].Name != model.PowerupTargetingScope {
			return rm.buildNegativeResponse("invalid indexes in request"), false
		}
	}
	for _, payment := range req.PaymentPowerups {
		if seen[payment] {
			return rm.buildNegativeResponse("invalid indexes in request"), false
		}
	}

	if len(req.Targets) == 0 || len(req.Powerups) < len(req.Targets) {
		return rm.buildNegativeResponse("invalid targets in request"), false
	}
	for _, target := range req.Targets {
		if !contains(rm.tm.DamagedPlayers, target) {
			return rm.buildNegativeResponse("invalid targets in request"), false
		}
	}

	if cubes := len(req.Powerups) - len(req.PaymentPowerups); cubes != len(req.AmmoColors) {
		return rm.buildNegativeResponse("missing ammo colors to pay"), false
	}
	return Response{}, true
}

// handlePowerupAction resolves a newton or teleporter used during the
// owner's own turn; it costs no action.
func (rm *RoundManager) handlePowerupAction(req PowerupRequest) Response {
	owner := rm.tm.Owner()
	if len(req.Powerups) != 1 {
		return rm.buildNegativeResponse("exactly one powerup expected")
	}
	index := req.Powerups[0]
	if index < 0 || index >= len(owner.Powerups) {
		return rm.buildNegativeResponse("invalid powerup index")
	}

	var action actions.Action
	switch owner.Powerups[index].Name {
	case model.PowerupNewton:
		if len(req.Targets) != 1 || req.Dest == nil {
			return rm.buildNegativeResponse("newton needs a target and a destination")
		}
		action = &actions.NewtonAction{Player: owner, Target: req.Targets[0], Dest: *req.Dest}
	case model.PowerupTeleporter:
		if req.Dest == nil {
			return rm.buildNegativeResponse("teleporter needs a destination")
		}
		action = &actions.TeleporterAction{Player: owner, Dest: *req.Dest}
	default:
		return rm.buildNegativeResponse("invalid powerup")
	}

	if err := action.Validate(rm.game); err != nil {
		return rm.buildNegativeResponse(err.Error())
	}
	if err := action.Execute(rm.game); err != nil {
		return rm.buildNegativeResponse(err.Error())
	}

	card, _ := owner.DiscardPowerup(index)
	rm.game.PowerupDeck.Discard(card)
	return rm.buildPositiveResponse("powerup used")
}

func (rm *RoundManager) handleMoveAction(req MoveRequest, secondAction bool) Response {
	owner := rm.tm.Owner()
	kind, ok := actions.MoveKind(owner)
	if !ok {
		return rm.buildNegativeResponse("player cannot move now")
	}

	move := &actions.MoveAction{Player: owner, Target: req.Target, Kind: kind}
	if err := move.Validate(rm.game); err != nil {
		return rm.buildNegativeResponse(err.Error())
	}
	if err := move.Execute(rm.game); err != nil {
		return rm.buildNegativeResponse(err.Error())
	}

	rm.gm.changeState(rm.handleAfterActionState(secondAction))
	return rm.buildPositiveResponse("move action done")
}

func (rm *RoundManager) handlePickAction(req MovePickRequest, secondAction bool) Response {
	owner := rm.tm.Owner()
	kind, ok := actions.PickKind(owner)
	if !ok {
		return rm.buildNegativeResponse("player cannot pick now")
	}

	pick := &actions.PickAction{
		Player:          owner,
		Kind:            kind,
		Target:          req.Target,
		WeaponIndex:     indexOrDefault(req.WeaponIndex),
		DiscardWeapon:   indexOrDefault(req.DiscardWeapon),
		PaymentPowerups: req.PaymentPowerups,
		Rng:             rm.rng,
	}
	if err := pick.Validate(rm.game); err != nil {
		return rm.buildNegativeResponse(err.Error())
	}
	if err := pick.Execute(rm.game); err != nil {
		return rm.buildNegativeResponse(err.Error())
	}

	rm.gm.changeState(rm.handleAfterActionState(secondAction))
	return rm.buildPositiveResponse("pick action done")
}

// handleShootAction fires, diffs the boards to learn who was really hit and
// opens the scope window for the shooter, or the grenade window for the
// victims, before the round resumes.
func (rm *RoundManager) handleShootAction(req ShootRequest, secondAction bool) Response {
	owner := rm.tm.Owner()
	kind, ok := actions.ShootKind(owner)
	if !ok {
		return rm.buildNegativeResponse("player cannot shoot now")
	}

	shoot := &actions.ShootAction{Shooter: owner, Kind: kind, Request: req.ShootRequest}
	if err := shoot.Validate(rm.game); err != nil {
		return rm.buildNegativeResponse(err.Error())
	}

	before := rm.game.PlayersDamage()
	if err := shoot.Execute(rm.game); err != nil {
		return rm.buildNegativeResponse(err.Error())
	}
	rm.tm.SetDamagedPlayers(rm.damagedSince(before))

	rm.checkBotAction()

	if owner.HasPowerup(model.PowerupTargetingScope) {
		rm.tm.SecondAction = secondAction
		rm.gm.changeState(StateScopeUsage)
		return rm.buildScopePositiveResponse()
	}
	if len(rm.tm.GrenadePossibleUsers) > 0 {
		rm.tm.SecondAction = secondAction
		rm.openGrenadeWindow(owner)
		return rm.buildGrenadePositiveResponse("shoot action done, a damaged player may answer with a grenade")
	}

	rm.gm.changeState(rm.handleAfterActionState(secondAction))
	return rm.buildPositiveResponse("shoot action done")
}

// openGrenadeWindow hands the sub-turn to the first queued grenade holder.
func (rm *RoundManager) openGrenadeWindow(shooter *model.UserPlayer) {
	rm.gm.changeState(StateGrenadeUsage)
	rm.tm.MarkedByGrenade = shooter.Username
	rm.tm.MarkingBot = false
	rm.tm.GiveTurn(rm.tm.GrenadePossibleUsers[0])
	rm.tm.ResetCount()
}

// damagedSince lists the usernames whose damage count grew, bot included.
func (rm *RoundManager) damagedSince(before []int) []string {
	var damaged []string
	for i, p := range rm.game.Players {
		if p.Board.DamageCount() > before[i] {
			damaged = append(damaged, p.Username)
		}
	}
	if rm.game.BotPresent && rm.game.Bot.Board.DamageCount() > before[len(rm.game.Players)] {
		damaged = append(damaged, model.BotName)
	}
	return damaged
}

func (rm *RoundManager) handleReloadAction(req ReloadRequest) Response {
	owner := rm.tm.Owner()
	if !owner.Actions.Has(model.ActionReload) {
		return rm.buildNegativeResponse("invalid action")
	}
	if len(req.Weapons) > len(owner.Weapons) {
		return rm.buildNegativeResponse("too many weapons")
	}

	reload := &actions.ReloadAction{Player: owner, Weapons: req.Weapons, PaymentPowerups: req.PaymentPowerups}
	if err := reload.Validate(rm.game); err != nil {
		return rm.buildNegativeResponse(err.Error())
	}
	if err := reload.Execute(rm.game); err != nil {
		return rm.buildNegativeResponse(err.Error())
	}

	// reloading always ends the round
	return rm.deathPlayersHandler(StateReloadPass)
}

// handlePassAction ends the owner's round. In the frenzy the terminal
// player's pass ends the whole game.
func (rm *RoundManager) handlePassAction() Response {
	switch rm.game.State {
	case model.GameNormal:
		return rm.deathPlayersHandler(StatePassNormalTurn)
	case model.GameFinalFrenzy:
		if rm.tm.Owner().Username == rm.tm.LastPlayer {
			rm.gm.endGame()
			return Response{Reason: "turn passed and game has ended", Status: StatusOK}
		}
		return rm.deathPlayersHandler(StatePassFrenzyTurn)
	}
	panic(fmt.Sprintf("pass in unexpected game state %s", rm.game.State))
}

// deathPlayersHandler runs between every round: a dead bot must respawn
// first, then each dead player gets a respawn sub-turn with a drawn card,
// and only then the turn really passes.
func (rm *RoundManager) deathPlayersHandler(nextPassState PossibleGameState) Response {
	dead := rm.game.DeadPlayers()

	if rm.game.BotIsDead() {
		if len(dead) > 0 {
			rm.tm.RingOwner().AddPoints(1)
		}
		rm.tm.SetFrenzyActivator()
		rm.game.Bot.Position = nil
		rm.game.Bot.State = model.PlayerDead
		rm.tm.ArrivingState = nextPassState
		rm.gm.changeState(StateBotRespawn)
		return rm.buildPositiveResponse("bot has died, respawn it before passing")
	}

	if len(dead) > 0 {
		// two kills in one action pay a bonus point
		if len(dead) > 1 {
			rm.tm.RingOwner().AddPoints(1)
		}
		rm.tm.SetFrenzyActivator()
		rm.queueDeadPlayers(dead)
		rm.tm.ArrivingState = nextPassState
		return rm.buildPositiveResponse("turn passed, dead players respawn first")
	}

	return rm.handleNextTurn(nextPassState)
}

func (rm *RoundManager) queueDeadPlayers(dead []*model.UserPlayer) {
	rm.tm.DeathPlayers = rm.tm.DeathPlayers[:0]
	for _, p := range dead {
		p.State = model.PlayerDead
		rm.tm.DeathPlayers = append(rm.tm.DeathPlayers, p.Username)
	}
	rm.gm.changeState(StateManageDeaths)
	rm.tm.GiveTurn(dead[0].Username)
	card := rm.game.DrawPowerup(rm.rng)
	dead[0].SpawningCard = &card
	rm.tm.ResetCount()
}

// handleBotRespawn settles the bot's death and puts it back on the map, then
// queues any dead players before the turn passes.
func (rm *RoundManager) handleBotRespawn(req BotSpawnRequest) Response {
	spawn := &actions.BotSpawnAction{Color: req.Color}
	if err := spawn.Validate(rm.game); err != nil {
		return rm.buildNegativeResponse(err.Error())
	}

	scoreDeath(rm.game, &rm.game.Bot.Figure)
	rm.game.Bot.Board.Reset()
	if err := spawn.Execute(rm.game); err != nil {
		return rm.buildNegativeResponse(err.Error())
	}

	if dead := rm.game.DeadPlayers(); len(dead) > 0 {
		rm.queueDeadPlayers(dead)
		return rm.buildPositiveResponse("bot respawned, dead players respawn next")
	}

	if rm.game.RemainingSkulls() == 0 && rm.game.State == model.GameNormal {
		rm.activateFrenzy()
		return rm.handleNextTurn(StatePassFrenzyTurn)
	}
	return rm.handleNextTurn(StatePassNormalBotTurn)
}

// handlePlayerRespawn settles one queued death: the board is scored and
// reset, then the player respawns on the room of the discarded powerup.
// Index 3 addresses the card drawn for the respawn.
func (rm *RoundManager) handlePlayerRespawn(req DiscardPowerupRequest) Response {
	owner := rm.tm.Owner()

	if req.Powerup < 0 || req.Powerup > 3 {
		return rm.buildNegativeResponse("invalid powerup index")
	}
	if req.Powerup != 3 && req.Powerup >= len(owner.Powerups) {
		return rm.buildNegativeResponse("invalid powerup index")
	}
	if owner.SpawningCard == nil {
		return rm.buildNegativeResponse("player is not respawning")
	}

	var spawnCard model.PowerupCard
	if req.Powerup == 3 {
		spawnCard = *owner.SpawningCard
	} else {
		spawnCard = owner.Powerups[req.Powerup]
	}

	spawn := &actions.SpawnAction{Player: owner, Color: model.AmmoToRoom(spawnCard.Color)}
	if err := spawn.Validate(rm.game); err != nil {
		return rm.buildNegativeResponse(err.Error())
	}

	scoreDeath(rm.game, &owner.Figure)
	owner.Board.Reset()

	if req.Powerup == 3 {
		rm.game.PowerupDeck.Discard(spawnCard)
	} else {
		card, _ := owner.DiscardPowerup(req.Powerup)
		rm.game.PowerupDeck.Discard(card)
		// the drawn card takes the discarded one's place in the hand
		if err := owner.AddPowerup(*owner.SpawningCard); err != nil {
			rm.game.PowerupDeck.Discard(*owner.SpawningCard)
		}
	}
	owner.SpawningCard = nil

	if err := spawn.Execute(rm.game); err != nil {
		return rm.buildNegativeResponse(err.Error())
	}
	rm.setInitialActions()

	rm.tm.IncreaseCount()
	if rm.tm.SubCounter > len(rm.tm.DeathPlayers)-1 {
		rm.tm.GiveTurn(rm.tm.RingOwner().Username)
		if rm.game.RemainingSkulls() == 0 && rm.game.State == model.GameNormal {
			rm.activateFrenzy()
			return rm.handleNextTurn(StatePassFrenzyTurn)
		}
		return rm.handleNextTurn(StatePassNormalTurn)
	}

	next, err := rm.game.UserPlayerByUsername(rm.tm.DeathPlayers[rm.tm.SubCounter])
	if err != nil {
		return rm.buildNegativeResponse(err.Error())
	}
	rm.tm.GiveTurn(next.Username)
	card := rm.game.DrawPowerup(rm.rng)
	next.SpawningCard = &card
	return rm.buildPositiveResponse("player respawned")
}

// activateFrenzy arms the final frenzy: boards flip, action sets change and
// the frenzy activator becomes the terminal player of the game.
func (rm *RoundManager) activateFrenzy() {
	rm.game.State = model.GameFinalFrenzy
	rm.tm.SetFrenzyPlayers()
	rm.tm.SetLastPlayer()
}

// handleAfterActionState is the single place deciding where the round goes
// after a main action: the second action, the pending bot action, or the
// reload window before the pass.
func (rm *RoundManager) handleAfterActionState(secondAction bool) PossibleGameState {
	if !secondAction {
		return StateSecondAction
	}
	if rm.tm.Owner().Actions.Has(model.ActionBot) {
		return StateMissingBotAction
	}
	if rm.game.State == model.GameNormal {
		rm.setReloadAction()
		return StateActionsDone
	}
	return StateFrenzyActionsDone
}

// handleNextTurn advances the ring past disconnected players, deals the
// first-round powerups, reseeds the map and lands the state machine on the
// next resting state.
func (rm *RoundManager) handleNextTurn(arrivingState PossibleGameState) Response {
	for {
		rm.tm.NextTurn()

		if rm.tm.FirstTurn && rm.tm.EndOfRound() {
			rm.tm.FirstTurn = false
			rm.pickTwoPowerups()
		}
		if rm.tm.FirstTurn {
			rm.pickTwoPowerups()
		}

		if rm.tm.Owner().State != model.PlayerDisconnected {
			break
		}
	}

	rm.setInitialActions()
	rm.game.RefillMap(rm.rng)

	switch arrivingState {
	case StatePassNormalTurn:
		rm.gm.changeState(StateGameStarted)
		return rm.buildPositiveResponse("turn passed")
	case StateReloadPass:
		rm.gm.changeState(StateGameStarted)
		return rm.buildPositiveResponse("reload action done and turn passed")
	case StatePassFrenzyTurn:
		rm.gm.changeState(StateFinalFrenzy)
		rm.gm.save()
		return Response{Reason: "turn passed, final frenzy", Status: StatusOK}
	case StatePassNormalBotTurn:
		rm.gm.changeState(StateGameStarted)
		rm.gm.save()
		return Response{Reason: "turn passed after bot respawn", Status: StatusOK}
	}
	panic(fmt.Sprintf("cannot pass the turn from state %s", arrivingState))
}

// checkBotAction strips the pending bot action when the bot just died; a
// dead bot cannot be moved until it respawns.
func (rm *RoundManager) checkBotAction() {
	if rm.game.BotIsDead() {
		rm.tm.Owner().Actions.Remove(model.ActionBot)
	}
}

// discardPowerups discards hand cards back-to-front so the indexes in the
// request stay valid while removing.
func (rm *RoundManager) discardPowerups(p *model.UserPlayer, indexes []int) {
	sorted := append([]int(nil), indexes...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))
	for _, index := range sorted {
		if card, err := p.DiscardPowerup(index); err == nil {
			rm.game.PowerupDeck.Discard(card)
		}
	}
}

func (rm *RoundManager) snapshotMarks() [][]string {
	var marks [][]string
	for _, p := range rm.game.Players {
		marks = append(marks, append([]string(nil), p.Board.Marks...))
	}
	if rm.game.BotPresent {
		marks = append(marks, append([]string(nil), rm.game.Bot.Board.Marks...))
	}
	return marks
}

func (rm *RoundManager) restoreMarks(marks [][]string) {
	for i, p := range rm.game.Players {
		p.Board.Marks = marks[i]
	}
	if rm.game.BotPresent {
		rm.game.Bot.Board.Marks = marks[len(rm.game.Players)]
	}
}

func (rm *RoundManager) snapshotDamages() [][]string {
	var damages [][]string
	for _, p := range rm.game.Players {
		damages = append(damages, append([]string(nil), p.Board.Damages...))
	}
	if rm.game.BotPresent {
		damages = append(damages, append([]string(nil), rm.game.Bot.Board.Damages...))
	}
	return damages
}

func (rm *RoundManager) restoreDamages(damages [][]string) {
	for i, p := range rm.game.Players {
		p.Board.Damages = damages[i]
	}
	if rm.game.BotPresent {
		rm.game.Bot.Board.Damages = damages[len(rm.game.Players)]
	}
}

// buildPositiveResponse pushes the fresh game state to every player and
// snapshots it before answering OK.
func (rm *RoundManager) buildPositiveResponse(reason string) Response {
	rm.gm.sendPrivateUpdates()
	rm.gm.save()
	return Response{Reason: reason, Status: StatusOK}
}

// buildGrenadePositiveResponse is the variant used when the turn moves to a
// possible grenade user, whose client needs the dedicated prompt.
func (rm *RoundManager) buildGrenadePositiveResponse(reason string) Response {
	rm.gm.sendGrenadePrivateUpdates()
	rm.gm.save()
	return Response{Reason: reason, Status: StatusOK}
}

func (rm *RoundManager) buildScopePositiveResponse() Response {
	rm.gm.sendPrivateUpdates()
	rm.gm.save()
	return Response{Reason: "shoot action done, the shooter may use a scope", Status: StatusNeedPlayerAction}
}

func (rm *RoundManager) buildNegativeResponse(reason string) Response {
	return Response{Reason: reason, Status: StatusError}
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func indexOrDefault(index *int) int {
	if index == nil {
		return -1
	}
	return *index
}
