package engine

import (
	"sort"

	"adrenaline/engine/model"
	"adrenaline/shared/logger"
)

// Payout ladder for a flipped board. Unflipped boards pay model.TrackerPoints
// offset by the skulls already on the board.
var frenzyBoardPoints = []int{2, 1, 1, 1}

func boardLadderPoints(ladder []int, index int) int {
	if index < 0 {
		index = 0
	}
	if index >= len(ladder) {
		return 1
	}
	return ladder[index]
}

// addPoints credits a dealer; bot damage ranks on boards but earns nothing.
func addPoints(g *model.Game, username string, points int) {
	if username == model.BotName {
		return
	}
	if p, err := g.UserPlayerByUsername(username); err == nil {
		p.Points += points
	}
}

// scoreBoard pays out a damaged board: first blood on an unflipped board,
// then the ladder in damage order. The board itself is left untouched.
func scoreBoard(g *model.Game, board *model.PlayerBoard) {
	if board.DamageCount() == 0 {
		return
	}

	ladder := model.TrackerPoints
	offset := board.Skulls
	if board.Flipped {
		ladder = frenzyBoardPoints
	} else {
		addPoints(g, board.FirstBlood(), 1)
	}

	for i, dealer := range board.DamageOrder() {
		addPoints(g, dealer, boardLadderPoints(ladder, offset+i))
	}
}

// scoreDeath settles a killed figure: board payout, killshot token for the
// killer and, on an overkill, a revenge mark from the victim.
func scoreDeath(g *model.Game, victim *model.Figure) {
	scoreBoard(g, victim.Board)

	killer, overkill := victim.Board.Killer()
	if killer == "" {
		return
	}

	points := 1
	if overkill {
		points = 2
		if killerFigure, err := g.PlayerByUsername(killer); err == nil {
			killerFigure.Board.AddMark(victim.Username, 1)
		}
	}
	if err := g.AddKillShot(model.KillShot{Killer: killer, Points: points}); err != nil {
		logger.Warningf("killshot track full, token for %s dropped", killer)
	}
}

type trackerScore struct {
	Username  string
	Tokens    int
	FirstKill int
}

// trackerScores ranks killers by killshot-track tokens, overkill tokens
// counting double; ties go to the earliest kill.
func trackerScores(g *model.Game) []trackerScore {
	tokens := map[string]int{}
	firstKill := map[string]int{}
	order := 0

	record := func(ks model.KillShot) {
		if _, seen := tokens[ks.Killer]; !seen {
			firstKill[ks.Killer] = order
		}
		tokens[ks.Killer] += ks.Points
		order++
	}

	for _, ks := range g.KillShotTrack {
		if ks != nil {
			record(*ks)
		}
	}
	for _, ks := range g.FrenzyKillShots {
		record(ks)
	}

	scores := make([]trackerScore, 0, len(tokens))
	for username, n := range tokens {
		scores = append(scores, trackerScore{Username: username, Tokens: n, FirstKill: firstKill[username]})
	}
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Tokens != scores[j].Tokens {
			return scores[i].Tokens > scores[j].Tokens
		}
		return scores[i].FirstKill < scores[j].FirstKill
	})
	return scores
}

// finalScores settles every still-damaged board, pays the killshot track and
// returns the winners: the players with the highest total, ties broken by
// track points, a residual tie shared.
func finalScores(g *model.Game) []string {
	for _, p := range g.Players {
		scoreBoard(g, p.Board)
	}
	if g.BotPresent {
		scoreBoard(g, g.Bot.Board)
	}

	trackPoints := map[string]int{}
	for rank, score := range trackerScores(g) {
		points := boardLadderPoints(model.TrackerPoints, rank)
		trackPoints[score.Username] = points
		addPoints(g, score.Username, points)
	}

	best := 0
	for _, p := range g.Players {
		if p.Points > best {
			best = p.Points
		}
	}

	var winners []string
	bestTrack := -1
	for _, p := range g.Players {
		if p.Points != best {
			continue
		}
		switch {
		case trackPoints[p.Username] > bestTrack:
			winners = []string{p.Username}
			bestTrack = trackPoints[p.Username]
		case trackPoints[p.Username] == bestTrack:
			winners = append(winners, p.Username)
		}
	}
	return winners
}
