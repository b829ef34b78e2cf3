// Package domain holds the types shared between the HTTP layer and storage.
package domain

import "time"

type User struct {
	Id           string
	Username     string
	PasswordHash string
}

// MatchResult is one finished match as recorded for the leaderboard.
type MatchResult struct {
	Id         string
	MatchId    string
	Username   string
	Points     int
	Winner     bool
	FinishedAt time.Time
}

// LeaderboardRow aggregates a user's recorded matches.
type LeaderboardRow struct {
	Username    string
	Wins        int
	Matches     int
	TotalPoints int
}
