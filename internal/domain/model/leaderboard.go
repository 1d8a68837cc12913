package model

type LeaderboardEntry struct {
	Username      string `json:"username"`
	MaxDifficulty int    `json:"max_difficulty"`
	League        string `json:"league"`
	RunsCount     int    `json:"runs_count"`
}
