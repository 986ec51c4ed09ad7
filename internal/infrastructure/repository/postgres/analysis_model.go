package postgres

import "time"

type matchAnalysisTableModel struct {
	ID         int64      `db:"id"`
	MatchID    string     `db:"match_id"`
	GameDate   string     `db:"game_date"`
	ChainCount int        `db:"chain_count"`
	ThrowIns   int        `db:"throw_in_count"`
	Shots      int        `db:"shot_count"`
	Payload    string     `db:"payload"`
	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at"`
	DeletedAt  *time.Time `db:"deleted_at"`
}

type matchAnalysisInsertModel struct {
	MatchID    string `db:"match_id"`
	GameDate   string `db:"game_date"`
	ChainCount int    `db:"chain_count"`
	ThrowIns   int    `db:"throw_in_count"`
	Shots      int    `db:"shot_count"`
	Payload    string `db:"payload"`
}

type throwInInsertModel struct {
	MatchID       string   `db:"match_id"`
	EventID       string   `db:"event_id"`
	PeriodID      int      `db:"period_id"`
	TimeS         int      `db:"time_s"`
	DelayS        float64  `db:"delay_s"`
	TeamID        string   `db:"team_id"`
	TeamName      string   `db:"team_name"`
	TeamSide      string   `db:"team_side"`
	Zone          string   `db:"zone"`
	EndZone       string   `db:"end_zone"`
	IntoBox       bool     `db:"into_box"`
	DistanceM     *float64 `db:"distance_m"`
	TakerID       string   `db:"taker_id"`
	TakerName     string   `db:"taker_name"`
	IsOutlier     bool     `db:"is_outlier"`
	BallRetention bool     `db:"ball_retention"`
	ShotInWindow  bool     `db:"shot_in_window"`
	GoalInWindow  bool     `db:"goal_in_window"`
}
