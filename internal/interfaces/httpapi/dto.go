package httpapi

import (
	"context"

	"github.com/mkjeldsen/matchchain/internal/domain/analysis"
)

type analyzeMatchRequest struct {
	MatchID         string `json:"matchId"`
	EventsPath      string `json:"eventsPath" validate:"required"`
	RosterPath      string `json:"rosterPath"`
	AnnotationsPath string `json:"annotationsPath"`
	Store           bool   `json:"store"`
}

type matchSummaryDTO struct {
	MatchID    string `json:"matchId"`
	GameDate   string `json:"gameDate,omitempty"`
	ChainCount int    `json:"chainCount"`
	ThrowIns   int    `json:"throwIns"`
	Shots      int    `json:"shots"`
}

type matchDTO struct {
	MatchID      string           `json:"matchId"`
	GameDate     string           `json:"gameDate,omitempty"`
	ChainCount   int              `json:"chainCount"`
	ThrowIns     []throwInDTO     `json:"throwIns"`
	Shots        []shotDTO        `json:"shots"`
	PlayerChains []playerChainDTO `json:"playerChains"`
	TeamXG       []teamXGDTO      `json:"teamXg"`
}

type throwInDTO struct {
	EventID       string        `json:"eventId,omitempty"`
	PeriodID      int           `json:"periodId"`
	BallOutClock  string        `json:"ballOutClock"`
	Clock         string        `json:"clock"`
	DelayS        float64       `json:"delayS"`
	TeamID        string        `json:"teamId"`
	TeamName      string        `json:"teamName"`
	TeamSide      string        `json:"teamSide,omitempty"`
	X             *float64      `json:"x,omitempty"`
	Y             *float64      `json:"y,omitempty"`
	EndX          *float64      `json:"endX,omitempty"`
	EndY          *float64      `json:"endY,omitempty"`
	Zone          string        `json:"zone,omitempty"`
	EndZone       string        `json:"endZone,omitempty"`
	IntoBox       bool          `json:"intoBox"`
	DistanceM     *float64      `json:"distanceM,omitempty"`
	TakerID       string        `json:"takerId,omitempty"`
	TakerName     string        `json:"takerName,omitempty"`
	IsOutlier     bool          `json:"isOutlier"`
	Sequence      *sequenceDTO  `json:"sequence,omitempty"`
	BallRetention bool          `json:"ballRetention"`
	ShotInWindow  bool          `json:"shotInWindow"`
	GoalInWindow  bool          `json:"goalInWindow"`
	ShotDelayS    *float64      `json:"shotDelayS,omitempty"`
	ShotX         *float64      `json:"shotX,omitempty"`
	ShotY         *float64      `json:"shotY,omitempty"`
	ShotEventID   string        `json:"shotEventId,omitempty"`
	ShotXG        *float64      `json:"shotXg,omitempty"`
}

type sequenceDTO struct {
	Events       int      `json:"events"`
	Passes       int      `json:"passes"`
	DurationS    int      `json:"durationS"`
	EndsWithShot bool     `json:"endsWithShot"`
	LastX        *float64 `json:"lastX,omitempty"`
	LastY        *float64 `json:"lastY,omitempty"`
	LastType     string   `json:"lastType"`
}

type shotDTO struct {
	EventID    string  `json:"eventId"`
	TeamID     string  `json:"teamId"`
	TeamName   string  `json:"teamName"`
	PlayerID   string  `json:"playerId"`
	PlayerName string  `json:"playerName"`
	Minute     int     `json:"minute"`
	Second     int     `json:"second"`
	PeriodID   int     `json:"periodId"`
	IsGoal     bool    `json:"isGoal"`
	XG         float64 `json:"xg"`
	Phase      string  `json:"phase"`
}

type playerChainDTO struct {
	TeamName           string  `json:"teamName"`
	PlayerName         string  `json:"playerName"`
	Contribs           int     `json:"contribs"`
	XGChain            float64 `json:"xgChain"`
	AllChainContribs   int     `json:"allChainContribs"`
	XGPerChainWithShot float64 `json:"xgPerChainWithShot"`
	XGPerAllChains     float64 `json:"xgPerAllChains"`
}

type teamXGDTO struct {
	TeamName string  `json:"teamName"`
	Shots    int     `json:"shots"`
	XG       float64 `json:"xg"`
}

func matchToSummaryDTO(ctx context.Context, m analysis.Match) matchSummaryDTO {
	_ = ctx
	return matchSummaryDTO{
		MatchID:    m.MatchID,
		GameDate:   m.GameDate,
		ChainCount: m.ChainCount,
		ThrowIns:   len(m.ThrowIns),
		Shots:      len(m.Shots),
	}
}

func matchToDTO(ctx context.Context, m analysis.Match) matchDTO {
	out := matchDTO{
		MatchID:      m.MatchID,
		GameDate:     m.GameDate,
		ChainCount:   m.ChainCount,
		ThrowIns:     make([]throwInDTO, 0, len(m.ThrowIns)),
		Shots:        make([]shotDTO, 0, len(m.Shots)),
		PlayerChains: make([]playerChainDTO, 0, len(m.PlayerChains)),
		TeamXG:       make([]teamXGDTO, 0, len(m.TeamXG)),
	}
	for _, ti := range m.ThrowIns {
		out.ThrowIns = append(out.ThrowIns, throwInToDTO(ctx, ti))
	}
	for _, s := range m.Shots {
		out.Shots = append(out.Shots, shotToDTO(ctx, s))
	}
	for _, p := range m.PlayerChains {
		out.PlayerChains = append(out.PlayerChains, playerChainToDTO(ctx, p))
	}
	for _, t := range m.TeamXG {
		out.TeamXG = append(out.TeamXG, teamXGDTO{TeamName: t.TeamName, Shots: t.Shots, XG: t.XG})
	}
	return out
}

func throwInToDTO(ctx context.Context, ti analysis.ThrowIn) throwInDTO {
	_ = ctx
	dto := throwInDTO{
		EventID:       ti.EventID,
		PeriodID:      ti.PeriodID,
		BallOutClock:  ti.BallOutClock(),
		Clock:         ti.Clock(),
		DelayS:        ti.DelayS,
		TeamID:        ti.TeamID,
		TeamName:      ti.TeamName,
		TeamSide:      ti.TeamSide,
		X:             ti.X,
		Y:             ti.Y,
		EndX:          ti.EndX,
		EndY:          ti.EndY,
		Zone:          ti.Zone,
		EndZone:       ti.EndZone,
		IntoBox:       ti.IntoBox,
		DistanceM:     ti.DistanceM,
		TakerID:       ti.TakerID,
		TakerName:     ti.TakerName,
		IsOutlier:     ti.IsOutlier,
		BallRetention: ti.BallRetention,
		ShotInWindow:  ti.ShotInWindow,
		GoalInWindow:  ti.GoalInWindow,
		ShotDelayS:    ti.ShotDelayS,
		ShotX:         ti.ShotX,
		ShotY:         ti.ShotY,
		ShotEventID:   ti.ShotEventID,
		ShotXG:        ti.ShotXG,
	}
	if ti.Sequence != nil {
		dto.Sequence = &sequenceDTO{
			Events:       ti.Sequence.Events,
			Passes:       ti.Sequence.Passes,
			DurationS:    ti.Sequence.DurationS,
			EndsWithShot: ti.Sequence.EndsWithShot,
			LastX:        ti.Sequence.LastX,
			LastY:        ti.Sequence.LastY,
			LastType:     ti.Sequence.LastType,
		}
	}
	return dto
}

func shotToDTO(ctx context.Context, s analysis.Shot) shotDTO {
	_ = ctx
	return shotDTO{
		EventID:    s.EventID,
		TeamID:     s.TeamID,
		TeamName:   s.TeamName,
		PlayerID:   s.PlayerID,
		PlayerName: s.PlayerName,
		Minute:     s.Minute,
		Second:     s.Second,
		PeriodID:   s.PeriodID,
		IsGoal:     s.IsGoal,
		XG:         s.XG,
		Phase:      s.Phase,
	}
}

func playerChainToDTO(ctx context.Context, p analysis.PlayerChainTotal) playerChainDTO {
	_ = ctx
	return playerChainDTO{
		TeamName:           p.TeamName,
		PlayerName:         p.PlayerName,
		Contribs:           p.Contribs,
		XGChain:            p.XGChain,
		AllChainContribs:   p.AllChainContribs,
		XGPerChainWithShot: p.PerChainWithShot(),
		XGPerAllChains:     p.PerAllChains(),
	}
}
