package postgres

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/mkjeldsen/matchchain/internal/domain/analysis"
	qb "github.com/mkjeldsen/matchchain/internal/platform/querybuilder"
)

// AnalysisRepository persists analyzed matches. The full analytics record
// is stored as one JSON payload per match; throw-ins are additionally
// flattened into their own table so they stay queryable from SQL.
type AnalysisRepository struct {
	db *sqlx.DB
}

func NewAnalysisRepository(db *sqlx.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

func (r *AnalysisRepository) Save(ctx context.Context, match analysis.Match) error {
	payload, err := sonic.MarshalString(match)
	if err != nil {
		return fmt.Errorf("marshal match analysis payload: %w", err)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx save match analysis: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	insertModel := matchAnalysisInsertModel{
		MatchID:    match.MatchID,
		GameDate:   match.GameDate,
		ChainCount: match.ChainCount,
		ThrowIns:   len(match.ThrowIns),
		Shots:      len(match.Shots),
		Payload:    payload,
	}
	query, args, err := qb.InsertModel("match_analyses", insertModel, `ON CONFLICT (match_id) WHERE deleted_at IS NULL
DO UPDATE SET
    game_date = EXCLUDED.game_date,
    chain_count = EXCLUDED.chain_count,
    throw_in_count = EXCLUDED.throw_in_count,
    shot_count = EXCLUDED.shot_count,
    payload = EXCLUDED.payload,
    updated_at = NOW(),
    deleted_at = NULL`)
	if err != nil {
		return fmt.Errorf("build upsert match analysis query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert match analysis match=%s: %w", match.MatchID, err)
	}

	if err := r.replaceThrowIns(ctx, tx, match); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save match analysis tx: %w", err)
	}
	return nil
}

func (r *AnalysisRepository) replaceThrowIns(ctx context.Context, tx *sqlx.Tx, match analysis.Match) error {
	query, args, err := qb.Update("match_throw_ins").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("match_id", match.MatchID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build clear throw-ins query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("clear throw-ins match=%s: %w", match.MatchID, err)
	}

	for _, ti := range match.ThrowIns {
		insertModel := throwInInsertModel{
			MatchID:       match.MatchID,
			EventID:       ti.EventID,
			PeriodID:      ti.PeriodID,
			TimeS:         ti.TimeS,
			DelayS:        ti.DelayS,
			TeamID:        ti.TeamID,
			TeamName:      ti.TeamName,
			TeamSide:      ti.TeamSide,
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
		}
		query, args, err := qb.InsertModel("match_throw_ins", insertModel, "")
		if err != nil {
			return fmt.Errorf("build insert throw-in query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert throw-in match=%s event=%s: %w", match.MatchID, ti.EventID, err)
		}
	}
	return nil
}

func (r *AnalysisRepository) Get(ctx context.Context, matchID string) (analysis.Match, bool, error) {
	query, args, err := qb.Select("*").From("match_analyses").
		Where(
			qb.Eq("match_id", matchID),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return analysis.Match{}, false, fmt.Errorf("build select match analysis query: %w", err)
	}

	var row matchAnalysisTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return analysis.Match{}, false, nil
		}
		return analysis.Match{}, false, fmt.Errorf("select match analysis: %w", err)
	}

	var match analysis.Match
	if err := sonic.UnmarshalString(row.Payload, &match); err != nil {
		return analysis.Match{}, false, fmt.Errorf("unmarshal match analysis payload match=%s: %w", matchID, err)
	}
	return match, true, nil
}

func (r *AnalysisRepository) ListIDs(ctx context.Context) ([]string, error) {
	query, args, err := qb.Select("match_id").From("match_analyses").
		Where(qb.IsNull("deleted_at")).
		OrderBy("match_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list match ids query: %w", err)
	}

	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("select match ids: %w", err)
	}
	return ids, nil
}
