package httpapi

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"github.com/valyala/bytebufferpool"

	"github.com/mkjeldsen/matchchain/internal/domain/analysis"
)

var throwInCSVHeader = []string{
	"event_id", "period", "ball_out", "throw_in", "delay_s",
	"team", "side", "zone", "end_zone", "into_box", "distance_m",
	"taker", "outlier", "seq_events", "seq_passes", "seq_duration_s",
	"seq_ends_with_shot", "ball_retention", "shot_in_window",
	"goal_in_window", "shot_xg",
}

// ExportThrowInsCSV streams the match's throw-in report as CSV. The body is
// assembled in a pooled buffer so repeated exports of large matches reuse
// allocations.
func (h *Handler) ExportThrowInsCSV(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ExportThrowInsCSV")
	defer span.End()

	matchID := r.PathValue("matchID")
	match, err := h.analysisService.Get(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := writeThrowInCSV(ctx, buf, match.ThrowIns); err != nil {
		h.logger.ErrorContext(ctx, "render throw-in csv failed", "match_id", matchID, "error", err)
		writeInternalError(ctx, w)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", matchID+"-throwins.csv"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func writeThrowInCSV(ctx context.Context, buf *bytebufferpool.ByteBuffer, throwIns []analysis.ThrowIn) error {
	_ = ctx

	cw := csv.NewWriter(buf)
	if err := cw.Write(throwInCSVHeader); err != nil {
		return err
	}

	for _, ti := range throwIns {
		row := []string{
			ti.EventID,
			strconv.Itoa(ti.PeriodID),
			ti.BallOutClock(),
			ti.Clock(),
			formatFloat(ti.DelayS),
			ti.TeamName,
			ti.TeamSide,
			ti.Zone,
			ti.EndZone,
			strconv.FormatBool(ti.IntoBox),
			formatFloatPtr(ti.DistanceM),
			ti.TakerName,
			strconv.FormatBool(ti.IsOutlier),
		}
		if ti.Sequence != nil {
			row = append(row,
				strconv.Itoa(ti.Sequence.Events),
				strconv.Itoa(ti.Sequence.Passes),
				strconv.Itoa(ti.Sequence.DurationS),
				strconv.FormatBool(ti.Sequence.EndsWithShot),
			)
		} else {
			row = append(row, "", "", "", "")
		}
		row = append(row,
			strconv.FormatBool(ti.BallRetention),
			strconv.FormatBool(ti.ShotInWindow),
			strconv.FormatBool(ti.GoalInWindow),
			formatFloatPtr(ti.ShotXG),
		)
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatFloatPtr(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}
