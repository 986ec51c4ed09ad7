package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/mkjeldsen/matchchain/internal/platform/logging"
	"github.com/mkjeldsen/matchchain/internal/usecase"
)

type Handler struct {
	analysisService *usecase.AnalysisService
	logger          *logging.Logger
	validator       *validator.Validate
}

func NewHandler(analysisService *usecase.AnalysisService, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		analysisService: analysisService,
		logger:          logger,
		validator:       validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// AnalyzeMatch runs the pipeline over one match's documents. With store=true
// the result is also persisted and becomes retrievable by match id.
func (h *Handler) AnalyzeMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AnalyzeMatch")
	defer span.End()

	var payload analyzeMatchRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	if err := decoder.Decode(&payload); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid request body: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, payload); err != nil {
		writeError(ctx, w, err)
		return
	}

	docs := usecase.DocumentSet{
		MatchID:         strings.TrimSpace(payload.MatchID),
		EventsPath:      strings.TrimSpace(payload.EventsPath),
		RosterPath:      strings.TrimSpace(payload.RosterPath),
		AnnotationsPath: strings.TrimSpace(payload.AnnotationsPath),
	}

	analyze := h.analysisService.Analyze
	if payload.Store {
		analyze = h.analysisService.AnalyzeAndStore
	}
	match, err := analyze(ctx, docs)
	if err != nil {
		h.logger.WarnContext(ctx, "analyze match failed", "match_id", docs.MatchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(ctx, match))
}

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	ids, err := h.analysisService.ListMatchIDs(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list matches failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchSummaryDTO, 0, len(ids))
	for _, id := range ids {
		match, err := h.analysisService.Get(ctx, id)
		if err != nil {
			h.logger.WarnContext(ctx, "load match summary failed", "match_id", id, "error", err)
			continue
		}
		items = append(items, matchToSummaryDTO(ctx, match))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	matchID := r.PathValue("matchID")
	match, err := h.analysisService.Get(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(ctx, match))
}

// ListThrowIns supports the delay-report filters: exclude_outliers drops
// rows above the outlier threshold, retention narrows to retained or lost
// possessions.
func (h *Handler) ListThrowIns(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListThrowIns")
	defer span.End()

	matchID := r.PathValue("matchID")
	match, err := h.analysisService.Get(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	excludeOutliers := queryFlag(r, "exclude_outliers")
	retention := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("retention")))
	if retention != "" && retention != "retained" && retention != "lost" {
		writeError(ctx, w, fmt.Errorf("%w: retention must be retained or lost", usecase.ErrInvalidInput))
		return
	}

	items := make([]throwInDTO, 0, len(match.ThrowIns))
	for _, ti := range match.ThrowIns {
		if excludeOutliers && ti.IsOutlier {
			continue
		}
		if retention == "retained" && !ti.BallRetention {
			continue
		}
		if retention == "lost" && ti.BallRetention {
			continue
		}
		items = append(items, throwInToDTO(ctx, ti))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListShots(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListShots")
	defer span.End()

	matchID := r.PathValue("matchID")
	match, err := h.analysisService.Get(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]shotDTO, 0, len(match.Shots))
	for _, s := range match.Shots {
		items = append(items, shotToDTO(ctx, s))
	}

	writeSuccess(ctx, w, http.StatusOK, struct {
		Shots  []shotDTO   `json:"shots"`
		TeamXG []teamXGDTO `json:"teamXg"`
	}{
		Shots:  items,
		TeamXG: matchToDTO(ctx, match).TeamXG,
	})
}

func (h *Handler) ListXGChain(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListXGChain")
	defer span.End()

	matchID := r.PathValue("matchID")
	match, err := h.analysisService.Get(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerChainDTO, 0, len(match.PlayerChains))
	for _, p := range match.PlayerChains {
		items = append(items, playerChainToDTO(ctx, p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func queryFlag(r *http.Request, name string) bool {
	switch strings.ToLower(strings.TrimSpace(r.URL.Query().Get(name))) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}
