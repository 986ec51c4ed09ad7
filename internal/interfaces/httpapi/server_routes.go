package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerMatchRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/matches/analyze", handler.AnalyzeMatch)
	mux.HandleFunc("GET /v1/matches", handler.ListMatches)
	mux.HandleFunc("GET /v1/matches/{matchID}", handler.GetMatch)
	mux.HandleFunc("GET /v1/matches/{matchID}/throwins", handler.ListThrowIns)
	mux.HandleFunc("GET /v1/matches/{matchID}/throwins/export", handler.ExportThrowInsCSV)
	mux.HandleFunc("GET /v1/matches/{matchID}/shots", handler.ListShots)
	mux.HandleFunc("GET /v1/matches/{matchID}/xgchain", handler.ListXGChain)
}
