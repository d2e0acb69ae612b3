package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/render"
	"github.com/rs/zerolog/hlog"

	"github.com/pondlabs/ponder/internal/bench"
	"github.com/pondlabs/ponder/internal/history"
)

type handlers struct {
	solver bench.Solver
	store  *history.Store
}

type solveRequest struct {
	Question string `json:"question"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "ok"})
}

func (h *handlers) solve(w http.ResponseWriter, r *http.Request) {
	var req solveRequest
	if err := unmarshalRequestBody(r, &req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, errorResponse{Error: "unable to parse body"})
		return
	}

	question := strings.TrimSpace(req.Question)
	if question == "" {
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, errorResponse{Error: "question is required"})
		return
	}

	resp := h.solver.Solve(r.Context(), question)

	if h.store != nil {
		rec := history.NewRecord(question, resp)
		if err := h.store.Save(r.Context(), rec); err != nil {
			hlog.FromRequest(r).Error().Err(err).Msg("failed to save solve record")
		}
	}

	render.JSON(w, r, resp.ToRecord())
}

func (h *handlers) recent(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		render.JSON(w, r, errorResponse{Error: "history is not enabled"})
		return
	}

	records, err := h.store.Recent(r.Context(), queryLimit(r))
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("failed to load history")
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, errorResponse{Error: "failed to load history"})
		return
	}

	render.JSON(w, r, records)
}

func (h *handlers) search(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		render.JSON(w, r, errorResponse{Error: "history is not enabled"})
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, errorResponse{Error: "q is required"})
		return
	}

	records, err := h.store.Search(r.Context(), query, queryLimit(r))
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("history search failed")
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, errorResponse{Error: "search failed"})
		return
	}

	render.JSON(w, r, records)
}

func (h *handlers) bench(w http.ResponseWriter, r *http.Request) {
	runner := bench.NewRunner(h.solver, *hlog.FromRequest(r))
	summary, err := runner.Run(r.Context())
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("benchmark run aborted")
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, errorResponse{Error: "benchmark run aborted"})
		return
	}

	render.JSON(w, r, summary)
}

func queryLimit(r *http.Request) int {
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return 0
}

func unmarshalRequestBody(req *http.Request, output any) error {
	if req.Body == nil {
		return errors.New("invalid body in request")
	}

	body, err := io.ReadAll(req.Body)
	if err != nil {
		return err
	}
	if err = req.Body.Close(); err != nil {
		return err
	}
	return json.Unmarshal(body, output)
}
