package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/matryer/way"

	"svw.info/dotlink/internal/domain"
	"svw.info/dotlink/internal/ports"
	"svw.info/dotlink/internal/usecase"
)

type Handler struct {
	UC *usecase.Service
}

func New(uc *usecase.Service) *Handler { return &Handler{UC: uc} }

// Register wires the JSON API onto the router.
func (h *Handler) Register(router *way.Router) {
	router.HandleFunc("POST", "/api/generate", h.handleGenerate)
	router.HandleFunc("POST", "/api/solve", h.handleSolve)
	router.HandleFunc("POST", "/api/unique", h.handleUnique)
	router.HandleFunc("POST", "/api/validate", h.handleValidate)
	router.HandleFunc("POST", "/api/hint", h.handleHint)
	router.HandleFunc("POST", "/api/guard", h.handleGuard)
	router.HandleFunc("POST", "/api/save", h.handleSave)
	router.HandleFunc("POST", "/api/load", h.handleLoad)
	router.HandleFunc("GET", "/api/list", h.handleList)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// boardReq is the wire form of a board snapshot next to its level.
type boardReq struct {
	Level domain.Level       `json:"level"`
	Cells [][]domain.ColorID `json:"cells"`
}

func (r *boardReq) board() (*domain.Board, error) {
	if err := r.Level.Validate(); err != nil {
		return nil, err
	}
	if r.Cells == nil {
		return domain.NewBoard(&r.Level), nil
	}
	return domain.BoardFromCells(&r.Level, r.Cells)
}

// ---- Generate ----

type generateReq struct {
	Rows   int   `json:"rows"`
	Cols   int   `json:"cols"`
	Pairs  int   `json:"pairs"`
	Unique bool  `json:"unique,omitempty"`
	Seed   int64 `json:"seed,omitempty"`
}

type generateResp struct {
	Puzzle     *domain.Puzzle `json:"puzzle,omitempty"`
	Seed       int64          `json:"seed,omitempty"`
	DurationMs int64          `json:"durationMs,omitempty"`
	Nodes      int            `json:"nodes,omitempty"`
	Error      string         `json:"error,omitempty"`
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, generateResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	spec := ports.LevelSpec{Rows: req.Rows, Cols: req.Cols, Pairs: req.Pairs, RequireUnique: req.Unique}
	p, st, err := h.UC.Generate(r.Context(), seed, spec)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, usecase.ErrGenerationBusy) {
			status = http.StatusConflict
		}
		writeJSON(w, status, generateResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, generateResp{
		Puzzle:     p,
		Seed:       seed,
		DurationMs: st.Duration.Milliseconds(),
		Nodes:      st.Nodes,
	})
}

// ---- Solve ----

type solveReq struct {
	Level domain.Level `json:"level"`
}

type solveResp struct {
	Solvable   bool            `json:"solvable"`
	Solution   domain.Solution `json:"solution,omitempty"`
	DurationMs int64           `json:"durationMs,omitempty"`
	Nodes      int             `json:"nodes,omitempty"`
	Error      string          `json:"error,omitempty"`
}

func (h *Handler) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req solveReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, solveResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	if err := req.Level.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, solveResp{Error: err.Error()})
		return
	}
	sol, st, err := h.UC.Solve(r.Context(), &req.Level)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, solveResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, solveResp{
		Solvable:   sol != nil,
		Solution:   sol,
		DurationMs: st.Duration.Milliseconds(),
		Nodes:      st.Nodes,
	})
}

// ---- Unique ----

type uniqueResp struct {
	Unique     bool   `json:"unique"`
	DurationMs int64  `json:"durationMs,omitempty"`
	Nodes      int    `json:"nodes,omitempty"`
	Error      string `json:"error,omitempty"`
}

func (h *Handler) handleUnique(w http.ResponseWriter, r *http.Request) {
	var req solveReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, uniqueResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	if err := req.Level.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, uniqueResp{Error: err.Error()})
		return
	}
	ok, st, err := h.UC.Unique(r.Context(), &req.Level)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, uniqueResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, uniqueResp{Unique: ok, DurationMs: st.Duration.Milliseconds(), Nodes: st.Nodes})
}

// ---- Validate ----

type validateReq struct {
	boardReq
	Color domain.ColorID `json:"color"`
	Path  domain.Path    `json:"path"`
}

type validateResp struct {
	OK        bool           `json:"ok"`
	Conflicts []domain.Point `json:"conflicts,omitempty"`
	Error     string         `json:"error,omitempty"`
}

func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, validateResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	b, err := req.board()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, validateResp{Error: err.Error()})
		return
	}
	ok, conflicts, err := h.UC.ValidatePath(r.Context(), &req.Level, b, req.Color, req.Path)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, validateResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, validateResp{OK: ok, Conflicts: conflicts})
}

// ---- Hint ----

type hintResp struct {
	Found bool        `json:"found"`
	Hint  domain.Hint `json:"hint,omitempty"`
	Error string      `json:"error,omitempty"`
}

func (h *Handler) handleHint(w http.ResponseWriter, r *http.Request) {
	var req boardReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, hintResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	b, err := req.board()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, hintResp{Error: err.Error()})
		return
	}
	hint, found, err := h.UC.Hint(r.Context(), &req.Level, b)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, hintResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, hintResp{Found: found, Hint: hint})
}

// ---- Guard ----

type guardReq struct {
	boardReq
	Committed domain.ColorID `json:"committed"`
}

type guardResp struct {
	Solvable bool   `json:"solvable"`
	Error    string `json:"error,omitempty"`
}

func (h *Handler) handleGuard(w http.ResponseWriter, r *http.Request) {
	var req guardReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, guardResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	b, err := req.board()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, guardResp{Error: err.Error()})
		return
	}
	ok, err := h.UC.StillSolvable(r.Context(), &req.Level, b, req.Committed)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, guardResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, guardResp{Solvable: ok})
}

// ---- Save / Load / List ----

type saveResp struct {
	ID    string `json:"id,omitempty"`
	Error string `json:"error,omitempty"`
}

func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	var p domain.Puzzle
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeJSON(w, http.StatusBadRequest, saveResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	if err := p.Level.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, saveResp{Error: err.Error()})
		return
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt == 0 {
		p.CreatedAt = time.Now().UnixNano()
	}
	if err := h.UC.Save(r.Context(), &p); err != nil {
		writeJSON(w, http.StatusInternalServerError, saveResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, saveResp{ID: p.ID})
}

type loadReq struct {
	ID string `json:"id"`
}

type loadResp struct {
	Puzzle *domain.Puzzle `json:"puzzle,omitempty"`
	Error  string         `json:"error,omitempty"`
}

func (h *Handler) handleLoad(w http.ResponseWriter, r *http.Request) {
	var req loadReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		writeJSON(w, http.StatusBadRequest, loadResp{Error: "invalid JSON or missing id"})
		return
	}
	p, err := h.UC.Load(r.Context(), req.ID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, loadResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, loadResp{Puzzle: p})
}

type listResp struct {
	Puzzles []domain.PuzzleMeta `json:"puzzles"`
	Error   string              `json:"error,omitempty"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ps, err := h.UC.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, listResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, listResp{Puzzles: ps})
}
