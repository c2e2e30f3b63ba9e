package rest

import (
	"context"
	"embed"
	"encoding/json"
	"html/template"
	"log/slog"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/confetti"
	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
	"github.com/rocketscienceinc/tictactoe-web/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-web/internal/presenter"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pageTemplate = template.Must(template.New("game.html").
	Funcs(template.FuncMap{"rows": rows}).
	ParseFS(templatesFS, "templates/game.html"))

const boardWidth = 3

type gameUseCase interface {
	GetOrCreateGame(ctx context.Context, sessionID string) (*entity.Game, error)

	Play(ctx context.Context, sessionID string, cell int) (*entity.Game, error)
	JumpTo(ctx context.Context, sessionID string, move int) (*entity.Game, error)
	Restart(ctx context.Context, sessionID string) (*entity.Game, error)
}

type GameHandlers struct {
	logger      *slog.Logger
	gameUseCase gameUseCase

	sessionTTL    time.Duration
	confettiCount int
}

type pageData struct {
	*presenter.GameView
	Confetti []confetti.Piece
}

type apiResponse struct {
	Game  *presenter.GameView `json:"game,omitempty"`
	Error string              `json:"error,omitempty"`
}

type playRequest struct {
	Cell *int `json:"cell"`
}

type jumpRequest struct {
	Move *int `json:"move"`
}

func NewGameHandlers(logger *slog.Logger, gameUseCase gameUseCase, sessionTTL time.Duration, confettiCount int) *GameHandlers {
	return &GameHandlers{
		logger:        logger.With("component", "rest"),
		gameUseCase:   gameUseCase,
		sessionTTL:    sessionTTL,
		confettiCount: confettiCount,
	}
}

func (that *GameHandlers) RegisterHTTP(r chi.Router) {
	r.Get("/", that.handlePage)
	r.Post("/play/{cell}", that.handlePlay)
	r.Post("/jump/{move}", that.handleJump)
	r.Post("/restart", that.handleRestart)

	r.Get("/api/game", that.handleAPIGame)
	r.Delete("/api/game", that.handleAPIRestart)
	r.Post("/api/game/play", that.handleAPIPlay)
	r.Post("/api/game/jump", that.handleAPIJump)
}

func (that *GameHandlers) handlePage(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handlePage")

	sessionID, _ := pkg.SessionID(w, r, that.sessionTTL)

	game, err := that.gameUseCase.GetOrCreateGame(r.Context(), sessionID)
	if err != nil {
		log.Error("failed to get game", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	data := pageData{GameView: presenter.NewGameView(game)}
	if data.Winner != entity.EmptyCell {
		rnd := rand.New(rand.NewSource(time.Now().UnixNano())) //nolint: gosec // decoration only
		data.Confetti = confetti.Generate(rnd, that.confettiCount)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err = pageTemplate.Execute(w, data); err != nil {
		log.Error("failed to render page", "error", err)
	}
}

func (that *GameHandlers) handlePlay(w http.ResponseWriter, r *http.Request) {
	cell, err := strconv.Atoi(chi.URLParam(r, "cell"))
	if err != nil {
		http.Error(w, "invalid cell", http.StatusBadRequest)
		return
	}

	that.formAction(w, r, "handlePlay", func(ctx context.Context, sessionID string) error {
		_, err := that.gameUseCase.Play(ctx, sessionID, cell)
		return err
	})
}

func (that *GameHandlers) handleJump(w http.ResponseWriter, r *http.Request) {
	move, err := strconv.Atoi(chi.URLParam(r, "move"))
	if err != nil {
		http.Error(w, "invalid move", http.StatusBadRequest)
		return
	}

	that.formAction(w, r, "handleJump", func(ctx context.Context, sessionID string) error {
		_, err := that.gameUseCase.JumpTo(ctx, sessionID, move)
		return err
	})
}

func (that *GameHandlers) handleRestart(w http.ResponseWriter, r *http.Request) {
	that.formAction(w, r, "handleRestart", func(ctx context.Context, sessionID string) error {
		_, err := that.gameUseCase.Restart(ctx, sessionID)
		return err
	})
}

// formAction runs action and sends the browser back to the board. Rejected moves are dropped silently.
func (that *GameHandlers) formAction(w http.ResponseWriter, r *http.Request, method string, action func(ctx context.Context, sessionID string) error) {
	log := that.logger.With("method", method)

	sessionID, _ := pkg.SessionID(w, r, that.sessionTTL)

	if err := action(r.Context(), sessionID); err != nil {
		if !apperror.IsRejected(err) {
			log.Error("action failed", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		log.Debug("action rejected", "error", err)
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (that *GameHandlers) handleAPIGame(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := pkg.SessionID(w, r, that.sessionTTL)

	game, err := that.gameUseCase.GetOrCreateGame(r.Context(), sessionID)
	that.writeAPIResult(w, "handleAPIGame", game, err)
}

func (that *GameHandlers) handleAPIPlay(w http.ResponseWriter, r *http.Request) {
	var req playRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Cell == nil {
		writeJSON(w, http.StatusBadRequest, apiResponse{Error: "cell is required"})
		return
	}

	sessionID, _ := pkg.SessionID(w, r, that.sessionTTL)

	game, err := that.gameUseCase.Play(r.Context(), sessionID, *req.Cell)
	that.writeAPIResult(w, "handleAPIPlay", game, err)
}

func (that *GameHandlers) handleAPIJump(w http.ResponseWriter, r *http.Request) {
	var req jumpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Move == nil {
		writeJSON(w, http.StatusBadRequest, apiResponse{Error: "move is required"})
		return
	}

	sessionID, _ := pkg.SessionID(w, r, that.sessionTTL)

	game, err := that.gameUseCase.JumpTo(r.Context(), sessionID, *req.Move)
	that.writeAPIResult(w, "handleAPIJump", game, err)
}

func (that *GameHandlers) handleAPIRestart(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := pkg.SessionID(w, r, that.sessionTTL)

	game, err := that.gameUseCase.Restart(r.Context(), sessionID)
	that.writeAPIResult(w, "handleAPIRestart", game, err)
}

func (that *GameHandlers) writeAPIResult(w http.ResponseWriter, method string, game *entity.Game, err error) {
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, apiResponse{Game: presenter.NewGameView(game)})
	case apperror.IsRejected(err) && game != nil:
		writeJSON(w, http.StatusConflict, apiResponse{Game: presenter.NewGameView(game), Error: err.Error()})
	default:
		that.logger.Error("request failed", "method", method, "error", err)
		writeJSON(w, http.StatusInternalServerError, apiResponse{Error: "internal server error"})
	}
}

// rows splits the cells into board rows for the page.
func rows(cells []presenter.CellView) [][]presenter.CellView {
	result := make([][]presenter.CellView, 0, len(cells)/boardWidth)
	for start := 0; start < len(cells); start += boardWidth {
		result = append(result, cells[start:min(start+boardWidth, len(cells))])
	}

	return result
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
