package rest

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"voyager.com/cardtable/cards"
	"voyager.com/cardtable/hearts"
	"voyager.com/cardtable/session"
	"voyager.com/cardtable/solitaire"
)

var restLogger = log.With().Str("logger_name", "rest::rest").Logger()
var sessionManager *session.Manager

//
// APP error definition
//
type appError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type heartsResponse struct {
	SessionID string             `json:"sessionId"`
	Seats     []session.SeatInfo `json:"seats"`
	View      hearts.View        `json:"view"`
}

type solitaireResponse struct {
	SessionID string              `json:"sessionId"`
	State     solitaire.GameState `json:"state"`
}

type passRequest struct {
	PlayerID string   `json:"playerId" binding:"required"`
	Cards    []string `json:"cards" binding:"required"`
}

type playRequest struct {
	PlayerID string `json:"playerId" binding:"required"`
	Card     string `json:"card" binding:"required"`
}

type solitaireRequest struct {
	Seed int64 `json:"seed"`
}

func NewRouter(manager *session.Manager) *gin.Engine {
	sessionManager = manager
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": sessionManager.Count()})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.POST("/hearts", newHearts)
	r.GET("/hearts/:id", getHearts)
	r.POST("/hearts/:id/pass", passCards)
	r.POST("/hearts/:id/play", playCard)
	r.POST("/hearts/:id/next-round", nextRound)
	r.DELETE("/hearts/:id", closeSession)
	r.GET("/results/:id", getResult)

	r.POST("/solitaire", newSolitaire)
	r.GET("/solitaire/:id", solitaireOp(func(s *session.SolitaireSession, c *gin.Context) (solitaire.GameState, error) {
		return s.State()
	}))
	r.POST("/solitaire/:id/new", solitaireOp(func(s *session.SolitaireSession, c *gin.Context) (solitaire.GameState, error) {
		return s.NewGame()
	}))
	r.POST("/solitaire/:id/draw", solitaireOp(func(s *session.SolitaireSession, c *gin.Context) (solitaire.GameState, error) {
		return s.Draw()
	}))
	r.POST("/solitaire/:id/undo", solitaireOp(func(s *session.SolitaireSession, c *gin.Context) (solitaire.GameState, error) {
		return s.Undo()
	}))
	r.POST("/solitaire/:id/redo", solitaireOp(func(s *session.SolitaireSession, c *gin.Context) (solitaire.GameState, error) {
		return s.Redo()
	}))
	r.POST("/solitaire/:id/auto", solitaireOp(func(s *session.SolitaireSession, c *gin.Context) (solitaire.GameState, error) {
		return s.AutoMove()
	}))
	r.POST("/solitaire/:id/move", solitaireOp(func(s *session.SolitaireSession, c *gin.Context) (solitaire.GameState, error) {
		var move session.SolitaireMove
		if err := c.ShouldBindJSON(&move); err != nil {
			return solitaire.GameState{}, &badRequestError{err: err}
		}
		return s.Move(move)
	}))
	r.DELETE("/solitaire/:id", closeSession)
	return r
}

func RunRestServer(manager *session.Manager, port int) error {
	r := NewRouter(manager)
	restLogger.Info().Msgf("Game API listening on port %d", port)
	return r.Run(fmt.Sprintf(":%d", port))
}

type badRequestError struct {
	err error
}

func (e *badRequestError) Error() string {
	return e.err.Error()
}

func errorCode(err error) int {
	var (
		closed     *session.SessionClosedError
		notHuman   *session.SeatNotHumanError
		illegal    *session.IllegalMoveError
		config     *session.InvalidConfigError
		notYours   *hearts.NotYourTurnError
		phase      *hearts.PhaseError
		invalid    *hearts.InvalidMoveError
		invalidPas *hearts.InvalidPassError
		badRequest *badRequestError
	)
	switch {
	case errors.As(err, &closed):
		return http.StatusGone
	case errors.As(err, &notHuman), errors.As(err, &notYours), errors.As(err, &phase):
		return http.StatusConflict
	case errors.As(err, &illegal), errors.As(err, &config), errors.As(err, &invalid),
		errors.As(err, &invalidPas), errors.As(err, &badRequest):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func abortWithError(c *gin.Context, err error) {
	code := errorCode(err)
	if code == http.StatusInternalServerError {
		restLogger.Error().Err(err).Str("path", c.FullPath()).Msg("Request failed")
	}
	c.IndentedJSON(code, appError{Code: code, Message: err.Error()})
	c.Error(err)
}

func notFound(c *gin.Context, what string) {
	c.IndentedJSON(http.StatusNotFound, appError{
		Code:    http.StatusNotFound,
		Message: fmt.Sprintf("%s [%s] not found", what, c.Param("id")),
	})
}

func heartsSession(c *gin.Context) (*session.HeartsSession, bool) {
	s, ok := sessionManager.HeartsSession(c.Param("id"))
	if !ok {
		notFound(c, "Hearts session")
	}
	return s, ok
}

func respondHearts(c *gin.Context, s *session.HeartsSession, view hearts.View, err error) {
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, heartsResponse{SessionID: s.ID(), Seats: s.Seats(), View: view})
}

func newHearts(c *gin.Context) {
	var config session.HeartsConfig
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&config); err != nil {
			abortWithError(c, &badRequestError{err: err})
			return
		}
	}
	s, err := sessionManager.NewHeartsSession(c.Request.Context(), config)
	if err != nil {
		restLogger.Error().Err(err).Msg("Unable to create Hearts session")
		abortWithError(c, err)
		return
	}
	view, err := s.View(c.Query("player"))
	respondHearts(c, s, view, err)
}

func getHearts(c *gin.Context) {
	s, ok := heartsSession(c)
	if !ok {
		return
	}
	view, err := s.View(c.Query("player"))
	respondHearts(c, s, view, err)
}

func passCards(c *gin.Context) {
	s, ok := heartsSession(c)
	if !ok {
		return
	}
	var req passRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, &badRequestError{err: err})
		return
	}
	passed, err := cards.ParseCards(req.Cards)
	if err != nil {
		abortWithError(c, &badRequestError{err: err})
		return
	}
	view, err := s.SubmitPass(req.PlayerID, passed)
	respondHearts(c, s, view, err)
}

func playCard(c *gin.Context) {
	s, ok := heartsSession(c)
	if !ok {
		return
	}
	var req playRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, &badRequestError{err: err})
		return
	}
	card, err := cards.NewCard(req.Card)
	if err != nil {
		abortWithError(c, &badRequestError{err: err})
		return
	}
	view, err := s.PlayCard(req.PlayerID, card)
	respondHearts(c, s, view, err)
}

func nextRound(c *gin.Context) {
	s, ok := heartsSession(c)
	if !ok {
		return
	}
	view, err := s.NextRound(c.Query("player"))
	respondHearts(c, s, view, err)
}

func closeSession(c *gin.Context) {
	if !sessionManager.CloseSession(c.Param("id")) {
		notFound(c, "Session")
		return
	}
	c.Status(http.StatusNoContent)
}

func getResult(c *gin.Context) {
	result, ok := sessionManager.Result(c.Param("id"))
	if !ok {
		notFound(c, "Result")
		return
	}
	c.JSON(http.StatusOK, result)
}

func newSolitaire(c *gin.Context) {
	var req solitaireRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			abortWithError(c, &badRequestError{err: err})
			return
		}
	}
	s := sessionManager.NewSolitaireSession(req.Seed)
	state, err := s.State()
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, solitaireResponse{SessionID: s.ID(), State: state})
}

func solitaireOp(op func(s *session.SolitaireSession, c *gin.Context) (solitaire.GameState, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := sessionManager.SolitaireSession(c.Param("id"))
		if !ok {
			notFound(c, "Solitaire session")
			return
		}
		state, err := op(s, c)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, solitaireResponse{SessionID: s.ID(), State: state})
	}
}
