package botservice

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
	"voyager.com/cardtable/bot"
	"voyager.com/cardtable/hearts"
)

var serviceLogger = log.With().Str("logger_name", "botservice::botservice").Logger()

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const EngineName = "voyager-heuristic-bot"

type errorResponse struct {
	Error string `json:"error"`
}

//
// Service is a reference decision service. It speaks the same /move contract that remote
// seats use and answers with the heuristic bot, so it doubles as a template for external
// bots and as a stand-in during development.
//
type Service struct {
	heuristic *bot.Heuristic
}

func New() *Service {
	return &Service{heuristic: bot.NewHeuristic()}
}

func (s *Service) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/health", s.health)
	r.POST("/move", s.move)
	return r
}

func (s *Service) Run(port int) error {
	serviceLogger.Info().Msgf("Decision service listening on port %d. Endpoint: POST /move", port)
	return s.Router().Run(fmt.Sprintf(":%d", port))
}

func (s *Service) health(c *gin.Context) {
	c.JSON(http.StatusOK, bot.HealthResponse{Status: "ok", Engine: EngineName})
}

func (s *Service) move(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	var req bot.MoveRequest
	if err := json.Unmarshal(body, &req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("Unable to parse request: %s", err)})
		return
	}
	serviceLogger.Debug().Msgf("Received request for %s (player %d)", req.Game, req.PlayerIndex)

	if len(req.ValidMoves) == 0 {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "No valid moves provided"})
		return
	}
	if req.Game != "" && req.Game != bot.HeartsGameName {
		c.JSON(http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("Unsupported game [%s]", req.Game)})
		return
	}
	view := req.State
	if view == nil {
		view = &hearts.View{}
	}

	move, err := s.heuristic.ChoosePlay(c.Request.Context(), view, req.ValidMoves)
	if err != nil {
		serviceLogger.Error().Err(err).Msg("Heuristic failed to choose a move")
		c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	serviceLogger.Debug().Msgf("Selecting move: %s", move)
	c.JSON(http.StatusOK, bot.MoveResponse{Move: &move})
}
