package bot

import (
	"bytes"
	"context"
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
	"voyager.com/cardtable/cards"
	"voyager.com/cardtable/hearts"
)

var remoteLogger = log.With().Str("logger_name", "bot::remote").Logger()

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const HeartsGameName = "hearts"

// MoveRequest is the body of POST /move on a decision service.
type MoveRequest struct {
	Game        string       `json:"game"`
	PlayerIndex int          `json:"playerIndex"`
	State       *hearts.View `json:"state"`
	ValidMoves  []cards.Card `json:"validMoves"`
}

type MoveResponse struct {
	Move  *cards.Card `json:"move,omitempty"`
	Error string      `json:"error,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
	Engine string `json:"engine"`
}

// InvalidResponseError means the decision service answered with something that is not
// one of the moves it was offered.
type InvalidResponseError struct {
	Reason string
}

func (e *InvalidResponseError) Error() string {
	return fmt.Sprintf("Invalid response from decision service: %s", e.Reason)
}

//
// Remote delegates play decisions to an external decision service over HTTP.
// Passing is decided locally by the heuristic. Requests are spaced out by a rate
// limiter and each one is bounded by the timeout.
//
type Remote struct {
	baseURL  string
	client   *http.Client
	limiter  *rate.Limiter
	timeout  time.Duration
	fallback *Heuristic
}

func NewRemote(baseURL string, timeout time.Duration, interval time.Duration) *Remote {
	return &Remote{
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		client:   &http.Client{},
		limiter:  rate.NewLimiter(rate.Every(interval), 1),
		timeout:  timeout,
		fallback: NewHeuristic(),
	}
}

func (r *Remote) Kind() Kind { return KindRemote }

func (r *Remote) URL() string {
	return r.baseURL
}

// Health checks that the service is reachable and reports status "ok".
func (r *Remote) Health(ctx context.Context) (*HealthResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	url := fmt.Sprintf("%s/health", r.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "Unable to create health request")
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "Decision service %s is not reachable", r.baseURL)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s returned %d", url, resp.StatusCode)
	}

	var health HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return nil, errors.Wrap(err, "Unable to parse health response")
	}
	if health.Status != "ok" {
		return nil, fmt.Errorf("Decision service status is %q", health.Status)
	}
	return &health, nil
}

func (r *Remote) ChoosePass(ctx context.Context, hand []cards.Card) ([]cards.Card, error) {
	return r.fallback.ChoosePass(ctx, hand)
}

// ChoosePlay asks the service for a move. The answer must be one of the legal cards.
func (r *Remote) ChoosePlay(ctx context.Context, view *hearts.View, legal []cards.Card) (cards.Card, error) {
	if len(legal) == 0 {
		return cards.Card{}, errors.New("No legal moves")
	}
	if err := r.limiter.Wait(ctx); err != nil {
		return cards.Card{}, errors.Wrap(err, "Remote decision throttled")
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	playerIndex := -1
	if view != nil {
		playerIndex = view.ViewerSeat
	}
	reqData, err := json.Marshal(&MoveRequest{
		Game:        HeartsGameName,
		PlayerIndex: playerIndex,
		State:       view,
		ValidMoves:  legal,
	})
	if err != nil {
		return cards.Card{}, errors.Wrap(err, "Unable to encode move request")
	}

	url := fmt.Sprintf("%s/move", r.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(reqData))
	if err != nil {
		return cards.Card{}, errors.Wrap(err, "Unable to create move request")
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := r.client.Do(req)
	if err != nil {
		return cards.Card{}, errors.Wrapf(err, "Error in post %s", url)
	}
	defer resp.Body.Close()
	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return cards.Card{}, errors.Wrap(err, "Unable to read move response")
	}
	remoteLogger.Debug().
		Int("playerIndex", playerIndex).
		Dur("elapsed", time.Since(start)).
		Msgf("%s returned %d", url, resp.StatusCode)

	var moveResp MoveResponse
	if err := json.Unmarshal(body, &moveResp); err != nil {
		return cards.Card{}, &InvalidResponseError{Reason: fmt.Sprintf("unparseable body (status %d)", resp.StatusCode)}
	}
	if resp.StatusCode != http.StatusOK {
		return cards.Card{}, &InvalidResponseError{Reason: fmt.Sprintf("status %d: %s", resp.StatusCode, moveResp.Error)}
	}
	if moveResp.Move == nil {
		return cards.Card{}, &InvalidResponseError{Reason: "no move"}
	}
	move := *moveResp.Move
	if !cards.Contains(legal, move) {
		return cards.Card{}, &InvalidResponseError{Reason: fmt.Sprintf("%s is not a legal move", move)}
	}
	move.FaceUp = false
	return move, nil
}
