package caches

import (
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

var cacheLogger = log.With().Str("logger_name", "caches::resultcache").Logger()

type PlayerResult struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// GameResult is the summary kept for a finished Hearts game.
type GameResult struct {
	SessionID string         `json:"sessionId"`
	Rounds    int            `json:"rounds"`
	Players   []PlayerResult `json:"players"`
	Winners   []string       `json:"winners"`
	EndedAt   time.Time      `json:"endedAt"`
}

// ResultCache keeps the most recent finished game results by session id.
type ResultCache struct {
	results *lru.Cache
}

func NewResultCache(size int) (*ResultCache, error) {
	results, err := lru.NewWithEvict(size, func(key interface{}, value interface{}) {
		cacheLogger.Debug().Msgf("Evicted result for session %v", key)
	})
	if err != nil {
		return nil, errors.Wrap(err, "Unable to initialize result cache")
	}
	return &ResultCache{results: results}, nil
}

func (c *ResultCache) Add(result *GameResult) error {
	if result == nil || result.SessionID == "" {
		return fmt.Errorf("Invalid game result")
	}
	c.results.Add(result.SessionID, result)
	return nil
}

func (c *ResultCache) Get(sessionID string) (*GameResult, bool) {
	v, exists := c.results.Get(sessionID)
	if !exists {
		return nil, false
	}
	return v.(*GameResult), true
}

func (c *ResultCache) Len() int {
	return c.results.Len()
}
