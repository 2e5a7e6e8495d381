package util

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

var environmentLogger = log.With().Str("logger_name", "util::environment").Logger()

type cardTableEnvironment struct {
	Port              string
	BotPort           string
	BotServiceURL     string
	NatsURL           string
	LogLevel          string
	ResultCacheSize   string
	RemoteBotTimeout  string
	RemoteBotInterval string
	DisableDelays     string
}

// Env is a helper object for accessing environment variables.
var Env = &cardTableEnvironment{
	Port:              "PORT",
	BotPort:           "BOT_PORT",
	BotServiceURL:     "BOT_SERVICE_URL",
	NatsURL:           "NATS_URL",
	LogLevel:          "LOG_LEVEL",
	ResultCacheSize:   "RESULT_CACHE_SIZE",
	RemoteBotTimeout:  "REMOTE_BOT_TIMEOUT_MS",
	RemoteBotInterval: "REMOTE_BOT_INTERVAL_MS",
	DisableDelays:     "DISABLE_DELAYS",
}

func (e *cardTableEnvironment) GetPort() int {
	return e.getInt(e.Port, 8080)
}

func (e *cardTableEnvironment) GetBotPort() int {
	return e.getInt(e.BotPort, 8081)
}

// GetBotServiceURL returns the external decision service base URL. Empty means remote seats are disabled.
func (e *cardTableEnvironment) GetBotServiceURL() string {
	return strings.TrimRight(os.Getenv(e.BotServiceURL), "/")
}

func (e *cardTableEnvironment) GetNatsURL() string {
	return os.Getenv(e.NatsURL)
}

func (e *cardTableEnvironment) GetLogLevel() string {
	return os.Getenv(e.LogLevel)
}

func (e *cardTableEnvironment) GetResultCacheSize() int {
	return e.getInt(e.ResultCacheSize, 1000)
}

func (e *cardTableEnvironment) GetRemoteBotTimeout() time.Duration {
	return time.Duration(e.getInt(e.RemoteBotTimeout, 3000)) * time.Millisecond
}

func (e *cardTableEnvironment) GetRemoteBotInterval() time.Duration {
	return time.Duration(e.getInt(e.RemoteBotInterval, 100)) * time.Millisecond
}

func (e *cardTableEnvironment) GetDisableDelays() string {
	return os.Getenv(e.DisableDelays)
}

func (e *cardTableEnvironment) ShouldDisableDelays() bool {
	v := strings.ToLower(e.GetDisableDelays())
	return v == "1" || v == "true"
}

func (e *cardTableEnvironment) getInt(name string, defaultValue int) int {
	str := os.Getenv(name)
	if str == "" {
		return defaultValue
	}
	num, err := strconv.Atoi(str)
	if err != nil || num < 0 {
		msg := fmt.Sprintf("Invalid value [%s] for %s", str, name)
		environmentLogger.Error().Msg(msg)
		panic(msg)
	}
	return num
}
