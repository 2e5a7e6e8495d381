package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"voyager.com/cardtable/botservice"
	caches "voyager.com/cardtable/caching"
	"voyager.com/cardtable/gamescript"
	"voyager.com/cardtable/logging"
	"voyager.com/cardtable/nats"
	"voyager.com/cardtable/rest"
	"voyager.com/cardtable/session"
	"voyager.com/cardtable/util"
)

var runServer *bool
var runBotServer *bool
var gameScriptsFileOrDir *string
var delayConfigFile *string
var testName *string
var mainLogger = logging.GetZeroLogger("main::main", nil)

func init() {
	runServer = flag.Bool("server", true, "runs the game API server")
	runBotServer = flag.Bool("bot-server", false, "runs the reference decision service")
	gameScriptsFileOrDir = flag.String("game-script", "", "runs Hearts game script file(s) and exits")
	delayConfigFile = flag.String("delays", "delays.yaml", "YAML file containing pause times")
	testName = flag.String("testname", "", "runs a specific game script")
}

func main() {
	err := run()
	if err != nil {
		mainLogger.Error().Msg(err.Error())
		os.Exit(1)
	}
}

func run() error {
	logLevel := logging.ParseLevel(util.Env.GetLogLevel())
	fmt.Printf("Setting log level to %s\n", logLevel)
	zerolog.SetGlobalLevel(logLevel)
	flag.Parse()

	if *gameScriptsFileOrDir != "" {
		return gamescript.RunScripts(*gameScriptsFileOrDir, *testName)
	}

	errs := make(chan error, 2)
	if *runBotServer {
		go func() {
			errs <- botservice.New().Run(util.Env.GetBotPort())
		}()
	}
	if *runServer {
		manager, cleanup, err := createManager()
		if err != nil {
			return err
		}
		defer cleanup()
		go handleSignals(manager)
		go func() {
			errs <- rest.RunRestServer(manager, util.Env.GetPort())
		}()
	}
	if !*runServer && !*runBotServer {
		return fmt.Errorf("Nothing to run. Use -server, -bot-server or -game-script")
	}
	return <-errs
}

func createManager() (*session.Manager, func(), error) {
	delays, err := loadDelays()
	if err != nil {
		return nil, nil, errors.Wrap(err, "Error while parsing delay config")
	}

	results, err := caches.NewResultCache(util.Env.GetResultCacheSize())
	if err != nil {
		return nil, nil, errors.Wrap(err, "Error while creating result cache")
	}

	var sink session.EventSink = session.NopSink{}
	cleanup := func() {}
	natsURL := util.Env.GetNatsURL()
	if natsURL != "" {
		mainLogger.Info().Msgf("NATS URL: %s", natsURL)
		publisher, err := nats.NewEventPublisher(natsURL)
		if err != nil {
			return nil, nil, errors.Wrap(err, "Error while connecting the event feed")
		}
		sink = publisher
		cleanup = publisher.Close
	}

	remote := session.RemoteConfig{
		URL:      util.Env.GetBotServiceURL(),
		Timeout:  util.Env.GetRemoteBotTimeout(),
		Interval: util.Env.GetRemoteBotInterval(),
	}
	if remote.URL == "" {
		mainLogger.Info().Msg("BOT_SERVICE_URL is not set. Remote seats are disabled.")
	}
	return session.NewManager(delays, sink, results, remote), cleanup, nil
}

func loadDelays() (session.Delays, error) {
	if util.Env.ShouldDisableDelays() {
		mainLogger.Info().Msg("Delays are disabled")
		return session.Delays{}, nil
	}
	if _, err := os.Stat(*delayConfigFile); os.IsNotExist(err) {
		mainLogger.Warn().Msgf("%s does not exist. Using default delays", *delayConfigFile)
		return session.DefaultDelays, nil
	}
	return session.ParseDelayConfig(*delayConfigFile)
}

func handleSignals(manager *session.Manager) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigs
	mainLogger.Info().Msgf("Received %s. Closing %d sessions", sig, manager.Count())
	manager.Shutdown()
	os.Exit(0)
}
