package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	api "github.com/rpupo63/vibe-gallery-backend/api"
	"github.com/rpupo63/vibe-gallery-backend/config"
	"github.com/rpupo63/vibe-gallery-backend/database"
)

func main() {
	c := config.Load()

	if !config.IsProduction(c) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	log.Info().Str("DB_TYPE", config.GetString(c, "DB_TYPE", database.TypeDemo)).Msg("Initializing app...")

	db, err := database.Open(c)
	if err != nil {
		log.Fatal().Err(err).Msg("Error connecting to database")
	}
	if database.IsDemo(c) {
		log.Warn().Msg("Running in demo mode on an in-memory database; data is lost on restart")
	}

	currentDB := database.New(db)

	server, err := api.NewServer(currentDB, c)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing server")
	}

	// Listen for interrupt signals to gracefully shutdown the server
	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, syscall.SIGINT, syscall.SIGTERM)

	fatalErr := run(server, interrupts, 30*time.Second)
	log.Info().Msgf("Server stopped: %v", fatalErr)
}

type lifecycle interface {
	Start(errChannel chan<- error)
	ShutdownGracefully(timeout time.Duration)
}

// run serves until the server fails or a signal arrives, then shuts down.
// The channel has room for both senders, so the server's final
// ErrServerClosed never blocks.
func run(server lifecycle, interrupts <-chan os.Signal, timeout time.Duration) error {
	errChannel := make(chan error, 2)

	go server.Start(errChannel)
	go listenToInterrupt(interrupts, errChannel)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(timeout)
	return fatalErr
}

// listenToInterrupt waits for a signal and then sends an error to the error channel.
func listenToInterrupt(interrupts <-chan os.Signal, errChannel chan<- error) {
	if sig, ok := <-interrupts; ok {
		errChannel <- fmt.Errorf("%s", sig)
	}
}
