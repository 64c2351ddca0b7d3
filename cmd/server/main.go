package main

import (
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/GriffinCanCode/TermBridge/internal/config"
	"github.com/GriffinCanCode/TermBridge/internal/logging"
	"github.com/GriffinCanCode/TermBridge/internal/server"
	"github.com/GriffinCanCode/TermBridge/internal/session"
	"github.com/GriffinCanCode/TermBridge/internal/terminal"
)

func main() {
	port := flag.String("port", "", "Server port (overrides PORT)")
	host := flag.String("host", "", "Bind address (overrides HOST)")
	flag.Parse()

	cfg := config.LoadOrDefault()
	if *port != "" {
		cfg.Server.Port = *port
	}
	if *host != "" {
		cfg.Server.Host = *host
	}

	var logger *logging.Logger
	if cfg.Logging.Development {
		logger = logging.NewDevelopment()
	} else {
		logger = logging.NewDefault()
	}

	driver, err := terminal.New(terminal.Options{
		ScratchDir: cfg.Terminal.ScratchDir,
		CloseGrace: cfg.Terminal.CloseGrace,
		SpawnWait:  cfg.Terminal.SpawnWait,
	}, logger)
	if err != nil {
		if errors.Is(err, terminal.ErrUnsupported) {
			log.Fatalf("No usable terminal emulator on this host: %v", err)
		}
		log.Fatalf("Failed to initialize terminal driver: %v", err)
	}

	sessions := session.NewManager(driver, logger)

	srv, err := server.NewServer(cfg, logger, driver, sessions)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := srv.Run(); err != nil {
			errChan <- err
		}
	}()

	select {
	case <-sigChan:
		log.Println("Shutting down gracefully...")
		if err := srv.Close(); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
	case err := <-errChan:
		log.Fatalf("Server error: %v", err)
	}
}
