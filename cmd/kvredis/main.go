/*
author: akashmaji
email: akashmaji@iisc.ac.in
file: kvredis/cmd/kvredis/main.go
*/

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/akashmaji946/kvredis/internal/config"
	"github.com/akashmaji946/kvredis/internal/logging"
	"github.com/akashmaji946/kvredis/internal/server"
)

// Entry point: reads an optional config file path from argv, binds the
// listener, and runs until a termination signal triggers a graceful
// shutdown.
//
// Usage:
//
//	kvredis [config-file]
func main() {
	fmt.Println(">>> kvredis server <<<")

	log := logging.New()

	configFilePath := ""
	args := os.Args[1:]
	if len(args) > 1 {
		log.Error("usage: kvredis [config-file]")
		os.Exit(1)
	}
	if len(args) == 1 {
		configFilePath = args[0]
	}

	cfg, err := config.Load(configFilePath)
	if err != nil {
		log.Error("reading config: %v", err)
		os.Exit(1)
	}

	srv := server.New(cfg.Addr, log)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("signal received, starting graceful shutdown")
		srv.Shutdown()
	}()

	if err := srv.Run(); err != nil {
		log.Error("server exited: %v", err)
		os.Exit(1)
	}

	log.Info("graceful shutdown complete")
}
