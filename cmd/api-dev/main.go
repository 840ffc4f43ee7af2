// cmd/api-dev/main.go - Development backend for the portal
//
// Serves the full REST contract from the built-in data set, so the console
// can run against a live HTTP backend without the real service.
//
// Usage: go run ./cmd/api-dev [-listen :8080] [-per-page 10]
// Then:  langportal --api-url http://localhost:8080/api
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"grimm.is/langportal/internal/api"
	"grimm.is/langportal/internal/i18n"
	"grimm.is/langportal/internal/logging"
)

var Printer = i18n.NewCLIPrinter()

func main() {
	listen := flag.String("listen", ":8080", "Listen address")
	prefix := flag.String("prefix", "/api", "Path prefix of every endpoint")
	perPage := flag.Int("per-page", 10, "Items per page")
	debug := flag.Bool("debug", false, "Log every request")
	flag.Parse()

	level := logging.LevelInfo
	if *debug {
		level = logging.LevelDebug
	}
	logger := logging.New(logging.Config{Level: level, Output: os.Stderr}).WithComponent("api-dev")

	p := api.NewStaticProvider(api.WithPageSize(*perPage))
	srv := &http.Server{
		Addr:              *listen,
		Handler:           NewServer(p, *prefix, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	Printer.Println("\nDevelopment API Server")
	Printer.Printf("API:      http://localhost%s%s\n", *listen, *prefix)
	Printer.Printf("Per page: %d\n\n", *perPage)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}
