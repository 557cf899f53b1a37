package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"orthoview.app/internal/levels"
	"orthoview.app/internal/persistence/eventlog"
	"orthoview.app/internal/progress"
	"orthoview.app/internal/transport/ws"
	"orthoview.app/internal/tuning"
)

func main() {
	var (
		addr       = flag.String("addr", ":8080", "http listen address")
		configDir  = flag.String("configs", "./configs", "config directory")
		dataDir    = flag.String("data", "./data", "runtime data directory")
		tuningPath = flag.String("tuning", "", "path to tuning.yaml (default: <configs>/tuning.yaml)")
		disableDB  = flag.Bool("disable_db", false, "disable the progress store")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lmicroseconds)

	tp := strings.TrimSpace(*tuningPath)
	if tp == "" {
		tp = filepath.Join(*configDir, "tuning.yaml")
	}
	tune, err := tuning.Load(tp)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Printf("tuning not found (%s); using defaults", tp)
			tune = tuning.Defaults()
		} else {
			logger.Fatalf("load tuning: %v", err)
		}
	}

	catalog, err := levels.Load(filepath.Join(*configDir, "levels"))
	if err != nil {
		logger.Fatalf("load levels: %v", err)
	}
	logger.Printf("levels loaded: %d (digest %.12s)", len(catalog.Order), catalog.Digest)

	var store *progress.Store
	if !*disableDB {
		store, err = progress.Open(filepath.Join(*dataDir, "progress.db"))
		if err != nil {
			logger.Fatalf("open progress store: %v", err)
		}
		defer store.Close()
	}

	var events *eventlog.Writer
	if tune.EventLogEnabled {
		events = eventlog.NewWriter(filepath.Join(*dataDir, "events"), "acts")
		defer events.Close()
	}

	srv := ws.NewServer(tune, catalog, store, events, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/ws", srv.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	httpSrv := &http.Server{Addr: *addr, Handler: mux}

	go func() {
		logger.Printf("listening on %s", *addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("listen: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	logger.Printf("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = httpSrv.Shutdown(ctx)
}
