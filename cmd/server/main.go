package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"freezerush/internal/metrics"
	"freezerush/internal/persistence/leaderboard"
	eventlog "freezerush/internal/persistence/log"
	"freezerush/internal/protocol"
	"freezerush/internal/sim/catalogs"
	"freezerush/internal/sim/kitchen"
	"freezerush/internal/sim/tuning"
	"freezerush/internal/transport/ws"
)

func main() {
	var (
		addr       = flag.String("addr", ":8080", "http listen address")
		configDir  = flag.String("configs", "./configs", "config directory")
		dataDir    = flag.String("data", "./data", "runtime data directory")
		difficulty = flag.String("difficulty", "medium", "difficulty preset name")
		seed       = flag.Int64("seed", time.Now().UnixNano(), "order generation seed")
		tuningPath = flag.String("tuning", "", "path to tuning.yaml (default: <configs>/tuning.yaml)")
		disableDB  = flag.Bool("disable_db", false, "disable the leaderboard database")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lmicroseconds)

	tp := strings.TrimSpace(*tuningPath)
	if tp == "" {
		tp = filepath.Join(*configDir, "tuning.yaml")
	}
	tune, err := tuning.Load(tp)
	if err != nil {
		logger.Fatalf("load tuning: %v", err)
	}
	cats, err := catalogs.Load(*configDir)
	if err != nil {
		logger.Fatalf("load catalogs: %v", err)
	}

	k, err := kitchen.New(tune, *difficulty, cats, *seed, logger)
	if err != nil {
		logger.Fatalf("kitchen: %v", err)
	}
	logger.Printf("session=%s difficulty=%s seed=%d ingredients=%d recipes=%d",
		k.SessionID(), *difficulty, *seed,
		len(cats.Ingredients.Defs), len(cats.Recipes.ByDish))

	_ = os.MkdirAll(*dataDir, 0o755)
	evLog := eventlog.NewEventLogger(*dataDir, k.SessionID())
	defer evLog.Close()

	var board *leaderboard.Store
	if !*disableDB {
		board, err = leaderboard.Open(filepath.Join(*dataDir, "leaderboard.db"))
		if err != nil {
			logger.Fatalf("open leaderboard: %v", err)
		}
		defer board.Close()
	}

	collector := metrics.New()
	k.SetEventSink(func(evs []protocol.Event) {
		collector.ObserveEvents(evs)
		if err := evLog.WriteEvents(evs); err != nil {
			logger.Printf("event log: %v", err)
		}
	})
	k.SetTickObserver(collector.ObserveTick)

	ctx, cancel := signalContext()
	defer cancel()

	start := time.Now()
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := k.Run(ctx); err != nil && err != context.Canceled {
			logger.Printf("kitchen stopped: %v", err)
		}
	}()

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(200)
		_, _ = rw.Write([]byte("ok"))
	})
	mux.Handle("/metrics", collector.Handler())
	mux.HandleFunc("/v1/leaderboard", func(rw http.ResponseWriter, r *http.Request) {
		if board == nil {
			http.Error(rw, "leaderboard disabled", http.StatusServiceUnavailable)
			return
		}
		diff := r.URL.Query().Get("difficulty")
		if diff == "" {
			diff = *difficulty
		}
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		top, err := board.Top(r.Context(), diff, limit)
		if err != nil {
			http.Error(rw, err.Error(), http.StatusInternalServerError)
			return
		}
		rw.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(rw).Encode(top)
	})
	mux.HandleFunc("/v1/ws", ws.NewServer(k, logger).Handler())

	srv := &http.Server{
		Addr:              *addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel2()
		_ = srv.Shutdown(ctx2)
	}()

	logger.Printf("listening on %s", *addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("ListenAndServe: %v", err)
	}

	// The sim goroutine has exited with the context; reading final stats is
	// safe now.
	<-done
	if board != nil {
		stats := k.Stats()
		ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel2()
		if err := board.Record(ctx2, k.SessionID(), *difficulty, time.Since(start).Milliseconds(), stats); err != nil {
			logger.Printf("record session: %v", err)
		} else {
			logger.Printf("recorded session=%s total=%d completed=%d expired=%d",
				k.SessionID(), stats.Total, stats.Completed, stats.Expired)
		}
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan os.Signal, 2)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-ch
		cancel()
	}()
	return ctx, cancel
}
