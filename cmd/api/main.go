package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"admincore.org/internal/collection"
	"admincore.org/internal/directory"
	"admincore.org/internal/httpapi"
	"admincore.org/internal/obs"
	"admincore.org/internal/session"
	"admincore.org/internal/store"
	"admincore.org/internal/store/pg"
)

var version = "0.3.1"

func main() {
	obs.Init()
	obs.InitBuildInfo(version, os.Getenv("ADMINCORE_COMMIT"))

	addr := os.Getenv("ADMINCORE_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	// Session records live in Postgres when a DSN is configured, otherwise
	// in process memory.
	var kv store.KV = store.NewMemory()
	var readyProbe httpapi.ReadyProbe
	if dsn := os.Getenv("ADMINCORE_PG_DSN"); dsn != "" {
		pgStore, err := pg.Open(dsn)
		if err != nil {
			log.Fatalf("open db: %v", err)
		}
		defer pgStore.Close()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := pgStore.EnsureSchema(ctx); err != nil {
			cancel()
			log.Fatalf("ensure schema: %v", err)
		}
		cancel()
		kv = pgStore
		readyProbe = httpapi.ReadyProbe{DB: pgStore.DB()}
	}

	sessions := session.NewStore(kv)

	pageSize := 5
	if raw := os.Getenv("ADMINCORE_PAGE_SIZE"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			pageSize = n
		}
	}
	users := collection.New(directory.SeedUsers, collection.WithPageSize[*directory.User](pageSize))
	clients := collection.New(directory.SeedClients, collection.WithPageSize[*directory.Client](pageSize))

	// One-shot startup reads: session restore and the collection loads.
	// They are independent of each other, so failures here degrade to an
	// empty state instead of aborting.
	startCtx, startCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if _, ok := sessions.Restore(startCtx); ok {
		log.Printf("restored session from durable store")
	}
	if err := users.Load(startCtx); err != nil {
		log.Printf("load users: %v", err)
	}
	if err := clients.Load(startCtx); err != nil {
		log.Printf("load clients: %v", err)
	}
	startCancel()

	api := httpapi.New(readyProbe, version, sessions, users, clients)

	srv := &http.Server{
		Addr:              addr,
		Handler:           api.Handler(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("Starting admincore-api %s on %s", version, srv.Addr)

	// graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = srv.Shutdown(ctx)
	log.Println("Stopped")
}
