package main

import (
	"context"
	"log"

	"champ-voting-be/internal/bootstrap"
	"champ-voting-be/internal/config"
	"champ-voting-be/internal/server"
	"champ-voting-be/internal/service"
	"champ-voting-be/internal/tracer"
	"champ-voting-be/pkg/database"

	"gorm.io/gorm"
)

func main() {
	// 0. Initialize Tracer
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database (optional, memory store without it)
	var gormDB *gorm.DB
	if cfg.Database.Connection != "" && !cfg.App.UseMemoryStore {
		db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
		if err != nil {
			log.Panicf("Unable to connect to GORM DB: %v", err)
		}
		if err := database.Migrate(db); err != nil {
			log.Panicf("Unable to migrate schema: %v", err)
		}
		gormDB = db
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Startup Policy: never run without a current session
	if _, err := container.SessionService.Ensure(context.Background()); err != nil {
		log.Panicf("Unable to ensure current session: %v", err)
	}

	// 5. Start Background Services
	go func() {
		log.Println("Background: Starting Consumer Service...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()
	go func() {
		log.Println("Background: Following session changes...")
		if err := container.SessionService.Run(context.Background()); err != nil {
			log.Printf("Background Session Follower Error: %v", err)
		}
	}()
	go func() {
		sessions, err := container.SessionService.Subscribe(context.Background())
		if err != nil {
			log.Printf("Background Session Frame Error: %v", err)
			return
		}
		for sessionID := range sessions {
			// Every instance adopts the session itself, so this frame stays
			// local.
			container.WebSocketHub.BroadcastLocalFrame("session", map[string]string{
				"session_id": sessionID,
			})
		}
	}()
	go func() {
		log.Println("Background: Watching live champion view...")
		err := container.ChampionViewService.Watch(context.Background(), func(snapshot service.ViewSnapshot) {
			// Remote-origin snapshots were already framed by the instance
			// that produced them; the hub mirrors those over redis.
			if snapshot.Origin != "" && snapshot.Origin != container.InstanceID {
				return
			}
			container.WebSocketHub.BroadcastFrame("champions", snapshot)
		})
		if err != nil {
			log.Printf("Background View Watcher Error: %v", err)
		}
	}()

	// 6. Initialize Server
	srv := server.New(cfg, container)

	// 7. Run Server
	log.Fatal(srv.Run())
}
