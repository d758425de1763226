package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SRKRCC/HackOverflow-backend/config"
	"github.com/SRKRCC/HackOverflow-backend/controllers"
	"github.com/SRKRCC/HackOverflow-backend/database"
	"github.com/SRKRCC/HackOverflow-backend/repository"
	"github.com/SRKRCC/HackOverflow-backend/routes"
	"github.com/SRKRCC/HackOverflow-backend/scheduler"
	"github.com/SRKRCC/HackOverflow-backend/services"
	"github.com/SRKRCC/HackOverflow-backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/panjf2000/ants/v2"
	"github.com/redis/go-redis/v9"
)

func buildAuditSink(cfg *config.Config, rdb *redis.Client) services.AuditSink {
	switch cfg.Audit.Sink {
	case "file":
		return services.NewFileSink(cfg.Audit.File)
	case "redis":
		if rdb != nil {
			return services.NewRedisStreamSink(rdb, cfg.Audit.Stream, cfg.Audit.BatchSize, time.Duration(cfg.Audit.FlushSecs)*time.Second)
		}
		log.Println("Redis unavailable, audit falling back to console sink")
		return services.NewConsoleSink()
	default:
		return services.NewConsoleSink()
	}
}

func main() {
	cfg := config.Load()
	gin.SetMode(cfg.Server.Mode)

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	if err := database.MigrateTables(db); err != nil {
		log.Fatalf("Failed to migrate tables: %v", err)
	}
	if err := database.Seed(db, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	rdb, err := database.ConnectRedis(cfg.Redis)
	if err != nil {
		// redis 只承载公开排行榜镜像与审计流，缺失时全部降级
		log.Printf("Warning: redis unavailable, mirrors disabled: %v", err)
		rdb = nil
	}

	utils.InitJWT(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	store := repository.NewStore(db)
	audit := services.NewAuditService(buildAuditSink(cfg, rdb), cfg.Audit.Env)
	defer audit.Close()

	pool, err := ants.NewPool(16)
	if err != nil {
		log.Fatalf("Failed to create worker pool: %v", err)
	}
	defer pool.Release()

	var mailer services.Mailer = services.LogMailer{}
	if cfg.Email.Enabled {
		mailer = services.NewSMTPMailer(cfg.Email)
	}

	ttl := time.Duration(cfg.Leaderboard.TTLSeconds) * time.Second
	leaderboard := services.NewLeaderboardService(store, ttl, services.TiePolicy(cfg.Leaderboard.TiePolicy), nil)

	h := &controllers.Handlers{
		Store:        store,
		Registration: services.NewRegistrationService(store, mailer, audit, pool, cfg.Registration.MinTeamSize),
		Tasks:        services.NewTaskService(store, audit, services.CompleteDefaultFull),
		Teams:        services.NewTeamService(store, audit),
		Leaderboard:  leaderboard,
		Audit:        audit,
		RDB:          rdb,
		Cfg:          cfg,
	}

	manager := scheduler.NewManager(leaderboard, ttl)
	manager.Start()
	defer manager.Stop()

	r := routes.SetupRouter(h)

	go func() {
		if err := r.Run(":" + cfg.Server.Port); err != nil {
			log.Fatalf("Server exited: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down")
}
