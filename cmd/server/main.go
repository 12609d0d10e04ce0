package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rp_admin_backend/internal/cache"
	"rp_admin_backend/internal/config"
	"rp_admin_backend/internal/database"
	"rp_admin_backend/internal/gateway"
	"rp_admin_backend/internal/handlers"
	"rp_admin_backend/internal/ocr/tesseract"
	"rp_admin_backend/internal/router"
	"rp_admin_backend/internal/storage"
	"rp_admin_backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()
	utils.InitLogger(cfg.LogLevel, cfg.LogFormat)

	if cfg.Gateway.UsesDefaultKey() {
		log.Warn().Msg("GATEWAY_API_KEY is not set; using the built-in development key")
	}
	if cfg.Auth.JWTSecret == config.DefaultJWTSecret {
		log.Warn().Msg("JWT_SECRET is not set; tokens are signed with the development secret")
	}

	db, err := database.Open(cfg.DB.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if err := database.ApplySchema(db, cfg.DB.SchemaPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply schema")
	}
	if n, err := database.SeedMenu(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed menu")
	} else if n > 0 {
		utils.LogInfo("Seeded starter menu", map[string]interface{}{"items": n})
	}

	jwt, err := utils.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid JWT configuration")
	}

	ctx := context.Background()

	gatewayOpts := []gateway.Option{}
	if cfg.Cache.Enabled() {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			utils.LogWarn(err, "Redis unreachable, gateway reads will not be cached", map[string]interface{}{"addr": cfg.Cache.RedisAddr})
		} else {
			gatewayOpts = append(gatewayOpts, gateway.WithCache(cache.NewRedis(rdb), cfg.Cache.TTL))
			utils.LogInfo("Gateway cache enabled", map[string]interface{}{"addr": cfg.Cache.RedisAddr, "ttl": cfg.Cache.TTL.String()})
		}
	}
	gw := gateway.NewClient(cfg.Gateway.BaseURL, cfg.Gateway.APIKey, cfg.Gateway.Timeout, gatewayOpts...)

	receipts, err := storage.New(ctx, cfg.Receipts)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set up receipt storage")
	}
	if closer, ok := receipts.(io.Closer); ok {
		defer closer.Close()
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(utils.GinLogger())
	engine.MaxMultipartMemory = handlers.MaxUploadBytes

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	corsConfig.ExposeHeaders = []string{utils.RequestIDHeader, "Content-Disposition"}
	corsConfig.AllowCredentials = true
	engine.Use(cors.New(corsConfig))

	authService := router.Setup(engine, router.Dependencies{
		DB:       db,
		Config:   cfg,
		JWT:      jwt,
		Gateway:  gw,
		OCR:      tesseract.New(cfg.OCR.Language, true),
		Receipts: receipts,
	})

	if created, err := authService.EnsureAdmin(cfg.Auth.AdminUsername, cfg.Auth.AdminPassword); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed admin account")
	} else if created {
		utils.LogInfo("Created admin account", map[string]interface{}{"username": cfg.Auth.AdminUsername})
	} else if cfg.Auth.AdminPassword == "" {
		log.Warn().Msg("ADMIN_PASSWORD is not set; no admin account was seeded")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utils.LogInfo("Server starting", map[string]interface{}{"port": cfg.Port, "gateway": cfg.Gateway.BaseURL})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	utils.LogInfo("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.LogError(err, "Graceful shutdown failed")
	}
}
