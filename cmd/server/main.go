package main

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-redis/redis/v8"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"doq-health/internal/assessment"
	"doq-health/internal/auth"
	"doq-health/internal/chat"
	"doq-health/internal/config"
	"doq-health/internal/logger"
	"doq-health/internal/platform/gemini"
	"doq-health/internal/platform/heygen"
	"doq-health/internal/profile"
	"doq-health/internal/provider"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, "doq-health")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// 1. Infrastructure
	var db *sql.DB
	for i := 0; i < 10; i++ {
		db, err = sql.Open("postgres", cfg.DatabaseURL)
		if err == nil {
			err = db.Ping()
		}
		if err == nil {
			break
		}
		log.Info("waiting for database", zap.Int("attempt", i+1), zap.Error(err))
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		log.Fatal("could not connect to database", zap.Error(err))
	}
	log.Info("connected to database")

	m, err := migrate.New("file://migrations", cfg.DatabaseURL)
	if err != nil {
		log.Warn("migration init failed", zap.Error(err))
	} else if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		log.Warn("migration up failed", zap.Error(err))
	} else {
		log.Info("migrations applied")
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	var providerCache provider.Cache
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Warn("redis unavailable, provider cache disabled", zap.Error(err))
	} else {
		providerCache = provider.NewRedisCache(redisClient)
	}

	// 2. Clients
	gw, err := gemini.NewClient(context.Background(), cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.Timeout, log)
	if err != nil {
		log.Fatal("could not build gemini client", zap.Error(err))
	}
	avatarClient := heygen.NewClient(cfg.HeyGen.APIKey, log)
	if cfg.HeyGen.APIKey == "" {
		log.Warn("HEYGEN_API_KEY is not set; avatar token endpoint will fail")
	}

	// 3. Services
	profileRepo := profile.NewRepository(db)
	profileSvc := profile.NewService(profileRepo, log)

	synth := assessment.NewSynthesizer(gw, log)
	assessmentRepo := assessment.NewRepository(db)
	assessmentSvc := assessment.NewService(synth, assessmentRepo, profileSvc, log)

	chatRepo := chat.NewRepository(db)
	chatSvc := chat.NewService(gw, chatRepo, log)

	providerRepo := provider.NewRepository(db)
	providerSvc := provider.NewService(providerRepo, providerCache, log)

	// 4. Router
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(corsMiddleware)
	r.Use(auth.Middleware(auth.NewHeaderProvider()))

	r.Route("/api", func(r chi.Router) {
		assessment.RegisterRoutes(r, assessment.NewHandler(assessmentSvc))
		chat.RegisterRoutes(r, chat.NewHandler(chatSvc))
		profile.RegisterRoutes(r, profile.NewHandler(profileSvc))
		provider.RegisterRoutes(r, provider.NewHandler(providerSvc))
		heygen.RegisterRoutes(r, heygen.NewHandler(avatarClient))
	})

	log.Info("server starting", zap.String("port", cfg.HTTP.Port))
	if err := http.ListenAndServe(":"+cfg.HTTP.Port, r); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, X-User-Id, X-User-Email, X-User-Meta")
		if r.Method == "OPTIONS" {
			return
		}
		next.ServeHTTP(w, r)
	})
}
