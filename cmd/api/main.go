package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"persona-study/internal/config"
	"persona-study/internal/db"
	"persona-study/internal/email"
	apihttp "persona-study/internal/http"
	"persona-study/internal/llm"
	"persona-study/internal/persona"
	"persona-study/internal/repository"
	"persona-study/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	sessionRepo := repository.NewPgSessionRepository(pool)
	messageRepo := repository.NewPgMessageRepository(pool)
	eventRepo := repository.NewPgEventRepository(pool)
	vectorRepo := repository.NewPgVectorRepository(pool)

	chatClient := llm.NewHTTPClient(cfg.ChatAPIURL, cfg.ChatAPIKey, cfg.ChatModel, zap.NewStdLog(logger))
	scoreClient := persona.NewHTTPScoreClient(cfg.ScoreAPIURL, cfg.ScoreAPIKey)

	emailSender := email.NewDisabledSender("email sender not configured")
	if cfg.SMTPHost != "" {
		sender, err := email.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.SMTPFromName, cfg.SMTPUseTLS)
		if err != nil {
			logger.Warn("smtp sender init failed", zap.Error(err))
		} else {
			emailSender = sender
		}
	}

	var (
		scoreCache   persona.ScoreCache
		scoreLimiter service.ScoreRateLimiter
		tokenStore   service.RefreshTokenStore
		redisClient  *redis.Client
	)
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			scoreCache = persona.NewRedisScoreCache(redisClient, time.Duration(cfg.ScoreCacheTTLMin)*time.Minute)
			scoreLimiter = service.NewRedisScoreRateLimiter(redisClient, time.Duration(cfg.ScoreRateWindowSec)*time.Second, cfg.ScoreRateMaxPerWindow)
			tokenStore = service.NewRedisRefreshTokenStore(redisClient)
		}
		cancel()
	}

	jwtSvc := service.NewJWTServiceWithStore(
		cfg.JWTSecret,
		time.Duration(cfg.JWTAccessTTLMin)*time.Minute,
		time.Duration(cfg.JWTRefreshTTLHours)*time.Hour,
		tokenStore,
	)
	if cfg.JWTSecret == "" {
		logger.Warn("jwt secret not configured")
	}

	studySvc := service.NewStudyService(
		logger,
		sessionRepo,
		eventRepo,
		emailSender,
		cfg.StudyAccessCodeHash,
		cfg.ResearcherEmail,
		time.Duration(cfg.SessionTTLHours)*time.Hour,
	)
	scoreSvc := service.NewScoreService(logger, scoreClient, scoreCache, vectorRepo)

	sessionHandler := apihttp.NewSessionHandler(logger, studySvc, jwtSvc)
	chatHandler := apihttp.NewChatHandler(logger, chatClient, messageRepo, studySvc, cfg.SystemPrompt, cfg.ChatMaxTokens)
	personaHandler := apihttp.NewPersonaHandler(logger, scoreSvc, studySvc, scoreLimiter)
	router := apihttp.NewRouter(logger, jwtSvc, sessionHandler, chatHandler, personaHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
