package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KirkDiggler/reservas/internal/clients/twilio"
	"github.com/KirkDiggler/reservas/internal/common/clock"
	"github.com/KirkDiggler/reservas/internal/common/logger"
	"github.com/KirkDiggler/reservas/internal/common/uuid"
	"github.com/KirkDiggler/reservas/internal/config"
	"github.com/KirkDiggler/reservas/internal/handlers/discord"
	"github.com/KirkDiggler/reservas/internal/handlers/web"
	lockRepo "github.com/KirkDiggler/reservas/internal/repositories/lock"
	reservationRepo "github.com/KirkDiggler/reservas/internal/repositories/reservation"
	sessionRepo "github.com/KirkDiggler/reservas/internal/repositories/session"
	"github.com/KirkDiggler/reservas/internal/services/conversation"
	"github.com/KirkDiggler/reservas/internal/services/messaging"
	"github.com/KirkDiggler/reservas/internal/services/reservation"
	"github.com/KirkDiggler/reservas/migrations"
	"github.com/bwmarrin/discordgo"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if err := run(cfg, zl); err != nil {
		zl.Fatal("bot stopped with error", zap.Error(err))
	}
}

func run(cfg *config.Config, zl *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	// Initialize repositories
	reservations, closeReservations, err := newReservationRepository(ctx, cfg, zl)
	if err != nil {
		return err
	}
	defer closeReservations()

	locks, closeLocks, err := newLockRepository(cfg, zl)
	if err != nil {
		return err
	}
	defer closeLocks()

	sessions := sessionRepo.NewMemory()

	// Initialize services
	reservationSvc, err := reservation.New(&reservation.Config{
		Repository:     reservations,
		StorageTimeout: cfg.StorageTimeout,
		Logger:         zl.Named("reservation"),
	})
	if err != nil {
		return fmt.Errorf("failed to create reservation service: %w", err)
	}

	conversationSvc, err := conversation.New(&conversation.Config{
		SessionRepository:  sessions,
		LockRepository:     locks,
		ReservationService: reservationSvc,
		Logger:             zl.Named("conversation"),
	})
	if err != nil {
		return fmt.Errorf("failed to create conversation service: %w", err)
	}

	senders := map[messaging.Channel]messaging.Sender{}
	if cfg.TwilioEnabled() {
		twilioClient, err := twilio.New(&twilio.Config{
			AccountSID: cfg.TwilioAccountSID,
			AuthToken:  cfg.TwilioAuthToken,
			From:       cfg.TwilioFrom,
			Logger:     zl.Named("twilio"),
		})
		if err != nil {
			return fmt.Errorf("failed to create twilio client: %w", err)
		}
		senders[messaging.ChannelWhatsApp] = twilioClient
	} else {
		zl.Warn("TWILIO_ACCOUNT_SID/TWILIO_AUTH_TOKEN not set, WhatsApp replies are only logged")
		senders[messaging.ChannelWhatsApp] = messaging.NewLogSender(messaging.ChannelWhatsApp, zl.Named("whatsapp"))
	}

	var discordSender *discord.Sender
	discordSession, err := newDiscordSession(cfg)
	if err != nil {
		return err
	}
	if discordSession != nil {
		discordSender, err = discord.NewSender(discordSession)
		if err != nil {
			return fmt.Errorf("failed to create discord sender: %w", err)
		}
		senders[messaging.ChannelDiscord] = discordSender
	}

	messagingSvc, err := messaging.New(&messaging.Config{
		ConversationService: conversationSvc,
		Senders:             senders,
		UUIDGenerator:       uuid.New(),
		Logger:              zl.Named("messaging"),
	})
	if err != nil {
		return fmt.Errorf("failed to create messaging service: %w", err)
	}

	// Transports
	handler, err := web.New(&web.Config{
		MessagingService:   messagingSvc,
		ReservationService: reservationSvc,
		Logger:             zl.Named("http"),
	})
	if err != nil {
		return fmt.Errorf("failed to create http handlers: %w", err)
	}

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Port,
		Handler:           web.NewRouter(handler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		zl.Info("starting http server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	var bot *discord.Bot
	if discordSession != nil {
		bot, err = discord.New(&discord.Config{
			Session:          discordSession,
			ApplicationID:    cfg.DiscordApplicationID,
			GuildID:          cfg.DiscordGuildID,
			MessagingService: messagingSvc,
			Logger:           zl.Named("discord"),
		})
		if err != nil {
			return fmt.Errorf("failed to create discord bot: %w", err)
		}
		if err := bot.Start(); err != nil {
			return fmt.Errorf("failed to start discord bot: %w", err)
		}
	}

	// Keep the bot running until interrupted or the server dies
	select {
	case <-ctx.Done():
		zl.Info("shutting down")
	case err := <-serverErr:
		if err != nil {
			zl.Error("http server failed", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	// Stop intake first, then drain what was already accepted
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("http server forced to shutdown", zap.Error(err))
	}
	if bot != nil {
		if err := bot.Stop(); err != nil {
			zl.Error("failed to stop discord bot", zap.Error(err))
		}
	}
	if err := messagingSvc.Shutdown(shutdownCtx); err != nil {
		zl.Error("queued messages were dropped", zap.Error(err))
	}

	zl.Info("stopped gracefully")
	return nil
}

// newReservationRepository uses Postgres when DATABASE_URL is set and memory otherwise
func newReservationRepository(ctx context.Context, cfg *config.Config, zl *zap.Logger) (reservationRepo.Repository, func(), error) {
	if cfg.DatabaseURL == "" {
		zl.Warn("DATABASE_URL not set, reservations are kept in memory")
		repo, err := reservationRepo.NewMemory(&reservationRepo.MemoryConfig{Clock: clock.New()})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create memory reservation repository: %w", err)
		}
		return repo, func() {}, nil
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.StorageTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	if err := migrations.Apply(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	repo, err := reservationRepo.NewPostgres(&reservationRepo.PostgresConfig{Pool: pool})
	if err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("failed to create postgres reservation repository: %w", err)
	}

	zl.Info("using postgres reservation repository")
	return repo, pool.Close, nil
}

// newLockRepository uses Redis when REDIS_ADDR is set so several replicas can share senders
func newLockRepository(cfg *config.Config, zl *zap.Logger) (lockRepo.Repository, func(), error) {
	if cfg.RedisAddr == "" {
		return lockRepo.NewMemory(), func() {}, nil
	}

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	repo, err := lockRepo.NewRedis(&lockRepo.RedisConfig{
		RedisClient:   redisClient,
		UUIDGenerator: uuid.New(),
	})
	if err != nil {
		_ = redisClient.Close()
		return nil, nil, fmt.Errorf("failed to create redis lock repository: %w", err)
	}

	zl.Info("using redis sender lock", zap.String("addr", cfg.RedisAddr))
	return repo, func() { _ = redisClient.Close() }, nil
}

func newDiscordSession(cfg *config.Config) (*discordgo.Session, error) {
	if !cfg.DiscordEnabled() {
		return nil, nil
	}

	session, err := discord.NewSession(cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	return session, nil
}
