package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rapstation/config"
	"rapstation/database"
	reservationRepo "rapstation/database/repository/reservation"
	"rapstation/models"
	"rapstation/services/admin"
	"rapstation/services/booking"
	"rapstation/services/obfuscation"
	"rapstation/services/session"
	"rapstation/services/tasks"
	"rapstation/utils"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const (
	checkoutLockTTL   = 30 * time.Second
	devObfuscationKey = "rapstation-development-only"
)

// app holds the wired services shared by serve and worker.
type app struct {
	cfg       config.Config
	logger    *zap.Logger
	repo      reservationRepo.ReservationRepository
	sessions  session.SessionStore
	scheduler tasks.Scheduler
	booking   *booking.DefaultBookingService
	admin     *admin.DefaultAdminService
	checks    map[string]utils.HealthCheck
	closers   []func()
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func (a *app) redisQueueOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     a.cfg.RedisAddr,
		Password: a.cfg.RedisPassword,
		DB:       a.cfg.RedisQueueDB,
	}
}

// inMemory reports whether the process runs without external stores.
func (a *app) inMemory() bool {
	return a.cfg.StoreDriver == "memory"
}

func buildApp(ctx context.Context, cfg config.Config, logger *zap.Logger) (*app, error) {
	a := &app{cfg: cfg, logger: logger, checks: map[string]utils.HealthCheck{}}

	if err := a.openStore(ctx); err != nil {
		a.Close()
		return nil, err
	}
	if err := a.openSessions(ctx); err != nil {
		a.Close()
		return nil, err
	}

	obfKey := cfg.ObfuscationKey
	if obfKey == "" {
		if config.IsProduction() {
			a.Close()
			return nil, errors.New("OBFUSCATION_KEY must be set in production")
		}
		logger.Warn("OBFUSCATION_KEY not set, using the development key")
		obfKey = devObfuscationKey
	}

	jwtSecret := []byte(cfg.JWTSecret)
	if len(jwtSecret) == 0 {
		if config.IsProduction() {
			a.Close()
			return nil, errors.New("JWT_SECRET must be set in production")
		}
		logger.Warn("JWT_SECRET not set, admin tokens will not survive a restart")
		jwtSecret = []byte(uuid.NewString())
	}

	rate := cfg.HourlyRate
	if rate <= 0 {
		rate = booking.DefaultHourlyRate
	}
	pricer := booking.FlatHourly{Rate: rate}

	a.booking = &booking.DefaultBookingService{
		Repo:           a.repo,
		Sessions:       a.sessions,
		Pricer:         pricer,
		Cipher:         obfuscation.NewCipher(obfKey),
		Tasks:          a.scheduler,
		Logger:         logger.Named("booking"),
		HourLabels:     models.HourLabels,
		PlaceholderTTL: cfg.PlaceholderTTL,
		Location:       cfg.Location(),
	}
	a.admin = &admin.DefaultAdminService{
		Repo:         a.repo,
		Pricer:       pricer,
		Logger:       logger.Named("admin"),
		Username:     cfg.AdminUsername,
		PasswordHash: cfg.AdminPasswordHash,
		JWTSecret:    jwtSecret,
		HourLabels:   models.HourLabels,
	}
	return a, nil
}

func (a *app) openStore(ctx context.Context) error {
	switch a.cfg.StoreDriver {
	case "mongo", "":
		client, err := database.ConnectMongo(ctx, a.cfg.DatabaseURL, a.logger)
		if err != nil {
			return err
		}
		a.closers = append(a.closers, func() {
			dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(dctx)
		})
		repo := reservationRepo.NewMongoReservationRepo(client.Database(a.cfg.DatabaseName))
		if err := repo.EnsureIndexes(ctx); err != nil {
			return fmt.Errorf("ensure reservation indexes: %w", err)
		}
		a.repo = repo
		a.checks["mongo"] = func(ctx context.Context) error { return client.Ping(ctx, nil) }
	case "postgres":
		pool, err := database.OpenPostgres(ctx, a.cfg.PostgresURL, a.logger)
		if err != nil {
			return err
		}
		a.closers = append(a.closers, pool.Close)
		if err := database.MigratePostgres(ctx, pool, a.logger); err != nil {
			return err
		}
		a.repo = reservationRepo.NewPostgresReservationRepo(pool)
		a.checks["postgres"] = pool.Ping
	case "memory":
		a.logger.Warn("STORE_DRIVER=memory, reservations are lost on restart")
		a.repo = reservationRepo.NewMemoryReservationRepo()
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", a.cfg.StoreDriver)
	}
	return nil
}

func (a *app) openSessions(ctx context.Context) error {
	if a.inMemory() {
		a.sessions = session.NewMemorySessionStore(a.cfg.SessionTTL)
		a.scheduler = tasks.NoopScheduler{}
		return nil
	}

	client, err := utils.NewRedisClient(ctx, a.cfg.RedisAddr, a.cfg.RedisPassword, a.cfg.RedisCacheDB)
	if err != nil {
		return err
	}
	a.closers = append(a.closers, func() { _ = client.Close() })
	a.sessions = session.NewRedisSessionStore(client, a.cfg.SessionTTL, checkoutLockTTL)
	a.checks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }

	sched := tasks.NewAsynqScheduler(a.redisQueueOpt())
	a.closers = append(a.closers, func() { _ = sched.Close() })
	a.scheduler = sched
	return nil
}
