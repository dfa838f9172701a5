package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"courtside/internal/config"
	"courtside/internal/database"
	"courtside/internal/middleware"
	"courtside/internal/modules/auth"
	"courtside/internal/modules/booking"
	"courtside/internal/modules/catalog"
	"courtside/internal/modules/checkin"
	"courtside/internal/modules/roster"
	"courtside/internal/modules/schedule"
	"courtside/internal/notifier"
	jwtsvc "courtside/internal/pkg/jwt"
	"courtside/internal/pkg/qrtoken"
	"courtside/internal/repository"
)

func main() {
	_ = godotenv.Load()

	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("config load failed")
	}

	gin.SetMode(cfg.Server.Mode)

	db, err := database.Connect(cfg.Database.DSN)
	if err != nil {
		logrus.WithError(err).Fatal("database connection failed")
	}
	if err := repository.AutoMigrate(db); err != nil {
		logrus.WithError(err).Fatal("migration failed")
	}

	userRepo := repository.NewUserRepository(db)
	sportRepo := repository.NewSportRepository(db)
	configRepo := repository.NewConfigRepository(db)
	slotRepo := repository.NewSlotRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	playerRepo := repository.NewPlayerRepository(db)

	jwtService := jwtsvc.New(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	qrEngine := qrtoken.NewEngine(cfg.QR.Secret)

	var notifs notifier.Notifier = notifier.Noop{}
	if cfg.AMQP.URL != "" {
		amqpNotifier, err := notifier.NewAMQP(cfg.AMQP.URL, cfg.AMQP.Exchange)
		if err != nil {
			logrus.WithError(err).Fatal("amqp connection failed")
		}
		defer amqpNotifier.Close()
		notifs = amqpNotifier
	} else {
		logrus.Warn("amqp url not set, notifications disabled")
	}

	authHandler := auth.NewHandler(auth.NewService(userRepo, jwtService, qrEngine))
	catalogHandler := catalog.NewHandler(catalog.NewService(sportRepo, configRepo))
	scheduleHandler := schedule.NewHandler(schedule.NewService(sportRepo, configRepo, slotRepo))
	bookingHandler := booking.NewHandler(booking.NewService(bookingRepo, slotRepo, sportRepo, userRepo, qrEngine, notifs))
	rosterHandler := roster.NewHandler(roster.NewService(playerRepo, bookingRepo, slotRepo, sportRepo, userRepo, qrEngine, notifs, cfg.Booking.DefaultPlayerPassword))
	checkinHandler := checkin.NewHandler(checkin.NewService(playerRepo, bookingRepo, slotRepo, qrEngine))

	r := gin.New()
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.Server.CORSOrigins))

	v1 := r.Group("/api/v1")

	authed := v1.Group("/")
	authed.Use(middleware.Auth(jwtService))

	admin := v1.Group("/admin")
	admin.Use(middleware.Auth(jwtService), middleware.AdminOnly())

	authHandler.RegisterRoutes(v1, authed)
	catalogHandler.RegisterRoutes(v1, admin)
	scheduleHandler.RegisterRoutes(v1, admin)
	bookingHandler.RegisterRoutes(authed, admin)
	rosterHandler.RegisterRoutes(authed)
	checkinHandler.RegisterRoutes(authed, admin)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	go func() {
		logrus.WithField("addr", srv.Addr).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("server stopped")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logrus.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("shutdown failed")
	}
}
