package main

import (
	"database/sql"
	"log"
	"net/http"

	_ "github.com/lib/pq"

	"weddinginvites/config"
	_ "weddinginvites/docs"
	authadapter "weddinginvites/internal/adapters/auth"
	emailadapter "weddinginvites/internal/adapters/email"
	httpdelivery "weddinginvites/internal/delivery/http"
	"weddinginvites/internal/delivery/http/controllers"
	"weddinginvites/internal/delivery/http/middleware"
	"weddinginvites/internal/repository/postgres"
	"weddinginvites/internal/services"
)

// @title weddinginvites API
// @version 1.0
// @description Personalized wedding invitation service: invite resolution, RSVPs, and the wishing wall.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatalf("ping database: %v", err)
	}

	// Repositories
	invitationRepo := postgres.NewInvitationRepository(db)
	guestRepo := postgres.NewGuestRepository(db)
	snapshotRepo := postgres.NewSnapshotRepository(db)
	rsvpRepo := postgres.NewRSVPRepository(db)
	wishRepo := postgres.NewWishRepository(db)
	hostRepo := postgres.NewHostRepository(db)

	// Adapters
	hasher := authadapter.NewBcryptHasher(10)
	issuer := authadapter.NewJWTIssuer(cfg.JWTSecret)
	verifier := authadapter.NewJWTVerifier(cfg.JWTSecret)
	mailer, err := emailadapter.NewMailer(logger, emailadapter.MailerConfig{
		Provider:    cfg.MailProvider,
		FromAddress: cfg.MailFromAddress,
		FromName:    cfg.MailFromName,
		SES: emailadapter.SESConfig{
			Region:          cfg.SESRegion,
			AccessKeyID:     cfg.SESAccessKeyID,
			SecretAccessKey: cfg.SESSecretKey,
		},
	})
	if err != nil {
		log.Fatalf("create mailer: %v", err)
	}

	// Services
	feed := services.NewFeedHub()
	emailService := services.NewEmailService(mailer, emailadapter.NewTemplateRenderer())
	invitationService := services.NewInvitationService(invitationRepo, guestRepo, feed, cfg.BaseURL)
	personalizer := services.NewPersonalizer(snapshotRepo, logger)
	rsvpService := services.NewRSVPService(rsvpRepo, invitationRepo, invitationService, hostRepo, emailService, feed, logger)
	wishService := services.NewWishService(wishRepo, invitationService, hostRepo, emailService, feed, services.WishLimits{
		MaxMessageLength: cfg.MaxWishLength,
		MaxPhotoBytes:    cfg.MaxWishPhotoBytes,
	}, logger)
	authService := services.NewAuthService(hostRepo, hasher, issuer, cfg.JWTExpiry)

	// Controllers
	inviteController := controllers.NewInviteController(logger, personalizer, invitationService, cfg.BaseURL)
	rsvpController := controllers.NewRSVPController(logger, rsvpService, invitationService)
	wishController := controllers.NewWishController(logger, wishService, invitationService, feed)
	authController := controllers.NewAuthController(logger, authService)

	mux := httpdelivery.NewRouter(inviteController, rsvpController, wishController, authController, verifier, logger)

	var handler http.Handler = mux
	handler = middleware.LoggingMiddleware(logger, handler)
	handler = middleware.CORS(cfg.EmbedAllowedOrigins, handler)

	logger.Info("starting server", "port", cfg.Port, "environment", cfg.Environment)
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
