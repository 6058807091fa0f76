package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"authbox/internal/config"
	"authbox/internal/database"
	"authbox/internal/mailer"
	"authbox/internal/middleware"
	"authbox/internal/modules/auth"
	"authbox/internal/modules/user"
	"authbox/internal/otp"
	jwtsvc "authbox/internal/pkg/jwt"
	"authbox/internal/repository"
	"authbox/internal/uow"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate failed: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewAuthTokenRepository(db)
	verificationRepo := repository.NewEmailVerificationRepository(db)

	unit := uow.New(db)
	gen := otp.NewGenerator()
	signer := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)
	mail := mailer.NewDevConsoleMailer(cfg.DevMailEnabled)

	userService := user.NewService(userRepo, user.NewBcryptHasher())
	tokenService := auth.NewTokenService(tokenRepo, gen, signer, cfg.RefreshTTL, cfg.RememberTTL)
	verificationService := auth.NewVerificationService(verificationRepo, gen, cfg.OTPCodeLength, cfg.OTPCodeTTL)

	registerUC := auth.NewRegistrationUseCase(unit, userService, verificationService, mail)
	authUC := auth.NewAuthUseCase(unit, userService, tokenService)

	authHandler := auth.NewHandler(registerUC, authUC, userService)

	r := gin.Default()
	r.Use(middleware.CORS(), middleware.ErrorLogger())

	r.GET("/health", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.Ping()
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.Auth(signer))
		{
			authHandler.RegisterProtectedRoutes(protected)
		}
	}

	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
