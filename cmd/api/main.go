package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"roomfoodfinder/internal/adapter/api"
	"roomfoodfinder/internal/adapter/api/handler"
	apimiddleware "roomfoodfinder/internal/adapter/api/middleware"
	"roomfoodfinder/internal/adapter/api/router"
	"roomfoodfinder/internal/adapter/repository"
	"roomfoodfinder/internal/infrastructure/auth"
	"roomfoodfinder/internal/infrastructure/mongodb"
	"roomfoodfinder/internal/infrastructure/storage"
	"roomfoodfinder/internal/usecase"
	"roomfoodfinder/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	client, err := mongodb.NewClient(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.MongoDatabase)
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("Failed to ensure indexes: %v", err)
	}

	store, err := storage.NewLocalStorage(cfg.UploadDir, cfg.BaseURL+"/uploads")
	if err != nil {
		log.Fatalf("Failed to initialize upload storage: %v", err)
	}

	userRepo := repository.NewMongoUserRepository(db)
	listingRepo := repository.NewMongoListingRepository(db)
	bookingRepo := repository.NewMongoBookingRepository(db)
	reviewRepo := repository.NewMongoReviewRepository(db)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiry)

	authUseCase := usecase.NewAuthUseCase(userRepo, jwtManager, cfg.AdminSecret)
	userUseCase := usecase.NewUserUseCase(userRepo)
	listingUseCase := usecase.NewListingUseCase(listingRepo)
	bookingUseCase := usecase.NewBookingUseCase(bookingRepo, listingRepo, userRepo)
	reviewUseCase := usecase.NewReviewUseCase(reviewRepo, listingRepo, userRepo)
	adminUseCase := usecase.NewAdminUseCase(userRepo, listingRepo, bookingRepo, reviewRepo, reviewUseCase)

	handler.Setup(authUseCase, userUseCase, bookingUseCase, reviewUseCase, adminUseCase)
	handler.SetupListingHandler(listingUseCase, store)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	e.Static("/uploads", cfg.UploadDir)

	authMiddleware := apimiddleware.NewAuthMiddleware(jwtManager, userRepo)

	router.Setup(e, authMiddleware)

	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
