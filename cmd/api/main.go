package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"merkato-backend/config"
	"merkato-backend/internal/delivery/http/middleware"
	v1 "merkato-backend/internal/delivery/http/v1"
	"merkato-backend/internal/infrastructure/cache"
	"merkato-backend/internal/repository/postgres"
	"merkato-backend/internal/usecase"
	"merkato-backend/pkg/logger"
	"merkato-backend/pkg/storage"
	"merkato-backend/pkg/utils"

	"github.com/NYTimes/gziphandler"
)

func main() {
	cfg := config.LoadConfig()
	utils.SetSecret(cfg.JWTSecret)

	logger.Init(cfg.Env, cfg.LogLevel)
	log := logger.Get()

	pgxPool, err := postgres.NewPgxPool(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	log.Info().Msg("Successfully connected to PostgreSQL")

	// Repositories
	userRepo := postgres.NewUserRepository(pgxPool)
	productRepo := postgres.NewProductRepository(pgxPool)
	categoryRepo := postgres.NewCategoryRepository(pgxPool)
	cartRepo := postgres.NewCartRepository(pgxPool)
	wishlistRepo := postgres.NewWishlistRepository(pgxPool)
	orderRepo := postgres.NewOrderRepository(pgxPool)
	txManager := postgres.NewTransactionManager(pgxPool)

	// In-memory cache: default expiration 30m, cleanup every 60m
	memCache := cache.NewMemoryCache(30*time.Minute, 60*time.Minute)

	mux := http.NewServeMux()

	// --- Modules Initialization ---

	// Auth Module
	authUC := usecase.NewAuthUsecase(userRepo, cfg.SessionExpiry, cfg.SessionRefreshAge)
	authHandler := v1.NewAuthHandler(authUC)

	// Storage Module (R2 avatars)
	r2Storage, err := storage.NewR2Storage(
		context.Background(),
		cfg.R2AccountID,
		cfg.R2AccessKeyID,
		cfg.R2AccessKeySecret,
		cfg.R2BucketName,
		cfg.R2PublicURL,
		cfg.R2UploadTimeout,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize R2 Storage")
	}
	uploadHandler := v1.NewUploadHandler(r2Storage, authUC, cfg.MaxUploadSizeMB)

	// Wishlist Module
	wishlistUC := usecase.NewWishlistUsecase(wishlistRepo)
	wishlistHandler := v1.NewWishlistHandler(wishlistUC)

	// Catalog Module
	catalogUC := usecase.NewCatalogUsecase(productRepo, categoryRepo, memCache, cfg)
	catalogHandler := v1.NewCatalogHandler(catalogUC, wishlistUC, cfg)

	// Cart Module
	cartUC := usecase.NewCartUsecase(cartRepo, cfg.MaxCartQuantity)
	cartHandler := v1.NewCartHandler(cartUC)

	// Order Module
	orderUC := usecase.NewOrderUsecase(orderRepo, cartRepo, txManager)
	orderHandler := v1.NewOrderHandler(orderUC)

	// Auth
	mux.HandleFunc("POST /api/v1/auth/register", authHandler.Register)
	mux.HandleFunc("GET /api/v1/auth/verify", authHandler.VerifyEmail)
	mux.HandleFunc("POST /api/v1/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/v1/auth/refresh", authHandler.Refresh)
	mux.HandleFunc("POST /api/v1/auth/logout", authHandler.Logout)
	mux.Handle("GET /api/v1/auth/me", middleware.AuthMiddleware(http.HandlerFunc(authHandler.Me)))

	// User Profile
	mux.Handle("PUT /api/v1/user/profile", middleware.AuthMiddleware(http.HandlerFunc(authHandler.UpdateProfile)))
	mux.Handle("POST /api/v1/user/avatar", middleware.AuthMiddleware(http.HandlerFunc(uploadHandler.UploadAvatar)))

	// Catalog (Public)
	mux.HandleFunc("GET /api/v1/categories", catalogHandler.GetMainCategories)
	mux.HandleFunc("GET /api/v1/categories/{mainId}/sub", catalogHandler.GetSubCategories)
	mux.HandleFunc("GET /api/v1/categories/sub/{subId}/end", catalogHandler.GetEndCategories)
	mux.HandleFunc("GET /api/v1/products", catalogHandler.ListProducts)
	mux.HandleFunc("GET /api/v1/products/{id}", catalogHandler.GetProduct)

	// Cart (Protected)
	mux.Handle("GET /api/v1/cart", middleware.AuthMiddleware(http.HandlerFunc(cartHandler.GetCart)))
	mux.Handle("POST /api/v1/cart", middleware.AuthMiddleware(http.HandlerFunc(cartHandler.AddToCart)))
	mux.Handle("PUT /api/v1/cart/{itemId}", middleware.AuthMiddleware(http.HandlerFunc(cartHandler.UpdateCartItem)))
	mux.Handle("DELETE /api/v1/cart/{itemId}", middleware.AuthMiddleware(http.HandlerFunc(cartHandler.RemoveCartItem)))

	// Wishlist (Protected)
	mux.Handle("GET /api/v1/wishlist", middleware.AuthMiddleware(http.HandlerFunc(wishlistHandler.GetMyWishlist)))
	mux.Handle("POST /api/v1/wishlist", middleware.AuthMiddleware(http.HandlerFunc(wishlistHandler.AddToWishlist)))
	mux.Handle("DELETE /api/v1/wishlist/{productId}", middleware.AuthMiddleware(http.HandlerFunc(wishlistHandler.RemoveFromWishlist)))

	// Orders (Protected)
	mux.Handle("GET /api/v1/orders", middleware.AuthMiddleware(http.HandlerFunc(orderHandler.GetMyOrders)))
	mux.Handle("POST /api/v1/checkout", middleware.AuthMiddleware(http.HandlerFunc(orderHandler.Checkout)))

	// Health Check
	healthHandler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok", "db": "connected"}`))
	}
	mux.HandleFunc("GET /api/v1/health", healthHandler)
	mux.HandleFunc("GET /health", healthHandler) // Support root health check for Load Balancers

	addr := fmt.Sprintf(":%s", cfg.Port)

	// Rate Limiter: 50 req/s, burst 100, cleanup every minute, TTL 3 minutes
	rateLimiter := middleware.NewRateLimiter(
		context.Background(),
		50,
		100,
		time.Minute,
		3*time.Minute,
	)

	// CORS, Request Logger, Rate Limit, Gzip
	handler := middleware.NewCORSMiddleware(cfg)(mux)
	handler = middleware.RequestLogger(handler)
	handler = rateLimiter.Middleware()(handler)
	handler = gziphandler.GzipHandler(handler)

	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	log.Info().Msgf("Server starting on %s", addr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down...")

	rateLimiter.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}
