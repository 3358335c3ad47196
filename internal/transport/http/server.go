package http

import (
	"context"
	"fmt"
	"log"
	stdhttp "net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/w24010/Mapmoments/internal/blob"
	"github.com/w24010/Mapmoments/internal/cache"
	"github.com/w24010/Mapmoments/internal/config"
	"github.com/w24010/Mapmoments/internal/database"
	"github.com/w24010/Mapmoments/internal/handler"
	"github.com/w24010/Mapmoments/internal/queue"
	appredis "github.com/w24010/Mapmoments/internal/redis"
	"github.com/w24010/Mapmoments/internal/repository"
	"github.com/w24010/Mapmoments/internal/service"
	"github.com/w24010/Mapmoments/internal/worker"
)

// blobRefs adapts the repositories to the worker's reference checks.
type blobRefs struct {
	mediaRepo repository.MediaRepository
	userRepo  repository.UserRepository
}

func (r *blobRefs) MediaExistsByBlobKey(ctx context.Context, blobKey string) (bool, error) {
	return r.mediaRepo.ExistsByBlobKey(ctx, blobKey)
}

func (r *blobRefs) ProfilePhotoExistsByBlobKey(ctx context.Context, blobKey string) (bool, error) {
	return r.userRepo.ExistsByProfilePhotoKey(ctx, blobKey)
}

func Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Connect to Database
	db, err := database.NewConnection(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// 3. Connect to Redis
	redisClient, err := appredis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	defer redisClient.Close()

	// 4. Blob storage (Cloudflare R2)
	blobStore, err := blob.NewS3Store(cfg)
	if err != nil {
		return fmt.Errorf("failed to create blob store: %w", err)
	}

	// 5. Repositories
	userRepo := repository.NewUserRepository(db)
	friendRepo := repository.NewFriendRepository(db)
	pinRepo := repository.NewPinRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	mediaRepo := repository.NewMediaRepository(db)
	eventRepo := repository.NewEventRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	// 6. Queue and cache
	publisher := queue.NewPublisher(redisClient.Raw())
	consumer := queue.NewConsumer(redisClient.Raw())
	trendingCache := cache.NewTrendingCache(redisClient.Raw())

	// 7. Services
	tokenService := service.NewTokenService(cfg)
	userService := service.NewUserService(userRepo, blobStore, publisher)
	visibilityService := service.NewVisibilityService(friendRepo)
	friendService := service.NewFriendService(friendRepo, userRepo)
	pinService := service.NewPinService(pinRepo, commentRepo, mediaRepo, visibilityService, blobStore, publisher)
	mediaService := service.NewMediaService(mediaRepo, pinRepo, blobStore, publisher)
	messageService := service.NewMessageService(messageRepo, friendRepo, userRepo)
	eventService := service.NewEventService(eventRepo)
	discoverService := service.NewDiscoverService(pinRepo, trendingCache)

	// 8. Cleanup workers
	workerHandler := worker.NewHandler(&blobRefs{mediaRepo: mediaRepo, userRepo: userRepo}, blobStore)
	manager := worker.NewManager(consumer, workerHandler, worker.DefaultManagerConfig())
	if err := manager.Start(ctx); err != nil {
		return fmt.Errorf("failed to start workers: %w", err)
	}
	defer manager.Stop()

	// 9. HTTP server
	router := NewRouter(RouterConfig{
		AuthHandler:     handler.NewAuthHandler(userService, tokenService),
		UserHandler:     handler.NewUserHandler(userService),
		PinHandler:      handler.NewPinHandler(pinService),
		MediaHandler:    handler.NewMediaHandler(mediaService),
		FriendHandler:   handler.NewFriendHandler(friendService),
		MessageHandler:  handler.NewMessageHandler(messageService),
		EventHandler:    handler.NewEventHandler(eventService),
		DiscoverHandler: handler.NewDiscoverHandler(discoverService),
		UserRepo:        userRepo,
		JWTSecret:       cfg.JWTSecret,
	})

	server := &stdhttp.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[Server] Listening on :%s", cfg.ServerPort)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("[Server] Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	return nil
}
