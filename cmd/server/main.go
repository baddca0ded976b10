package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"nzwalks-api/internal/auth"
	"nzwalks-api/internal/config"
	apphttp "nzwalks-api/internal/http"
	"nzwalks-api/internal/identity"
	"nzwalks-api/internal/repository/sqlite"
	"nzwalks-api/internal/service"
	"nzwalks-api/internal/storage"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	issuer, err := auth.NewIssuer(
		[]byte(cfg.JWT.Secret),
		cfg.JWT.Issuer,
		cfg.JWT.Audience,
		time.Duration(cfg.JWT.TTLMinutes)*time.Minute,
	)
	if err != nil {
		logger.Fatalf("token issuer: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	userRepo := sqlite.NewUserRepository(db)
	regionRepo := sqlite.NewRegionRepository(db)
	walkRepo := sqlite.NewWalkRepository(db)
	difficultyRepo := sqlite.NewDifficultyRepository(db)
	imageRepo := sqlite.NewImageRepository(db)

	// regions before walks: the walks schema references regions
	if err := userRepo.Init(ctx); err != nil {
		logger.Fatalf("init user repository: %v", err)
	}
	if err := regionRepo.Init(ctx); err != nil {
		logger.Fatalf("init region repository: %v", err)
	}
	if err := walkRepo.Init(ctx); err != nil {
		logger.Fatalf("init walk repository: %v", err)
	}
	if err := imageRepo.Init(ctx); err != nil {
		logger.Fatalf("init image repository: %v", err)
	}

	store := identity.NewStore(userRepo)
	authService := service.NewAuthService(store, issuer)
	walkService := service.NewWalkService(walkRepo)
	regionService := service.NewRegionService(regionRepo)

	storageSvc, err := buildStorage(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("setup storage: %v", err)
	}
	imageService := service.NewImageService(imageRepo, storageSvc)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	handler := apphttp.NewHandler(
		authService,
		walkService,
		regionService,
		imageService,
		difficultyRepo,
		issuer,
		logger,
	)
	handler.RegisterRoutes(router)

	if cfg.Storage.Driver == "local" {
		router.Static("/images", cfg.Storage.LocalDir)
	}

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
}

func buildStorage(ctx context.Context, cfg config.Config, logger *logrus.Logger) (storage.Service, error) {
	switch cfg.Storage.Driver {
	case "local":
		logger.Infof("using local image storage at %s", cfg.Storage.LocalDir)
		return storage.NewLocalService(cfg.Storage.LocalDir, cfg.Storage.BaseURL)
	case "s3":
		if cfg.Storage.Bucket == "" {
			return nil, fmt.Errorf("storage bucket is required")
		}

		loadOpts := []func(*awscfg.LoadOptions) error{
			awscfg.WithRegion(cfg.Storage.Region),
		}
		if cfg.AWS.Profile != "" {
			loadOpts = append(loadOpts, awscfg.WithSharedConfigProfile(cfg.AWS.Profile))
		}

		awsCfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}

		client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			if cfg.Storage.Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.Storage.Endpoint)
				o.UsePathStyle = true
			}
		})
		logger.Infof("using s3 bucket %s (region %s)", cfg.Storage.Bucket, cfg.Storage.Region)
		return storage.NewS3Service(client, cfg.Storage.Bucket, cfg.Storage.KeyPrefix, cfg.Storage.Region, cfg.Storage.BaseURL)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
