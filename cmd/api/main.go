package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"portal/internal/config"
	"portal/internal/forecast"
	"portal/internal/handler"
	"portal/internal/infra/db"
	"portal/internal/infra/memstore"
	infraRepo "portal/internal/infra/repository"
	"portal/internal/notifier"
	repo "portal/internal/repository"
	"portal/internal/seed"
	"portal/internal/server"
	"portal/internal/usecase"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

type repositories struct {
	batches       repo.BatchRepository
	logs          repo.AdjustmentLogRepository
	orders        repo.OrderRepository
	varieties     repo.VarietyRepository
	plantings     repo.PlantingRepository
	harvests      repo.HarvestRepository
	notifications repo.NotificationRepository
}

func newMemoryRepositories() repositories {
	return repositories{
		batches:       memstore.NewBatchStore(),
		logs:          memstore.NewAdjustmentLogStore(),
		orders:        memstore.NewOrderStore(),
		varieties:     memstore.NewVarietyStore(),
		plantings:     memstore.NewPlantingStore(),
		harvests:      memstore.NewHarvestStore(),
		notifications: memstore.NewNotificationStore(),
	}
}

func newGormRepositories(dsn string) (repositories, error) {
	gormDB, err := db.Connect(dsn)
	if err != nil {
		return repositories{}, err
	}
	if err := db.Migrate(gormDB); err != nil {
		return repositories{}, err
	}
	return repositories{
		batches:       infraRepo.NewBatchGormRepository(gormDB),
		logs:          infraRepo.NewAdjustmentLogGormRepository(gormDB),
		orders:        infraRepo.NewOrderGormRepository(gormDB),
		varieties:     infraRepo.NewVarietyGormRepository(gormDB),
		plantings:     infraRepo.NewPlantingGormRepository(gormDB),
		harvests:      infraRepo.NewHarvestGormRepository(gormDB),
		notifications: infraRepo.NewNotificationGormRepository(gormDB),
	}, nil
}

func main() {
	// .envは無くても動く
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	var logger *zap.Logger
	if cfg.GoEnv == "prod" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	//Repository生成
	var repos repositories
	usingMemory := cfg.DatabaseURL == ""
	if usingMemory {
		repos = newMemoryRepositories()
		logger.Info("using in-memory store")
	} else {
		repos, err = newGormRepositories(cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("failed to connect database", zap.Error(err))
		}
		logger.Info("connected to database")
	}

	//usecaseに渡す部品
	idGen := &uuidGenerator{}
	clock := &realClock{}

	sink := notifier.NewEmailNotifier(notifier.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		User:     cfg.SMTPUser,
		Password: cfg.SMTPPassword,
		From:     cfg.EmailFrom,
		To:       cfg.EmailTo,
	}, logger)
	oracle := forecast.NewLinearOracle()

	//Usecase生成
	ledgerUC := usecase.NewLedgerUsecase(
		repos.batches, repos.logs, repos.notifications, sink,
		cfg.LowStockThreshold, idGen, clock, logger,
	)
	orderUC := usecase.NewOrderUsecase(repos.orders, ledgerUC, idGen, clock, logger)
	forecastUC := usecase.NewForecastUsecase(repos.orders, oracle, idGen, clock, logger)
	farmUC := usecase.NewFarmUsecase(repos.varieties, repos.plantings, repos.harvests, clock, logger)
	dashboardUC := usecase.NewDashboardUsecase(repos.varieties, repos.plantings, repos.harvests, repos.batches, repos.orders, clock)
	notificationUC := usecase.NewNotificationUsecase(repos.notifications, sink, idGen, clock, logger)

	//サンプルデータ（インメモリ起動時のみ）
	if cfg.SeedSampleData && usingMemory {
		seeder := seed.New(
			repos.varieties, repos.plantings, repos.harvests,
			repos.batches, repos.logs, repos.orders,
			idGen, clock, logger,
		)
		if err := seeder.Run(context.Background()); err != nil {
			logger.Fatal("failed to seed sample data", zap.Error(err))
		}
		logger.Info("seeded sample data")
	}

	//Handler生成
	handlers := server.Handlers{
		Inventory:    handler.NewInventoryHandler(ledgerUC),
		Order:        handler.NewOrderHandler(orderUC),
		Forecast:     handler.NewForecastHandler(forecastUC),
		Dashboard:    handler.NewDashboardHandler(dashboardUC),
		Farm:         handler.NewFarmHandler(farmUC),
		Notification: handler.NewNotificationHandler(notificationUC),
	}

	//Server起動
	logger.Info("starting server", zap.String("port", cfg.Port))
	if err := server.Start(":"+cfg.Port, cfg.FEURL, handlers); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
