package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"backoffice/cmd"
	"backoffice/internal/adapters/out/postgres/commentrepo"
	"backoffice/internal/adapters/out/postgres/csmessagerepo"
	"backoffice/internal/adapters/out/postgres/exceptionrepo"
	"backoffice/internal/adapters/out/postgres/phaserepo"
	"backoffice/internal/core/domain/model/courier"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := connectDatabase(configs)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     configs.RedisAddr,
		Password: configs.RedisPassword,
	})

	app := cmd.NewCompositionRoot(configs, gormDB, redisClient, logger)

	// The handler registry covers every known courier, not just those with
	// dictionary entries at boot.
	courierIDs := courier.KnownIDs()

	jobManager, err := app.CreateJobManager(courierIDs)
	if err != nil {
		log.Fatalf("Failed to create job manager: %v", err)
	}
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app, courierIDs, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:           goDotEnvVariable("HTTP_PORT"),
		DBHost:             goDotEnvVariable("DB_HOST"),
		DBPort:             goDotEnvVariable("DB_PORT"),
		DBUser:             goDotEnvVariable("DB_USER"),
		DBPassword:         goDotEnvVariable("DB_PASSWORD"),
		DBName:             goDotEnvVariable("DB_NAME"),
		DBSslMode:          goDotEnvVariable("DB_SSLMODE"),
		RedisAddr:          goDotEnvVariable("REDIS_ADDR"),
		RedisPassword:      goDotEnvVariable("REDIS_PASSWORD"),
		AutoCreateCronSpec: goDotEnvVariable("AUTO_CREATE_CRON_SPEC"),
		MonitoringCronSpec: goDotEnvVariable("MONITORING_CRON_SPEC"),
		SystemUserID:       goDotEnvInt64("SYSTEM_USER_ID"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func goDotEnvInt64(key string) int64 {
	value, err := strconv.ParseInt(goDotEnvVariable(key), 10, 64)
	if err != nil {
		log.Fatalf("Environment variable %s must be an integer: %v", key, err)
	}
	return value
}

func connectDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}

	// The deliveries table is synced by the order system; only the tables
	// owned by the exception workflow are migrated here.
	err = db.AutoMigrate(
		&exceptionrepo.ExceptionDTO{},
		&commentrepo.CommentDTO{},
		&csmessagerepo.CSMessageDTO{},
		&phaserepo.OrderPhaseDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	return db
}

func startWebServer(app cmd.CompositionRoot, courierIDs []courier.ID, port string) {
	server, err := app.CreateHTTPServer(courierIDs)
	if err != nil {
		log.Fatalf("Failed to create HTTP server: %v", err)
	}

	e := echo.New()
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
