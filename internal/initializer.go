package internal

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"commerce-core/internal/jobs"
	"commerce-core/internal/managers"
	"commerce-core/internal/routing"
)

const (
	port    = ":8080"
	envFile = ".env"
)

func Init() {
	err := godotenv.Load(envFile)
	if err != nil {
		log.Info("No .env file found, using environment variables from system")
	} else {
		log.Info("Loaded environment variables from .env file")
	}

	setLogLevel(os.Getenv("LOG_LEVEL"))

	// Connect to database
	pool := initializeDatabase()
	defer pool.Close()

	// Connect to the session cache
	redisClient := initializeRedis()
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Warn("Error closing session cache client: ", err)
		}
	}()

	// Initialize managers
	databaseMgr := managers.NewDatabaseManager(pool)
	sessionMgr := managers.NewSessionManager(redisClient)
	mailMgr := managers.NewMailManager()
	mediaMgr, err := managers.NewMediaManager()
	if err != nil {
		log.Fatal("Error initializing media manager: ", err)
	}
	jwtMgr, err := managers.NewJWTManagerFromEnv()
	if err != nil {
		log.Fatal("Error initializing JWT manager: ", err)
	}

	// Initialize router
	r := routing.InitRouter(databaseMgr, jwtMgr, mailMgr, sessionMgr, mediaMgr)
	log.Info("Initialized router")

	// Start the notification sweeper
	sweeperCtx, stopSweeper := context.WithCancel(context.Background())
	defer stopSweeper()
	go jobs.NewNotificationSweeper(pool).Run(sweeperCtx)

	server := &http.Server{
		Addr:    port,
		Handler: r,
	}

	// Handle interrupt signal gracefully
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)

		<-c
		log.Info("Server shutting down...")
		stopSweeper()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error("Error during shutdown: ", err)
		}
	}()

	log.Infof("Starting server on port %s...", port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("Error starting server: ", err)
	}
}

func initializeDatabase() *pgxpool.Pool {
	log.Info("Initializing database")

	var (
		dbHost     = os.Getenv("DB_HOST")
		dbPort     = os.Getenv("DB_PORT")
		dbUser     = os.Getenv("DB_USER")
		dbPassword = os.Getenv("DB_PASS")
		dbName     = os.Getenv("DB_NAME")
	)

	if dbHost == "" || dbPort == "" || dbUser == "" || dbPassword == "" || dbName == "" {
		log.Fatal("database environment variables not set")
	}

	url := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", dbHost, dbPort, dbUser, dbPassword, dbName)
	config, err := pgxpool.ParseConfig(url)
	if err != nil {
		log.Fatal("error configuring database: ", err)
	}

	config.MinConns = 5
	config.MaxConns = 30
	config.MaxConnIdleTime = time.Minute * 2
	config.HealthCheckPeriod = time.Minute * 1

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		log.Fatal("error connecting to database: ", err)
	}
	log.Info("Connected to database")
	return pool
}

func initializeRedis() *redis.Client {
	log.Info("Initializing session cache")

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		log.Fatal("REDIS_URL environment variable not set")
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatal("error configuring session cache: ", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Fatal("error connecting to session cache: ", err)
	}

	log.Info("Connected to session cache")
	return client
}

func setLogLevel(logLevel string) {
	switch logLevel {
	case "DEBUG":
		log.SetLevel(log.DebugLevel)
	case "INFO":
		log.SetLevel(log.InfoLevel)
	case "WARN":
		log.SetLevel(log.WarnLevel)
	case "ERROR":
		log.SetLevel(log.ErrorLevel)
	case "FATAL":
		log.SetLevel(log.FatalLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}

	log.SetReportCaller(true)
	log.SetOutput(os.Stdout)
}
