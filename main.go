package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/beka-birhanu/labyrinth-api/api"
	gameapi "github.com/beka-birhanu/labyrinth-api/api/game"
	api_i "github.com/beka-birhanu/labyrinth-api/api/i"
	"github.com/beka-birhanu/labyrinth-api/api/identity"
	"github.com/beka-birhanu/labyrinth-api/config"
	"github.com/beka-birhanu/labyrinth-api/infrastruture/leaderboard"
	applog "github.com/beka-birhanu/labyrinth-api/infrastruture/log"
	"github.com/beka-birhanu/labyrinth-api/infrastruture/repo"
	"github.com/beka-birhanu/labyrinth-api/infrastruture/token"
	"github.com/beka-birhanu/labyrinth-api/oracle"
	"github.com/beka-birhanu/labyrinth-api/service"
	"github.com/beka-birhanu/labyrinth-api/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Global variables for dependencies
var (
	mongoClient    *mongo.Client
	redisClient    *redis.Client
	playerRepo     i.PlayerRepo
	board          i.Leaderboard
	locker         *redsync.Redsync
	mazeOracle     oracle.Proposer
	gameRunner     i.GameRunner
	mazeController api_i.Controller
	jwtTokenizer   i.Tokenizer
	authService    i.Authenticator
	authController api_i.Controller
	router         *api.Router
	appLogger      i.Logger
)

func initMongo(ctx context.Context) {
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%v", config.Envs.DBUser, config.Envs.DBPassword, config.Envs.DBHost, config.Envs.DBPort)

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	mongoClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Failed to connect to MongoDB: %v", err))
		os.Exit(1)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		appLogger.Error(fmt.Sprintf("MongoDB ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to MongoDB")
}

func initRedis(ctx context.Context) {
	redisClient = redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%d", config.Envs.RedisHost, config.Envs.RedisPort),
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Error(fmt.Sprintf("Redis ping failed: %v", err))
		os.Exit(1)
	}
	locker = redsync.New(goredis.NewPool(redisClient))
	appLogger.Info("Connected to Redis")
}

func initPlayerRepo(client *mongo.Client) {
	playerRepo = repo.NewPlayerRepo(client, config.Envs.DBName, "players")
	appLogger.Info("Player repository initialized")
}

func initLeaderboard() {
	var err error
	board, err = leaderboard.NewRedisLeaderboard(redisClient, "")
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating leaderboard: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Leaderboard initialized")
}

func initOracle() {
	mazeOracle = oracle.NewOpenAIClient(config.Envs.OpenAIAPIKey, config.Envs.OpenAIBaseURL, config.Envs.LLMModel)
	appLogger.Info("Oracle client initialized")
}

func initGameRunner() {
	runnerLogger, err := applog.New("RUNNER", config.ColorCyan, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating game runner logger: %v", err))
		os.Exit(1)
	}

	gameRunner, err = service.NewGameRunner(&service.Config{
		Proposer:       mazeOracle,
		Players:        playerRepo,
		Leaderboard:    board,
		Locker:         locker,
		Logger:         runnerLogger,
		MazeWidth:      config.Envs.MazeWidth,
		MazeHeight:     config.Envs.MazeHeight,
		OracleInterval: time.Duration(config.Envs.OracleIntervalMS) * time.Millisecond,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating game runner: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Game runner initialized")
}

func initMazeController() {
	var err error
	mazeController, err = gameapi.NewMazeController(gameRunner, board)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze controller: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Maze controller initialized")
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(config.Envs.JWTSecret, config.Envs.JWTIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initAuthService() {
	var err error
	authService, err = service.NewAuthService(playerRepo, jwtTokenizer)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating auth service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Auth service initialized")
}

func initAuthController() {
	authController = identity.NewIdentityServer(authService)
	appLogger.Info("Auth controller initialized")
}

func initRouter(t i.Tokenizer) {
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{authController, mazeController},
		AuthorizationMiddleware: identity.Authoriz(t),
	})
	appLogger.Info("Router initialized")
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel() // Ensure the context is always canceled

	// Initialize dependencies
	appLogger, _ = applog.New("APP", config.ColorGreen, os.Stdout)

	initMongo(ctx)
	defer func() {
		_ = mongoClient.Disconnect(ctx)
	}()

	initRedis(ctx)
	defer func() {
		_ = redisClient.Close()
	}()

	initPlayerRepo(mongoClient)
	initLeaderboard()
	initOracle()
	initGameRunner()
	defer gameRunner.StopAll()

	initMazeController()
	initJWTTokenizer()
	initAuthService()
	initAuthController()
	initRouter(jwtTokenizer)

	// Run HTTP server
	if err := router.Run(); err != nil {
		appLogger.Error(fmt.Sprintf("Starting server: %v", err))
		os.Exit(1)
	}

	// Allow time for cleanup operations (TODO: use WaitGroups instead)
	time.Sleep(2 * time.Second)
}
