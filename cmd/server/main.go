package main

import (
	"context"
	"database/sql"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/galaxyshop/shop/internal/adapter/handler"
	"github.com/galaxyshop/shop/internal/adapter/storage"
	"github.com/galaxyshop/shop/internal/core/service"
)

const (
	defaultHTTPPort  = ":8080"
	defaultGRPCPort  = ":50051"
	defaultMySQLDSN  = "root:root@tcp(localhost:3306)/galaxyshop?parseTime=true"
	defaultRedisAddr = "localhost:6379"
)

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mysqlDSN := getenv("MYSQL_DSN", defaultMySQLDSN)
	redisAddr := getenv("REDIS_ADDR", defaultRedisAddr)
	httpPort := getenv("HTTP_PORT", defaultHTTPPort)
	grpcPort := getenv("GRPC_PORT", defaultGRPCPort)

	// Initialize MySQL
	db, err := sql.Open("mysql", mysqlDSN)
	if err != nil {
		logger.Fatal("failed to connect mysql", zap.Error(err))
	}
	db.SetMaxOpenConns(50)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		logger.Fatal("failed to ping mysql", zap.Error(err))
	}
	logger.Info("connected to mysql")

	// Initialize Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		PoolSize: 100,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Fatal("failed to connect redis", zap.Error(err))
	}
	logger.Info("connected to redis")

	// Adapters
	productCache := storage.NewRedisProductCache(rdb)
	catalogStore := storage.NewMySQLCatalogStore(db)
	cartStore := storage.NewMySQLCartStore(db)
	orderStore := storage.NewMySQLOrderStore(db)

	// Services
	catalogService := service.NewCatalogService(catalogStore, productCache)
	cartService := service.NewCartService(cartStore, catalogService)
	checkoutService := service.NewCheckoutService(cartStore, orderStore)

	// gRPC health endpoint for readiness probes
	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	lis, err := net.Listen("tcp", grpcPort)
	if err != nil {
		logger.Fatal("failed to listen", zap.String("port", grpcPort), zap.Error(err))
	}

	go func() {
		logger.Info("gRPC health server listening", zap.String("port", grpcPort))
		if err := grpcServer.Serve(lis); err != nil {
			logger.Error("gRPC server error", zap.Error(err))
		}
	}()

	// HTTP API
	httpHandler := handler.NewHTTPHandler(cartService, checkoutService, catalogService, logger)
	mux := http.NewServeMux()
	httpHandler.Register(mux)

	httpServer := &http.Server{
		Addr:    httpPort,
		Handler: mux,
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("port", httpPort))
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	httpServer.Shutdown(shutdownCtx)
	logger.Info("HTTP server stopped")

	grpcServer.GracefulStop()
	logger.Info("gRPC server stopped")

	rdb.Close()
	db.Close()
	logger.Info("connections closed")
}
