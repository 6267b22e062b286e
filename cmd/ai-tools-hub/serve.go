package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ashwinyue/ai-tools-hub/internal/database"
	"github.com/ashwinyue/ai-tools-hub/internal/handler"
	"github.com/ashwinyue/ai-tools-hub/internal/logger"
	"github.com/ashwinyue/ai-tools-hub/internal/repository"
	"github.com/ashwinyue/ai-tools-hub/internal/router"
	"github.com/ashwinyue/ai-tools-hub/internal/service"
)

var (
	mockMode    bool
	autoMigrate bool
)

// serveCmd 启动 HTTP 服务
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		// 设置 Gin 模式
		gin.SetMode(cfg.Server.Mode)

		if mockMode {
			logger.L().Warn("serving in-memory mock API, no database is used")
			return listen(router.SetupMockRouter(cfg))
		}

		// 初始化数据库
		db, err := database.New(cfg)
		if err != nil {
			return err
		}
		defer db.Close()
		logger.L().Info("database connected", zap.String("driver", cfg.Database.Driver))

		if autoMigrate {
			if err := db.Migrate(); err != nil {
				return err
			}
		}

		// 初始化 Redis，未启用时登出不记录令牌
		var redisClient *redis.Client
		if cfg.Redis.Enabled {
			redisClient = redis.NewClient(&redis.Options{
				Addr:     cfg.Redis.GetAddr(),
				Password: cfg.Redis.Password,
				DB:       cfg.Redis.DB,
			})
			defer redisClient.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), 3*time.Second)
			err := redisClient.Ping(ctx).Err()
			cancel()
			if err != nil {
				logger.L().Warn("redis unreachable, token revocation degraded", zap.Error(err))
			}
		}

		// 初始化各层
		repos := repository.NewRepositories(db.DB)
		services := service.NewServices(repos, cfg, redisClient)
		handlers := handler.NewHandlers(services)

		return listen(router.SetupRouter(handlers, services))
	},
}

func init() {
	serveCmd.Flags().BoolVar(&mockMode, "mock", false, "serve the built-in read-only dataset without a database")
	serveCmd.Flags().BoolVar(&autoMigrate, "migrate", false, "run schema migration before serving")
}

// listen 启动服务并在收到信号后优雅关闭
func listen(h http.Handler) error {
	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      h,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.L().Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// 等待中断信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	logger.L().Info("shutting down server")

	// 优雅关闭
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}

	logger.L().Info("server exited")
	return nil
}
