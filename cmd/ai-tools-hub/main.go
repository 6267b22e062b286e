package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ashwinyue/ai-tools-hub/internal/config"
	"github.com/ashwinyue/ai-tools-hub/internal/logger"
)

var (
	// 全局参数
	configPath string

	cfg *config.Config
)

// rootCmd 根命令
var rootCmd = &cobra.Command{
	Use:   "ai-tools-hub",
	Short: "AI tool directory API server",
	Long: `ai-tools-hub serves the AI tool directory API: tools, categories, tags,
roles, favorites and usage tracking, with bearer-token authentication.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		log, err := logger.Init(cfg.App.Environment, cfg.Log.Level)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		log.Debug("config loaded",
			zap.String("path", configPath),
			zap.String("environment", cfg.App.Environment),
			zap.String("database", cfg.Database.Driver),
		)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

func init() {
	defaultConfig := os.Getenv("CONFIG_PATH")
	if defaultConfig == "" {
		defaultConfig = "./configs/config.yaml"
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfig, "config file path")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
