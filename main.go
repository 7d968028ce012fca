// @title WordQuiz API
// @version 1.0
// @description 单词测验后端：按模块出题、音频跟读、按序作答计分。

// @host localhost:8080
// @BasePath /api

package main

import (
	"flag"
	"log"
	"path/filepath"
	"wordquiz_backend/internal/app"
	"wordquiz_backend/internal/config"
	"wordquiz_backend/pkg/configwatcher"
	"wordquiz_backend/pkg/logger"
)

func main() {
	configDir := flag.String("config", "configs", "配置文件目录")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	// 测验默认参数支持热更新
	go configwatcher.WatchConfig(filepath.Join(*configDir, "config.yaml"), application.ReloadConfig)

	application.Run()
}
