package main

import (
	"context"
	"log"

	"github.com/sngm3741/student-survey/api/internal/config"
	"github.com/sngm3741/student-survey/api/internal/infrastructure"
	"github.com/sngm3741/student-survey/api/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("設定の読み込みに失敗しました: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	store, err := infrastructure.Open(ctx, cfg)
	if err != nil {
		cfg.ServerLog.Fatalf("ストアの初期化に失敗しました (backend=%s): %v", cfg.StoreBackend, err)
	}

	app := server.New(cfg, store)
	if err := app.Run(); err != nil {
		log.Fatalf("サーバー起動に失敗: %v", err)
	}
}
