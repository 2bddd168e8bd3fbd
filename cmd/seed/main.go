package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sngm3741/student-survey/api/internal/config"
	"github.com/sngm3741/student-survey/api/internal/infrastructure"
	"github.com/sngm3741/student-survey/api/internal/survey/application"
)

type seedOptions struct {
	envName     string
	surveyCount int
	dropSurveys bool
	randomSeed  int64
}

func main() {
	opts := parseFlags()

	if err := loadEnvFiles(opts.envName); err != nil {
		log.Fatalf("環境変数の読み込みに失敗しました: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("設定の読み込みに失敗しました: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	store, err := infrastructure.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("ストアの初期化に失敗しました: %v", err)
	}
	defer func() {
		_ = store.Close(context.Background())
	}()

	svc := application.NewSurveyService(store)

	if opts.dropSurveys {
		removed, err := dropSurveys(ctx, svc)
		if err != nil {
			log.Fatalf("既存アンケートの削除に失敗しました: %v", err)
		}
		log.Printf("既存アンケートを削除しました: %d 件", removed)
	}

	rng := rand.New(rand.NewSource(opts.randomSeed))
	created := 0
	for _, cmd := range generateSurveys(rng, opts.surveyCount, time.Now()) {
		if _, err := svc.Create(ctx, cmd); err != nil {
			log.Fatalf("アンケートデータの挿入に失敗しました: %v", err)
		}
		created++
	}

	log.Printf("Seed 完了: surveys=%d backend=%s (env=%s seed=%d)", created, cfg.StoreBackend, opts.envName, opts.randomSeed)
}

func parseFlags() seedOptions {
	var opts seedOptions
	flag.StringVar(&opts.envName, "env", "local", "env ディレクトリ内の env ファイル名 (例: local, staging)")
	flag.IntVar(&opts.surveyCount, "surveys", 25, "生成するアンケート数")
	flag.BoolVar(&opts.dropSurveys, "drop", false, "既存アンケートを削除してから投入する")
	defaultSeed := time.Now().UnixNano()
	flag.Int64Var(&opts.randomSeed, "seed", defaultSeed, "乱数シード（再現用）")
	flag.Parse()

	if opts.surveyCount < 0 {
		opts.surveyCount = 0
	}
	return opts
}

// dropSurveys は全件取得してから 1 件ずつ削除する。バックエンドに依存しない手段のみ使う。
func dropSurveys(ctx context.Context, svc application.SurveyService) (int, error) {
	surveys, err := svc.List(ctx)
	if err != nil {
		return 0, err
	}
	for _, s := range surveys {
		if err := svc.Delete(ctx, s.ID); err != nil {
			return 0, fmt.Errorf("delete survey %d: %w", s.ID, err)
		}
	}
	return len(surveys), nil
}

// loadEnvFiles は env/shared.env と env/<envName>.env を読み込む。存在しないファイルは無視する。
func loadEnvFiles(envName string) error {
	base := filepath.Clean("env")
	files := []string{
		filepath.Join(base, "shared.env"),
		filepath.Join(base, fmt.Sprintf("%s.env", envName)),
	}
	for _, file := range files {
		if err := loadEnvFile(file); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return err
		}
	}
	return nil
}

func loadEnvFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%s の読み込みに失敗しました: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), `"'`)
		if _, exists := os.LookupEnv(key); exists {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return err
		}
	}
	return scanner.Err()
}
