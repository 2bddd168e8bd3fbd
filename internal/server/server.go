package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sngm3741/student-survey/api/internal/config"
	"github.com/sngm3741/student-survey/api/internal/infrastructure"
	commonhttp "github.com/sngm3741/student-survey/api/internal/interfaces/http/common"
	surveyhttp "github.com/sngm3741/student-survey/api/internal/interfaces/http/surveys"
	"github.com/sngm3741/student-survey/api/internal/survey/application"
)

const corsAllowedMethods = "GET,POST,PUT,DELETE,OPTIONS"

// Server は HTTP サーバーのライフサイクルを管理し、アンケートハンドラへ依存注入するコンポジションルート。
type Server struct {
	logger         *log.Logger
	store          infrastructure.Store
	surveyService  application.SurveyService
	addr           string
	requestTimeout time.Duration
	allowedOrigins []string
}

// New は Config とストアを受け取り、アプリケーションサービスとハンドラを組み立てた Server を返す。
func New(cfg config.Config, store infrastructure.Store) *Server {
	logger := cfg.ServerLog
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		logger:         logger,
		store:          store,
		surveyService:  application.NewSurveyService(store),
		addr:           cfg.Addr,
		requestTimeout: cfg.RequestTimeout,
		allowedOrigins: append([]string(nil), cfg.AllowedOrigins...),
	}
}

// Router はミドルウェアとルーティングを組み立てた http.Handler を返す。
func (s *Server) Router() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(withCORS(s.allowedOrigins))
	router.Use(middleware.StripSlashes)

	router.Get("/healthz", s.healthHandler())
	surveyHandler := surveyhttp.NewHandler(surveyhttp.Config{
		Logger:         s.logger,
		SurveyService:  s.surveyService,
		RequestTimeout: s.requestTimeout,
	})
	router.Route("/api/surveys", surveyHandler.Register)

	return router
}

// Run は HTTP サーバーを起動し、シグナル受信まで待機する。
func (s *Server) Run() error {
	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Printf("HTTP サーバー起動: http://%s", s.addr)
		errChan <- httpServer.ListenAndServe()
	}()

	return waitForShutdown(httpServer, errChan, s)
}

// withCORS は許可されたオリジン情報をもとに CORS ヘッダーを付与するミドルウェアを返す。
func withCORS(origins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{})
	allowAll := false
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		if origin == "*" {
			allowAll = true
			continue
		}
		allowed[origin] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := strings.TrimSpace(r.Header.Get("Origin"))
			if origin == "" || (!allowAll && !originAllowed(origin, allowed)) {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", corsAllowedMethods)
			// 任意のヘッダーを許可するため、プリフライトで要求されたものをそのまま返す。
			if requested := strings.TrimSpace(r.Header.Get("Access-Control-Request-Headers")); requested != "" {
				w.Header().Set("Access-Control-Allow-Headers", requested)
				w.Header().Add("Vary", "Access-Control-Request-Headers")
			} else {
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			}
			w.Header().Set("Access-Control-Max-Age", "300")

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// originAllowed は指定された Origin が許可リストに含まれるか判定する。
func originAllowed(origin string, allowed map[string]struct{}) bool {
	_, ok := allowed[origin]
	return ok
}

// healthHandler はストアへの疎通確認を行い、監視系からのヘルスチェック要求に応える。
func (s *Server) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := s.store.Ping(ctx); err != nil {
			s.logger.Printf("ストアの疎通確認に失敗: %v", err)
			commonhttp.WriteJSON(s.logger, w, http.StatusServiceUnavailable, map[string]string{
				"status": "degraded",
				"error":  err.Error(),
			})
			return
		}

		commonhttp.WriteJSON(s.logger, w, http.StatusOK, map[string]string{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	}
}

// shutdown はストアの接続をタイムアウト付きで閉じる。
func (s *Server) shutdown(ctx context.Context) {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.store.Close(shutdownCtx); err != nil {
		s.logger.Printf("ストア切断時にエラー: %v", err)
	}
}

// waitForShutdown は ListenAndServe の終了と OS シグナルを監視し、graceful shutdown を実現する。
func waitForShutdown(httpServer *http.Server, errChan <-chan error, srv *Server) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	var runErr error
	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			srv.logger.Printf("サーバーが異常終了: %v", err)
			runErr = err
		}
	case sig := <-sigChan:
		srv.logger.Printf("シグナル %s を受信。サーバー停止処理を開始します。", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			srv.logger.Printf("サーバー停止時にエラー: %v", err)
		}
	}

	srv.shutdown(context.Background())
	return runErr
}
