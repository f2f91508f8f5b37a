package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"healthscan-api/internal/api"
	"healthscan-api/internal/core/catalog"
	"healthscan-api/internal/core/recommend"
	"healthscan-api/internal/infrastructure/config"
	"healthscan-api/internal/pkg/common"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// 載入 .env
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found")
	}

	// 載入設定
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化 logger（需在載入 config 後）
	if err := common.InitLogger(cfg.LogLevel); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	// 使用 logger 記錄啟動信息
	common.LogInfo("載入設定",
		zap.String("catalog_path", cfg.Catalog.Path),
		zap.String("stores_path", cfg.Catalog.StoresPath),
		zap.String("catalog_url", cfg.Catalog.URL),
	)

	// 載入目錄與門市：URL 優先，否則讀本地檔
	// 兩者任何失敗都只降級成空資料，服務照常啟動
	var items []catalog.Item
	var stores []catalog.Store
	if cfg.Catalog.URL != "" {
		fetcher := catalog.NewFetcher(cfg.Catalog.Timeout)
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Catalog.Timeout)
		items = fetcher.FetchCatalog(ctx, cfg.Catalog.URL)
		cancel()
	} else {
		items = catalog.LoadCatalog(cfg.Catalog.Path)
	}
	stores = catalog.LoadStores(cfg.Catalog.StoresPath)

	common.LogInfo("目錄載入完成",
		zap.Int("items", len(items)),
		zap.Int("stores", len(stores)),
	)
	if len(items) == 0 {
		common.LogWarn("目錄為空，推薦端點將回 503")
	}

	// 選擇會話儲存：預設行程內記憶體，多副本部署時切 Redis
	var sessions recommend.SessionStore
	if cfg.Session.RedisEnabled {
		redisStore, err := recommend.NewRedisStore(cfg.Session.RedisAddr, cfg.Session.IdleTTL)
		if err != nil {
			common.LogFatal("Failed to connect session Redis", zap.Error(err))
		}
		sessions = redisStore
	} else {
		sessions = recommend.NewMemoryStore(cfg.Session.IdleTTL, cfg.Session.CleanupInterval)
	}
	defer sessions.Close()

	// 初始化推薦服務
	recommendService := recommend.NewService(items, stores, sessions, recommend.Options{
		DefaultTopK: cfg.Recommend.DefaultTopK,
		PoolSize:    cfg.Recommend.PoolSize,
		PageSize:    cfg.Recommend.PageSize,
		MaxStores:   cfg.Recommend.MaxStores,
	})

	// 設置路由
	router, err := api.SetupRouter(cfg, recommendService)
	if err != nil {
		common.LogError("Failed to setup router", zap.Error(err))
		os.Exit(1)
	}

	// 設置 HTTP 服務器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// 啟動服務器
	go func() {
		common.LogInfo("啟動應用",
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.Bool("debug", cfg.App.Debug),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			common.LogError("Failed to start server",
				zap.Error(err),
			)
			os.Exit(1)
		}
	}()

	// 等待中斷信號
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo("Shutting down server...")

	// 設置關閉超時
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		common.LogError("Server forced to shutdown",
			zap.Error(err),
		)
		os.Exit(1)
	}

	common.LogInfo("Server exited")
}
