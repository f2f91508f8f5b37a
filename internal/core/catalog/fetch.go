package catalog

import (
	"context"
	"fmt"
	"time"

	"healthscan-api/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Fetcher 遠端目錄下載器
type Fetcher struct {
	client *resty.Client
}

// NewFetcher 創建遠端目錄下載器
func NewFetcher(timeout time.Duration) *Fetcher {
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(2).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "healthscan-api")

	return &Fetcher{client: client}
}

// FetchCatalog 由 URL 下載並解析目錄
// 與本地載入同一套降級策略：任何失敗都回傳空目錄
func (f *Fetcher) FetchCatalog(ctx context.Context, url string) []Item {
	data, err := f.fetch(ctx, url)
	if err != nil {
		common.LogWarn("Remote catalog fetch failed, empty catalog returned",
			zap.String("url", url),
			zap.Error(err),
		)
		return nil
	}
	return ParseCatalog(data)
}

// FetchStores 由 URL 下載並解析門市清單
func (f *Fetcher) FetchStores(ctx context.Context, url string) []Store {
	data, err := f.fetch(ctx, url)
	if err != nil {
		common.LogWarn("Remote stores fetch failed, empty store list returned",
			zap.String("url", url),
			zap.Error(err),
		)
		return nil
	}
	return ParseStores(data)
}

func (f *Fetcher) fetch(ctx context.Context, url string) ([]byte, error) {
	resp, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode())
	}
	return resp.Body(), nil
}
