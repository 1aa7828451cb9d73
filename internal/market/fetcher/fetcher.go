package fetcher

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"market-signal-sentry/pkg/types"
)

// DataSource 单个行情数据源
type DataSource interface {
	Name() string
	FetchCandles(ctx context.Context, symbol, interval string, limit int) ([]types.Candle, error)
}

// Fetcher 带重试与备用数据源的K线获取器
// 主数据源失败后按次数递增退避重试，全部失败再切换备用数据源
type Fetcher struct {
	primary  DataSource
	fallback DataSource
	attempts int
	delay    time.Duration
	sleep    func(time.Duration)
}

// New 创建获取器，fallback可以为nil
func New(primary, fallback DataSource, attempts int, delay time.Duration) *Fetcher {
	if attempts <= 0 {
		attempts = 3
	}
	return &Fetcher{
		primary:  primary,
		fallback: fallback,
		attempts: attempts,
		delay:    delay,
		sleep:    time.Sleep,
	}
}

// FetchCandles 获取K线数据
func (f *Fetcher) FetchCandles(ctx context.Context, symbol, interval string, limit int) ([]types.Candle, error) {
	candles, err := f.fetchWithRetry(ctx, f.primary, symbol, interval, limit)
	if err == nil {
		return candles, nil
	}

	if f.fallback == nil {
		return nil, err
	}

	zap.L().Warn("⚠️ 主数据源失败，切换备用数据源",
		zap.String("symbol", symbol),
		zap.String("primary", f.primary.Name()),
		zap.String("fallback", f.fallback.Name()),
		zap.Error(err))

	candles, fallbackErr := f.fetchWithRetry(ctx, f.fallback, symbol, interval, limit)
	if fallbackErr != nil {
		return nil, fmt.Errorf("主数据源: %v; 备用数据源: %v", err, fallbackErr)
	}
	return candles, nil
}

func (f *Fetcher) fetchWithRetry(ctx context.Context, source DataSource, symbol, interval string, limit int) ([]types.Candle, error) {
	var lastErr error
	for attempt := 1; attempt <= f.attempts; attempt++ {
		if attempt > 1 {
			zap.L().Info("🔄 重试获取K线",
				zap.String("source", source.Name()),
				zap.String("symbol", symbol),
				zap.Int("attempt", attempt))
			// 次数递增退避
			f.sleep(time.Duration(attempt-1) * f.delay)
		}

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		candles, err := source.FetchCandles(ctx, symbol, interval, limit)
		if err != nil {
			lastErr = fmt.Errorf("获取K线失败(第%d次尝试): %v", attempt, err)
			continue
		}
		return candles, nil
	}
	return nil, lastErr
}

// NewHTTPClient 创建统一的HTTP客户端，支持代理
func NewHTTPClient(networkConfig types.NetworkConfig) *http.Client {
	timeout := networkConfig.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	client := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: false,
			},
		},
	}

	if networkConfig.Proxy != "" {
		proxyURL, err := url.Parse(networkConfig.Proxy)
		if err == nil {
			client.Transport.(*http.Transport).Proxy = http.ProxyURL(proxyURL)
			zap.L().Info("✅ 已配置HTTP代理", zap.String("proxy", networkConfig.Proxy))
		} else {
			zap.L().Warn("⚠️ 代理地址格式错误", zap.Error(err))
		}
	}

	return client
}

// parseIntervalToDuration 解析时间间隔字符串为Duration
func parseIntervalToDuration(interval string) time.Duration {
	switch interval {
	case "1m":
		return time.Minute
	case "3m":
		return 3 * time.Minute
	case "5m":
		return 5 * time.Minute
	case "15m":
		return 15 * time.Minute
	case "30m":
		return 30 * time.Minute
	case "1H", "1h":
		return time.Hour
	case "4H", "4h":
		return 4 * time.Hour
	case "1D", "1d":
		return 24 * time.Hour
	default:
		return 5 * time.Minute
	}
}
