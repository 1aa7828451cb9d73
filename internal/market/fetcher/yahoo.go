package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"market-signal-sentry/pkg/types"
)

// YahooSource 雅虎财经K线数据源，服务黄金与越南股票
// priceScale用于价格换算，越南股票以千盾为单位展示
type YahooSource struct {
	baseURL    string
	priceScale float64
	httpClient *http.Client
}

// yahooChartResponse 雅虎图表API响应
type yahooChartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// NewYahooSource 创建雅虎财经数据源
// priceScale为1表示原价，1000表示换算为千单位
func NewYahooSource(httpClient *http.Client, priceScale float64) *YahooSource {
	if priceScale <= 0 {
		priceScale = 1
	}
	return &YahooSource{
		baseURL:    "https://query1.finance.yahoo.com/v8/finance/chart",
		priceScale: priceScale,
		httpClient: httpClient,
	}
}

// Name 数据源名称
func (y *YahooSource) Name() string {
	return "yahoo"
}

// FetchCandles 获取K线数据
// 按时间粒度选取回看区间，空洞数据行直接跳过
func (y *YahooSource) FetchCandles(ctx context.Context, symbol, interval string, limit int) ([]types.Candle, error) {
	requestURL := fmt.Sprintf("%s/%s?interval=%s&range=%s",
		y.baseURL, url.PathEscape(symbol), toYahooInterval(interval), rangeForInterval(interval))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("创建HTTP请求失败: %v", err)
	}
	req.Header.Set("User-Agent", "Market-Signal-Sentry/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := y.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP请求失败: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP响应错误: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取响应体失败: %v", err)
	}

	var chartResp yahooChartResponse
	if err := json.Unmarshal(body, &chartResp); err != nil {
		return nil, fmt.Errorf("解析JSON失败: %v", err)
	}
	if chartResp.Chart.Error != nil {
		return nil, fmt.Errorf("雅虎API返回错误: %s - %s",
			chartResp.Chart.Error.Code, chartResp.Chart.Error.Description)
	}
	if len(chartResp.Chart.Result) == 0 || len(chartResp.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("雅虎API响应缺少数据: %s", symbol)
	}

	result := chartResp.Chart.Result[0]
	quote := result.Indicators.Quote[0]
	duration := parseIntervalToDuration(interval)

	candles := make([]types.Candle, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(quote.Open) || i >= len(quote.High) || i >= len(quote.Low) || i >= len(quote.Close) {
			break
		}
		// 停牌或缺失的时间点所有字段为null
		if quote.Open[i] == nil || quote.High[i] == nil || quote.Low[i] == nil || quote.Close[i] == nil {
			continue
		}

		volume := 0.0
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			volume = *quote.Volume[i]
		}

		openTime := time.Unix(ts, 0)
		candles = append(candles, types.Candle{
			Symbol:    symbol,
			OpenTime:  openTime,
			CloseTime: openTime.Add(duration),
			Open:      *quote.Open[i] / y.priceScale,
			High:      *quote.High[i] / y.priceScale,
			Low:       *quote.Low[i] / y.priceScale,
			Close:     *quote.Close[i] / y.priceScale,
			Volume:    volume,
			Interval:  interval,
		})
	}

	// 只保留最近limit根
	if limit > 0 && len(candles) > limit {
		candles = candles[len(candles)-limit:]
	}

	zap.L().Debug("✅ 雅虎K线数据获取完成",
		zap.String("symbol", symbol),
		zap.Int("received", len(candles)))

	return candles, nil
}

func toYahooInterval(interval string) string {
	switch interval {
	case "1m", "5m", "15m", "30m", "1h", "1d":
		return interval
	case "4h":
		return "1h"
	default:
		return "1h"
	}
}

// rangeForInterval 按粒度选择回看区间，保证拿到足够的K线
func rangeForInterval(interval string) string {
	switch interval {
	case "1m":
		return "1d"
	case "5m", "15m", "30m":
		return "5d"
	case "1h":
		return "1mo"
	case "4h":
		return "3mo"
	case "1d":
		return "1y"
	default:
		return "1mo"
	}
}
