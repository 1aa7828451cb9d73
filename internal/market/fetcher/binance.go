package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"market-signal-sentry/pkg/types"
)

// BinanceSource 币安现货K线数据源
type BinanceSource struct {
	baseURL    string
	httpClient *http.Client
}

// NewBinanceSource 创建币安数据源
func NewBinanceSource(httpClient *http.Client) *BinanceSource {
	return &BinanceSource{
		baseURL:    "https://api.binance.com/api/v3",
		httpClient: httpClient,
	}
}

// Name 数据源名称
func (b *BinanceSource) Name() string {
	return "binance"
}

// FetchCandles 获取K线数据
// 币安K线格式: [openTime, open, high, low, close, volume, closeTime, ...]
func (b *BinanceSource) FetchCandles(ctx context.Context, symbol, interval string, limit int) ([]types.Candle, error) {
	requestURL := fmt.Sprintf("%s/klines?symbol=%s&interval=%s&limit=%d",
		b.baseURL, symbol, interval, limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("创建HTTP请求失败: %v", err)
	}
	req.Header.Set("User-Agent", "Market-Signal-Sentry/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := b.httpClient.Do(req)
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

	var raw [][]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("解析JSON失败: %v", err)
	}

	candles := make([]types.Candle, 0, len(raw))
	for _, row := range raw {
		candle, err := b.parseKline(symbol, interval, row)
		if err != nil {
			zap.L().Warn("解析币安K线数据失败", zap.Error(err))
			continue
		}
		candles = append(candles, candle)
	}

	zap.L().Debug("✅ 币安K线数据获取完成",
		zap.String("symbol", symbol),
		zap.Int("requested", limit),
		zap.Int("received", len(candles)))

	return candles, nil
}

func (b *BinanceSource) parseKline(symbol, interval string, row []interface{}) (types.Candle, error) {
	if len(row) < 7 {
		return types.Candle{}, fmt.Errorf("K线数据格式不正确")
	}

	openMs, ok := row[0].(float64)
	if !ok {
		return types.Candle{}, fmt.Errorf("解析开盘时间失败")
	}
	closeMs, ok := row[6].(float64)
	if !ok {
		return types.Candle{}, fmt.Errorf("解析收盘时间失败")
	}

	prices := make([]float64, 5)
	for i := 1; i <= 5; i++ {
		s, ok := row[i].(string)
		if !ok {
			return types.Candle{}, fmt.Errorf("K线第%d列不是字符串", i)
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return types.Candle{}, fmt.Errorf("解析K线第%d列失败: %v", i, err)
		}
		prices[i-1] = v
	}

	return types.Candle{
		Symbol:    symbol,
		OpenTime:  time.UnixMilli(int64(openMs)),
		CloseTime: time.UnixMilli(int64(closeMs)),
		Open:      prices[0],
		High:      prices[1],
		Low:       prices[2],
		Close:     prices[3],
		Volume:    prices[4],
		Interval:  interval,
	}, nil
}
