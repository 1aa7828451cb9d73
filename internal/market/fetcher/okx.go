package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	okxcommon "github.com/nntaoli-project/goex/v2/okx/common"
	"go.uber.org/zap"

	"market-signal-sentry/pkg/types"
)

// OKXSource OKX行情数据源，作为币安的备用
// goex v2客户端负责交易对元信息，K线请求直接走自定义HTTP客户端以支持代理
type OKXSource struct {
	baseURL    string
	okxClient  *okxcommon.OKxV5
	httpClient *http.Client
}

// okxCandleResponse OKX K线API响应
type okxCandleResponse struct {
	Code string     `json:"code"`
	Msg  string     `json:"msg"`
	Data [][]string `json:"data"`
}

// NewOKXSource 创建OKX数据源
func NewOKXSource(httpClient *http.Client) *OKXSource {
	client := okxcommon.New()
	zap.L().Info("✅ 初始化goex v2 OKX客户端")

	return &OKXSource{
		baseURL:    "https://www.okx.com/api/v5/market",
		okxClient:  client,
		httpClient: httpClient,
	}
}

// Name 数据源名称
func (o *OKXSource) Name() string {
	return "okx"
}

// FetchCandles 获取K线数据
func (o *OKXSource) FetchCandles(ctx context.Context, symbol, interval string, limit int) ([]types.Candle, error) {
	instID := toInstID(symbol)
	requestURL := fmt.Sprintf("%s/candles?instId=%s&bar=%s&limit=%d",
		o.baseURL, instID, toOKXBar(interval), limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("创建HTTP请求失败: %v", err)
	}
	req.Header.Set("User-Agent", "Market-Signal-Sentry/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := o.httpClient.Do(req)
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

	var okxResp okxCandleResponse
	if err := json.Unmarshal(body, &okxResp); err != nil {
		return nil, fmt.Errorf("解析JSON失败: %v", err)
	}
	if okxResp.Code != "0" {
		return nil, fmt.Errorf("OKX API返回错误: code=%s, msg=%s", okxResp.Code, okxResp.Msg)
	}

	candles := make([]types.Candle, 0, len(okxResp.Data))
	for _, row := range okxResp.Data {
		candle, err := o.parseCandle(symbol, interval, row)
		if err != nil {
			zap.L().Warn("解析OKX K线数据失败", zap.Error(err))
			continue
		}
		candles = append(candles, candle)
	}

	// OKX返回从新到旧，反转为从旧到新
	for i, j := 0, len(candles)-1; i < j; i, j = i+1, j-1 {
		candles[i], candles[j] = candles[j], candles[i]
	}

	zap.L().Debug("✅ OKX K线数据获取完成",
		zap.String("symbol", symbol),
		zap.Int("received", len(candles)))

	return candles, nil
}

// parseCandle OKX K线格式: [ts, open, high, low, close, vol, ...]
func (o *OKXSource) parseCandle(symbol, interval string, row []string) (types.Candle, error) {
	if len(row) < 6 {
		return types.Candle{}, fmt.Errorf("K线数据格式不正确")
	}

	ts, err := strconv.ParseInt(row[0], 10, 64)
	if err != nil {
		return types.Candle{}, fmt.Errorf("解析时间戳失败: %v", err)
	}

	values := make([]float64, 5)
	for i := 1; i <= 5; i++ {
		v, err := strconv.ParseFloat(row[i], 64)
		if err != nil {
			return types.Candle{}, fmt.Errorf("解析K线第%d列失败: %v", i, err)
		}
		values[i-1] = v
	}

	openTime := time.UnixMilli(ts)
	return types.Candle{
		Symbol:    symbol,
		OpenTime:  openTime,
		CloseTime: openTime.Add(parseIntervalToDuration(interval)),
		Open:      values[0],
		High:      values[1],
		Low:       values[2],
		Close:     values[3],
		Volume:    values[4],
		Interval:  interval,
	}, nil
}

// toInstID 币安风格交易对转OKX instId，如 BTCUSDT -> BTC-USDT
func toInstID(symbol string) string {
	if strings.Contains(symbol, "-") {
		return symbol
	}
	for _, quote := range []string{"USDT", "USDC", "BTC", "ETH"} {
		if strings.HasSuffix(symbol, quote) && len(symbol) > len(quote) {
			return symbol[:len(symbol)-len(quote)] + "-" + quote
		}
	}
	return symbol
}

// toOKXBar OKX的小时级别bar使用大写H
func toOKXBar(interval string) string {
	switch interval {
	case "1h":
		return "1H"
	case "4h":
		return "4H"
	case "1d":
		return "1D"
	default:
		return interval
	}
}
