package analyzer

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"market-signal-sentry/internal/market/fetcher"
	"market-signal-sentry/pkg/types"
)

// stubSource 可控的假数据源，按标的返回K线、错误或panic
type stubSource struct {
	candles     map[string][]types.Candle
	errSymbol   string
	panicSymbol string
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) FetchCandles(ctx context.Context, symbol, interval string, limit int) ([]types.Candle, error) {
	if symbol == s.panicSymbol {
		panic("数据源内部错误")
	}
	if symbol == s.errSymbol {
		return nil, errors.New("连接被拒绝")
	}
	return s.candles[symbol], nil
}

func cryptoTestProfile() types.MarketProfile {
	return types.MarketProfile{
		SMAShortPeriod:     20,
		SMALongPeriod:      50,
		EMAFastPeriod:      12,
		EMASlowPeriod:      26,
		MACDSignalPer:      9,
		RSIPeriod:          14,
		BollingerPeriod:    20,
		BollingerK:         2,
		StochPeriod:        14,
		StochSmooth:        3,
		WilliamsPeriod:     14,
		ATRPeriod:          14,
		ROCPeriod:          12,
		VolumePeriod:       20,
		RSIOversold:        30,
		RSIOverbought:      70,
		StochOversold:      20,
		StochOverbought:    80,
		WilliamsOversold:   -80,
		WilliamsOverbought: -20,
		StrongThreshold:    3,
		SignalThreshold:    1,
		StopLossATR:        2,
		TakeProfitATR:      3,
		PricePrecision:     4,
		MinBars:            50,
	}
}

func oscillatingCandles(symbol string, n int) []types.Candle {
	candles := make([]types.Candle, n)
	for i := range candles {
		close := 100 + 5*math.Sin(float64(i)/3)
		candles[i] = types.Candle{
			Symbol: symbol,
			Open:   close,
			High:   close + 1,
			Low:    close - 1,
			Close:  close,
			Volume: 1000 + float64(i),
		}
	}
	return candles
}

func newTestAnalyzer(source *stubSource, symbols ...string) *Analyzer {
	f := fetcher.New(source, nil, 1, 0)
	return New(types.MarketCrypto, f, cryptoTestProfile(), types.MarketConfig{
		Market:   types.MarketCrypto,
		Symbols:  symbols,
		Interval: "5m",
		Limit:    200,
	})
}

func TestAnalyzeSymbol_FetchError(t *testing.T) {
	source := &stubSource{errSymbol: "BTCUSDT"}
	a := newTestAnalyzer(source, "BTCUSDT")

	result := a.AnalyzeSymbol(context.Background(), "BTCUSDT")
	if !strings.HasPrefix(result.Error, "Failed to fetch data") {
		t.Errorf("抓取失败应返回错误描述: %q", result.Error)
	}
	if result.Verdict != nil {
		t.Errorf("失败时不应有判定结果: %+v", result.Verdict)
	}
}

func TestAnalyzeSymbol_InsufficientDataIsNeutral(t *testing.T) {
	// K线不足不算失败，输出中性判定
	source := &stubSource{candles: map[string][]types.Candle{
		"BTCUSDT": oscillatingCandles("BTCUSDT", 10),
	}}
	a := newTestAnalyzer(source, "BTCUSDT")

	result := a.AnalyzeSymbol(context.Background(), "BTCUSDT")
	if result.Error != "" {
		t.Fatalf("数据不足不应标记为失败: %q", result.Error)
	}
	verdict := result.Verdict
	if verdict == nil || verdict.Signal != types.SignalNeutral || verdict.Strength != 0 {
		t.Fatalf("应输出中性判定: %+v", verdict)
	}
	if len(verdict.Reasons) != 1 || verdict.Reasons[0] != "Insufficient data" {
		t.Errorf("理由错误: %v", verdict.Reasons)
	}
}

func TestAnalyzeSymbol_FullAnalysis(t *testing.T) {
	source := &stubSource{candles: map[string][]types.Candle{
		"BTCUSDT": oscillatingCandles("BTCUSDT", 60),
	}}
	a := newTestAnalyzer(source, "BTCUSDT")

	result := a.AnalyzeSymbol(context.Background(), "BTCUSDT")
	if result.Error != "" {
		t.Fatalf("分析不应失败: %q", result.Error)
	}
	verdict := result.Verdict
	if verdict == nil {
		t.Fatal("应有判定结果")
	}
	if verdict.RSI < 0 || verdict.RSI > 100 {
		t.Errorf("RSI应在0~100之间: %v", verdict.RSI)
	}
	if verdict.CurrentPrice <= 0 {
		t.Errorf("当前价应大于0: %v", verdict.CurrentPrice)
	}
	switch verdict.Signal {
	case types.SignalStrongLong, types.SignalLong, types.SignalNeutral,
		types.SignalShort, types.SignalStrongShort:
	default:
		t.Errorf("未知信号: %s", verdict.Signal)
	}
	if len(verdict.Reasons) == 0 {
		t.Error("理由列表不应为空")
	}
}

func TestAnalyzeAll_PartialFailureIsolated(t *testing.T) {
	source := &stubSource{
		candles: map[string][]types.Candle{
			"ETHUSDT": oscillatingCandles("ETHUSDT", 60),
		},
		errSymbol: "BTCUSDT",
	}
	a := newTestAnalyzer(source, "BTCUSDT", "ETHUSDT")

	results := a.AnalyzeAll(context.Background())
	if len(results) != 2 {
		t.Fatalf("应返回2个结果: %d", len(results))
	}
	if results[0].Error == "" {
		t.Error("BTCUSDT应失败")
	}
	if results[1].Error != "" || results[1].Verdict == nil {
		t.Errorf("ETHUSDT不应受影响: %+v", results[1])
	}
}

func TestAnalyzeAll_PanicRecovered(t *testing.T) {
	source := &stubSource{
		candles: map[string][]types.Candle{
			"ETHUSDT": oscillatingCandles("ETHUSDT", 60),
		},
		panicSymbol: "BTCUSDT",
	}
	a := newTestAnalyzer(source, "BTCUSDT", "ETHUSDT")

	results := a.AnalyzeAll(context.Background())
	if len(results) != 2 {
		t.Fatalf("panic不应中断其他标的: %d", len(results))
	}
	if !strings.HasPrefix(results[0].Error, "Analysis panic") {
		t.Errorf("panic应转为错误结果: %q", results[0].Error)
	}
	if results[1].Verdict == nil {
		t.Error("ETHUSDT应正常产出判定")
	}
}
