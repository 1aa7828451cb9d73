package alert

import (
	"fmt"
	"testing"
	"time"

	"market-signal-sentry/internal/storage"
	"market-signal-sentry/pkg/types"
)

func newTestEngine() *Engine {
	e := NewEngine(storage.NewStateManager(types.RedisConfig{}), nil)
	e.now = func() time.Time {
		return time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
	}
	return e
}

func signalResult(symbol string, signal types.SignalType) types.AnalysisResult {
	strength := 0
	if signal != types.SignalNeutral {
		strength = 3
	}
	return types.AnalysisResult{
		Symbol: symbol,
		Market: types.MarketCrypto,
		Verdict: &types.SignalVerdict{
			Signal:       signal,
			Strength:     strength,
			Reasons:      []string{"test reason"},
			CurrentPrice: 50000,
			EntryPrice:   50000,
			RSI:          42.5,
		},
	}
}

func TestCheck_DedupSequence(t *testing.T) {
	// 连续周期的信号序列与期望的预警时点：
	// 中性→中性不预警；转为方向性信号预警；方向信号重复不预警；
	// 强信号每轮都预警；回到中性（信号变化）预警
	sequence := []types.SignalType{
		types.SignalNeutral,
		types.SignalNeutral,
		types.SignalLong,
		types.SignalLong,
		types.SignalStrongLong,
		types.SignalStrongLong,
		types.SignalNeutral,
	}
	wantAlert := []bool{false, false, true, false, true, true, true}

	engine := newTestEngine()
	for i, signal := range sequence {
		alerts := engine.Check([]types.AnalysisResult{signalResult("BTCUSDT", signal)})
		if got := len(alerts) == 1; got != wantAlert[i] {
			t.Errorf("第%d轮 %s: alert=%v, want %v", i, signal, got, wantAlert[i])
		}
	}
}

func TestCheck_FirstDirectionalSignalAlerts(t *testing.T) {
	// 没有历史状态时视为中性，首个方向性信号立即预警
	engine := newTestEngine()
	alerts := engine.Check([]types.AnalysisResult{signalResult("ETHUSDT", types.SignalShort)})
	if len(alerts) != 1 {
		t.Fatalf("首个方向性信号应预警: %d", len(alerts))
	}
	if alerts[0].PreviousSignal != types.SignalNeutral {
		t.Errorf("上一轮信号应为中性: %s", alerts[0].PreviousSignal)
	}
}

func TestCheck_RecordFields(t *testing.T) {
	engine := newTestEngine()
	alerts := engine.Check([]types.AnalysisResult{signalResult("BTCUSDT", types.SignalLong)})
	if len(alerts) != 1 {
		t.Fatalf("应产生1条预警: %d", len(alerts))
	}

	record := alerts[0]
	if record.Symbol != "BTCUSDT" || record.Market != types.MarketCrypto {
		t.Errorf("标的信息错误: %+v", record)
	}
	if record.Signal != types.SignalLong || record.PreviousSignal != types.SignalNeutral {
		t.Errorf("信号转换错误: %s ← %s", record.Signal, record.PreviousSignal)
	}
	if record.Price != 50000 || record.RSI != 42.5 || record.Strength != 3 {
		t.Errorf("指标字段错误: %+v", record)
	}
	if !record.Timestamp.Equal(engine.now()) {
		t.Errorf("时间戳错误: %v", record.Timestamp)
	}
}

func TestCheck_SkipsFailedResults(t *testing.T) {
	engine := newTestEngine()
	failed := types.AnalysisResult{
		Symbol: "BTCUSDT",
		Market: types.MarketCrypto,
		Error:  "Failed to fetch data: timeout",
	}
	if alerts := engine.Check([]types.AnalysisResult{failed}); len(alerts) != 0 {
		t.Fatalf("失败标的不应预警: %d", len(alerts))
	}

	// 失败不污染状态：下一轮方向性信号仍按中性→LONG预警
	alerts := engine.Check([]types.AnalysisResult{signalResult("BTCUSDT", types.SignalLong)})
	if len(alerts) != 1 || alerts[0].PreviousSignal != types.SignalNeutral {
		t.Errorf("失败后的状态应保持中性: %+v", alerts)
	}
}

func TestHistory_Bounded(t *testing.T) {
	// 强信号每轮都预警，150轮后历史只保留最近100条
	engine := newTestEngine()
	for i := 0; i < 150; i++ {
		symbol := fmt.Sprintf("SYM%d", i)
		engine.Check([]types.AnalysisResult{signalResult(symbol, types.SignalStrongLong)})
	}

	history := engine.History(0)
	if len(history) != maxHistory {
		t.Fatalf("历史记录应截断为%d条: %d", maxHistory, len(history))
	}
	if history[len(history)-1].Symbol != "SYM149" {
		t.Errorf("末尾应为最新记录: %s", history[len(history)-1].Symbol)
	}
	if history[0].Symbol != "SYM50" {
		t.Errorf("首条应为第51轮的记录: %s", history[0].Symbol)
	}
}

func TestHistory_LimitAndCopy(t *testing.T) {
	engine := newTestEngine()
	for i := 0; i < 10; i++ {
		engine.Check([]types.AnalysisResult{signalResult(fmt.Sprintf("SYM%d", i), types.SignalStrongShort)})
	}

	history := engine.History(3)
	if len(history) != 3 || history[2].Symbol != "SYM9" {
		t.Fatalf("limit截取错误: %+v", history)
	}

	// 返回的是副本，修改不影响内部状态
	history[2].Symbol = "MUTATED"
	again := engine.History(3)
	if again[2].Symbol != "SYM9" {
		t.Errorf("History应返回副本: %s", again[2].Symbol)
	}
}
