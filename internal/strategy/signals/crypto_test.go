package signals

import (
	"testing"

	"market-signal-sentry/pkg/types"
)

// cryptoNeutralPair 构造不触发任何规则的快照
func cryptoNeutralPair() (latest, prev types.IndicatorSnapshot) {
	snap := types.IndicatorSnapshot{
		Close:      100,
		SMAShort:   102,
		SMALong:    98,
		EMAFast:    10,
		EMASlow:    10,
		RSI:        50,
		MACD:       1,
		MACDSignal: 1,
		BBUpper:    110,
		BBMiddle:   100,
		BBLower:    90,
		StochK:     50,
		StochD:     50,
		WilliamsR:  -50,
		ATR:        2,
	}
	return snap, snap
}

func TestEvaluateCrypto_NoClearSignals(t *testing.T) {
	latest, prev := cryptoNeutralPair()
	eval := EvaluateCrypto(latest, prev, cryptoProfile())

	if eval.Net != 0 || eval.Strength != 0 {
		t.Errorf("中性快照净得分应为0: net=%d strength=%d", eval.Net, eval.Strength)
	}
	if len(eval.Reasons) != 1 || eval.Reasons[0] != "No clear signals" {
		t.Errorf("无信号时应输出占位理由: %v", eval.Reasons)
	}
}

func TestEvaluateCrypto_RSI(t *testing.T) {
	latest, prev := cryptoNeutralPair()
	latest.RSI = 25
	eval := EvaluateCrypto(latest, prev, cryptoProfile())
	if eval.Net != 2 {
		t.Errorf("RSI超卖应+2: net=%d", eval.Net)
	}
	containsReason(t, eval.Reasons, "RSI Oversold - Potential Long")

	latest.RSI = 75
	eval = EvaluateCrypto(latest, prev, cryptoProfile())
	if eval.Net != -2 {
		t.Errorf("RSI超买应-2: net=%d", eval.Net)
	}
	containsReason(t, eval.Reasons, "RSI Overbought - Potential Short")
}

func TestEvaluateCrypto_MACDCrossover(t *testing.T) {
	latest, prev := cryptoNeutralPair()
	latest.MACD, latest.MACDSignal = 1.2, 1.0
	prev.MACD, prev.MACDSignal = 0.9, 1.0
	eval := EvaluateCrypto(latest, prev, cryptoProfile())
	if eval.Net != 3 {
		t.Errorf("MACD金叉应+3: net=%d", eval.Net)
	}
	containsReason(t, eval.Reasons, "MACD Bullish Crossover - Long Signal")

	latest.MACD, latest.MACDSignal = 0.8, 1.0
	prev.MACD, prev.MACDSignal = 1.1, 1.0
	eval = EvaluateCrypto(latest, prev, cryptoProfile())
	if eval.Net != -3 {
		t.Errorf("MACD死叉应-3: net=%d", eval.Net)
	}
	containsReason(t, eval.Reasons, "MACD Bearish Crossover - Short Signal")
}

func TestEvaluateCrypto_MACDNoRepeatWithoutCross(t *testing.T) {
	// 前一根已在信号线上方，不算新的金叉
	latest, prev := cryptoNeutralPair()
	latest.MACD, latest.MACDSignal = 1.2, 1.0
	prev.MACD, prev.MACDSignal = 1.1, 1.0
	eval := EvaluateCrypto(latest, prev, cryptoProfile())
	if eval.Net != 0 {
		t.Errorf("持续在信号线上方不应计分: net=%d reasons=%v", eval.Net, eval.Reasons)
	}
}

func TestEvaluateCrypto_EMACrossover(t *testing.T) {
	latest, prev := cryptoNeutralPair()
	latest.EMAFast, latest.EMASlow = 101, 100
	prev.EMAFast, prev.EMASlow = 99, 100
	eval := EvaluateCrypto(latest, prev, cryptoProfile())
	if eval.Net != 3 {
		t.Errorf("EMA金叉应+3: net=%d", eval.Net)
	}
	containsReason(t, eval.Reasons, "EMA Golden Cross - Strong Long")
}

func TestEvaluateCrypto_MAAlignment(t *testing.T) {
	latest, prev := cryptoNeutralPair()
	latest.Close, latest.SMAShort, latest.SMALong = 105, 103, 100
	eval := EvaluateCrypto(latest, prev, cryptoProfile())
	if eval.Net != 1 {
		t.Errorf("多头排列应+1: net=%d", eval.Net)
	}
	containsReason(t, eval.Reasons, "Price Above Moving Averages - Bullish")

	latest.Close, latest.SMAShort, latest.SMALong = 95, 97, 100
	eval = EvaluateCrypto(latest, prev, cryptoProfile())
	if eval.Net != -1 {
		t.Errorf("空头排列应-1: net=%d", eval.Net)
	}
	containsReason(t, eval.Reasons, "Price Below Moving Averages - Bearish")
}

func TestEvaluateCrypto_BullishConfluence(t *testing.T) {
	// 多条规则同时命中：RSI+2 MACD金叉+3 多头排列+1 EMA金叉+3 布林+1 随机+1 威廉+1 = 12
	latest, prev := cryptoNeutralPair()
	latest.RSI = 25
	latest.MACD, latest.MACDSignal = 1.2, 1.0
	prev.MACD, prev.MACDSignal = 0.9, 1.0
	latest.Close, latest.SMAShort, latest.SMALong = 105, 103, 100
	latest.EMAFast, latest.EMASlow = 101, 100
	prev.EMAFast, prev.EMASlow = 99, 100
	latest.BBLower = 106
	latest.StochK, latest.StochD = 15, 18
	latest.WilliamsR = -85

	eval := EvaluateCrypto(latest, prev, cryptoProfile())
	if eval.Net != 12 || eval.Strength != 12 {
		t.Errorf("共振得分错误: net=%d strength=%d", eval.Net, eval.Strength)
	}
	if len(eval.Reasons) != 7 {
		t.Errorf("应有7条理由: %v", eval.Reasons)
	}
	if got := Classify(eval.Net, cryptoProfile()); got != types.SignalStrongLong {
		t.Errorf("应分类为强多: %s", got)
	}
}

func TestEvaluateCrypto_StrengthIsAbsolute(t *testing.T) {
	latest, prev := cryptoNeutralPair()
	latest.RSI = 75
	latest.WilliamsR = -10
	eval := EvaluateCrypto(latest, prev, cryptoProfile())
	if eval.Net != -3 || eval.Strength != 3 {
		t.Errorf("强度应为净得分绝对值: net=%d strength=%d", eval.Net, eval.Strength)
	}
}
