package signals

import (
	"testing"

	"market-signal-sentry/pkg/types"
)

// vnNeutralPair 构造只留下RSI中性理由的快照
func vnNeutralPair() (latest, prev types.IndicatorSnapshot) {
	snap := types.IndicatorSnapshot{
		Close:       100,
		SMAFast:     99,
		SMAShort:    99,
		SMALong:     101,
		RSI:         50,
		MACD:        1,
		MACDSignal:  0.5,
		BBUpper:     110,
		BBMiddle:    100,
		BBLower:     90,
		StochK:      50,
		StochD:      50,
		VolumeRatio: 1.0,
	}
	prev = snap
	prev.MACD = 1 // 动量未改善，MACD规则不计分
	return snap, prev
}

func TestEvaluateVNStock_NeutralBaseline(t *testing.T) {
	latest, prev := vnNeutralPair()
	eval := EvaluateVNStock(latest, prev, vnProfile())

	if eval.Net != 0 || eval.BullishScore != 0 || eval.BearishScore != 0 {
		t.Errorf("中性快照得分应为0: net=%d bull=%d bear=%d reasons=%v",
			eval.Net, eval.BullishScore, eval.BearishScore, eval.Reasons)
	}
	// 强度下限为1
	if eval.Strength != 1 {
		t.Errorf("强度下限应为1: %d", eval.Strength)
	}
	containsReason(t, eval.Reasons, "RSI neutral at 50.0")
}

func TestEvaluateVNStock_TrendTiers(t *testing.T) {
	// 三均线完整排列±3，仅快慢线排列±2
	latest, prev := vnNeutralPair()
	latest.SMAFast, latest.SMAShort, latest.SMALong = 105, 100, 95
	latest.Close = 90 // 避免价格位置规则干扰: 90<100 且 90<95
	eval := EvaluateVNStock(latest, prev, vnProfile())
	if eval.BullishScore != 3 || eval.BearishScore != 2 {
		t.Errorf("强上升趋势: bull=%d bear=%d reasons=%v", eval.BullishScore, eval.BearishScore, eval.Reasons)
	}
	containsReason(t, eval.Reasons, "Strong uptrend: SMA 10 > 20 > 50")
	containsReason(t, eval.Reasons, "Price below key moving averages")

	latest, prev = vnNeutralPair()
	latest.SMAFast, latest.SMAShort = 102, 100
	eval = EvaluateVNStock(latest, prev, vnProfile())
	if eval.BullishScore != 2 {
		t.Errorf("温和上升趋势应+2: bull=%d", eval.BullishScore)
	}
	containsReason(t, eval.Reasons, "Mild uptrend: SMA 10 > 20")

	latest, prev = vnNeutralPair()
	latest.SMAFast, latest.SMAShort, latest.SMALong = 95, 100, 105
	latest.Close = 102 // 102>100 但 102<105，价格位置规则不触发
	eval = EvaluateVNStock(latest, prev, vnProfile())
	if eval.BearishScore != 3 {
		t.Errorf("强下降趋势应bear+3: bear=%d", eval.BearishScore)
	}
	containsReason(t, eval.Reasons, "Strong downtrend: SMA 10 < 20 < 50")
}

func TestEvaluateVNStock_StrongUptrend(t *testing.T) {
	// 趋势+3 价格位置+2 MACD动量+2 布林突破+1 放量确认+1 = 9
	latest, prev := vnNeutralPair()
	latest.SMAFast, latest.SMAShort, latest.SMALong = 105, 100, 95
	latest.Close = 110
	latest.BBUpper = 108
	latest.MACD, latest.MACDSignal = 2, 1
	prev.MACD = 1
	latest.VolumeRatio = 1.5

	eval := EvaluateVNStock(latest, prev, vnProfile())
	if eval.BullishScore != 9 || eval.BearishScore != 0 {
		t.Errorf("多头得分错误: bull=%d bear=%d reasons=%v", eval.BullishScore, eval.BearishScore, eval.Reasons)
	}
	if eval.Net != 9 || eval.Strength != 9 {
		t.Errorf("净得分错误: net=%d strength=%d", eval.Net, eval.Strength)
	}
	containsReason(t, eval.Reasons, "Price above key moving averages")
	containsReason(t, eval.Reasons, "MACD bullish with improving momentum")
	containsReason(t, eval.Reasons, "Bollinger Bands upward breakout")
	containsReason(t, eval.Reasons, "Strong volume confirmation")
	if got := Classify(eval.Net, vnProfile()); got != types.SignalStrongLong {
		t.Errorf("应分类为强多: %s", got)
	}
}

func TestEvaluateVNStock_VolumeOnWeakness(t *testing.T) {
	// 空头主导时放量记为弱势放量
	latest, prev := vnNeutralPair()
	latest.SMAFast, latest.SMAShort, latest.SMALong = 95, 100, 105
	latest.Close = 90
	latest.RSI = 75
	latest.MACD, latest.MACDSignal = -1, 0
	latest.BBLower = 92
	latest.VolumeRatio = 1.5

	eval := EvaluateVNStock(latest, prev, vnProfile())
	// bear: 趋势3 + 价格位置2 + RSI2 + MACD1 + 布林1 + 放量1 = 10
	if eval.BearishScore != 10 || eval.BullishScore != 0 {
		t.Errorf("空头得分错误: bull=%d bear=%d reasons=%v", eval.BullishScore, eval.BearishScore, eval.Reasons)
	}
	containsReason(t, eval.Reasons, "RSI overbought at 75.0")
	containsReason(t, eval.Reasons, "MACD bearish signal")
	containsReason(t, eval.Reasons, "High volume on weakness")
	if got := Classify(eval.Net, vnProfile()); got != types.SignalStrongShort {
		t.Errorf("应分类为强空: %s", got)
	}
}

func TestEvaluateVNStock_VolumeTieCountsAsWeakness(t *testing.T) {
	// 多空持平时放量按弱势处理
	latest, prev := vnNeutralPair()
	latest.VolumeRatio = 1.5

	eval := EvaluateVNStock(latest, prev, vnProfile())
	if eval.BearishScore != 1 || eval.BullishScore != 0 {
		t.Errorf("持平放量应bear+1: bull=%d bear=%d", eval.BullishScore, eval.BearishScore)
	}
	containsReason(t, eval.Reasons, "High volume on weakness")
	if got := Classify(eval.Net, vnProfile()); got != types.SignalNeutral {
		t.Errorf("净得分-1应为中性: %s", got)
	}
}

func TestEvaluateVNStock_BollingerSqueeze(t *testing.T) {
	latest, prev := vnNeutralPair()
	latest.BBUpper, latest.BBMiddle, latest.BBLower = 101, 100, 99.5
	// 带宽 1.5/100 = 0.015 < 0.1 → 收口提示，不计分
	eval := EvaluateVNStock(latest, prev, vnProfile())
	if eval.BullishScore != 0 || eval.BearishScore != 0 {
		t.Errorf("收口不应计分: bull=%d bear=%d", eval.BullishScore, eval.BearishScore)
	}
	containsReason(t, eval.Reasons, "Bollinger Bands squeeze - potential breakout")
}

func TestEvaluateVNStock_StrengthClampedAt10(t *testing.T) {
	// 全规则命中：趋势3+价格2+RSI2+MACD2+布林1+放量1+随机1 = 12 → 强度封顶10
	latest, prev := vnNeutralPair()
	latest.SMAFast, latest.SMAShort, latest.SMALong = 105, 100, 95
	latest.Close = 110
	latest.RSI = 25
	latest.MACD, latest.MACDSignal = 2, 1
	prev.MACD = 1
	latest.BBUpper = 108
	latest.VolumeRatio = 1.5
	latest.StochK, latest.StochD = 15, 15

	eval := EvaluateVNStock(latest, prev, vnProfile())
	if eval.BullishScore != 12 || eval.Net != 12 {
		t.Errorf("满分共振错误: bull=%d net=%d reasons=%v", eval.BullishScore, eval.Net, eval.Reasons)
	}
	if eval.Strength != 10 {
		t.Errorf("强度应封顶10: %d", eval.Strength)
	}
	containsReason(t, eval.Reasons, "RSI oversold at 25.0")
	containsReason(t, eval.Reasons, "Stochastic oversold")
}
