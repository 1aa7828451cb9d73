package risk

import (
	"math"
	"time"

	"market-signal-sentry/internal/strategy/signals"
	"market-signal-sentry/pkg/types"
)

// Package 封装最终判定结果
// 按ATR倍数计算进出场价位，只在封装时做展示精度取整，内部计算保持全精度
func Package(eval signals.Evaluation, latest types.IndicatorSnapshot, profile types.MarketProfile, now time.Time) *types.SignalVerdict {
	signal := signals.Classify(eval.Net, profile)

	currentPrice := latest.Close
	entryPrice := currentPrice
	stopLoss := 0.0
	takeProfit := 0.0

	switch {
	case signal.IsLong():
		stopLoss = currentPrice - profile.StopLossATR*latest.ATR
		takeProfit = currentPrice + profile.TakeProfitATR*latest.ATR
	case signal.IsShort():
		stopLoss = currentPrice + profile.StopLossATR*latest.ATR
		takeProfit = currentPrice - profile.TakeProfitATR*latest.ATR
	}

	// 价位不允许为负
	if stopLoss < 0 {
		stopLoss = 0
	}
	if takeProfit < 0 {
		takeProfit = 0
	}

	return &types.SignalVerdict{
		Signal:       signal,
		Strength:     eval.Strength,
		Reasons:      eval.Reasons,
		EntryPrice:   Round(entryPrice, profile.PricePrecision),
		StopLoss:     Round(stopLoss, profile.PricePrecision),
		TakeProfit:   Round(takeProfit, profile.PricePrecision),
		CurrentPrice: Round(currentPrice, profile.PricePrecision),
		RSI:          Round(latest.RSI, 2),
		MACD:         Round(latest.MACD, 6),
		ATR:          Round(latest.ATR, 2),
		CCI:          Round(latest.CCI, 2),
		VolumeRatio:  Round(latest.VolumeRatio, 2),
		MFI:          Round(latest.MFI, 2),
		BullishScore: eval.BullishScore,
		BearishScore: eval.BearishScore,
		Timestamp:    now,
	}
}

// InsufficientData 数据不足时的中性判定
func InsufficientData(now time.Time) *types.SignalVerdict {
	return &types.SignalVerdict{
		Signal:    types.SignalNeutral,
		Strength:  0,
		Reasons:   []string{"Insufficient data"},
		Timestamp: now,
	}
}

// Round 四舍五入到指定小数位
func Round(value float64, precision int) float64 {
	factor := math.Pow(10, float64(precision))
	return math.Round(value*factor) / factor
}
