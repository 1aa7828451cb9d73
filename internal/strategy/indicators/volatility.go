package indicators

import (
	"math"

	"market-signal-sentry/pkg/types"
)

// TrueRange 真实波幅序列
// 首根K线没有前收盘价，退化为high-low
func TrueRange(candles []types.Candle) []float64 {
	out := make([]float64, len(candles))
	if len(candles) == 0 {
		return out
	}

	out[0] = candles[0].High - candles[0].Low
	for i := 1; i < len(candles); i++ {
		hl := candles[i].High - candles[i].Low
		hc := math.Abs(candles[i].High - candles[i-1].Close)
		lc := math.Abs(candles[i].Low - candles[i-1].Close)
		out[i] = math.Max(hl, math.Max(hc, lc))
	}
	return out
}

// ATR 平均真实波幅序列（Wilder平滑）
// 以前period个真实波幅的简单平均作为种子
func ATR(candles []types.Candle, period int) []float64 {
	out := make([]float64, len(candles))
	if period <= 0 || len(candles) < period+1 {
		return out
	}

	tr := TrueRange(candles)
	sum := 0.0
	for i := 1; i <= period; i++ {
		sum += tr[i]
	}
	out[period] = sum / float64(period)

	for i := period + 1; i < len(candles); i++ {
		out[i] = (out[i-1]*float64(period-1) + tr[i]) / float64(period)
	}
	return out
}

// Bollinger 布林带三线，k为标准差倍数
func Bollinger(closes []float64, period int, k float64) (upper, middle, lower []float64) {
	upper = make([]float64, len(closes))
	middle = SMA(closes, period)
	lower = make([]float64, len(closes))
	if period <= 0 || len(closes) < period {
		return
	}

	for i := period - 1; i < len(closes); i++ {
		variance := 0.0
		for j := i - period + 1; j <= i; j++ {
			diff := closes[j] - middle[i]
			variance += diff * diff
		}
		std := math.Sqrt(variance / float64(period))
		upper[i] = middle[i] + k*std
		lower[i] = middle[i] - k*std
	}
	return
}

// Donchian 唐奇安通道，返回最新一根K线上的上轨/下轨/中轨
func Donchian(candles []types.Candle, period int) (high, low, middle float64) {
	if period <= 0 || len(candles) < period {
		return 0, 0, 0
	}

	window := candles[len(candles)-period:]
	high = window[0].High
	low = window[0].Low
	for _, c := range window[1:] {
		if c.High > high {
			high = c.High
		}
		if c.Low < low {
			low = c.Low
		}
	}
	return high, low, (high + low) / 2
}
