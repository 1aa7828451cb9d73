package indicators

import (
	"math"

	"market-signal-sentry/pkg/types"
)

// Stochastic 随机震荡指标，返回%K与%D序列
// 区间内高低价相等时%K取50
func Stochastic(candles []types.Candle, period, smooth int) (k, d []float64) {
	k = make([]float64, len(candles))
	d = make([]float64, len(candles))
	if period <= 0 || len(candles) < period {
		return
	}

	for i := period - 1; i < len(candles); i++ {
		highest, lowest := rangeHighLow(candles[i-period+1 : i+1])
		if highest == lowest {
			k[i] = 50
			continue
		}
		k[i] = (candles[i].Close - lowest) / (highest - lowest) * 100
	}

	d = SMA(k, smooth)
	return
}

// WilliamsR 威廉指标序列，区间内高低价相等时取-50
func WilliamsR(candles []types.Candle, period int) []float64 {
	out := make([]float64, len(candles))
	if period <= 0 || len(candles) < period {
		return out
	}

	for i := period - 1; i < len(candles); i++ {
		highest, lowest := rangeHighLow(candles[i-period+1 : i+1])
		if highest == lowest {
			out[i] = -50
			continue
		}
		out[i] = (highest - candles[i].Close) / (highest - lowest) * -100
	}
	return out
}

// CCI 顺势指标序列，平均绝对偏差为0时取0
func CCI(candles []types.Candle, period int) []float64 {
	out := make([]float64, len(candles))
	if period <= 0 || len(candles) < period {
		return out
	}

	tp := make([]float64, len(candles))
	for i, c := range candles {
		tp[i] = (c.High + c.Low + c.Close) / 3
	}
	tpSMA := SMA(tp, period)

	for i := period - 1; i < len(candles); i++ {
		meanDev := 0.0
		for j := i - period + 1; j <= i; j++ {
			meanDev += math.Abs(tp[j] - tpSMA[i])
		}
		meanDev /= float64(period)
		if meanDev == 0 {
			continue
		}
		out[i] = (tp[i] - tpSMA[i]) / (0.015 * meanDev)
	}
	return out
}

// MFI 资金流量指标序列
// 负向资金流为0时取100，正负都为0时取50
func MFI(candles []types.Candle, period int) []float64 {
	out := make([]float64, len(candles))
	if period <= 0 || len(candles) < period+1 {
		return out
	}

	tp := make([]float64, len(candles))
	for i, c := range candles {
		tp[i] = (c.High + c.Low + c.Close) / 3
	}

	for i := period; i < len(candles); i++ {
		positive := 0.0
		negative := 0.0
		for j := i - period + 1; j <= i; j++ {
			flow := tp[j] * candles[j].Volume
			if tp[j] > tp[j-1] {
				positive += flow
			} else if tp[j] < tp[j-1] {
				negative += flow
			}
		}
		switch {
		case negative == 0 && positive == 0:
			out[i] = 50
		case negative == 0:
			out[i] = 100
		default:
			out[i] = 100 - 100/(1+positive/negative)
		}
	}
	return out
}

func rangeHighLow(window []types.Candle) (highest, lowest float64) {
	highest = window[0].High
	lowest = window[0].Low
	for _, c := range window[1:] {
		if c.High > highest {
			highest = c.High
		}
		if c.Low < lowest {
			lowest = c.Low
		}
	}
	return highest, lowest
}
