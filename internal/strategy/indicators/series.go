package indicators

// SMA 简单移动平均序列
// 前period-1个位置数据不足，填0
func SMA(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	if period <= 0 || len(values) < period {
		return out
	}

	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= period {
			sum -= values[i-period]
		}
		if i >= period-1 {
			out[i] = sum / float64(period)
		}
	}
	return out
}

// EMA 指数移动平均序列
// 以前period个值的简单平均作为种子，之后递推
func EMA(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	if period <= 0 || len(values) < period {
		return out
	}

	sum := 0.0
	for i := 0; i < period; i++ {
		sum += values[i]
	}
	out[period-1] = sum / float64(period)

	multiplier := 2.0 / float64(period+1)
	for i := period; i < len(values); i++ {
		out[i] = (values[i]-out[i-1])*multiplier + out[i-1]
	}
	return out
}

// RSI 相对强弱指标序列（Wilder平滑）
// 涨跌平均都为0时取50，仅跌幅为0时取100
func RSI(closes []float64, period int) []float64 {
	out := make([]float64, len(closes))
	if period <= 0 || len(closes) < period+1 {
		return out
	}

	avgGain := 0.0
	avgLoss := 0.0
	for i := 1; i <= period; i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)
	out[period] = rsiValue(avgGain, avgLoss)

	for i := period + 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		gain := 0.0
		loss := 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		out[i] = rsiValue(avgGain, avgLoss)
	}
	return out
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		if avgGain == 0 {
			return 50
		}
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}

// MACD 计算MACD三线
// MACD线 = 快线EMA - 慢线EMA，信号线 = MACD线的EMA，柱 = MACD线 - 信号线
func MACD(closes []float64, fastPeriod, slowPeriod, signalPeriod int) (macd, signal, histogram []float64) {
	macd = make([]float64, len(closes))
	signal = make([]float64, len(closes))
	histogram = make([]float64, len(closes))
	if len(closes) < slowPeriod {
		return
	}

	fast := EMA(closes, fastPeriod)
	slow := EMA(closes, slowPeriod)
	for i := slowPeriod - 1; i < len(closes); i++ {
		macd[i] = fast[i] - slow[i]
	}

	// 信号线只在MACD线成型之后开始计算
	signalPart := EMA(macd[slowPeriod-1:], signalPeriod)
	copy(signal[slowPeriod-1:], signalPart)

	for i := slowPeriod + signalPeriod - 2; i < len(closes); i++ {
		histogram[i] = macd[i] - signal[i]
	}
	return
}

// ROC 价格变动率序列，基准价为0时取0
func ROC(closes []float64, period int) []float64 {
	out := make([]float64, len(closes))
	if period <= 0 || len(closes) <= period {
		return out
	}

	for i := period; i < len(closes); i++ {
		base := closes[i-period]
		if base == 0 {
			continue
		}
		out[i] = (closes[i] - base) / base * 100
	}
	return out
}

// OBV 能量潮序列
func OBV(closes, volumes []float64) []float64 {
	out := make([]float64, len(closes))
	if len(closes) == 0 {
		return out
	}

	for i := 1; i < len(closes); i++ {
		switch {
		case closes[i] > closes[i-1]:
			out[i] = out[i-1] + volumes[i]
		case closes[i] < closes[i-1]:
			out[i] = out[i-1] - volumes[i]
		default:
			out[i] = out[i-1]
		}
	}
	return out
}
