package signals

import "market-signal-sentry/pkg/types"

// EvaluateCrypto 加密货币规则引擎
// 七组规则累加净得分，交叉类规则依赖前一根K线的快照
func EvaluateCrypto(latest, prev types.IndicatorSnapshot, profile types.MarketProfile) Evaluation {
	var reasons []string
	net := 0

	// RSI超买超卖
	if latest.RSI < profile.RSIOversold {
		reasons = append(reasons, "RSI Oversold - Potential Long")
		net += 2
	} else if latest.RSI > profile.RSIOverbought {
		reasons = append(reasons, "RSI Overbought - Potential Short")
		net -= 2
	}

	// MACD金叉死叉
	if latest.MACD > latest.MACDSignal && prev.MACD <= prev.MACDSignal {
		reasons = append(reasons, "MACD Bullish Crossover - Long Signal")
		net += 3
	} else if latest.MACD < latest.MACDSignal && prev.MACD >= prev.MACDSignal {
		reasons = append(reasons, "MACD Bearish Crossover - Short Signal")
		net -= 3
	}

	// 均线多空排列
	if latest.Close > latest.SMAShort && latest.SMAShort > latest.SMALong {
		reasons = append(reasons, "Price Above Moving Averages - Bullish")
		net++
	} else if latest.Close < latest.SMAShort && latest.SMAShort < latest.SMALong {
		reasons = append(reasons, "Price Below Moving Averages - Bearish")
		net--
	}

	// EMA金叉死叉
	if latest.EMAFast > latest.EMASlow && prev.EMAFast <= prev.EMASlow {
		reasons = append(reasons, "EMA Golden Cross - Strong Long")
		net += 3
	} else if latest.EMAFast < latest.EMASlow && prev.EMAFast >= prev.EMASlow {
		reasons = append(reasons, "EMA Death Cross - Strong Short")
		net -= 3
	}

	// 布林带突破
	if latest.Close < latest.BBLower {
		reasons = append(reasons, "Price Below Lower Bollinger Band - Oversold")
		net++
	} else if latest.Close > latest.BBUpper {
		reasons = append(reasons, "Price Above Upper Bollinger Band - Overbought")
		net--
	}

	// 随机指标双线确认
	if latest.StochK < profile.StochOversold && latest.StochD < profile.StochOversold {
		reasons = append(reasons, "Stochastic Oversold - Long Signal")
		net++
	} else if latest.StochK > profile.StochOverbought && latest.StochD > profile.StochOverbought {
		reasons = append(reasons, "Stochastic Overbought - Short Signal")
		net--
	}

	// 威廉指标
	if latest.WilliamsR < profile.WilliamsOversold {
		reasons = append(reasons, "Williams %R Oversold - Long Signal")
		net++
	} else if latest.WilliamsR > profile.WilliamsOverbought {
		reasons = append(reasons, "Williams %R Overbought - Short Signal")
		net--
	}

	if len(reasons) == 0 {
		reasons = []string{"No clear signals"}
	}

	strength := net
	if strength < 0 {
		strength = -strength
	}
	return Evaluation{Net: net, Strength: strength, Reasons: reasons}
}
