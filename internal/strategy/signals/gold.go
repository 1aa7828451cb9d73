package signals

import "market-signal-sentry/pkg/types"

// EvaluateGold 黄金规则引擎
// 在通用指标规则之上叠加价格行为规则，RSI采用两级分层阈值
func EvaluateGold(latest, prev types.IndicatorSnapshot, profile types.MarketProfile) Evaluation {
	var reasons []string
	net := 0

	// RSI两级分层：极端区间权重更高
	switch {
	case latest.RSI < profile.RSIExtremeOversold:
		reasons = append(reasons, "RSI Deeply Oversold - Strong Long Signal")
		net += 3
	case latest.RSI < profile.RSIOversold:
		reasons = append(reasons, "RSI Oversold - Long Signal")
		net++
	case latest.RSI > profile.RSIExtremeOverbought:
		reasons = append(reasons, "RSI Severely Overbought - Strong Short Signal")
		net -= 3
	case latest.RSI > profile.RSIOverbought:
		reasons = append(reasons, "RSI Overbought - Short Signal")
		net--
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
		reasons = append(reasons, "Price Above Moving Averages - Bullish Trend")
		net += 2
	} else if latest.Close < latest.SMAShort && latest.SMAShort < latest.SMALong {
		reasons = append(reasons, "Price Below Moving Averages - Bearish Trend")
		net -= 2
	}

	// EMA金叉死叉
	if latest.EMAFast > latest.EMASlow && prev.EMAFast <= prev.EMASlow {
		reasons = append(reasons, "EMA Golden Cross - Strong Long Signal")
		net += 3
	} else if latest.EMAFast < latest.EMASlow && prev.EMAFast >= prev.EMASlow {
		reasons = append(reasons, "EMA Death Cross - Strong Short Signal")
		net -= 3
	}

	// 布林带突破（2.5倍标准差，权重高于加密货币）
	if latest.Close < latest.BBLower {
		reasons = append(reasons, "Price Below Lower Bollinger Band - Oversold")
		net += 2
	} else if latest.Close > latest.BBUpper {
		reasons = append(reasons, "Price Above Upper Bollinger Band - Overbought")
		net -= 2
	}

	// CCI商品极端区间
	if latest.CCI < profile.CCIOversold {
		reasons = append(reasons, "CCI Extreme Oversold - Strong Long Signal")
		net += 2
	} else if latest.CCI > profile.CCIOverbought {
		reasons = append(reasons, "CCI Extreme Overbought - Strong Short Signal")
		net -= 2
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

	// 价格行为规则
	actions := goldPriceAction(latest, prev)
	for _, a := range actions {
		reasons = append(reasons, a.reason)
		net += a.delta
	}

	if len(reasons) == 0 {
		reasons = []string{"No clear signals detected"}
	}

	strength := net
	if strength < 0 {
		strength = -strength
	}
	return Evaluation{Net: net, Strength: strength, Reasons: reasons}
}

type priceAction struct {
	reason string
	delta  int
}

// goldPriceAction 价格行为规则
// 部分信号只作为展示理由，不参与得分
func goldPriceAction(latest, prev types.IndicatorSnapshot) []priceAction {
	var actions []priceAction

	// 关键支撑阻力位突破，留0.1%的容差
	if latest.Close > latest.High20*0.999 {
		actions = append(actions, priceAction{"Breakout Above Key Resistance - Strong Bullish", 2})
	} else if latest.Close < latest.Low20*1.001 {
		actions = append(actions, priceAction{"Breakdown Below Key Support - Strong Bearish", -2})
	}

	// 均线趋势确认（仅展示）
	if latest.Close > latest.SMAShort && latest.SMAShort > latest.SMALong {
		actions = append(actions, priceAction{"Strong Uptrend - Price Above Both MAs", 0})
	} else if latest.Close < latest.SMAShort && latest.SMAShort < latest.SMALong {
		actions = append(actions, priceAction{"Strong Downtrend - Price Below Both MAs", 0})
	}

	// 动量延续
	if latest.Close > prev.Close && latest.High > prev.High {
		actions = append(actions, priceAction{"Bullish Momentum - Higher Highs", 1})
	} else if latest.Close < prev.Close && latest.Low < prev.Low {
		actions = append(actions, priceAction{"Bearish Momentum - Lower Lows", -1})
	}

	// 波动率状态（仅展示）
	if latest.ATR > latest.AvgATR10*1.5 {
		actions = append(actions, priceAction{"High Volatility - Increased Market Activity", 0})
	} else if latest.ATR < latest.AvgATR10*0.5 {
		actions = append(actions, priceAction{"Low Volatility - Potential Breakout Setup", 0})
	}

	// 唐奇安通道突破
	if latest.Close > latest.DonchianHigh*0.999 {
		actions = append(actions, priceAction{"Donchian Breakout - Bullish Breakout Signal", 2})
	} else if latest.Close < latest.DonchianLow*1.001 {
		actions = append(actions, priceAction{"Donchian Breakdown - Bearish Breakdown Signal", -2})
	}

	return actions
}
