package signals

import (
	"fmt"

	"market-signal-sentry/pkg/types"
)

// EvaluateVNStock 越南股票规则引擎
// 多空两侧独立计分再求差，成交量确认规则依赖此前规则的计分结果
func EvaluateVNStock(latest, prev types.IndicatorSnapshot, profile types.MarketProfile) Evaluation {
	var reasons []string
	bullish := 0
	bearish := 0

	// 三均线趋势分层（10/20/50）
	switch {
	case latest.SMAFast > latest.SMAShort && latest.SMAShort > latest.SMALong:
		bullish += 3
		reasons = append(reasons, "Strong uptrend: SMA 10 > 20 > 50")
	case latest.SMAFast < latest.SMAShort && latest.SMAShort < latest.SMALong:
		bearish += 3
		reasons = append(reasons, "Strong downtrend: SMA 10 < 20 < 50")
	case latest.SMAFast > latest.SMAShort:
		bullish += 2
		reasons = append(reasons, "Mild uptrend: SMA 10 > 20")
	case latest.SMAFast < latest.SMAShort:
		bearish += 2
		reasons = append(reasons, "Mild downtrend: SMA 10 < 20")
	}

	// 价格相对关键均线的位置
	priceAboveShort := latest.Close > latest.SMAShort
	priceAboveLong := latest.Close > latest.SMALong
	if priceAboveShort && priceAboveLong {
		bullish += 2
		reasons = append(reasons, "Price above key moving averages")
	} else if !priceAboveShort && !priceAboveLong {
		bearish += 2
		reasons = append(reasons, "Price below key moving averages")
	}

	// RSI三段式
	if latest.RSI < profile.RSIOversold {
		bullish += 2
		reasons = append(reasons, fmt.Sprintf("RSI oversold at %.1f", latest.RSI))
	} else if latest.RSI > profile.RSIOverbought {
		bearish += 2
		reasons = append(reasons, fmt.Sprintf("RSI overbought at %.1f", latest.RSI))
	} else {
		reasons = append(reasons, fmt.Sprintf("RSI neutral at %.1f", latest.RSI))
	}

	// MACD动量：多头且动量改善才加分
	macdBullish := latest.MACD > latest.MACDSignal
	macdImproving := latest.MACD > prev.MACD
	if macdBullish && macdImproving {
		bullish += 2
		reasons = append(reasons, "MACD bullish with improving momentum")
	} else if !macdBullish {
		bearish++
		reasons = append(reasons, "MACD bearish signal")
	}

	// 布林带突破与收口
	if latest.Close > latest.BBUpper {
		bullish++
		reasons = append(reasons, "Bollinger Bands upward breakout")
	} else if latest.Close < latest.BBLower {
		bearish++
		reasons = append(reasons, "Bollinger Bands downward breakout")
	} else if latest.BBMiddle != 0 && (latest.BBUpper-latest.BBLower)/latest.BBMiddle < 0.1 {
		reasons = append(reasons, "Bollinger Bands squeeze - potential breakout")
	}

	// 成交量确认：放量方向跟随此前的多空计分，顺序不可调整
	if latest.VolumeRatio > profile.VolumeConfirmRatio {
		if bullish > bearish {
			bullish++
			reasons = append(reasons, "Strong volume confirmation")
		} else {
			bearish++
			reasons = append(reasons, "High volume on weakness")
		}
	}

	// 随机指标双线确认
	if latest.StochK < profile.StochOversold && latest.StochD < profile.StochOversold {
		bullish++
		reasons = append(reasons, "Stochastic oversold")
	} else if latest.StochK > profile.StochOverbought && latest.StochD > profile.StochOverbought {
		bearish++
		reasons = append(reasons, "Stochastic overbought")
	}

	net := bullish - bearish
	strength := net
	if strength < 0 {
		strength = -strength
	}
	// 强度限定在1~10
	if strength < 1 {
		strength = 1
	} else if strength > 10 {
		strength = 10
	}

	return Evaluation{
		Net:          net,
		Strength:     strength,
		Reasons:      reasons,
		BullishScore: bullish,
		BearishScore: bearish,
	}
}
