package indicators

import (
	"errors"

	"market-signal-sentry/pkg/types"
)

// ErrInsufficientData K线数量不足，无法产出可信指标
var ErrInsufficientData = errors.New("insufficient candle data")

// Calculator 指标计算器
// 一次性计算全部指标序列，输出最新与前一根K线的快照供交叉规则使用
type Calculator struct {
	profile types.MarketProfile
}

// NewCalculator 创建指标计算器
func NewCalculator(profile types.MarketProfile) *Calculator {
	return &Calculator{profile: profile}
}

// Compute 计算最新与前一根K线的指标快照
func (c *Calculator) Compute(candles []types.Candle) (latest, prev types.IndicatorSnapshot, err error) {
	if len(candles) < c.profile.MinBars {
		return latest, prev, ErrInsufficientData
	}

	closes := types.Closes(candles)
	volumes := types.Volumes(candles)

	smaShort := SMA(closes, c.profile.SMAShortPeriod)
	smaLong := SMA(closes, c.profile.SMALongPeriod)
	emaFast := EMA(closes, c.profile.EMAFastPeriod)
	emaSlow := EMA(closes, c.profile.EMASlowPeriod)
	rsi := RSI(closes, c.profile.RSIPeriod)
	macd, macdSignal, macdHist := MACD(closes, c.profile.EMAFastPeriod, c.profile.EMASlowPeriod, c.profile.MACDSignalPer)
	bbUpper, bbMiddle, bbLower := Bollinger(closes, c.profile.BollingerPeriod, c.profile.BollingerK)
	stochK, stochD := Stochastic(candles, c.profile.StochPeriod, c.profile.StochSmooth)
	williams := WilliamsR(candles, c.profile.WilliamsPeriod)
	atr := ATR(candles, c.profile.ATRPeriod)
	roc := ROC(closes, c.profile.ROCPeriod)
	volumeSMA := SMA(volumes, c.profile.VolumePeriod)
	obv := OBV(closes, volumes)

	last := len(candles) - 1
	latest = c.snapshotAt(candles, last, smaShort, smaLong, emaFast, emaSlow, rsi,
		macd, macdSignal, macdHist, bbUpper, bbMiddle, bbLower, stochK, stochD,
		williams, atr, roc, volumeSMA, obv)
	prev = c.snapshotAt(candles, last-1, smaShort, smaLong, emaFast, emaSlow, rsi,
		macd, macdSignal, macdHist, bbUpper, bbMiddle, bbLower, stochK, stochD,
		williams, atr, roc, volumeSMA, obv)

	// 越南股票的快线SMA
	if c.profile.SMAFastPeriod > 0 {
		smaFast := SMA(closes, c.profile.SMAFastPeriod)
		latest.SMAFast = smaFast[last]
		prev.SMAFast = smaFast[last-1]
	}

	// 黄金扩展：CCI与唐奇安通道
	if c.profile.CCIPeriod > 0 {
		cci := CCI(candles, c.profile.CCIPeriod)
		latest.CCI = cci[last]
		prev.CCI = cci[last-1]
	}
	if c.profile.DonchianPeriod > 0 {
		latest.DonchianHigh, latest.DonchianLow, latest.DonchianMiddle = Donchian(candles, c.profile.DonchianPeriod)
		latest.High20, latest.Low20 = rangeHighLow(candles[len(candles)-c.profile.DonchianPeriod:])
		latest.AvgATR10 = tailMean(atr, 10)
	}

	// 越南股票扩展：MFI
	if c.profile.MFIPeriod > 0 {
		mfi := MFI(candles, c.profile.MFIPeriod)
		latest.MFI = mfi[last]
		prev.MFI = mfi[last-1]
	}

	return latest, prev, nil
}

func (c *Calculator) snapshotAt(candles []types.Candle, i int,
	smaShort, smaLong, emaFast, emaSlow, rsi,
	macd, macdSignal, macdHist, bbUpper, bbMiddle, bbLower, stochK, stochD,
	williams, atr, roc, volumeSMA, obv []float64) types.IndicatorSnapshot {

	snap := types.IndicatorSnapshot{
		Close:      candles[i].Close,
		High:       candles[i].High,
		Low:        candles[i].Low,
		Volume:     candles[i].Volume,
		SMAShort:   smaShort[i],
		SMALong:    smaLong[i],
		EMAFast:    emaFast[i],
		EMASlow:    emaSlow[i],
		RSI:        rsi[i],
		MACD:       macd[i],
		MACDSignal: macdSignal[i],
		MACDHist:   macdHist[i],
		BBUpper:    bbUpper[i],
		BBMiddle:   bbMiddle[i],
		BBLower:    bbLower[i],
		StochK:     stochK[i],
		StochD:     stochD[i],
		WilliamsR:  williams[i],
		ATR:        atr[i],
		ROC:        roc[i],
		VolumeSMA:  volumeSMA[i],
		OBV:        obv[i],
	}
	if snap.VolumeSMA > 0 {
		snap.VolumeRatio = snap.Volume / snap.VolumeSMA
	}
	return snap
}

// tailMean 序列末尾n个值的平均
func tailMean(values []float64, n int) float64 {
	if len(values) == 0 {
		return 0
	}
	if n > len(values) {
		n = len(values)
	}
	sum := 0.0
	for _, v := range values[len(values)-n:] {
		sum += v
	}
	return sum / float64(n)
}
