package types

import "time"

// SignalType 五档交易信号
type SignalType string

const (
	SignalStrongLong  SignalType = "STRONG_LONG"
	SignalLong        SignalType = "LONG"
	SignalNeutral     SignalType = "NEUTRAL"
	SignalShort       SignalType = "SHORT"
	SignalStrongShort SignalType = "STRONG_SHORT"
)

// IsLong 是否为做多方向信号
func (s SignalType) IsLong() bool {
	return s == SignalLong || s == SignalStrongLong
}

// IsShort 是否为做空方向信号
func (s SignalType) IsShort() bool {
	return s == SignalShort || s == SignalStrongShort
}

// IsStrong 是否为强信号
func (s SignalType) IsStrong() bool {
	return s == SignalStrongLong || s == SignalStrongShort
}

// IndicatorSnapshot 单根K线上的全部指标取值
// 交叉类规则只需要最新一根与前一根的快照
type IndicatorSnapshot struct {
	Close  float64 `json:"close"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Volume float64 `json:"volume"`

	SMAFast  float64 `json:"sma_fast"`  // 越南股票使用10周期
	SMAShort float64 `json:"sma_short"` // 20周期
	SMALong  float64 `json:"sma_long"`  // 50周期
	EMAFast  float64 `json:"ema_fast"`  // 12周期
	EMASlow  float64 `json:"ema_slow"`  // 26周期

	RSI        float64 `json:"rsi"`
	MACD       float64 `json:"macd"`        // MACD线 = EMA12 - EMA26
	MACDSignal float64 `json:"macd_signal"` // 信号线 = MACD的9周期EMA
	MACDHist   float64 `json:"macd_histogram"`

	BBUpper  float64 `json:"bb_upper"`
	BBMiddle float64 `json:"bb_middle"`
	BBLower  float64 `json:"bb_lower"`

	StochK    float64 `json:"stoch_k"`
	StochD    float64 `json:"stoch_d"`
	WilliamsR float64 `json:"williams_r"`
	ATR       float64 `json:"atr"`
	ROC       float64 `json:"roc"`

	VolumeSMA   float64 `json:"volume_sma"`
	VolumeRatio float64 `json:"volume_ratio"`

	// 黄金扩展指标
	CCI            float64 `json:"cci"`
	DonchianHigh   float64 `json:"donchian_high"`
	DonchianLow    float64 `json:"donchian_low"`
	DonchianMiddle float64 `json:"donchian_middle"`
	High20         float64 `json:"high_20"` // 最近20根K线最高价
	Low20          float64 `json:"low_20"`  // 最近20根K线最低价
	AvgATR10       float64 `json:"avg_atr_10"`

	// 越南股票扩展指标
	MFI float64 `json:"mfi"`
	OBV float64 `json:"obv"`
}

// SignalVerdict 信号判定结果
type SignalVerdict struct {
	Signal   SignalType `json:"signal"`
	Strength int        `json:"strength"` // 净得分绝对值，方向由Signal承载
	Reasons  []string   `json:"reasons"`

	EntryPrice   float64 `json:"entry_price"`
	StopLoss     float64 `json:"stop_loss"`
	TakeProfit   float64 `json:"take_profit"`
	CurrentPrice float64 `json:"current_price"`

	RSI         float64 `json:"rsi"`
	MACD        float64 `json:"macd"`
	ATR         float64 `json:"atr"`
	CCI         float64 `json:"cci,omitempty"`
	VolumeRatio float64 `json:"volume_ratio,omitempty"`
	MFI         float64 `json:"mfi,omitempty"`

	// 越南股票模型额外输出多空分项得分，便于诊断展示
	BullishScore int `json:"bullish_score,omitempty"`
	BearishScore int `json:"bearish_score,omitempty"`

	Timestamp time.Time `json:"timestamp"`
}

// AnalysisResult 单个标的的分析结果
// Error非空时表示该标的本周期分析失败，Verdict为nil
type AnalysisResult struct {
	Symbol   string         `json:"symbol"`
	Name     string         `json:"name,omitempty"`
	Market   Market         `json:"market"`
	Interval string         `json:"interval"`
	Verdict  *SignalVerdict `json:"analysis,omitempty"`
	Error    string         `json:"error,omitempty"`
}

// AlertRecord 预警记录
type AlertRecord struct {
	Timestamp      time.Time  `json:"timestamp"`
	Symbol         string     `json:"symbol"`
	Market         Market     `json:"market"`
	Signal         SignalType `json:"signal"`
	PreviousSignal SignalType `json:"previous_signal"`
	Strength       int        `json:"strength"`
	Price          float64    `json:"price"`
	EntryPrice     float64    `json:"entry_price"`
	StopLoss       float64    `json:"stop_loss"`
	TakeProfit     float64    `json:"take_profit"`
	RSI            float64    `json:"rsi"`
	Reasons        []string   `json:"reasons"`
}
