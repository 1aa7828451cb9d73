package types

// MarketProfile 资产类别参数集
// 三个市场共享同一套指标与规则引擎，差异全部收敛到这里
type MarketProfile struct {
	// 指标窗口
	SMAFastPeriod   int     `mapstructure:"sma_fast_period"` // 仅越南股票使用，0表示不计算
	SMAShortPeriod  int     `mapstructure:"sma_short_period"`
	SMALongPeriod   int     `mapstructure:"sma_long_period"`
	EMAFastPeriod   int     `mapstructure:"ema_fast_period"`
	EMASlowPeriod   int     `mapstructure:"ema_slow_period"`
	MACDSignalPer   int     `mapstructure:"macd_signal_period"`
	RSIPeriod       int     `mapstructure:"rsi_period"`
	BollingerPeriod int     `mapstructure:"bollinger_period"`
	BollingerK      float64 `mapstructure:"bollinger_k"` // 黄金使用更宽的2.5倍标准差
	StochPeriod     int     `mapstructure:"stoch_period"`
	StochSmooth     int     `mapstructure:"stoch_smooth"`
	WilliamsPeriod  int     `mapstructure:"williams_period"`
	ATRPeriod       int     `mapstructure:"atr_period"`
	ROCPeriod       int     `mapstructure:"roc_period"`
	VolumePeriod    int     `mapstructure:"volume_period"`
	CCIPeriod       int     `mapstructure:"cci_period"`      // 黄金扩展
	DonchianPeriod  int     `mapstructure:"donchian_period"` // 黄金扩展
	MFIPeriod       int     `mapstructure:"mfi_period"`      // 越南股票扩展

	// 规则阈值
	RSIOversold          float64 `mapstructure:"rsi_oversold"`
	RSIOverbought        float64 `mapstructure:"rsi_overbought"`
	RSIExtremeOversold   float64 `mapstructure:"rsi_extreme_oversold"`   // 黄金分层阈值
	RSIExtremeOverbought float64 `mapstructure:"rsi_extreme_overbought"` // 黄金分层阈值
	StochOversold        float64 `mapstructure:"stoch_oversold"`
	StochOverbought      float64 `mapstructure:"stoch_overbought"`
	WilliamsOversold     float64 `mapstructure:"williams_oversold"`
	WilliamsOverbought   float64 `mapstructure:"williams_overbought"`
	CCIOversold          float64 `mapstructure:"cci_oversold"`
	CCIOverbought        float64 `mapstructure:"cci_overbought"`
	VolumeConfirmRatio   float64 `mapstructure:"volume_confirm_ratio"`

	// 得分分桶
	StrongThreshold int `mapstructure:"strong_threshold"` // 净得分达到±该值为强信号
	SignalThreshold int `mapstructure:"signal_threshold"` // 净得分达到±该值为普通信号

	// 风控参数
	StopLossATR   float64 `mapstructure:"stop_loss_atr"`
	TakeProfitATR float64 `mapstructure:"take_profit_atr"`

	// 展示精度（仅用于结果封装，内部计算保持全精度）
	PricePrecision int `mapstructure:"price_precision"`

	// 最小K线数量，不足则返回数据不足
	MinBars int `mapstructure:"min_bars"`
}
