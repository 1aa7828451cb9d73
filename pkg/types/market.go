package types

import "time"

// Candle K线数据结构（所有市场通用）
type Candle struct {
	Symbol    string    `json:"symbol"`
	OpenTime  time.Time `json:"open_time"`
	CloseTime time.Time `json:"close_time"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    float64   `json:"volume"`
	Interval  string    `json:"interval"` // 如 5m / 1h
}

// PricePoint 实时价格点（行情流缓存使用）
type PricePoint struct {
	Symbol    string    `json:"symbol"`
	Price     float64   `json:"price"`
	Timestamp time.Time `json:"timestamp"`
}

// Market 资产类别标识
type Market string

const (
	MarketCrypto  Market = "crypto"  // 加密货币
	MarketGold    Market = "gold"    // 黄金
	MarketVNStock Market = "vnstock" // 越南股票
)

// Closes 提取收盘价序列
func Closes(candles []Candle) []float64 {
	out := make([]float64, len(candles))
	for i := range candles {
		out[i] = candles[i].Close
	}
	return out
}

// Volumes 提取成交量序列
func Volumes(candles []Candle) []float64 {
	out := make([]float64, len(candles))
	for i := range candles {
		out[i] = candles[i].Volume
	}
	return out
}
