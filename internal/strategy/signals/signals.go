package signals

import "market-signal-sentry/pkg/types"

// Evaluation 规则引擎输出
// Net为净得分，方向由正负承载；Strength为对外展示的强度
type Evaluation struct {
	Net      int
	Strength int
	Reasons  []string

	// 越南股票模型的多空分项得分
	BullishScore int
	BearishScore int
}

// Classify 按净得分分桶为五档信号
func Classify(net int, profile types.MarketProfile) types.SignalType {
	switch {
	case net >= profile.StrongThreshold:
		return types.SignalStrongLong
	case net >= profile.SignalThreshold:
		return types.SignalLong
	case net <= -profile.StrongThreshold:
		return types.SignalStrongShort
	case net <= -profile.SignalThreshold:
		return types.SignalShort
	default:
		return types.SignalNeutral
	}
}
