package signals

import (
	"testing"

	"market-signal-sentry/pkg/types"
)

func cryptoProfile() types.MarketProfile {
	return types.MarketProfile{
		RSIOversold:        30,
		RSIOverbought:      70,
		StochOversold:      20,
		StochOverbought:    80,
		WilliamsOversold:   -80,
		WilliamsOverbought: -20,
		StrongThreshold:    3,
		SignalThreshold:    1,
	}
}

func goldProfile() types.MarketProfile {
	return types.MarketProfile{
		RSIOversold:          35,
		RSIOverbought:        65,
		RSIExtremeOversold:   25,
		RSIExtremeOverbought: 75,
		StochOversold:        15,
		StochOverbought:      85,
		WilliamsOversold:     -85,
		WilliamsOverbought:   -15,
		CCIOversold:          -150,
		CCIOverbought:        150,
		StrongThreshold:      4,
		SignalThreshold:      2,
	}
}

func vnProfile() types.MarketProfile {
	return types.MarketProfile{
		RSIOversold:        30,
		RSIOverbought:      70,
		StochOversold:      20,
		StochOverbought:    80,
		VolumeConfirmRatio: 1.2,
		StrongThreshold:    6,
		SignalThreshold:    3,
	}
}

func containsReason(t *testing.T, reasons []string, want string) {
	t.Helper()
	for _, r := range reasons {
		if r == want {
			return
		}
	}
	t.Errorf("缺少理由 %q，实际: %v", want, reasons)
}

func TestClassify_CryptoBuckets(t *testing.T) {
	profile := cryptoProfile()
	cases := []struct {
		net  int
		want types.SignalType
	}{
		{5, types.SignalStrongLong},
		{3, types.SignalStrongLong},
		{2, types.SignalLong},
		{1, types.SignalLong},
		{0, types.SignalNeutral},
		{-1, types.SignalShort},
		{-2, types.SignalShort},
		{-3, types.SignalStrongShort},
		{-7, types.SignalStrongShort},
	}
	for _, c := range cases {
		if got := Classify(c.net, profile); got != c.want {
			t.Errorf("Classify(%d) = %s, want %s", c.net, got, c.want)
		}
	}
}

func TestClassify_GoldBuckets(t *testing.T) {
	// 黄金的分桶阈值更高：±4强信号，±2普通信号
	profile := goldProfile()
	cases := []struct {
		net  int
		want types.SignalType
	}{
		{4, types.SignalStrongLong},
		{3, types.SignalLong},
		{2, types.SignalLong},
		{1, types.SignalNeutral},
		{0, types.SignalNeutral},
		{-1, types.SignalNeutral},
		{-2, types.SignalShort},
		{-4, types.SignalStrongShort},
	}
	for _, c := range cases {
		if got := Classify(c.net, profile); got != c.want {
			t.Errorf("Classify(%d) = %s, want %s", c.net, got, c.want)
		}
	}
}
