package analyzer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"market-signal-sentry/internal/market/fetcher"
	"market-signal-sentry/internal/strategy/indicators"
	"market-signal-sentry/internal/strategy/risk"
	"market-signal-sentry/internal/strategy/signals"
	"market-signal-sentry/pkg/types"
)

// Analyzer 单个市场的分析器
// 串起数据获取、指标计算、规则评估与结果封装
type Analyzer struct {
	market     types.Market
	fetcher    *fetcher.Fetcher
	calculator *indicators.Calculator
	profile    types.MarketProfile
	symbols    []string
	names      map[string]string
	interval   string
	limit      int
	now        func() time.Time
}

// New 创建市场分析器
func New(market types.Market, f *fetcher.Fetcher, profile types.MarketProfile, marketConfig types.MarketConfig) *Analyzer {
	limit := marketConfig.Limit
	if limit <= 0 {
		limit = 200
	}
	return &Analyzer{
		market:     market,
		fetcher:    f,
		calculator: indicators.NewCalculator(profile),
		profile:    profile,
		symbols:    marketConfig.Symbols,
		names:      marketConfig.Names,
		interval:   marketConfig.Interval,
		limit:      limit,
		now:        time.Now,
	}
}

// Market 分析器所属市场
func (a *Analyzer) Market() types.Market {
	return a.market
}

// Symbols 监控的标的列表
func (a *Analyzer) Symbols() []string {
	return a.symbols
}

// AnalyzeSymbol 分析单个标的
func (a *Analyzer) AnalyzeSymbol(ctx context.Context, symbol string) types.AnalysisResult {
	result := types.AnalysisResult{
		Symbol:   symbol,
		Name:     a.names[symbol],
		Market:   a.market,
		Interval: a.interval,
	}

	candles, err := a.fetcher.FetchCandles(ctx, symbol, a.interval, a.limit)
	if err != nil {
		zap.L().Error("❌ 获取K线数据失败",
			zap.String("symbol", symbol),
			zap.String("market", string(a.market)),
			zap.Error(err))
		result.Error = fmt.Sprintf("Failed to fetch data: %v", err)
		return result
	}

	latest, prev, err := a.calculator.Compute(candles)
	if err != nil {
		// 数据不足降级为中性判定，不算失败
		if errors.Is(err, indicators.ErrInsufficientData) {
			zap.L().Warn("⚠️ K线数量不足，输出中性判定",
				zap.String("symbol", symbol),
				zap.Int("bars", len(candles)),
				zap.Int("min_bars", a.profile.MinBars))
			result.Verdict = risk.InsufficientData(a.now())
			return result
		}
		result.Error = fmt.Sprintf("Indicator computation failed: %v", err)
		return result
	}

	eval := a.evaluate(latest, prev)
	result.Verdict = risk.Package(eval, latest, a.profile, a.now())

	zap.L().Info("📊 标的分析完成",
		zap.String("symbol", symbol),
		zap.String("market", string(a.market)),
		zap.String("signal", string(result.Verdict.Signal)),
		zap.Int("strength", result.Verdict.Strength))

	return result
}

// AnalyzeAll 分析全部标的
// 单个标的的失败或panic不影响其他标的
func (a *Analyzer) AnalyzeAll(ctx context.Context) []types.AnalysisResult {
	results := make([]types.AnalysisResult, 0, len(a.symbols))
	for _, symbol := range a.symbols {
		results = append(results, a.analyzeSafe(ctx, symbol))
	}
	return results
}

func (a *Analyzer) analyzeSafe(ctx context.Context, symbol string) (result types.AnalysisResult) {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error("❌ 分析标的时发生panic",
				zap.String("symbol", symbol),
				zap.Any("panic", r))
			result = types.AnalysisResult{
				Symbol:   symbol,
				Name:     a.names[symbol],
				Market:   a.market,
				Interval: a.interval,
				Error:    fmt.Sprintf("Analysis panic: %v", r),
			}
		}
	}()

	return a.AnalyzeSymbol(ctx, symbol)
}

func (a *Analyzer) evaluate(latest, prev types.IndicatorSnapshot) signals.Evaluation {
	switch a.market {
	case types.MarketGold:
		return signals.EvaluateGold(latest, prev, a.profile)
	case types.MarketVNStock:
		return signals.EvaluateVNStock(latest, prev, a.profile)
	default:
		return signals.EvaluateCrypto(latest, prev, a.profile)
	}
}
