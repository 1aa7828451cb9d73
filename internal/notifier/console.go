package notifier

import (
	"fmt"
	"strings"

	"market-signal-sentry/pkg/types"
)

// ConsoleNotifier 控制台通知器
type ConsoleNotifier struct{}

// NewConsoleNotifier 创建控制台通知器
func NewConsoleNotifier() *ConsoleNotifier {
	return &ConsoleNotifier{}
}

// SendAlert 输出单条预警
func (cn *ConsoleNotifier) SendAlert(alert types.AlertRecord) error {
	cn.printAlert(alert)
	return nil
}

// SendBatchAlerts 输出批量预警
func (cn *ConsoleNotifier) SendBatchAlerts(alerts []types.AlertRecord) error {
	for _, alert := range alerts {
		cn.printAlert(alert)
	}
	return nil
}

func (cn *ConsoleNotifier) printAlert(alert types.AlertRecord) {
	border := "╔" + strings.Repeat("═", 60) + "╗"
	bottomBorder := "╚" + strings.Repeat("═", 60) + "╝"

	emoji := signalEmoji(alert.Signal)

	fmt.Println()
	fmt.Println(border)

	title := fmt.Sprintf("%s 🚨 交易信号预警 - %s", emoji, alert.Symbol)
	fmt.Printf("║ %s%s ║\n", title, strings.Repeat(" ", safePadding(title, 60)))
	fmt.Println("║" + strings.Repeat(" ", 60) + "║")

	lines := []string{
		fmt.Sprintf("信号: %s → %s (%s)", alert.PreviousSignal, alert.Signal, signalAction(alert.Signal)),
		fmt.Sprintf("强度: %d | RSI: %.2f", alert.Strength, alert.RSI),
		fmt.Sprintf("当前价格: %s", formatPrice(alert.Market, alert.Price)),
	}
	if alert.Signal != types.SignalNeutral {
		lines = append(lines,
			fmt.Sprintf("入场价: %s", formatPrice(alert.Market, alert.EntryPrice)))
		if alert.StopLoss > 0 {
			lines = append(lines,
				fmt.Sprintf("止损价: %s", formatPrice(alert.Market, alert.StopLoss)))
		}
		if alert.TakeProfit > 0 {
			lines = append(lines,
				fmt.Sprintf("止盈价: %s", formatPrice(alert.Market, alert.TakeProfit)))
		}
	}
	lines = append(lines, fmt.Sprintf("预警时间: %s", alert.Timestamp.Format("2006-01-02 15:04:05")))

	for _, line := range lines {
		fmt.Printf("║ %s%s ║\n", line, strings.Repeat(" ", safePadding(line, 60)))
	}

	if len(alert.Reasons) > 0 {
		fmt.Println("║" + strings.Repeat(" ", 60) + "║")
		header := "📋 判定依据:"
		fmt.Printf("║ %s%s ║\n", header, strings.Repeat(" ", safePadding(header, 60)))
		for _, reason := range alert.Reasons {
			line := "  • " + reason
			fmt.Printf("║ %s%s ║\n", line, strings.Repeat(" ", safePadding(line, 60)))
		}
	}

	fmt.Println(bottomBorder)
	fmt.Println()
}

// PrintCycleReport 输出本周期全部标的的分析概览
// livePrice用于补充行情流的最新成交价，可以为nil
func (cn *ConsoleNotifier) PrintCycleReport(results []types.AnalysisResult, livePrice func(symbol string) (float64, bool)) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 80))
	fmt.Println("🚀 MARKET SIGNAL SENTRY 🚀")
	fmt.Println(strings.Repeat("=", 80))

	for _, result := range results {
		name := result.Symbol
		if result.Name != "" {
			name = fmt.Sprintf("%s (%s)", result.Name, result.Symbol)
		}

		if result.Error != "" {
			fmt.Printf("\n❌ %s: %s\n", name, result.Error)
			continue
		}

		verdict := result.Verdict
		fmt.Printf("\n📊 %s [%s/%s]\n", name, result.Market, result.Interval)
		fmt.Println(strings.Repeat("-", 50))
		fmt.Printf("🎯 信号: %s %s (强度: %d)\n", signalEmoji(verdict.Signal), verdict.Signal, verdict.Strength)
		fmt.Printf("💰 当前价格: %s\n", formatPrice(result.Market, verdict.CurrentPrice))

		if livePrice != nil {
			if price, ok := livePrice(result.Symbol); ok {
				fmt.Printf("⚡ 实时价格: %s\n", formatPrice(result.Market, price))
			}
		}

		fmt.Printf("📈 RSI: %.2f | MACD: %.6f\n", verdict.RSI, verdict.MACD)
		if result.Market == types.MarketVNStock {
			fmt.Printf("📊 多头得分: %d | 空头得分: %d\n", verdict.BullishScore, verdict.BearishScore)
		}

		if verdict.Signal != types.SignalNeutral {
			fmt.Printf("🎯 入场: %s | 🛑 止损: %s | 🎯 止盈: %s\n",
				formatPrice(result.Market, verdict.EntryPrice),
				formatPrice(result.Market, verdict.StopLoss),
				formatPrice(result.Market, verdict.TakeProfit))
		}

		fmt.Println("📋 判定依据:")
		for _, reason := range verdict.Reasons {
			fmt.Printf("   • %s\n", reason)
		}
	}

	fmt.Println()
	fmt.Println(strings.Repeat("=", 80))
}
