package notifier

import (
	"fmt"
	"unicode/utf8"

	"market-signal-sentry/pkg/types"
)

// Interface 通知接口
type Interface interface {
	SendAlert(alert types.AlertRecord) error
	SendBatchAlerts(alerts []types.AlertRecord) error
}

// Dispatcher 多渠道分发器
// 任一渠道失败不影响其他渠道
type Dispatcher struct {
	channels []Interface
}

// NewDispatcher 创建分发器，没有可用渠道时退化为控制台输出
func NewDispatcher(channels ...Interface) *Dispatcher {
	if len(channels) == 0 {
		channels = []Interface{NewConsoleNotifier()}
	}
	return &Dispatcher{channels: channels}
}

// SendAlert 分发单条预警
func (d *Dispatcher) SendAlert(alert types.AlertRecord) error {
	var lastErr error
	for _, channel := range d.channels {
		if err := channel.SendAlert(alert); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

// SendBatchAlerts 分发批量预警
func (d *Dispatcher) SendBatchAlerts(alerts []types.AlertRecord) error {
	if len(alerts) == 0 {
		return nil
	}

	var lastErr error
	for _, channel := range d.channels {
		if err := channel.SendBatchAlerts(alerts); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

// safePadding 安全地计算填充空格数量，避免负数
func safePadding(content string, totalWidth int) int {
	runeCount := utf8.RuneCountInString(content)
	padding := totalWidth - runeCount - 4
	if padding < 0 {
		padding = 0
	}
	return padding
}

// signalEmoji 信号方向对应的标识
func signalEmoji(signal types.SignalType) string {
	switch {
	case signal.IsLong():
		return "🟢"
	case signal.IsShort():
		return "🔴"
	default:
		return "🟡"
	}
}

// signalAction 信号对应的操作建议
func signalAction(signal types.SignalType) string {
	switch {
	case signal.IsLong():
		return "BUY/LONG"
	case signal.IsShort():
		return "SELL/SHORT"
	default:
		return "NEUTRAL"
	}
}

// formatPrice 按市场格式化价格
func formatPrice(market types.Market, price float64) string {
	if market == types.MarketVNStock {
		return fmt.Sprintf("%.2fK VND", price)
	}
	return fmt.Sprintf("$%.4f", price)
}
