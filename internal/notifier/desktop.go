package notifier

import (
	"fmt"
	"os/exec"

	"market-signal-sentry/pkg/types"
)

// DesktopNotifier 桌面通知器
// 调用系统notify-send弹出通知，失败时降级为控制台输出
type DesktopNotifier struct{}

// NewDesktopNotifier 创建桌面通知器，命令不存在时返回控制台通知器
func NewDesktopNotifier(enabled bool) Interface {
	if !enabled {
		return NewConsoleNotifier()
	}

	if _, err := exec.LookPath("notify-send"); err != nil {
		fmt.Println("🔧 系统缺少notify-send命令，使用控制台输出模式")
		return NewConsoleNotifier()
	}

	fmt.Println("✅ 已配置桌面通知服务")
	return &DesktopNotifier{}
}

// SendAlert 发送单条桌面通知
func (dn *DesktopNotifier) SendAlert(alert types.AlertRecord) error {
	title := fmt.Sprintf("🚨 %s Trading Alert", alert.Symbol)
	message := fmt.Sprintf("%s %s Signal\nPrice: %s\nStrength: %d\nRSI: %.2f",
		signalEmoji(alert.Signal), signalAction(alert.Signal),
		formatPrice(alert.Market, alert.Price), alert.Strength, alert.RSI)

	cmd := exec.Command("notify-send", "-a", "Market Signal Sentry", title, message)
	if err := cmd.Run(); err != nil {
		fmt.Printf("❌ 桌面通知发送失败: %v，降级为控制台输出\n", err)
		return NewConsoleNotifier().SendAlert(alert)
	}
	return nil
}

// SendBatchAlerts 发送批量桌面通知
func (dn *DesktopNotifier) SendBatchAlerts(alerts []types.AlertRecord) error {
	var lastErr error
	for _, alert := range alerts {
		if err := dn.SendAlert(alert); err != nil {
			lastErr = err
		}
	}
	return lastErr
}
