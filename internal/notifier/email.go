package notifier

import (
	"fmt"
	"net/smtp"
	"strings"

	"market-signal-sentry/pkg/types"
)

// EmailNotifier 邮件通知器
// 通过SMTP发送预警邮件，发送失败时降级为控制台输出
type EmailNotifier struct {
	config types.EmailConfig
}

// NewEmailNotifier 创建邮件通知器，未配置时返回控制台通知器
func NewEmailNotifier(config types.EmailConfig) Interface {
	if !config.Enabled || config.Sender == "" || len(config.Recipients) == 0 {
		fmt.Println("🔧 未配置邮件通知，使用控制台输出模式")
		return NewConsoleNotifier()
	}

	fmt.Printf("✅ 已配置邮件通知服务（收件人: %d个）\n", len(config.Recipients))
	return &EmailNotifier{config: config}
}

// SendAlert 发送单条预警邮件
func (en *EmailNotifier) SendAlert(alert types.AlertRecord) error {
	subject := fmt.Sprintf("🚨 %s Trading Alert - %s", alert.Symbol, alert.Signal)
	body := en.buildBody([]types.AlertRecord{alert})

	if err := en.send(subject, body); err != nil {
		fmt.Printf("❌ 邮件发送失败: %v，降级为控制台输出\n", err)
		return NewConsoleNotifier().SendAlert(alert)
	}

	fmt.Printf("✅ 邮件通知已发送: %s %s\n", alert.Symbol, alert.Signal)
	return nil
}

// SendBatchAlerts 发送批量预警邮件
func (en *EmailNotifier) SendBatchAlerts(alerts []types.AlertRecord) error {
	if len(alerts) == 0 {
		return nil
	}
	if len(alerts) == 1 {
		return en.SendAlert(alerts[0])
	}

	subject := fmt.Sprintf("🚨 Trading Alerts - %d signals", len(alerts))
	body := en.buildBody(alerts)

	if err := en.send(subject, body); err != nil {
		fmt.Printf("❌ 邮件批量发送失败: %v，降级为控制台输出\n", err)
		return NewConsoleNotifier().SendBatchAlerts(alerts)
	}

	fmt.Printf("✅ 邮件批量通知已发送: %d条预警\n", len(alerts))
	return nil
}

func (en *EmailNotifier) buildBody(alerts []types.AlertRecord) string {
	var sb strings.Builder
	for _, alert := range alerts {
		sb.WriteString(fmt.Sprintf("%s %s: %s -> %s (%s)\n",
			signalEmoji(alert.Signal), alert.Symbol,
			alert.PreviousSignal, alert.Signal, signalAction(alert.Signal)))
		sb.WriteString(fmt.Sprintf("Price: %s | Strength: %d | RSI: %.2f\n",
			formatPrice(alert.Market, alert.Price), alert.Strength, alert.RSI))
		if alert.Signal != types.SignalNeutral {
			sb.WriteString(fmt.Sprintf("Entry: %s | Stop Loss: %s | Take Profit: %s\n",
				formatPrice(alert.Market, alert.EntryPrice),
				formatPrice(alert.Market, alert.StopLoss),
				formatPrice(alert.Market, alert.TakeProfit)))
		}
		for _, reason := range alert.Reasons {
			sb.WriteString("  - " + reason + "\n")
		}
		sb.WriteString(fmt.Sprintf("Time: %s\n\n", alert.Timestamp.Format("2006-01-02 15:04:05")))
	}
	return sb.String()
}

func (en *EmailNotifier) send(subject, body string) error {
	addr := fmt.Sprintf("%s:%d", en.config.SMTPServer, en.config.SMTPPort)
	auth := smtp.PlainAuth("", en.config.Sender, en.config.Password, en.config.SMTPServer)

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n%s",
		en.config.Sender,
		strings.Join(en.config.Recipients, ", "),
		subject,
		body)

	return smtp.SendMail(addr, auth, en.config.Sender, en.config.Recipients, []byte(msg))
}
