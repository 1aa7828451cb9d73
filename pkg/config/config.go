package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
	"market-signal-sentry/pkg/types"
)

// Load 加载配置
func Load() (*types.Config, error) {
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")

	// 设置默认值
	setDefaults()

	// 读取环境变量
	viper.AutomaticEnv()

	// 优先尝试读取本地配置文件
	viper.SetConfigName("config.local")
	if err := viper.ReadInConfig(); err != nil {
		// 如果本地配置文件不存在，尝试读取默认配置文件
		viper.SetConfigName("config")
		if err := viper.ReadInConfig(); err != nil {
			var configFileNotFoundError viper.ConfigFileNotFoundError
			if !errors.As(err, &configFileNotFoundError) {
				return nil, err
			}
		}
	}

	var config types.Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("log_level", "info") // 兼容保留
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.file_path", "logs")
	viper.SetDefault("log.max_size", 200)
	viper.SetDefault("log.max_age", 30)
	viper.SetDefault("log.max_backups", 7)
	viper.SetDefault("log.compress", false)

	viper.SetDefault("redis.url", "")
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	viper.SetDefault("database.mysql.host", "")
	viper.SetDefault("database.mysql.port", 3306)
	viper.SetDefault("database.mysql.username", "root")
	viper.SetDefault("database.mysql.password", "")
	viper.SetDefault("database.mysql.database", "signal_sentry")
	viper.SetDefault("database.mysql.max_idle_conns", 5)
	viper.SetDefault("database.mysql.max_open_conns", 20)

	viper.SetDefault("network.proxy", "")
	viper.SetDefault("network.timeout", 30*time.Second)

	viper.SetDefault("monitor.check_interval", 300*time.Second)
	viper.SetDefault("monitor.max_duration", time.Duration(0))
	viper.SetDefault("monitor.failure_delay", 30*time.Second)
	viper.SetDefault("monitor.retry_attempts", 3)
	viper.SetDefault("monitor.retry_delay", time.Second)
	viper.SetDefault("monitor.markets", defaultMarkets())

	viper.SetDefault("notify.console", true)
	viper.SetDefault("notify.desktop", false)
	viper.SetDefault("notify.email.enabled", false)
	viper.SetDefault("notify.email.smtp_server", "smtp.gmail.com")
	viper.SetDefault("notify.email.smtp_port", 587)
	viper.SetDefault("notify.email.use_tls", true)

	viper.SetDefault("stream.enabled", false)
	viper.SetDefault("stream.endpoint", "wss://stream.binance.com:9443/stream")
	viper.SetDefault("stream.reconnect_interval", 5*time.Second)
	viper.SetDefault("stream.ping_interval", 20*time.Second)
	viper.SetDefault("stream.max_reconnect_attempts", 10)

	setProfileDefaults()
}

// defaultMarkets 默认监控标的，来源与原始监控清单保持一致
func defaultMarkets() []map[string]interface{} {
	return []map[string]interface{}{
		{
			"market":   "crypto",
			"symbols":  []string{"BTCUSDT", "ETHUSDT"},
			"interval": "5m",
			"limit":    200,
		},
		{
			"market":   "gold",
			"symbols":  []string{"GC=F", "GLD"},
			"names":    map[string]string{"GC=F": "Gold Futures", "GLD": "Gold ETF"},
			"interval": "1h",
			"limit":    200,
		},
		{
			"market":   "vnstock",
			"symbols":  []string{"VNM.VN", "VCB.VN", "VIC.VN", "HPG.VN", "FPT.VN"},
			"names":    map[string]string{"VNM.VN": "Vinamilk", "VCB.VN": "Vietcombank", "VIC.VN": "Vingroup", "HPG.VN": "Hoa Phat Group", "FPT.VN": "FPT Corporation"},
			"interval": "1h",
			"limit":    200,
		},
	}
}

// setProfileDefaults 三个市场的参数默认值
// 共享窗口一致，阈值与权重按市场差异化
func setProfileDefaults() {
	shared := map[string]interface{}{
		"sma_short_period":   20,
		"sma_long_period":    50,
		"ema_fast_period":    12,
		"ema_slow_period":    26,
		"macd_signal_period": 9,
		"rsi_period":         14,
		"bollinger_period":   20,
		"stoch_period":       14,
		"stoch_smooth":       3,
		"williams_period":    14,
		"atr_period":         14,
		"roc_period":         12,
		"volume_period":      20,
		"min_bars":           50,
	}
	for _, market := range []string{"crypto", "gold", "vnstock"} {
		for key, value := range shared {
			viper.SetDefault("profiles."+market+"."+key, value)
		}
	}

	viper.SetDefault("profiles.crypto.bollinger_k", 2.0)
	viper.SetDefault("profiles.crypto.rsi_oversold", 30.0)
	viper.SetDefault("profiles.crypto.rsi_overbought", 70.0)
	viper.SetDefault("profiles.crypto.stoch_oversold", 20.0)
	viper.SetDefault("profiles.crypto.stoch_overbought", 80.0)
	viper.SetDefault("profiles.crypto.williams_oversold", -80.0)
	viper.SetDefault("profiles.crypto.williams_overbought", -20.0)
	viper.SetDefault("profiles.crypto.strong_threshold", 3)
	viper.SetDefault("profiles.crypto.signal_threshold", 1)
	viper.SetDefault("profiles.crypto.stop_loss_atr", 2.0)
	viper.SetDefault("profiles.crypto.take_profit_atr", 3.0)
	viper.SetDefault("profiles.crypto.price_precision", 4)

	// 黄金：更极端的RSI分层、更宽的布林带、更宽的止损
	viper.SetDefault("profiles.gold.bollinger_k", 2.5)
	viper.SetDefault("profiles.gold.rsi_oversold", 35.0)
	viper.SetDefault("profiles.gold.rsi_overbought", 65.0)
	viper.SetDefault("profiles.gold.rsi_extreme_oversold", 25.0)
	viper.SetDefault("profiles.gold.rsi_extreme_overbought", 75.0)
	viper.SetDefault("profiles.gold.stoch_oversold", 15.0)
	viper.SetDefault("profiles.gold.stoch_overbought", 85.0)
	viper.SetDefault("profiles.gold.williams_oversold", -85.0)
	viper.SetDefault("profiles.gold.williams_overbought", -15.0)
	viper.SetDefault("profiles.gold.cci_period", 20)
	viper.SetDefault("profiles.gold.cci_oversold", -150.0)
	viper.SetDefault("profiles.gold.cci_overbought", 150.0)
	viper.SetDefault("profiles.gold.donchian_period", 20)
	viper.SetDefault("profiles.gold.strong_threshold", 4)
	viper.SetDefault("profiles.gold.signal_threshold", 2)
	viper.SetDefault("profiles.gold.stop_loss_atr", 2.5)
	viper.SetDefault("profiles.gold.take_profit_atr", 4.0)
	viper.SetDefault("profiles.gold.price_precision", 2)

	// 越南股票：10/20/50三均线趋势分层，成交量确认
	viper.SetDefault("profiles.vnstock.sma_fast_period", 10)
	viper.SetDefault("profiles.vnstock.bollinger_k", 2.0)
	viper.SetDefault("profiles.vnstock.rsi_oversold", 30.0)
	viper.SetDefault("profiles.vnstock.rsi_overbought", 70.0)
	viper.SetDefault("profiles.vnstock.stoch_oversold", 20.0)
	viper.SetDefault("profiles.vnstock.stoch_overbought", 80.0)
	viper.SetDefault("profiles.vnstock.williams_oversold", -80.0)
	viper.SetDefault("profiles.vnstock.williams_overbought", -20.0)
	viper.SetDefault("profiles.vnstock.mfi_period", 14)
	viper.SetDefault("profiles.vnstock.volume_confirm_ratio", 1.2)
	viper.SetDefault("profiles.vnstock.strong_threshold", 6)
	viper.SetDefault("profiles.vnstock.signal_threshold", 3)
	viper.SetDefault("profiles.vnstock.stop_loss_atr", 2.0)
	viper.SetDefault("profiles.vnstock.take_profit_atr", 3.0)
	viper.SetDefault("profiles.vnstock.price_precision", 2)
}
