package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"market-signal-sentry/internal/alert"
	"market-signal-sentry/internal/analyzer"
	"market-signal-sentry/internal/market/fetcher"
	"market-signal-sentry/internal/market/stream"
	"market-signal-sentry/internal/notifier"
	"market-signal-sentry/internal/scheduler"
	"market-signal-sentry/internal/storage"
	"market-signal-sentry/pkg/types"
)

// App 应用程序管理器
type App struct {
	config *types.Config
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	analyzers   []*analyzer.Analyzer
	alertEngine *alert.Engine
	dispatcher  *notifier.Dispatcher
	console     *notifier.ConsoleNotifier
	priceCache  *stream.PriceCache
	streamConn  *stream.Client
	database    *storage.DatabaseManager
}

// NewApp 创建应用程序实例
func NewApp(config *types.Config) *App {
	ctx, cancel := context.WithCancel(context.Background())
	return &App{
		config: config,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start 启动应用程序
func (app *App) Start() {
	zap.L().Info("🚀 Market Signal Sentry 启动中...")

	httpClient := fetcher.NewHTTPClient(app.config.Network)

	// 信号状态与预警日志
	stateManager := storage.NewStateManager(app.config.Redis)
	if app.config.Database.MySQL.Host != "" {
		db, err := storage.NewDatabaseManager(app.config.Database.MySQL)
		if err != nil {
			zap.L().Warn("⚠️ MySQL初始化失败，预警日志不持久化", zap.Error(err))
		} else {
			app.database = db
		}
	} else {
		zap.L().Info("🔧 未配置MySQL，预警日志仅保留在内存中")
	}
	app.alertEngine = alert.NewEngine(stateManager, app.database)

	// 按市场装配分析器
	var cryptoSymbols []string
	for _, marketConfig := range app.config.Monitor.Markets {
		profile := app.config.Profiles.Profile(marketConfig.Market)
		f := app.buildFetcher(marketConfig.Market, httpClient)
		app.analyzers = append(app.analyzers,
			analyzer.New(marketConfig.Market, f, profile, marketConfig))

		if marketConfig.Market == types.MarketCrypto {
			cryptoSymbols = append(cryptoSymbols, marketConfig.Symbols...)
		}
	}

	// 通知渠道
	var channels []notifier.Interface
	app.console = notifier.NewConsoleNotifier()
	if app.config.Notify.Console {
		channels = append(channels, app.console)
	}
	if app.config.Notify.Email.Enabled {
		channels = append(channels, notifier.NewEmailNotifier(app.config.Notify.Email))
	}
	if app.config.Notify.Desktop {
		channels = append(channels, notifier.NewDesktopNotifier(true))
	}
	app.dispatcher = notifier.NewDispatcher(channels...)

	// 实时行情流（仅加密货币）
	if app.config.Stream.Enabled && len(cryptoSymbols) > 0 {
		app.startStream(cryptoSymbols)
	}

	// 监控循环
	monitorScheduler := scheduler.New(
		app.config.Monitor.CheckInterval,
		app.config.Monitor.MaxDuration,
		app.config.Monitor.FailureDelay,
		app.runCycle,
	)

	app.wg.Add(1)
	go func() {
		defer app.wg.Done()
		if err := monitorScheduler.Run(app.ctx); err != nil {
			zap.L().Error("❌ 调度器异常退出", zap.Error(err))
		}
		// 运行时长上限到期后主动触发关闭
		app.cancel()
	}()

	zap.L().Info("✅ Market Signal Sentry 已启动",
		zap.Int("markets", len(app.analyzers)))
}

// runCycle 执行一轮完整的监控周期
func (app *App) runCycle(ctx context.Context) error {
	zap.L().Info("🔄 开始新一轮市场分析",
		zap.String("time", time.Now().Format("15:04:05")))

	var results []types.AnalysisResult
	for _, a := range app.analyzers {
		results = append(results, a.AnalyzeAll(ctx)...)
	}

	if len(results) == 0 {
		return fmt.Errorf("没有可分析的标的")
	}

	// 周期报告
	app.console.PrintCycleReport(results, app.livePrice)

	// 预警判定与分发
	alerts := app.alertEngine.Check(results)
	if len(alerts) > 0 {
		zap.L().Info("🚨 产生新预警", zap.Int("count", len(alerts)))
		if err := app.dispatcher.SendBatchAlerts(alerts); err != nil {
			zap.L().Warn("⚠️ 部分通知渠道发送失败", zap.Error(err))
		}
	}

	// 全部标的都失败才算周期失败
	failed := 0
	for _, result := range results {
		if result.Error != "" {
			failed++
		}
	}
	if failed == len(results) {
		return fmt.Errorf("本周期全部%d个标的分析失败", failed)
	}

	zap.L().Info("✅ 本轮市场分析完成",
		zap.Int("total", len(results)),
		zap.Int("failed", failed),
		zap.Int("alerts", len(alerts)))
	return nil
}

// startStream 启动实时行情流
func (app *App) startStream(symbols []string) {
	app.priceCache = stream.NewPriceCache()
	app.streamConn = stream.NewClient(app.config.Network.Proxy, symbols, app.config.Stream)

	if err := app.streamConn.Connect(); err != nil {
		zap.L().Warn("⚠️ 行情流连接失败，周期报告不含实时价格", zap.Error(err))
		app.streamConn = nil
		app.priceCache = nil
		return
	}

	app.streamConn.StartReading()

	app.wg.Add(1)
	go func() {
		defer app.wg.Done()
		app.priceCache.Consume(app.ctx, app.streamConn.GetPriceChannel())
	}()
}

func (app *App) livePrice(symbol string) (float64, bool) {
	if app.priceCache == nil {
		return 0, false
	}
	point, ok := app.priceCache.Get(symbol)
	return point.Price, ok
}

// Stop 停止应用程序
func (app *App) Stop() {
	zap.L().Info("🛑 收到停止信号，正在优雅关闭...")
	app.cancel()

	if app.streamConn != nil {
		if err := app.streamConn.Close(); err != nil {
			zap.L().Warn("⚠️ 关闭行情流失败", zap.Error(err))
		}
	}

	done := make(chan struct{})
	go func() {
		app.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		if app.database != nil {
			if err := app.database.Close(); err != nil {
				zap.L().Warn("⚠️ 关闭数据库连接失败", zap.Error(err))
			}
		}
		zap.L().Info("✅ Market Signal Sentry 已安全关闭")
	case <-time.After(30 * time.Second):
		zap.L().Warn("⚠️ 强制关闭超时")
	}
}

// WaitForShutdown 等待关闭信号或运行结束
func (app *App) WaitForShutdown() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
	case <-app.ctx.Done():
	}
}

// buildFetcher 按市场选择数据源
// 加密货币以币安为主、OKX为备；黄金与越南股票走雅虎财经
func (app *App) buildFetcher(market types.Market, httpClient *http.Client) *fetcher.Fetcher {
	attempts := app.config.Monitor.RetryAttempts
	delay := app.config.Monitor.RetryDelay

	switch market {
	case types.MarketGold:
		return fetcher.New(fetcher.NewYahooSource(httpClient, 1), nil, attempts, delay)
	case types.MarketVNStock:
		// 越南股票换算为千盾
		return fetcher.New(fetcher.NewYahooSource(httpClient, 1000), nil, attempts, delay)
	default:
		return fetcher.New(
			fetcher.NewBinanceSource(httpClient),
			fetcher.NewOKXSource(httpClient),
			attempts, delay)
	}
}
