package alert

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"market-signal-sentry/internal/storage"
	"market-signal-sentry/pkg/types"
)

// maxHistory 内存中保留的预警记录上限
const maxHistory = 100

// Engine 预警判定引擎
// 对比每个标的的当前信号与上一轮信号，按去重规则产出预警
type Engine struct {
	state   *storage.StateManager
	db      *storage.DatabaseManager
	history []types.AlertRecord
	mutex   sync.RWMutex
	now     func() time.Time
}

// NewEngine 创建预警引擎，db为nil时不做持久化
func NewEngine(state *storage.StateManager, db *storage.DatabaseManager) *Engine {
	e := &Engine{
		state: state,
		db:    db,
		now:   time.Now,
	}

	if db != nil {
		records, err := db.LoadRecentAlerts(maxHistory)
		if err != nil {
			zap.L().Warn("⚠️ 加载历史预警记录失败", zap.Error(err))
		} else if len(records) > 0 {
			e.history = records
			zap.L().Info("✅ 已加载历史预警记录", zap.Int("count", len(records)))
		}
	}

	return e
}

// Check 检查分析结果并产出新预警
// 分析失败的标的跳过，其余标的无论是否预警都更新上一轮信号
func (e *Engine) Check(results []types.AnalysisResult) []types.AlertRecord {
	var alerts []types.AlertRecord

	for _, result := range results {
		if result.Error != "" || result.Verdict == nil {
			continue
		}

		verdict := result.Verdict
		previous := e.state.PreviousSignal(result.Symbol)

		if shouldAlert(verdict.Signal, previous) {
			record := types.AlertRecord{
				Timestamp:      e.now(),
				Symbol:         result.Symbol,
				Market:         result.Market,
				Signal:         verdict.Signal,
				PreviousSignal: previous,
				Strength:       verdict.Strength,
				Price:          verdict.CurrentPrice,
				EntryPrice:     verdict.EntryPrice,
				StopLoss:       verdict.StopLoss,
				TakeProfit:     verdict.TakeProfit,
				RSI:            verdict.RSI,
				Reasons:        verdict.Reasons,
			}

			alerts = append(alerts, record)
			e.appendHistory(record)

			if e.db != nil {
				if err := e.db.SaveAlert(record); err != nil {
					zap.L().Warn("⚠️ 持久化预警记录失败",
						zap.String("symbol", record.Symbol),
						zap.Error(err))
				}
			}
		}

		e.state.SetPreviousSignal(result.Symbol, verdict.Signal)
	}

	return alerts
}

// shouldAlert 去重规则
// 信号变化、强信号、或从中性转为方向性信号时预警
func shouldAlert(current, previous types.SignalType) bool {
	if current != previous {
		return true
	}
	if current.IsStrong() {
		return true
	}
	return (current == types.SignalLong || current == types.SignalShort) &&
		previous == types.SignalNeutral
}

func (e *Engine) appendHistory(record types.AlertRecord) {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	e.history = append(e.history, record)
	if len(e.history) > maxHistory {
		e.history = e.history[len(e.history)-maxHistory:]
	}
}

// History 返回最近limit条预警记录的副本
func (e *Engine) History(limit int) []types.AlertRecord {
	e.mutex.RLock()
	defer e.mutex.RUnlock()

	if limit <= 0 || limit > len(e.history) {
		limit = len(e.history)
	}

	out := make([]types.AlertRecord, limit)
	copy(out, e.history[len(e.history)-limit:])
	return out
}
