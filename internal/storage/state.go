package storage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"market-signal-sentry/pkg/types"
)

// StateManager 信号状态管理器
// 各标的的上一轮信号保存在内存中，Redis可用时异步备份，重启后可恢复
type StateManager struct {
	previousSignals map[string]types.SignalType
	mutex           sync.RWMutex
	redisClient     *redis.Client
	useRedis        bool
}

// NewStateManager 创建状态管理器，Redis连接失败时退化为纯内存模式
func NewStateManager(redisConfig types.RedisConfig) *StateManager {
	sm := &StateManager{
		previousSignals: make(map[string]types.SignalType),
	}

	if redisConfig.URL != "" {
		sm.redisClient = redis.NewClient(&redis.Options{
			Addr:     redisConfig.URL,
			Password: redisConfig.Password,
			DB:       redisConfig.DB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_, err := sm.redisClient.Ping(ctx).Result()
		if err != nil {
			zap.L().Warn("⚠️ Redis连接失败，使用纯内存模式", zap.Error(err))
			sm.useRedis = false
		} else {
			zap.L().Info("✅ Redis连接成功")
			sm.useRedis = true
			sm.restoreFromRedis()
		}
	} else {
		zap.L().Info("🔧 未配置Redis，使用纯内存模式")
	}

	return sm
}

// PreviousSignal 读取标的的上一轮信号，没有记录时视为中性
func (sm *StateManager) PreviousSignal(symbol string) types.SignalType {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()

	if signal, ok := sm.previousSignals[symbol]; ok {
		return signal
	}
	return types.SignalNeutral
}

// SetPreviousSignal 更新标的的上一轮信号
func (sm *StateManager) SetPreviousSignal(symbol string, signal types.SignalType) {
	sm.mutex.Lock()
	sm.previousSignals[symbol] = signal
	sm.mutex.Unlock()

	if sm.useRedis {
		go sm.backupToRedis(symbol, signal)
	}
}

func (sm *StateManager) backupToRedis(symbol string, signal types.SignalType) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	key := fmt.Sprintf("sentry:signal:%s", symbol)
	if err := sm.redisClient.Set(ctx, key, string(signal), 0).Err(); err != nil {
		zap.L().Warn("Redis备份信号状态失败",
			zap.String("symbol", symbol),
			zap.Error(err))
	}
}

// restoreFromRedis 启动时恢复上一轮信号，避免重启后重复预警
func (sm *StateManager) restoreFromRedis() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	keys, err := sm.redisClient.Keys(ctx, "sentry:signal:*").Result()
	if err != nil {
		zap.L().Warn("Redis恢复信号状态失败", zap.Error(err))
		return
	}

	restored := 0
	for _, key := range keys {
		value, err := sm.redisClient.Get(ctx, key).Result()
		if err != nil {
			continue
		}
		symbol := key[len("sentry:signal:"):]
		sm.previousSignals[symbol] = types.SignalType(value)
		restored++
	}

	if restored > 0 {
		zap.L().Info("✅ 已从Redis恢复信号状态", zap.Int("symbols", restored))
	}
}

// Stats 状态统计信息
func (sm *StateManager) Stats() map[string]interface{} {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()

	return map[string]interface{}{
		"redis_enabled":  sm.useRedis,
		"memory_symbols": len(sm.previousSignals),
	}
}
