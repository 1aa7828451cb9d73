package stream

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"market-signal-sentry/pkg/types"
)

// PriceCache 实时价格缓存
// 行情流持续写入，周期报告按需读取
type PriceCache struct {
	mu     sync.RWMutex
	prices map[string]types.PricePoint
}

// NewPriceCache 创建价格缓存
func NewPriceCache() *PriceCache {
	return &PriceCache{
		prices: make(map[string]types.PricePoint),
	}
}

// Set 更新价格
func (pc *PriceCache) Set(point types.PricePoint) {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	pc.prices[point.Symbol] = point
}

// Get 读取价格
func (pc *PriceCache) Get(symbol string) (types.PricePoint, bool) {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	point, ok := pc.prices[symbol]
	return point, ok
}

// Consume 消费行情流数据直到上下文取消
func (pc *PriceCache) Consume(ctx context.Context, prices <-chan types.PricePoint) {
	for {
		select {
		case <-ctx.Done():
			zap.L().Info("📴 价格缓存消费已停止")
			return
		case point, ok := <-prices:
			if !ok {
				return
			}
			pc.Set(point)
		}
	}
}
