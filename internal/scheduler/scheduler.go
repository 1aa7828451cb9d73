package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Clock 可注入的时钟，测试时替换为假时钟
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) Now() time.Time                         { return time.Now() }
func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// Task 单轮监控任务
type Task func(ctx context.Context) error

// Scheduler 监控循环调度器
// 启动后立即执行一轮，之后按固定周期执行；单轮失败时采用更短的退避时间
type Scheduler struct {
	interval     time.Duration
	maxDuration  time.Duration
	failureDelay time.Duration
	clock        Clock
	task         Task
}

// New 创建调度器，maxDuration为0表示不限制运行时长
func New(interval, maxDuration, failureDelay time.Duration, task Task) *Scheduler {
	if interval <= 0 {
		interval = 300 * time.Second
	}
	if failureDelay <= 0 {
		failureDelay = 30 * time.Second
	}
	return &Scheduler{
		interval:     interval,
		maxDuration:  maxDuration,
		failureDelay: failureDelay,
		clock:        realClock{},
		task:         task,
	}
}

// WithClock 替换时钟，测试使用
func (s *Scheduler) WithClock(clock Clock) *Scheduler {
	s.clock = clock
	return s
}

// Run 运行监控循环直到上下文取消或超过运行时长上限
func (s *Scheduler) Run(ctx context.Context) error {
	zap.L().Info("🚀 调度器启动",
		zap.Duration("interval", s.interval),
		zap.Duration("max_duration", s.maxDuration))

	start := s.clock.Now()

	for {
		if err := ctx.Err(); err != nil {
			zap.L().Info("📴 调度器已停止")
			return nil
		}

		wait := s.interval
		if err := s.task(ctx); err != nil {
			zap.L().Error("❌ 监控周期执行失败，短退避后重试",
				zap.Duration("failure_delay", s.failureDelay),
				zap.Error(err))
			wait = s.failureDelay
		}

		if s.maxDuration > 0 && s.clock.Now().Sub(start)+wait >= s.maxDuration {
			zap.L().Info("⏰ 达到运行时长上限，调度器退出",
				zap.Duration("max_duration", s.maxDuration))
			return nil
		}

		select {
		case <-ctx.Done():
			zap.L().Info("📴 调度器已停止")
			return nil
		case <-s.clock.After(wait):
		}
	}
}
