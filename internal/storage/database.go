package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"market-signal-sentry/pkg/types"
)

// DatabaseManager 预警日志持久化
type DatabaseManager struct {
	db     *gorm.DB
	config types.MySQLConfig
}

// AlertLog 预警日志模型
type AlertLog struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	AlertTime      time.Time `gorm:"not null;index:idx_alert_time" json:"alert_time"`
	Symbol         string    `gorm:"type:varchar(20);not null;index:idx_symbol" json:"symbol"`
	Market         string    `gorm:"type:varchar(10);not null" json:"market"`
	Signal         string    `gorm:"type:varchar(15);not null" json:"signal"`
	PreviousSignal string    `gorm:"type:varchar(15);not null" json:"previous_signal"`
	Strength       int       `gorm:"default:0" json:"strength"`
	Price          float64   `gorm:"type:decimal(20,8);not null" json:"price"`
	EntryPrice     float64   `gorm:"type:decimal(20,8)" json:"entry_price"`
	StopLoss       float64   `gorm:"type:decimal(20,8)" json:"stop_loss"`
	TakeProfit     float64   `gorm:"type:decimal(20,8)" json:"take_profit"`
	RSI            float64   `gorm:"type:decimal(6,2)" json:"rsi"`
	Reasons        string    `gorm:"type:text" json:"reasons"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewDatabaseManager 创建数据库管理器
func NewDatabaseManager(config types.MySQLConfig) (*DatabaseManager, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		config.Username,
		config.Password,
		config.Host,
		config.Port,
		config.Database,
	)

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(mysql.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("连接MySQL失败: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取数据库实例失败: %v", err)
	}
	sqlDB.SetMaxIdleConns(config.MaxIdleConns)
	sqlDB.SetMaxOpenConns(config.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	manager := &DatabaseManager{
		db:     db,
		config: config,
	}

	if err := manager.db.AutoMigrate(&AlertLog{}); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %v", err)
	}

	zap.L().Info("✅ MySQL数据库连接成功",
		zap.String("host", config.Host),
		zap.Int("port", config.Port),
		zap.String("database", config.Database))

	return manager, nil
}

// SaveAlert 保存预警记录
func (m *DatabaseManager) SaveAlert(record types.AlertRecord) error {
	reasons, err := json.Marshal(record.Reasons)
	if err != nil {
		reasons = []byte("[]")
	}

	log := &AlertLog{
		AlertTime:      record.Timestamp,
		Symbol:         record.Symbol,
		Market:         string(record.Market),
		Signal:         string(record.Signal),
		PreviousSignal: string(record.PreviousSignal),
		Strength:       record.Strength,
		Price:          record.Price,
		EntryPrice:     record.EntryPrice,
		StopLoss:       record.StopLoss,
		TakeProfit:     record.TakeProfit,
		RSI:            record.RSI,
		Reasons:        string(reasons),
		CreatedAt:      time.Now(),
	}

	return m.db.Create(log).Error
}

// LoadRecentAlerts 加载最近的预警记录，按时间从旧到新返回
func (m *DatabaseManager) LoadRecentAlerts(limit int) ([]types.AlertRecord, error) {
	var logs []AlertLog
	err := m.db.Order("alert_time DESC").Limit(limit).Find(&logs).Error
	if err != nil {
		return nil, err
	}

	records := make([]types.AlertRecord, 0, len(logs))
	for i := len(logs) - 1; i >= 0; i-- {
		log := logs[i]

		var reasons []string
		if err := json.Unmarshal([]byte(log.Reasons), &reasons); err != nil {
			reasons = nil
		}

		records = append(records, types.AlertRecord{
			Timestamp:      log.AlertTime,
			Symbol:         log.Symbol,
			Market:         types.Market(log.Market),
			Signal:         types.SignalType(log.Signal),
			PreviousSignal: types.SignalType(log.PreviousSignal),
			Strength:       log.Strength,
			Price:          log.Price,
			EntryPrice:     log.EntryPrice,
			StopLoss:       log.StopLoss,
			TakeProfit:     log.TakeProfit,
			RSI:            log.RSI,
			Reasons:        reasons,
		})
	}

	return records, nil
}

// Close 关闭数据库连接
func (m *DatabaseManager) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Health 检查数据库连接健康状态
func (m *DatabaseManager) Health() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
