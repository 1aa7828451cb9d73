package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"market-signal-sentry/pkg/types"
)

// Client 币安实时行情WebSocket客户端
// 订阅miniTicker流，为周期报告提供最新成交价
type Client struct {
	endpoint      string
	proxy         string
	symbols       []string
	conn          *websocket.Conn
	mu            sync.RWMutex
	isConnected   bool
	reconnectChan chan struct{}
	ctx           context.Context
	cancel        context.CancelFunc
	priceChan     chan types.PricePoint
	config        types.StreamConfig
}

// binanceStreamMessage 币安组合流消息
type binanceStreamMessage struct {
	Stream string `json:"stream"`
	Data   struct {
		EventType string `json:"e"`
		Symbol    string `json:"s"`
		Close     string `json:"c"`
		EventTime int64  `json:"E"`
	} `json:"data"`
}

// NewClient 创建行情流客户端
func NewClient(proxy string, symbols []string, config types.StreamConfig) *Client {
	ctx, cancel := context.WithCancel(context.Background())

	return &Client{
		endpoint:      config.Endpoint,
		proxy:         proxy,
		symbols:       symbols,
		reconnectChan: make(chan struct{}, 1),
		ctx:           ctx,
		cancel:        cancel,
		priceChan:     make(chan types.PricePoint, 1000),
		config:        config,
	}
}

// Connect 建立WebSocket连接并订阅行情
func (c *Client) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	dialer := websocket.DefaultDialer
	if c.proxy != "" {
		proxyURL, err := url.Parse(c.proxy)
		if err != nil {
			return fmt.Errorf("解析代理URL失败: %v", err)
		}
		dialer.Proxy = http.ProxyURL(proxyURL)
	}

	// 订阅参数直接编码在连接URL中
	streams := make([]string, 0, len(c.symbols))
	for _, symbol := range c.symbols {
		streams = append(streams, strings.ToLower(symbol)+"@miniTicker")
	}
	endpoint := c.endpoint + "?streams=" + strings.Join(streams, "/")

	conn, _, err := dialer.Dial(endpoint, nil)
	if err != nil {
		return fmt.Errorf("WebSocket连接失败: %v", err)
	}

	c.conn = conn
	c.isConnected = true

	zap.L().Info("✅ 行情流连接建立成功",
		zap.String("endpoint", c.endpoint),
		zap.Strings("symbols", c.symbols))

	return nil
}

// StartReading 开始读取行情数据
func (c *Client) StartReading() {
	go c.readLoop()
	go c.reconnectLoop()
	go c.pingLoop()
}

func (c *Client) readLoop() {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error("行情流读取panic", zap.Any("error", r))
		}
	}()

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
			c.mu.RLock()
			conn := c.conn
			c.mu.RUnlock()

			if conn == nil {
				time.Sleep(time.Second)
				continue
			}

			_, message, err := conn.ReadMessage()
			if err != nil {
				zap.L().Error("行情流读取消息失败", zap.Error(err))
				c.handleDisconnect()
				continue
			}

			if err := c.parseTicker(message); err != nil {
				zap.L().Warn("解析行情消息失败", zap.Error(err))
			}
		}
	}
}

func (c *Client) parseTicker(message []byte) error {
	var msg binanceStreamMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		return err
	}

	// 忽略订阅确认等非行情消息
	if msg.Data.Symbol == "" || msg.Data.Close == "" {
		return nil
	}

	price, err := strconv.ParseFloat(msg.Data.Close, 64)
	if err != nil {
		return fmt.Errorf("解析价格失败: %v", err)
	}

	point := types.PricePoint{
		Symbol:    msg.Data.Symbol,
		Price:     price,
		Timestamp: time.UnixMilli(msg.Data.EventTime),
	}

	select {
	case c.priceChan <- point:
	default:
		zap.L().Warn("行情数据通道满，丢弃数据", zap.String("symbol", point.Symbol))
	}
	return nil
}

func (c *Client) reconnectLoop() {
	reconnectAttempts := 0

	for {
		select {
		case <-c.ctx.Done():
			return
		case <-c.reconnectChan:
			reconnectAttempts++
			if reconnectAttempts > c.config.MaxReconnectAttempts {
				zap.L().Error("达到最大重连次数，停止重连",
					zap.Int("max_attempts", c.config.MaxReconnectAttempts))
				return
			}

			zap.L().Info("尝试重连行情流",
				zap.Int("attempt", reconnectAttempts),
				zap.Int("max_attempts", c.config.MaxReconnectAttempts))

			if err := c.Connect(); err != nil {
				zap.L().Error("重连失败", zap.Error(err))
				time.Sleep(c.config.ReconnectInterval)
				select {
				case c.reconnectChan <- struct{}{}:
				default:
				}
				continue
			}

			reconnectAttempts = 0
			zap.L().Info("行情流重连成功")
		}
	}
}

func (c *Client) pingLoop() {
	ticker := time.NewTicker(c.config.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.ctx.Done():
			return
		case <-ticker.C:
			c.mu.RLock()
			conn := c.conn
			isConnected := c.isConnected
			c.mu.RUnlock()

			if !isConnected || conn == nil {
				continue
			}

			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				zap.L().Error("发送心跳失败", zap.Error(err))
				c.handleDisconnect()
			}
		}
	}
}

func (c *Client) handleDisconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
	c.isConnected = false

	select {
	case c.reconnectChan <- struct{}{}:
	default:
	}
}

// GetPriceChannel 获取行情数据通道
func (c *Client) GetPriceChannel() <-chan types.PricePoint {
	return c.priceChan
}

// IsConnected 检查连接状态
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.isConnected
}

// Close 关闭行情流
func (c *Client) Close() error {
	c.cancel()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		err := c.conn.Close()
		c.conn = nil
		c.isConnected = false
		return err
	}
	return nil
}
