package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// AuditSink 审计事件的投递端。Write 不返回错误：坏掉的 sink 不能拖垮主操作。
type AuditSink interface {
	Write(entry AuditEvent)
	Close()
}

// ConsoleSink 开发环境用，JSON 行打到标准输出
type ConsoleSink struct {
	logger *zap.Logger
}

func NewConsoleSink() *ConsoleSink {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "" // 事件自带 timestamp 字段
	logger, err := cfg.Build()
	if err != nil {
		logger = zap.NewNop()
	}
	return &ConsoleSink{logger: logger}
}

func (s *ConsoleSink) Write(entry AuditEvent) {
	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	s.logger.Info("[AUDIT]", zap.ByteString("entry", data))
}

func (s *ConsoleSink) Close() {
	_ = s.logger.Sync()
}

// FileSink 轮转文件 sink，lumberjack 负责切割
type FileSink struct {
	logger *zap.Logger
}

func NewFileSink(path string) *FileSink {
	writer := zapcore.AddSync(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	})
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), writer, zapcore.InfoLevel)
	return &FileSink{logger: zap.New(core)}
}

func (s *FileSink) Write(entry AuditEvent) {
	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	s.logger.Info("[AUDIT]", zap.ByteString("entry", data))
}

func (s *FileSink) Close() {
	_ = s.logger.Sync()
}

// RedisStreamSink 批量投递到 Redis Stream 的日志流 sink。
// 缓冲写满时丢弃新事件而不是阻塞调用方。
type RedisStreamSink struct {
	rdb       *redis.Client
	stream    string
	batchSize int
	interval  time.Duration
	ch        chan AuditEvent
	done      chan struct{}

	mu     sync.RWMutex // 保护 closed 与 ch 的关闭时序
	closed bool
}

func NewRedisStreamSink(rdb *redis.Client, stream string, batchSize int, interval time.Duration) *RedisStreamSink {
	if batchSize <= 0 {
		batchSize = 50
	}
	if interval <= 0 {
		interval = 5 * time.Second
	}
	s := &RedisStreamSink{
		rdb:       rdb,
		stream:    stream,
		batchSize: batchSize,
		interval:  interval,
		ch:        make(chan AuditEvent, 1024),
		done:      make(chan struct{}),
	}
	go s.run()
	return s
}

// Write 关闭后的写入直接丢弃，停机窗口内仍在处理的请求不受影响
func (s *RedisStreamSink) Write(entry AuditEvent) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return
	}
	select {
	case s.ch <- entry:
	default:
		// 缓冲已满，丢弃
	}
}

func (s *RedisStreamSink) run() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	batch := make([]AuditEvent, 0, s.batchSize)
	for {
		select {
		case entry, ok := <-s.ch:
			if !ok {
				s.flush(batch)
				close(s.done)
				return
			}
			batch = append(batch, entry)
			if len(batch) >= s.batchSize {
				s.flush(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				s.flush(batch)
				batch = batch[:0]
			}
		}
	}
}

func (s *RedisStreamSink) flush(batch []AuditEvent) {
	if len(batch) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	pipe := s.rdb.Pipeline()
	for _, entry := range batch {
		data, err := json.Marshal(entry)
		if err != nil {
			continue
		}
		pipe.XAdd(ctx, &redis.XAddArgs{
			Stream: s.stream,
			Values: map[string]interface{}{"entry": string(data)},
		})
	}
	// 尽力而为，失败只能放弃本批
	_, _ = pipe.Exec(ctx)
}

func (s *RedisStreamSink) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	close(s.ch)
	select {
	case <-s.done:
	case <-time.After(3 * time.Second):
	}
}
