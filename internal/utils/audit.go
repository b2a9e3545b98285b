package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/ministerio-jovem/app-frequencia/internal/config"
	"github.com/ministerio-jovem/app-frequencia/internal/logging"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// AuditLog represents an audit log entry
type AuditLog struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Action     string             `bson:"action" json:"action"`
	Resource   string             `bson:"resource" json:"resource"`
	ResourceID string             `bson:"resource_id,omitempty" json:"resource_id,omitempty"`
	NewValue   interface{}        `bson:"new_value,omitempty" json:"new_value,omitempty"`
	UserID     string             `bson:"user_id,omitempty" json:"user_id,omitempty"`
	Role       string             `bson:"role,omitempty" json:"role,omitempty"`
	IPAddress  string             `bson:"ip_address,omitempty" json:"ip_address,omitempty"`
	UserAgent  string             `bson:"user_agent,omitempty" json:"user_agent,omitempty"`
	RequestID  string             `bson:"request_id,omitempty" json:"request_id,omitempty"`
	Timestamp  time.Time          `bson:"timestamp" json:"timestamp"`
	Metadata   map[string]string  `bson:"metadata,omitempty" json:"metadata,omitempty"`
}

// Audit constants
const (
	AuditActionCreate   = "CREATE"
	AuditActionUpdate   = "UPDATE"
	AuditActionDelete   = "DELETE"
	AuditActionLogin    = "LOGIN"
	AuditActionRegister = "REGISTER"

	AuditResourceMembro   = "membro"
	AuditResourcePresenca = "presenca"
	AuditResourceUsuario  = "usuario"
)

// AuditContext contains request information for audit logging
type AuditContext struct {
	UserID    string
	Role      string
	IPAddress string
	UserAgent string
	RequestID string
}

// AuditWriter persists a batch of audit logs
type AuditWriter func(ctx context.Context, logs []AuditLog) error

// MongoAuditWriter writes audit batches with an unordered bulk insert
func MongoAuditWriter(collection *mongo.Collection) AuditWriter {
	return func(ctx context.Context, logs []AuditLog) error {
		operations := make([]mongo.WriteModel, 0, len(logs))
		for _, log := range logs {
			operations = append(operations, mongo.NewInsertOneModel().SetDocument(log))
		}
		_, err := collection.BulkWrite(ctx, operations, options.BulkWrite().SetOrdered(false))
		return err
	}
}

// AuditWorker manages asynchronous audit logging
type AuditWorker struct {
	auditChan     chan AuditLog
	workers       int
	write         AuditWriter
	batchSize     int
	flushInterval time.Duration

	mu      sync.RWMutex
	stopped bool
	wg      sync.WaitGroup
}

var (
	auditWorker     *AuditWorker
	auditWorkerOnce sync.Once
)

// NewAuditWorker starts a worker pool draining audit logs into write
func NewAuditWorker(write AuditWriter, workers int, bufferSize int) *AuditWorker {
	if workers < 1 {
		workers = 1
	}
	if bufferSize < 1 {
		bufferSize = 1
	}
	aw := &AuditWorker{
		auditChan:     make(chan AuditLog, bufferSize),
		workers:       workers,
		write:         write,
		batchSize:     100,
		flushInterval: 100 * time.Millisecond,
	}
	aw.start()
	return aw
}

// InitAuditWorker initializes the global audit worker
func InitAuditWorker(write AuditWriter, workers int, bufferSize int) *AuditWorker {
	auditWorkerOnce.Do(func() {
		auditWorker = NewAuditWorker(write, workers, bufferSize)
	})
	return auditWorker
}

// GetAuditWorker returns the global audit worker instance
func GetAuditWorker() *AuditWorker {
	return auditWorker
}

// start starts the audit worker pool
func (aw *AuditWorker) start() {
	aw.wg.Add(aw.workers)
	for i := 0; i < aw.workers; i++ {
		go func() {
			defer aw.wg.Done()
			aw.processAuditLogs()
		}()
	}

	logging.Logger.Info("audit worker started",
		zap.Int("workers", aw.workers),
		zap.Int("buffer_size", cap(aw.auditChan)))
}

// processAuditLogs collects logs into batches flushed by size or on a ticker
func (aw *AuditWorker) processAuditLogs() {
	ticker := time.NewTicker(aw.flushInterval)
	defer ticker.Stop()

	var batch []AuditLog
	for {
		select {
		case auditLog, ok := <-aw.auditChan:
			if !ok {
				aw.flushBatch(batch)
				return
			}
			batch = append(batch, auditLog)
			if len(batch) >= aw.batchSize {
				aw.flushBatch(batch)
				batch = nil
			}
		case <-ticker.C:
			if len(batch) > 0 {
				aw.flushBatch(batch)
				batch = nil
			}
		}
	}
}

// flushBatch writes one batch of audit logs
func (aw *AuditWorker) flushBatch(batch []AuditLog) {
	if len(batch) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := aw.write(ctx, batch); err != nil {
		logging.Logger.Error("failed to insert audit log batch",
			zap.Error(err),
			zap.Int("batch_size", len(batch)))
		return
	}

	logging.Logger.Debug("audit log batch inserted", zap.Int("batch_size", len(batch)))
}

// Enqueue hands a log to the workers without blocking. It returns false when the
// buffer is full or the worker has stopped.
func (aw *AuditWorker) Enqueue(log AuditLog) bool {
	aw.mu.RLock()
	defer aw.mu.RUnlock()

	if aw.stopped {
		return false
	}
	select {
	case aw.auditChan <- log:
		return true
	default:
		return false
	}
}

// Stop drains pending logs and waits for the workers to exit
func (aw *AuditWorker) Stop() {
	if aw == nil {
		return
	}

	aw.mu.Lock()
	if aw.stopped {
		aw.mu.Unlock()
		return
	}
	aw.stopped = true
	close(aw.auditChan)
	aw.mu.Unlock()

	aw.wg.Wait()
}

// Stats returns current audit worker statistics
func (aw *AuditWorker) Stats() map[string]interface{} {
	if aw == nil {
		return map[string]interface{}{"status": "not_initialized"}
	}
	return map[string]interface{}{
		"status":          "running",
		"workers":         aw.workers,
		"buffer_capacity": cap(aw.auditChan),
		"buffer_usage":    len(aw.auditChan),
	}
}

// LogAuditEvent records an audit event through the global worker, writing
// synchronously when the worker is missing or its buffer is full
func LogAuditEvent(ctx context.Context, auditCtx AuditContext, action, resource, resourceID string, newValue interface{}, metadata map[string]string) error {
	if config.AppConfig != nil && !config.AppConfig.AuditLogsEnabled {
		return nil
	}

	auditLog := AuditLog{
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		NewValue:   SanitizeAuditData(newValue),
		UserID:     auditCtx.UserID,
		Role:       auditCtx.Role,
		IPAddress:  auditCtx.IPAddress,
		UserAgent:  auditCtx.UserAgent,
		RequestID:  auditCtx.RequestID,
		Timestamp:  time.Now(),
		Metadata:   metadata,
	}

	if aw := GetAuditWorker(); aw != nil {
		if aw.Enqueue(auditLog) {
			return nil
		}
		logging.Logger.Warn("audit channel full, falling back to synchronous logging",
			zap.String("action", action),
			zap.String("resource", resource))
		return writeAuditSync(ctx, aw.write, auditLog)
	}

	if config.MongoDB == nil || config.AppConfig == nil {
		logging.Logger.Debug("audit event dropped, no storage configured",
			zap.String("action", action),
			zap.String("resource", resource))
		return nil
	}
	return writeAuditSync(ctx, MongoAuditWriter(config.MongoDB.Collection(config.AppConfig.AuditLogCollection)), auditLog)
}

// writeAuditSync writes a single log, detached from the request's cancellation
func writeAuditSync(ctx context.Context, write AuditWriter, auditLog AuditLog) error {
	dbCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if err := write(dbCtx, []AuditLog{auditLog}); err != nil {
		logging.Logger.Error("failed to insert audit log", zap.Error(err))
		return fmt.Errorf("failed to insert audit log: %w", err)
	}
	return nil
}

// sensitiveFields are redacted from audited payloads
var sensitiveFields = []string{"senha", "password", "token", "secret"}

// SanitizeAuditData removes sensitive information from audit data
func SanitizeAuditData(data interface{}) interface{} {
	if data == nil {
		return nil
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return data
	}

	var sanitized interface{}
	if err := json.Unmarshal(jsonData, &sanitized); err != nil {
		return data
	}

	sanitizeMap(sanitized)
	return sanitized
}

// sanitizeMap recursively redacts sensitive fields
func sanitizeMap(data interface{}) {
	switch v := data.(type) {
	case map[string]interface{}:
		for _, field := range sensitiveFields {
			if _, exists := v[field]; exists {
				v[field] = "[REDACTED]"
			}
		}
		for _, value := range v {
			sanitizeMap(value)
		}
	case []interface{}:
		for _, item := range v {
			sanitizeMap(item)
		}
	}
}
