package utils

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// memoryAuditSink collects written audit logs
type memoryAuditSink struct {
	mu   sync.Mutex
	logs []AuditLog
	err  error
}

func (s *memoryAuditSink) write(_ context.Context, logs []AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.logs = append(s.logs, logs...)
	return nil
}

func (s *memoryAuditSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.logs)
}

func TestAuditWorker_FlushesOnStop(t *testing.T) {
	sink := &memoryAuditSink{}
	aw := NewAuditWorker(sink.write, 2, 16)

	for i := 0; i < 10; i++ {
		require.True(t, aw.Enqueue(AuditLog{Action: AuditActionCreate, Resource: AuditResourceMembro}))
	}
	aw.Stop()

	assert.Equal(t, 10, sink.count())
}

func TestAuditWorker_StopReleasesWorkers(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	sink := &memoryAuditSink{}
	aw := NewAuditWorker(sink.write, 4, 8)
	for i := 0; i < 8; i++ {
		aw.Enqueue(AuditLog{Action: AuditActionUpdate})
	}
	aw.Stop()
}

func TestAuditWorker_FlushesOnTicker(t *testing.T) {
	sink := &memoryAuditSink{}
	aw := NewAuditWorker(sink.write, 1, 16)
	defer aw.Stop()

	require.True(t, aw.Enqueue(AuditLog{Action: AuditActionDelete}))
	assert.Eventually(t, func() bool { return sink.count() == 1 }, time.Second, 10*time.Millisecond)
}

func TestAuditWorker_EnqueueAfterStop(t *testing.T) {
	aw := NewAuditWorker((&memoryAuditSink{}).write, 1, 1)
	aw.Stop()
	aw.Stop()

	assert.False(t, aw.Enqueue(AuditLog{Action: AuditActionUpdate}))
}

func TestAuditWorker_WriteErrorDoesNotBlock(t *testing.T) {
	sink := &memoryAuditSink{err: errors.New("mongo down")}
	aw := NewAuditWorker(sink.write, 1, 4)

	require.True(t, aw.Enqueue(AuditLog{Action: AuditActionLogin}))
	aw.Stop()
	assert.Equal(t, 0, sink.count())
}

func TestAuditWorker_Stats(t *testing.T) {
	var nilWorker *AuditWorker
	assert.Equal(t, "not_initialized", nilWorker.Stats()["status"])

	aw := NewAuditWorker((&memoryAuditSink{}).write, 3, 8)
	defer aw.Stop()

	stats := aw.Stats()
	assert.Equal(t, "running", stats["status"])
	assert.Equal(t, 3, stats["workers"])
	assert.Equal(t, 8, stats["buffer_capacity"])
}

func TestWriteAuditSync(t *testing.T) {
	sink := &memoryAuditSink{}
	require.NoError(t, writeAuditSync(context.Background(), sink.write, AuditLog{Action: AuditActionRegister}))
	assert.Equal(t, 1, sink.count())

	sink.err = errors.New("write failed")
	assert.Error(t, writeAuditSync(context.Background(), sink.write, AuditLog{}))
}

func TestSanitizeAuditData(t *testing.T) {
	input := map[string]interface{}{
		"email": "op@example.com",
		"senha": "segredo",
		"nested": map[string]interface{}{
			"password": "x",
			"ok":       "y",
		},
		"items": []interface{}{
			map[string]interface{}{"token": "abc"},
		},
	}

	result, ok := SanitizeAuditData(input).(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "op@example.com", result["email"])
	assert.Equal(t, "[REDACTED]", result["senha"])
	assert.Equal(t, "[REDACTED]", result["nested"].(map[string]interface{})["password"])
	assert.Equal(t, "y", result["nested"].(map[string]interface{})["ok"])
	assert.Equal(t, "[REDACTED]", result["items"].([]interface{})[0].(map[string]interface{})["token"])

	assert.Nil(t, SanitizeAuditData(nil))
}
