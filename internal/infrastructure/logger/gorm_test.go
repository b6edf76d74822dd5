package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func observedGormLogger(level gormlogger.LogLevel, opts ...GormLoggerOption) (*GormLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewGormLogger(zap.New(core), level, opts...), logs
}

func receiptQuery() (string, int64) {
	return "SELECT * FROM receipts WHERE approval_status = 'PENDING_HOF'", 3
}

func TestGormLogger_TraceQueryAtInfo(t *testing.T) {
	gl, logs := observedGormLogger(gormlogger.Info)

	gl.Trace(context.Background(), time.Now(), receiptQuery, nil)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.DebugLevel, entry.Level)
	assert.Equal(t, "SQL Query", entry.Message)
	assert.Equal(t, "SELECT * FROM receipts WHERE approval_status = 'PENDING_HOF'", field(t, entry, "sql").String)
	assert.EqualValues(t, 3, field(t, entry, "rows").Integer)
}

func TestGormLogger_TraceError(t *testing.T) {
	gl, logs := observedGormLogger(gormlogger.Error)

	gl.Trace(context.Background(), time.Now(), receiptQuery, errors.New("pq: connection reset"))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.ErrorLevel, entry.Level)
	assert.Equal(t, "SQL Error", entry.Message)
}

func TestGormLogger_SuppressesRecordNotFound(t *testing.T) {
	gl, logs := observedGormLogger(gormlogger.Error)

	gl.Trace(context.Background(), time.Now(), receiptQuery, gormlogger.ErrRecordNotFound)

	assert.Equal(t, 0, logs.Len())
}

func TestGormLogger_SlowQueryWarns(t *testing.T) {
	gl, logs := observedGormLogger(gormlogger.Warn, WithSlowThreshold(time.Nanosecond))

	gl.Trace(context.Background(), time.Now().Add(-time.Second), receiptQuery, nil)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.WarnLevel, entry.Level)
	assert.Equal(t, "Slow SQL", entry.Message)
}

func TestGormLogger_SilentDropsEverything(t *testing.T) {
	gl, logs := observedGormLogger(gormlogger.Silent)

	gl.Trace(context.Background(), time.Now(), receiptQuery, errors.New("pq: connection reset"))
	gl.Info(context.Background(), "migrating")
	gl.Warn(context.Background(), "retrying")
	gl.Error(context.Background(), "failed")

	assert.Equal(t, 0, logs.Len())
}

func TestGormLogger_TraceCarriesRequestID(t *testing.T) {
	gl, logs := observedGormLogger(gormlogger.Info)
	ctx, _ := WithRequestID(context.Background(), zap.NewNop(), "req-789")

	gl.Trace(ctx, time.Now(), receiptQuery, nil)

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "req-789", field(t, logs.All()[0], "request_id").String)
}

func TestGormLogger_LogModeReturnsAdjustedCopy(t *testing.T) {
	gl, logs := observedGormLogger(gormlogger.Info)

	silenced := gl.LogMode(gormlogger.Silent)
	silenced.Trace(context.Background(), time.Now(), receiptQuery, nil)
	assert.Equal(t, 0, logs.Len())

	// the original keeps its level
	gl.Trace(context.Background(), time.Now(), receiptQuery, nil)
	assert.Equal(t, 1, logs.Len())
}

func TestMapGormLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, MapGormLogLevel("silent"))
	assert.Equal(t, gormlogger.Error, MapGormLogLevel("error"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("warn"))
	assert.Equal(t, gormlogger.Info, MapGormLogLevel("info"))
	assert.Equal(t, gormlogger.Info, MapGormLogLevel("debug"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("anything-else"))
}
