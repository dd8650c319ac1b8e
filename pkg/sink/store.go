package sink

import (
	"github.com/rishi925-eng/Vital-Trace/pkg/common"
	"github.com/rishi925-eng/Vital-Trace/pkg/db"
	"github.com/rishi925-eng/Vital-Trace/pkg/models"
	"go.uber.org/zap"
)

const defaultQueueDepth = 1024

// Store is the append-only storage collaborator. Appends are handed to
// a single background worker over a bounded queue; the routing path
// never waits for the database, and a full queue drops the write with a
// log instead of blocking.
type Store struct {
	Db db.DB

	jobs chan func()
	done chan struct{}
}

func NewStore(database db.DB) *Store {
	return &Store{
		Db:   database,
		jobs: make(chan func(), defaultQueueDepth),
	}
}

func (s *Store) Start() {
	s.done = make(chan struct{})
	go func() {
		for job := range s.jobs {
			job()
		}
		close(s.done)
	}()
}

// Stop drains the queue and waits for the worker to exit.
func (s *Store) Stop() {
	close(s.jobs)
	<-s.done
}

// Flush blocks until every append enqueued before it has been applied.
func (s *Store) Flush() {
	flushed := make(chan struct{})
	s.jobs <- func() { close(flushed) }
	<-flushed
}

func (s *Store) enqueue(job func(), kind string) {
	select {
	case s.jobs <- job:
	default:
		s.appendLogger().Warn("Sink queue full, dropping append", zap.String("kind", kind))
	}
}

func (s *Store) AppendTelemetry(record *models.TelemetryRecord) {
	s.enqueue(func() { s.appendTelemetry(record) }, "telemetry")
}

func (s *Store) AppendCommand(request *models.CommandRequest) {
	s.enqueue(func() { s.appendCommand(request) }, "command")
}

func (s *Store) appendTelemetry(record *models.TelemetryRecord) {
	logger := s.appendLogger()

	if err := s.Db.Conn.Create(record).Error; err != nil {
		logger.Error("Failed to append telemetry record",
			zap.String("device_id", record.DeviceID), zap.Error(err))
		return
	}

	logger.Info("Telemetry record appended",
		zap.String("device_id", record.DeviceID),
		zap.Float64("temperature", record.Temperature))
}

func (s *Store) appendCommand(request *models.CommandRequest) {
	logger := s.appendLogger()

	if err := s.Db.Conn.Create(request).Error; err != nil {
		logger.Error("Failed to append command request",
			zap.String("device_id", request.DeviceID), zap.Error(err))
		return
	}

	logger.Info("Command request appended",
		zap.String("device_id", request.DeviceID),
		zap.String("command", request.Command))
}

func (s *Store) appendLogger() *zap.Logger {
	return common.GetLoggerWith(
		common.LoggerNameStorageSink,
		zap.String(common.LoggerFieldRelayCategory, common.LoggerCategoryAppend),
	)
}
