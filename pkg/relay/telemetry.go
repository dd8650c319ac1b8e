package relay

import (
	"github.com/rishi925-eng/Vital-Trace/pkg/common"
	"github.com/rishi925-eng/Vital-Trace/pkg/models"
	"go.uber.org/zap"
)

// Ingest accepts one reading from a device session, hands a copy to the
// storage sink and broadcasts it to every observer. A sender that never
// registered must not leak readings under a device id it never claimed,
// so its readings are dropped here.
func (r *Relay) Ingest(session *Session, record *models.TelemetryRecord) {
	logger := common.GetLoggerWith(
		common.LoggerNameRelayCore,
		zap.String(common.LoggerFieldRelayCategory, common.LoggerCategoryTelemetry),
	)

	if session.Role() != RoleDevice {
		logger.Warn("Dropped telemetry from unregistered session",
			zap.String("session_id", session.ID),
			zap.String("claimed_device_id", record.DeviceID))
		return
	}

	deviceID := session.DeviceID()

	if !r.CheckDeviceLimiter(deviceID) {
		logger.Warn("Dropped telemetry over device rate limit",
			zap.String("device_id", deviceID))
		return
	}

	// The record carries the id the session registered, not whatever
	// the payload claimed.
	record.DeviceID = deviceID
	record.ReceivedAt = r.Now()

	r.Registry.TouchDevice(deviceID)

	logger.Info("Received telemetry for device",
		zap.String("device_id", deviceID),
		zap.Float64("temperature", record.Temperature),
		zap.Float64("battery", record.BatteryPercentage),
		zap.String("alert_level", string(record.AlertLevel)))

	if r.Sink != nil {
		r.Sink.AppendTelemetry(record)
	}

	for _, observer := range r.Registry.Observers() {
		if err := observer.Sender.Send(EventRealTimeData, record); err != nil {
			logger.Warn("Failed to broadcast telemetry to observer",
				zap.String("session_id", observer.ID), zap.Error(err))
		}
	}
}
