package relay

import (
	"time"

	"github.com/rishi925-eng/Vital-Trace/pkg/common"
	"github.com/rishi925-eng/Vital-Trace/pkg/models"
	"go.uber.org/zap"
)

// CommandDelivery is the payload pushed to the one addressed device.
type CommandDelivery struct {
	Command   string    `json:"command"`
	Value     string    `json:"value"`
	Timestamp time.Time `json:"timestamp"`
}

// DispatchResult reports acceptance, not delivery. Accepted is always
// true once the request is handed to the sink; Delivered only says a
// live session was resolved and the send was attempted.
type DispatchResult struct {
	Accepted  bool `json:"accepted"`
	Delivered bool `json:"delivered"`
}

// Dispatch persists the command request unconditionally, then delivers
// it to the target device's active session if one exists. A command to
// an offline device is silently dropped after persistence: at-most-once,
// no queue, no retry.
func (r *Relay) Dispatch(session *Session, deviceID, command, value string) DispatchResult {
	logger := common.GetLoggerWith(
		common.LoggerNameRelayCore,
		zap.String(common.LoggerFieldRelayCategory, common.LoggerCategoryCommand),
	)

	request := models.CommandRequest{
		DeviceID:  deviceID,
		Command:   command,
		Value:     value,
		Timestamp: r.Now(),
		Status:    models.CommandStatusPending,
	}

	logger.Info("Command received",
		zap.String("device_id", deviceID),
		zap.String("command", command),
		zap.String("value", value))

	if r.Sink != nil {
		r.Sink.AppendCommand(&request)
	}

	target, ok := r.Registry.Resolve(deviceID)
	if !ok {
		logger.Info("Command target offline, dropped after persistence",
			zap.String("device_id", deviceID),
			zap.String("command", command))
		return DispatchResult{Accepted: true}
	}

	delivery := CommandDelivery{
		Command:   command,
		Value:     value,
		Timestamp: r.Now(),
	}
	if err := target.Sender.Send(EventCommand, delivery); err != nil {
		logger.Warn("Failed to deliver command",
			zap.String("device_id", deviceID), zap.Error(err))
		return DispatchResult{Accepted: true}
	}

	return DispatchResult{Accepted: true, Delivered: true}
}
