package relay

import (
	"time"

	"github.com/rishi925-eng/Vital-Trace/pkg/models"
)

// Wire event names, shared with the websocket transport.
const (
	EventDeviceRegister = "device_register"
	EventSensorData     = "sensor_data"
	EventDeviceCommand  = "device_command"

	EventCommand        = "command"
	EventDevicesUpdated = "devices_updated"
	EventRealTimeData   = "real_time_data"
)

// ISink is the storage collaborator. Both appends are fire-and-forget:
// implementations must never block the routing path, and failures stay
// inside the sink.
type ISink interface {
	AppendTelemetry(record *models.TelemetryRecord)
	AppendCommand(request *models.CommandRequest)
}

// IQuery is the historical query collaborator, out of the routing path
// but bound to the same record shape.
type IQuery interface {
	TelemetryByDeviceAndLimit(deviceID string, n int) ([]models.TelemetryRecord, error)
	TelemetryByDeviceAndWindow(deviceID string, start, end time.Time) ([]models.TelemetryRecord, error)
}

// Relay wires the session registry, the storage sink and the per-device
// ingest limiters. Telemetry fan-out and command dispatch hang off it.
type Relay struct {
	Registry         *Registry
	Sink             ISink
	RateLimiterStore *RateLimiterStore

	// Now stamps receipt timestamps; replaceable in tests.
	Now func() time.Time
}

type ServiceOpts struct {
	Sink             ISink
	RateLimiterStore *RateLimiterStore
}

func New(registry *Registry) *Relay {
	return &Relay{
		Registry: registry,
		Now:      time.Now,
	}
}

func (r *Relay) WithServices(opts ServiceOpts) *Relay {
	if opts.Sink != nil {
		r.Sink = opts.Sink
	}
	if opts.RateLimiterStore != nil {
		r.RateLimiterStore = opts.RateLimiterStore
	}
	return r
}

func (r *Relay) CheckDeviceLimiter(deviceID string) bool {
	if r.RateLimiterStore == nil {
		return true
	}
	return r.RateLimiterStore.GetLimiter(deviceID).Allow()
}
