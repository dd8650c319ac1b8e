package relay

import (
	"sort"
	"sync"
	"time"

	"github.com/rishi925-eng/Vital-Trace/pkg/common"
	"github.com/rishi925-eng/Vital-Trace/pkg/models"
	"go.uber.org/zap"
)

type directoryEntry struct {
	session  *Session
	info     models.DeviceInfo
	lastSeen time.Time
}

// Registry owns every live session and the device directory
// (device_id -> active session). All registration, resolution and
// release go through its lock; nothing else mutates session roles.
type Registry struct {
	// CloseSuperseded closes the old connection when a device id
	// re-registers from a new one. The directory swap happens first,
	// so the superseded session's release never emits a stale fleet
	// notification.
	CloseSuperseded bool

	mu        sync.RWMutex
	sessions  map[string]*Session
	directory map[string]*directoryEntry
}

func NewRegistry() *Registry {
	return &Registry{
		CloseSuperseded: true,
		sessions:        make(map[string]*Session),
		directory:       make(map[string]*directoryEntry),
	}
}

// Admit records first contact from a connection. The session stays
// unclassified and is treated as an observer until it registers.
func (r *Registry) Admit(sender Sender) *Session {
	session := NewSession(sender)

	r.mu.Lock()
	r.sessions[session.ID] = session
	r.mu.Unlock()

	r.logger().Info("Session admitted", zap.String("session_id", session.ID))
	return session
}

// Register classifies the session as a device and binds its id in the
// directory, replacing any prior entry for that id. A registration
// without a device id is a caller error: logged, no state change.
func (r *Registry) Register(session *Session, info models.DeviceInfo) {
	logger := r.logger()

	if info.DeviceID == "" {
		logger.Warn("Rejected registration without device id",
			zap.String("session_id", session.ID))
		return
	}

	if !session.markDevice(info.DeviceID) {
		logger.Warn("Rejected re-registration under a different device id",
			zap.String("session_id", session.ID),
			zap.String("bound_device_id", session.DeviceID()),
			zap.String("claimed_device_id", info.DeviceID))
		return
	}

	var superseded *Session

	r.mu.Lock()
	if prev, ok := r.directory[info.DeviceID]; ok && prev.session != session {
		superseded = prev.session
	}
	r.directory[info.DeviceID] = &directoryEntry{
		session:  session,
		info:     info,
		lastSeen: time.Now(),
	}
	r.mu.Unlock()

	logger.Info("Device registered",
		zap.String("device_id", info.DeviceID),
		zap.String("name", info.Name),
		zap.String("session_id", session.ID))

	if superseded != nil {
		logger.Warn("Device id re-registered, superseding old session",
			zap.String("device_id", info.DeviceID),
			zap.String("old_session_id", superseded.ID))
		if r.CloseSuperseded {
			if err := superseded.Sender.Close(); err != nil {
				logger.Warn("Failed to close superseded session", zap.Error(err))
			}
		}
	}

	r.NotifyFleetChanged()
}

// Resolve returns the currently active session for a device id.
func (r *Registry) Resolve(deviceID string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.directory[deviceID]
	if !ok {
		return nil, false
	}
	return entry.session, true
}

// TouchDevice refreshes the directory's last-seen timestamp.
func (r *Registry) TouchDevice(deviceID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if entry, ok := r.directory[deviceID]; ok {
		entry.lastSeen = time.Now()
	}
}

// Release drops a session on disconnect. A device's directory entry is
// removed before the fleet notification goes out, so no observer ever
// sees a just-disconnected device in the announced list.
func (r *Registry) Release(session *Session) {
	changed := false

	r.mu.Lock()
	delete(r.sessions, session.ID)
	if session.Role() == RoleDevice {
		deviceID := session.DeviceID()
		if entry, ok := r.directory[deviceID]; ok && entry.session == session {
			delete(r.directory, deviceID)
			changed = true
		}
	}
	r.mu.Unlock()

	r.logger().Info("Session released",
		zap.String("session_id", session.ID),
		zap.String("role", session.Role().String()))

	if changed {
		r.NotifyFleetChanged()
	}
}

// Observers snapshots every admitted session not classified as a
// device.
func (r *Registry) Observers() []*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	observers := make([]*Session, 0, len(r.sessions))
	for _, session := range r.sessions {
		if session.IsObserver() {
			observers = append(observers, session)
		}
	}
	return observers
}

// FleetList snapshots the directory as announced to observers, sorted
// by device id for a stable order.
func (r *Registry) FleetList() []models.FleetEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fleet := make([]models.FleetEntry, 0, len(r.directory))
	for deviceID, entry := range r.directory {
		fleet = append(fleet, models.FleetEntry{
			DeviceID: deviceID,
			Name:     entry.info.Name,
			Type:     entry.info.Type,
			Location: entry.info.Location,
			Status:   "online",
			LastSeen: entry.lastSeen,
		})
	}
	sort.Slice(fleet, func(i, j int) bool { return fleet[i].DeviceID < fleet[j].DeviceID })
	return fleet
}

func (r *Registry) DeviceCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.directory)
}

// NotifyFleetChanged broadcasts the current fleet list to every
// observer session. Send failures are logged and never propagate.
func (r *Registry) NotifyFleetChanged() {
	fleet := r.FleetList()
	logger := r.logger()

	for _, observer := range r.Observers() {
		if err := observer.Sender.Send(EventDevicesUpdated, fleet); err != nil {
			logger.Warn("Failed to notify observer of fleet change",
				zap.String("session_id", observer.ID), zap.Error(err))
		}
	}
}

func (r *Registry) logger() *zap.Logger {
	return common.GetLoggerWith(
		common.LoggerNameRelayCore,
		zap.String(common.LoggerFieldRelayCategory, common.LoggerCategoryRegistry),
	)
}
