package relay

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type ConnectionRole int

const (
	RoleUnclassified ConnectionRole = iota
	RoleDevice
	RoleObserver
)

func (r ConnectionRole) String() string {
	switch r {
	case RoleDevice:
		return "device"
	case RoleObserver:
		return "observer"
	default:
		return "unclassified"
	}
}

// Sender is the transport handle for one live connection. Send must be
// safe to call from multiple goroutines and must not block the caller
// on a slow peer.
type Sender interface {
	Send(event string, payload any) error
	Close() error
}

// Session is one live connection. A session starts unclassified and is
// classified at most once: the only transition is unclassified ->
// device, made by the registration handler. Anything not proven to be
// a device is treated as an observer for fan-out.
type Session struct {
	ID           string
	Sender       Sender
	RegisteredAt time.Time

	mu       sync.RWMutex
	role     ConnectionRole
	deviceID string
}

func NewSession(sender Sender) *Session {
	return &Session{
		ID:           uuid.NewString(),
		Sender:       sender,
		RegisteredAt: time.Now(),
		role:         RoleUnclassified,
	}
}

func (s *Session) Role() ConnectionRole {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.role
}

func (s *Session) DeviceID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.deviceID
}

// IsObserver reports whether the session takes part in telemetry and
// fleet fan-out.
func (s *Session) IsObserver() bool {
	return s.Role() != RoleDevice
}

// markDevice classifies the session; returns false when the session is
// already bound to a different device id. The role never reverts.
func (s *Session) markDevice(deviceID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.role == RoleDevice && s.deviceID != deviceID {
		return false
	}
	s.role = RoleDevice
	s.deviceID = deviceID
	return true
}
