package models

import "time"

type AlertLevel string

const (
	AlertLevelNormal   AlertLevel = "normal"
	AlertLevelInfo     AlertLevel = "info"
	AlertLevelWarning  AlertLevel = "warning"
	AlertLevelCritical AlertLevel = "critical"
)

type CommandStatus string

const (
	CommandStatusPending CommandStatus = "pending"
	CommandStatusDone    CommandStatus = "done"
)

// TelemetryRecord is one immutable snapshot of a box's sensor and
// derived state. Never mutated after creation.
type TelemetryRecord struct {
	ID       uint   `gorm:"primaryKey" json:"-"`
	DeviceID string `gorm:"index" json:"device_id"`

	Timestamp  time.Time `json:"timestamp"`
	ReceivedAt time.Time `json:"received_at,omitempty"`

	// Core cold chain metrics
	Temperature        float64 `json:"temperature"`
	TargetTemperature  float64 `json:"target_temperature"`
	TemperatureInRange bool    `json:"temperature_in_range"`
	AmbientTemperature float64 `json:"ambient_temperature"`

	// Location & movement
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	LocationName    string  `json:"location_name"`
	JourneyDistance float64 `json:"journey_distance"`

	// Power & cooling system
	BatteryPercentage float64 `json:"battery_percentage"`
	Voltage           float64 `json:"voltage"`
	CoolingActive     bool    `json:"cooling_active"`
	CoolingStatus     string  `json:"cooling_status"`
	SolarCharging     bool    `json:"solar_charging"`

	// Security & tamper detection
	LidOpened    bool       `json:"lid_opened"`
	LidOpenCount int        `json:"lid_open_count"`
	LastLidOpen  *time.Time `json:"last_lid_open,omitempty"`

	// Compliance & alerts
	ColdChainCompliant bool       `json:"cold_chain_compliant"`
	AlertLevel         AlertLevel `gorm:"type:varchar(10)" json:"alert_level"`
	AlertMessage       string     `json:"alert_message,omitempty"`
	ExcursionCount     int        `json:"excursion_count"`

	// Standard IoT fields; optional sensors are null when the device
	// does not carry them
	SignalStrength  float64  `json:"signal_strength"`
	FirmwareVersion string   `json:"firmware_version"`
	Status          string   `json:"status"`
	Humidity        *float64 `json:"humidity,omitempty"`
	Pressure        *float64 `json:"pressure,omitempty"`
	Light           *float64 `json:"light,omitempty"`
	Motion          *bool    `json:"motion,omitempty"`
}

// CommandRequest is an observer-issued command to one device. The
// router persists it unconditionally; status stays pending until a
// collaborator marks it.
type CommandRequest struct {
	ID        uint          `gorm:"primaryKey" json:"-"`
	DeviceID  string        `gorm:"index" json:"device_id"`
	Command   string        `json:"command"`
	Value     string        `json:"value"`
	Timestamp time.Time     `json:"timestamp"`
	Status    CommandStatus `gorm:"type:varchar(10);default:'pending'" json:"status"`
}

// DeviceInfo is the metadata a box announces at registration. Held in
// the device directory only, never persisted.
type DeviceInfo struct {
	DeviceID        string         `json:"device_id"`
	Name            string         `json:"name"`
	Type            string         `json:"type"`
	FirmwareVersion string         `json:"firmware_version,omitempty"`
	Capabilities    []string       `json:"capabilities,omitempty"`
	Location        DeviceLocation `json:"location"`
}

type DeviceLocation struct {
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	Name string  `json:"name,omitempty"`
}

// FleetEntry is one row of a fleet-list-changed announcement.
type FleetEntry struct {
	DeviceID string         `json:"device_id"`
	Name     string         `json:"name"`
	Type     string         `json:"type"`
	Location DeviceLocation `json:"location"`
	Status   string         `json:"status"`
	LastSeen time.Time      `json:"last_seen"`
}
