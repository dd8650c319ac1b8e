package simulator

import (
	"time"

	"github.com/rishi925-eng/Vital-Trace/pkg/models"
)

// Operational scenario of a box. The scenario biases the ambient model
// and the movement/power behavior of the control loop.
const (
	StatusActiveCooling       = "active_cooling"
	StatusInTransit           = "in_transit"
	StatusStandby             = "standby"
	StatusCriticalTemp        = "critical_temp"
	StatusHighTempAlert       = "high_temp_alert"
	StatusLowBattery          = "low_battery"
	StatusEmergencyDeployment = "emergency_deployment"
	StatusExtremeConditions   = "extreme_conditions"
)

const firmwareVersion = "2.1.0-field"

// BoxConfig describes one simulated vaccine storage box.
type BoxConfig struct {
	DeviceID   string
	Name       string
	Location   models.DeviceLocation
	TargetTemp float64
	Status     string
	Priority   string

	// Tick interval bounds; the loop jitters uniformly between them so
	// a fleet never reports in lockstep.
	TickMin time.Duration
	TickMax time.Duration
}

func (c BoxConfig) DeviceInfo() models.DeviceInfo {
	return models.DeviceInfo{
		DeviceID:        c.DeviceID,
		Name:            c.Name,
		Type:            "vital_trace_box",
		FirmwareVersion: firmwareVersion,
		Capabilities: []string{
			"temperature_monitoring",
			"gps_tracking",
			"tamper_detection",
			"active_cooling",
			"solar_charging",
			"cold_chain_compliance",
		},
		Location: c.Location,
	}
}

// DefaultFleet is a field-representative subset of the production demo
// fleet, one box per scenario.
func DefaultFleet() []BoxConfig {
	return []BoxConfig{
		{
			DeviceID:   "VIT_BOX_001",
			Name:       "Delhi Primary Health Center - COVID Vaccines",
			Location:   models.DeviceLocation{Lat: 28.6139, Lng: 77.2090, Name: "New Delhi"},
			TargetTemp: 4.0,
			Status:     StatusActiveCooling,
			Priority:   "high",
		},
		{
			DeviceID:   "VIT_BOX_002",
			Name:       "Punjab Rural Clinic - Hepatitis B",
			Location:   models.DeviceLocation{Lat: 31.3260, Lng: 75.5762, Name: "Jalandhar, Punjab"},
			TargetTemp: 5.0,
			Status:     StatusInTransit,
			Priority:   "medium",
		},
		{
			DeviceID:   "VIT_BOX_008",
			Name:       "Patna District Hospital - Emergency Stock",
			Location:   models.DeviceLocation{Lat: 25.5941, Lng: 85.1376, Name: "Patna, Bihar"},
			TargetTemp: 3.0,
			Status:     StatusCriticalTemp,
			Priority:   "critical",
		},
		{
			DeviceID:   "VIT_BOX_012",
			Name:       "Rajasthan Desert Unit - Cholera",
			Location:   models.DeviceLocation{Lat: 26.9124, Lng: 75.7873, Name: "Jaipur, Rajasthan"},
			TargetTemp: 6.0,
			Status:     StatusHighTempAlert,
			Priority:   "critical",
		},
		{
			DeviceID:   "VIT_BOX_016",
			Name:       "Hyderabad Metro - COVID Boosters",
			Location:   models.DeviceLocation{Lat: 17.3850, Lng: 78.4867, Name: "Hyderabad, Telangana"},
			TargetTemp: 4.0,
			Status:     StatusStandby,
			Priority:   "high",
		},
		{
			DeviceID:   "VIT_BOX_018",
			Name:       "Nagpur Rural Circuit - Encephalitis",
			Location:   models.DeviceLocation{Lat: 21.1458, Lng: 79.0882, Name: "Nagpur, Maharashtra"},
			TargetTemp: 3.5,
			Status:     StatusLowBattery,
			Priority:   "critical",
		},
		{
			DeviceID:   "VIT_BOX_020",
			Name:       "Emergency Response Unit - Multi-vaccine",
			Location:   models.DeviceLocation{Lat: 26.7606, Lng: 83.3732, Name: "Gorakhpur, UP"},
			TargetTemp: 2.5,
			Status:     StatusEmergencyDeployment,
			Priority:   "critical",
		},
		{
			DeviceID:   "VIT_BOX_025",
			Name:       "Mountain Rescue Unit - High Altitude",
			Location:   models.DeviceLocation{Lat: 34.0837, Lng: 74.7973, Name: "Srinagar, Kashmir"},
			TargetTemp: 4.0,
			Status:     StatusExtremeConditions,
			Priority:   "high",
		},
	}
}
