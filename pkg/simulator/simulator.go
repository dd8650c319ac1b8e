package simulator

import (
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/rishi925-eng/Vital-Trace/pkg/common"
	"github.com/rishi925-eng/Vital-Trace/pkg/models"
	"go.uber.org/zap"
)

// Control loop constants, matching the field firmware.
const (
	hysteresisHigh = 1.0 // cooling engages above target + this
	hysteresisLow  = 0.5 // cooling disengages below target - this

	coolingApproach = 0.3  // fraction moved toward target per tick
	passiveDrift    = 0.02 // fraction moved toward ambient per tick
	coolingCost     = 0.05 // battery percent per cooling tick

	batteryOperatingFloor = 10.0 // below this, cooling cannot run
	batteryFloor          = 5.0
	batteryCeiling        = 100.0
	solarGain             = 0.02
	nightDrain            = 0.01
	daylightStart         = 6
	daylightEnd           = 18

	lidOpenProbability = 0.008
	lidHeatPenalty     = 3.0

	safeBandLow       = 2.0
	safeBandHigh      = 8.0
	batteryOkFloor    = 15.0
	lowBatteryWarning = 20.0

	movementRange = 0.001

	defaultTickMin = 30 * time.Second
	defaultTickMax = 60 * time.Second
)

// Rand is the simulator's randomness capability. The default source is
// seeded from the device id so trajectories are reproducible.
type Rand interface {
	Float64() float64
}

// Emitter is the transport the simulator reports through.
type Emitter interface {
	Register(info models.DeviceInfo) error
	Emit(record *models.TelemetryRecord) error
}

type excursion struct {
	timestamp   time.Time
	temperature float64
}

// Simulator runs the control loop of one simulated box: hysteresis
// cooling against a sinusoidal ambient, a solar power budget, transit
// movement, stochastic lid tampering, and compliance/alert derivation.
type Simulator struct {
	Config BoxConfig

	// Clock is replaceable in tests.
	Clock func() time.Time

	mu              sync.Mutex
	rng             Rand
	currentTemp     float64
	batteryLevel    float64
	coolingActive   bool
	coolingOverride bool
	lidOpenings     int
	lastLidOpen     *time.Time
	journeyDistance float64
	lastLocation    models.DeviceLocation
	excursions      []excursion
	emitter         Emitter
	stop            chan struct{}
	stopOnce        sync.Once
}

func New(config BoxConfig, emitter Emitter) *Simulator {
	if config.TickMin == 0 {
		config.TickMin = defaultTickMin
	}
	if config.TickMax == 0 {
		config.TickMax = defaultTickMax
	}

	rng := rand.New(rand.NewSource(seedFromDeviceID(config.DeviceID)))

	return &Simulator{
		Config:       config,
		Clock:        time.Now,
		rng:          rng,
		currentTemp:  config.TargetTemp + (rng.Float64()-0.5)*2,
		batteryLevel: 95 + rng.Float64()*5,
		lastLocation: config.Location,
		emitter:      emitter,
	}
}

func seedFromDeviceID(deviceID string) int64 {
	h := fnv.New64a()
	h.Write([]byte(deviceID))
	return int64(h.Sum64())
}

// Start registers the box and begins the jittered monitoring loop.
func (s *Simulator) Start() error {
	if err := s.emitter.Register(s.Config.DeviceInfo()); err != nil {
		return err
	}

	s.logger().Info("Box registered",
		zap.String("device_id", s.Config.DeviceID),
		zap.String("status", s.Config.Status))

	s.stop = make(chan struct{})
	go s.loop()
	return nil
}

func (s *Simulator) Stop() {
	s.stopOnce.Do(func() {
		if s.stop != nil {
			close(s.stop)
		}
	})
}

func (s *Simulator) loop() {
	timer := time.NewTimer(s.nextInterval())
	defer timer.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-timer.C:
			s.EmitOnce()
			timer.Reset(s.nextInterval())
		}
	}
}

func (s *Simulator) nextInterval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	spread := s.Config.TickMax - s.Config.TickMin
	return s.Config.TickMin + time.Duration(s.rng.Float64()*float64(spread))
}

// EmitOnce evaluates one tick and reports the resulting record.
func (s *Simulator) EmitOnce() {
	record := s.Tick()
	if err := s.emitter.Emit(record); err != nil {
		s.logger().Warn("Failed to emit telemetry",
			zap.String("device_id", s.Config.DeviceID), zap.Error(err))
	}

	if record.AlertLevel != models.AlertLevelNormal {
		s.logger().Info("Alert condition",
			zap.String("device_id", s.Config.DeviceID),
			zap.String("alert_level", string(record.AlertLevel)),
			zap.String("alert_message", record.AlertMessage))
	}
}

// Tick advances the simulation by one step and returns the snapshot.
func (s *Simulator) Tick() *models.TelemetryRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.Clock()
	hour := now.Hour()

	// ambient: sinusoidal over the day, peak mid-afternoon, biased by
	// the operating scenario
	ambient := 25 + math.Sin(float64(hour-12)*math.Pi/12)*8

	switch s.Config.Status {
	case StatusCriticalTemp:
		if s.rng.Float64() < 0.3 {
			s.currentTemp += (s.rng.Float64() - 0.5) * 4
		}
	case StatusHighTempAlert:
		ambient += 8
	case StatusLowBattery:
		s.batteryLevel = math.Max(batteryOperatingFloor, s.batteryLevel-0.1)
	case StatusEmergencyDeployment:
		ambient += s.rng.Float64() * 10
	case StatusExtremeConditions:
		ambient -= 10
		if s.rng.Float64() < 0.1 {
			s.currentTemp += (s.rng.Float64() - 0.5) * 2
		}
	}

	// hysteresis controller with a deadband; suspended while an
	// override is in force
	target := s.Config.TargetTemp
	if !s.coolingOverride {
		if s.currentTemp > target+hysteresisHigh {
			s.coolingActive = true
		} else if s.currentTemp < target-hysteresisLow {
			s.coolingActive = false
		}
	}

	if s.coolingActive && s.batteryLevel > batteryOperatingFloor {
		s.currentTemp += (target - s.currentTemp) * coolingApproach
		s.batteryLevel -= coolingCost
	} else {
		s.currentTemp += (ambient - s.currentTemp) * passiveDrift
	}
	s.currentTemp += (s.rng.Float64() - 0.5) * 0.2

	// power budget: solar gain during daylight, baseline drain at night
	solarCharging := hour >= daylightStart && hour <= daylightEnd
	if solarCharging {
		s.batteryLevel += solarGain
	} else {
		s.batteryLevel -= nightDrain
	}
	s.batteryLevel = common.Clamp(s.batteryLevel, batteryFloor, batteryCeiling)

	// movement, only while in transit
	if s.Config.Status == StatusInTransit {
		s.lastLocation.Lat += (s.rng.Float64() - 0.5) * movementRange
		s.lastLocation.Lng += (s.rng.Float64() - 0.5) * movementRange
		s.journeyDistance += s.rng.Float64() * 0.1
	}

	// tamper: opening the lid admits ambient heat
	lidOpened := false
	if s.rng.Float64() < lidOpenProbability {
		lidOpened = true
		s.lidOpenings++
		openedAt := now
		s.lastLidOpen = &openedAt
		s.currentTemp += s.rng.Float64() * lidHeatPenalty
	}

	// compliance against the vaccine-safety band, not the setpoint
	tempInRange := s.currentTemp >= safeBandLow && s.currentTemp <= safeBandHigh
	batteryOK := s.batteryLevel > batteryOkFloor

	if !tempInRange {
		s.excursions = append(s.excursions, excursion{timestamp: now, temperature: s.currentTemp})
	}

	alertLevel, alertMessage := deriveAlert(s.currentTemp, s.batteryLevel, lidOpened)

	coolingStatus := "standby"
	if s.coolingActive {
		coolingStatus = "active"
	}

	return &models.TelemetryRecord{
		DeviceID:  s.Config.DeviceID,
		Timestamp: now,

		Temperature:        round2(s.currentTemp),
		TargetTemperature:  target,
		TemperatureInRange: tempInRange,
		AmbientTemperature: round1(ambient),

		Latitude:        round4(s.lastLocation.Lat),
		Longitude:       round4(s.lastLocation.Lng),
		LocationName:    s.lastLocation.Name,
		JourneyDistance: round2(s.journeyDistance),

		BatteryPercentage: round1(s.batteryLevel),
		Voltage:           round2(3.3 + (s.batteryLevel/100)*0.9),
		CoolingActive:     s.coolingActive,
		CoolingStatus:     coolingStatus,
		SolarCharging:     solarCharging,

		LidOpened:    lidOpened,
		LidOpenCount: s.lidOpenings,
		LastLidOpen:  s.lastLidOpen,

		ColdChainCompliant: tempInRange && batteryOK,
		AlertLevel:         alertLevel,
		AlertMessage:       alertMessage,
		ExcursionCount:     len(s.excursions),

		SignalStrength:  round1(-40 + s.rng.Float64()*15),
		FirmwareVersion: firmwareVersion,
		Status:          s.Config.Status,
	}
}

// deriveAlert picks the first matching condition, highest priority
// first.
func deriveAlert(temperature, battery float64, lidOpened bool) (models.AlertLevel, string) {
	switch {
	case temperature > safeBandHigh:
		return models.AlertLevelCritical,
			fmt.Sprintf("CRITICAL: Temperature exceeded safe range (%.1f°C)", temperature)
	case temperature < safeBandLow:
		return models.AlertLevelWarning,
			fmt.Sprintf("WARNING: Temperature below optimal range (%.1f°C)", temperature)
	case battery < lowBatteryWarning:
		return models.AlertLevelWarning,
			fmt.Sprintf("LOW BATTERY: %.1f%% remaining", battery)
	case lidOpened:
		return models.AlertLevelInfo, "Lid opened - Check authorized access"
	default:
		return models.AlertLevelNormal, ""
	}
}

// HandleCommand reacts to a routed command. Fire-and-forget: nothing is
// acknowledged back to the router.
func (s *Simulator) HandleCommand(command, value string) {
	logger := s.logger()

	switch command {
	case "cooling_override":
		s.mu.Lock()
		s.coolingOverride = true
		s.coolingActive = value == "on"
		s.mu.Unlock()
		logger.Info("Cooling override applied",
			zap.String("device_id", s.Config.DeviceID),
			zap.String("value", value))

	case "status_check":
		logger.Info("Status check requested", zap.String("device_id", s.Config.DeviceID))
		s.EmitOnce()

	case "reset":
		s.mu.Lock()
		s.lidOpenings = 0
		s.lastLidOpen = nil
		s.excursions = nil
		s.coolingOverride = false
		s.mu.Unlock()
		logger.Info("System reset", zap.String("device_id", s.Config.DeviceID))

	default:
		logger.Warn("Unknown command ignored",
			zap.String("device_id", s.Config.DeviceID),
			zap.String("command", command))
	}
}

func (s *Simulator) logger() *zap.Logger {
	return common.GetLoggerWith(
		common.LoggerNameSimulator,
		zap.String(common.LoggerFieldRelayCategory, common.LoggerCategoryControlLoop),
	)
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
