package sink

import (
	"time"

	"github.com/rishi925-eng/Vital-Trace/pkg/models"
)

// TelemetryByDeviceAndLimit returns the most recent n records for a
// device, oldest-first.
func (s *Store) TelemetryByDeviceAndLimit(deviceID string, n int) ([]models.TelemetryRecord, error) {
	var records []models.TelemetryRecord
	err := s.Db.Conn.
		Where("device_id = ?", deviceID).
		Order("timestamp desc").
		Limit(n).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}

// TelemetryByDeviceAndWindow returns records within [start, end],
// ascending by timestamp.
func (s *Store) TelemetryByDeviceAndWindow(deviceID string, start, end time.Time) ([]models.TelemetryRecord, error) {
	var records []models.TelemetryRecord
	err := s.Db.Conn.
		Where("device_id = ? AND timestamp BETWEEN ? AND ?", deviceID, start, end).
		Order("timestamp asc").
		Find(&records).Error
	return records, err
}
