package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rishi925-eng/Vital-Trace/pkg/common"
	"github.com/rishi925-eng/Vital-Trace/pkg/db"
	"github.com/rishi925-eng/Vital-Trace/pkg/models"
	"github.com/rishi925-eng/Vital-Trace/pkg/relay"
	"github.com/rishi925-eng/Vital-Trace/pkg/sink"
	_ "github.com/rishi925-eng/Vital-Trace/pkg/testing"
	"github.com/rishi925-eng/Vital-Trace/pkg/ws"
)

// recordingSender satisfies relay.Sender for sessions created outside a
// real websocket connection.
type recordingSender struct {
	events []string
}

func (s *recordingSender) Send(event string, payload any) error {
	s.events = append(s.events, event)
	return nil
}

func (s *recordingSender) Close() error { return nil }

func setupTestServer(t *testing.T) (*RestfulServer, *sink.Store) {
	common.SetTestLoggerNop()

	store := sink.NewStore(*db.GetInstance(db.UseMemorySqliteDialector()))
	store.Start()
	t.Cleanup(store.Stop)

	relayInstance := relay.New(relay.NewRegistry())
	relayInstance.WithServices(relay.ServiceOpts{Sink: store})

	rs := &RestfulServer{
		Server: gin.Default(),
		Relay:  relayInstance,
		Query:  store,
		Ws:     ws.NewServer(relayInstance),
	}
	rs.Setup()

	return rs, store
}

func TestHealthCheck(t *testing.T) {
	rs, _ := setupTestServer(t)

	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()

	rs.Server.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestGetDevicesReflectsRegistry(t *testing.T) {
	rs, _ := setupTestServer(t)

	deviceID := uuid.NewString()
	session := rs.Relay.Registry.Admit(&recordingSender{})
	rs.Relay.Registry.Register(session, models.DeviceInfo{
		DeviceID: deviceID,
		Name:     "Kolkata Metro Health - Flu Vaccines",
		Type:     "vital_trace_box",
	})

	req := httptest.NewRequest("GET", "/api/devices", nil)
	w := httptest.NewRecorder()
	rs.Server.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var fleet []models.FleetEntry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fleet))
	require.Len(t, fleet, 1)
	assert.Equal(t, deviceID, fleet[0].DeviceID)
	assert.Equal(t, "online", fleet[0].Status)
}

func TestPostCommandPersistsAndDelivers(t *testing.T) {
	rs, store := setupTestServer(t)

	deviceID := uuid.NewString()
	deviceSender := &recordingSender{}
	session := rs.Relay.Registry.Admit(deviceSender)
	rs.Relay.Registry.Register(session, models.DeviceInfo{DeviceID: deviceID, Name: "box"})

	body, _ := json.Marshal(CommandRequest{
		DeviceID: deviceID,
		Command:  "cooling_override",
		Value:    "on",
	})

	req := httptest.NewRequest("POST", "/api/command", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	rs.Server.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, deviceSender.events, relay.EventCommand)

	store.Flush()
	var saved models.CommandRequest
	err := store.Db.Conn.Where("device_id = ?", deviceID).First(&saved).Error
	require.NoError(t, err)
	assert.Equal(t, "cooling_override", saved.Command)
	assert.Equal(t, models.CommandStatusPending, saved.Status)
}

func TestPostCommandRejectsMissingDeviceID(t *testing.T) {
	rs, _ := setupTestServer(t)

	body := []byte(`{"command":"reset","value":""}`)
	req := httptest.NewRequest("POST", "/api/command", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	rs.Server.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetDeviceDataLimitAndOrder(t *testing.T) {
	rs, store := setupTestServer(t)

	deviceID := uuid.NewString()
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		store.AppendTelemetry(&models.TelemetryRecord{
			DeviceID:    deviceID,
			Timestamp:   base.Add(time.Duration(i) * time.Minute),
			Temperature: float64(i),
		})
	}
	store.Flush()

	req := httptest.NewRequest("GET", "/api/data/"+deviceID+"?limit=2", nil)
	w := httptest.NewRecorder()
	rs.Server.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var records []models.TelemetryRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &records))
	require.Len(t, records, 2)
	assert.Equal(t, 2.0, records[0].Temperature)
	assert.Equal(t, 3.0, records[1].Temperature)
}

func TestGetDeviceDataRange(t *testing.T) {
	rs, store := setupTestServer(t)

	deviceID := uuid.NewString()
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 6; i++ {
		store.AppendTelemetry(&models.TelemetryRecord{
			DeviceID:    deviceID,
			Timestamp:   base.Add(time.Duration(i) * time.Hour),
			Temperature: float64(i),
		})
	}
	store.Flush()

	url := "/api/data/" + deviceID + "/range?start=" + base.Add(time.Hour).Format(time.RFC3339) +
		"&end=" + base.Add(3*time.Hour).Format(time.RFC3339)
	req := httptest.NewRequest("GET", url, nil)
	w := httptest.NewRecorder()
	rs.Server.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var records []models.TelemetryRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &records))
	require.Len(t, records, 3)
	for i, record := range records {
		assert.Equal(t, float64(i+1), record.Temperature)
	}
}

func TestGetDeviceDataRangeRejectsBadTimestamps(t *testing.T) {
	rs, _ := setupTestServer(t)

	req := httptest.NewRequest("GET", "/api/data/some-device/range?start=yesterday&end=today", nil)
	w := httptest.NewRecorder()
	rs.Server.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPostLimiterOverridesDeviceRate(t *testing.T) {
	rs, _ := setupTestServer(t)
	rs.Relay.WithServices(relay.ServiceOpts{RateLimiterStore: relay.NewRateLimiterStore(10, 10)})

	deviceID := uuid.NewString()

	body := []byte(`{"rate": 2.5, "burst": 3}`)
	req := httptest.NewRequest("POST", "/api/devices/"+deviceID+"/limiter", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	rs.Server.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	limiter := rs.Relay.RateLimiterStore.GetLimiter(deviceID)
	assert.Equal(t, float64(2.5), float64(limiter.Limit()))
	assert.Equal(t, 3, limiter.Burst())
}
