package relay

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/rishi925-eng/Vital-Trace/pkg/common"
	"github.com/rishi925-eng/Vital-Trace/pkg/models"
	_ "github.com/rishi925-eng/Vital-Trace/pkg/testing"
)

func TestIngest_UnregisteredSenderNeverObserved(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, relayInstance, _ := GetMockRelay(t, true)
	defer ctrl.Finish()

	observerSender := &fakeSender{}
	relayInstance.Registry.Admit(observerSender)

	// admitted but never registered; the mock sink has no expectations,
	// so any append would fail the test
	unregistered := relayInstance.Registry.Admit(&fakeSender{})

	relayInstance.Ingest(unregistered, &models.TelemetryRecord{
		DeviceID:    "forged_" + uuid.NewString(),
		Temperature: 4.2,
	})

	assert.Empty(t, observerSender.eventsOf(EventRealTimeData))
}

func TestIngest_BroadcastsToAllObservers(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, relayInstance, mockSink := GetMockRelay(t, true)
	defer ctrl.Finish()

	deviceID := uuid.NewString()

	observerOne := &fakeSender{}
	observerTwo := &fakeSender{}
	relayInstance.Registry.Admit(observerOne)
	relayInstance.Registry.Admit(observerTwo)

	deviceSession := relayInstance.Registry.Admit(&fakeSender{})
	relayInstance.Registry.Register(deviceSession, deviceInfo(deviceID))

	mockSink.EXPECT().AppendTelemetry(gomock.Any()).Times(1)

	relayInstance.Ingest(deviceSession, &models.TelemetryRecord{
		DeviceID:    deviceID,
		Timestamp:   time.Now(),
		Temperature: 3.8,
	})

	for _, observer := range []*fakeSender{observerOne, observerTwo} {
		sent, ok := observer.lastEventOf(EventRealTimeData)
		require.True(t, ok, "observer should receive the reading")

		record := sent.Payload.(*models.TelemetryRecord)
		assert.Equal(t, deviceID, record.DeviceID)
		assert.False(t, record.ReceivedAt.IsZero(), "relay must annotate a receipt timestamp")
	}
}

func TestIngest_StampsRegisteredDeviceID(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, relayInstance, mockSink := GetMockRelay(t, true)
	defer ctrl.Finish()

	registeredID := uuid.NewString()
	deviceSession := relayInstance.Registry.Admit(&fakeSender{})
	relayInstance.Registry.Register(deviceSession, deviceInfo(registeredID))

	observerSender := &fakeSender{}
	relayInstance.Registry.Admit(observerSender)

	var appended *models.TelemetryRecord
	mockSink.EXPECT().
		AppendTelemetry(gomock.Any()).
		Do(func(record *models.TelemetryRecord) { appended = record }).
		Times(1)

	relayInstance.Ingest(deviceSession, &models.TelemetryRecord{
		DeviceID:    "someone_else_" + uuid.NewString(),
		Temperature: 5.0,
	})

	require.NotNil(t, appended)
	assert.Equal(t, registeredID, appended.DeviceID)
}

func TestIngest_SameDeviceOrderPreserved(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, relayInstance, _ := GetMockRelay(t, false)
	defer ctrl.Finish()

	deviceID := uuid.NewString()
	deviceSession := relayInstance.Registry.Admit(&fakeSender{})
	relayInstance.Registry.Register(deviceSession, deviceInfo(deviceID))

	observerSender := &fakeSender{}
	relayInstance.Registry.Admit(observerSender)

	for i := 0; i < 5; i++ {
		relayInstance.Ingest(deviceSession, &models.TelemetryRecord{
			DeviceID:    deviceID,
			Temperature: float64(i),
		})
	}

	broadcasts := observerSender.eventsOf(EventRealTimeData)
	require.Len(t, broadcasts, 5)
	for i, sent := range broadcasts {
		record := sent.Payload.(*models.TelemetryRecord)
		assert.Equal(t, float64(i), record.Temperature)
	}
}

func TestIngest_OverDeviceRateLimitDropped(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, relayInstance, mockSink := GetMockRelay(t, true)
	defer ctrl.Finish()
	relayInstance.WithServices(ServiceOpts{RateLimiterStore: NewRateLimiterStore(1, 1)})

	deviceID := uuid.NewString()
	deviceSession := relayInstance.Registry.Admit(&fakeSender{})
	relayInstance.Registry.Register(deviceSession, deviceInfo(deviceID))

	observerSender := &fakeSender{}
	relayInstance.Registry.Admit(observerSender)

	// only the first of the two back-to-back readings passes the limiter
	mockSink.EXPECT().AppendTelemetry(gomock.Any()).Times(1)

	relayInstance.Ingest(deviceSession, &models.TelemetryRecord{Temperature: 4.0})
	relayInstance.Ingest(deviceSession, &models.TelemetryRecord{Temperature: 4.1})

	assert.Len(t, observerSender.eventsOf(EventRealTimeData), 1)
}

func TestIngest_BroadcastFailureDoesNotStopOthers(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, relayInstance, _ := GetMockRelay(t, false)
	defer ctrl.Finish()

	deviceID := uuid.NewString()
	deviceSession := relayInstance.Registry.Admit(&fakeSender{})
	relayInstance.Registry.Register(deviceSession, deviceInfo(deviceID))

	failing := &fakeSender{failSend: true}
	healthy := &fakeSender{}
	relayInstance.Registry.Admit(failing)
	relayInstance.Registry.Admit(healthy)

	relayInstance.Ingest(deviceSession, &models.TelemetryRecord{Temperature: 4.5})

	assert.Len(t, healthy.eventsOf(EventRealTimeData), 1)
}
