package ws

import (
	"encoding/json"

	"github.com/gorilla/websocket"
	"github.com/rishi925-eng/Vital-Trace/pkg/common"
	"github.com/rishi925-eng/Vital-Trace/pkg/models"
	"github.com/rishi925-eng/Vital-Trace/pkg/relay"
	"go.uber.org/zap"
)

// Handlers are the client-side callbacks, all optional. They run on the
// client's read goroutine.
type Handlers struct {
	OnCommand     func(delivery relay.CommandDelivery)
	OnFleetUpdate func(fleet []models.FleetEntry)
	OnTelemetry   func(record models.TelemetryRecord)
}

// Client is the device/observer side of the relay's websocket surface.
type Client struct {
	conn   *websocket.Conn
	sender *connSender
}

func Dial(url string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn, sender: newConnSender(conn)}, nil
}

func (c *Client) Register(info models.DeviceInfo) error {
	return c.sender.Send(relay.EventDeviceRegister, info)
}

func (c *Client) SendTelemetry(record *models.TelemetryRecord) error {
	return c.sender.Send(relay.EventSensorData, record)
}

func (c *Client) SendCommand(deviceID, command, value string) error {
	return c.sender.Send(relay.EventDeviceCommand, commandMessage{
		DeviceID: deviceID,
		Command:  command,
		Value:    value,
	})
}

// Listen consumes inbound frames until the connection drops.
func (c *Client) Listen(handlers Handlers) error {
	logger := common.GetLoggerWith(common.LoggerNameWsServer,
		zap.String(common.LoggerFieldRelayCategory, common.LoggerCategorySession))

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return err
		}

		envelope, err := Decode(data)
		if err != nil {
			logger.Warn("Dropping undecodable frame from relay", zap.Error(err))
			continue
		}

		switch envelope.Type {
		case relay.EventCommand:
			if handlers.OnCommand == nil {
				continue
			}
			var delivery relay.CommandDelivery
			if err := json.Unmarshal(envelope.Payload, &delivery); err == nil {
				handlers.OnCommand(delivery)
			}
		case relay.EventDevicesUpdated:
			if handlers.OnFleetUpdate == nil {
				continue
			}
			var fleet []models.FleetEntry
			if err := json.Unmarshal(envelope.Payload, &fleet); err == nil {
				handlers.OnFleetUpdate(fleet)
			}
		case relay.EventRealTimeData:
			if handlers.OnTelemetry == nil {
				continue
			}
			var record models.TelemetryRecord
			if err := json.Unmarshal(envelope.Payload, &record); err == nil {
				handlers.OnTelemetry(record)
			}
		}
	}
}

func (c *Client) Close() error {
	c.sender.Close()
	return c.conn.Close()
}
