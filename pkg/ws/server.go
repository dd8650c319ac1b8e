package ws

import (
	"encoding/json"
	"net/http"

	z "github.com/Oudwins/zog"
	"github.com/gorilla/websocket"
	"github.com/rishi925-eng/Vital-Trace/pkg/common"
	"github.com/rishi925-eng/Vital-Trace/pkg/models"
	"github.com/rishi925-eng/Vital-Trace/pkg/relay"
	"go.uber.org/zap"
)

// Server upgrades connections and pumps their messages through the
// relay. Each connection gets its own read loop; within one connection
// messages are handled to completion in receipt order.
type Server struct {
	Relay *relay.Relay

	upgrader websocket.Upgrader
}

func NewServer(relayInstance *relay.Relay) *Server {
	return &Server{
		Relay: relayInstance,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

func (s *Server) Handle(w http.ResponseWriter, r *http.Request) {
	logger := s.logger()

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("Failed to upgrade to WebSocket",
			zap.String("remote_addr", r.RemoteAddr), zap.Error(err))
		return
	}

	sender := newConnSender(conn)
	session := s.Relay.Registry.Admit(sender)

	logger.Info("Connection established",
		zap.String("session_id", session.ID),
		zap.String("remote_addr", r.RemoteAddr))

	// a fresh observer sees the current fleet right away
	if err := sender.Send(relay.EventDevicesUpdated, s.Relay.Registry.FleetList()); err != nil {
		logger.Warn("Failed to send initial fleet list", zap.Error(err))
	}

	defer func() {
		s.Relay.Registry.Release(session)
		sender.Close()
		logger.Info("Connection closed", zap.String("session_id", session.ID))
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("Unexpected close", zap.String("session_id", session.ID), zap.Error(err))
			}
			return
		}
		s.handleMessage(session, data)
	}
}

var deviceIDValidator = z.String().Min(1).Required()

type commandMessage struct {
	DeviceID string `json:"device_id"`
	Command  string `json:"command"`
	Value    string `json:"value"`
}

func (s *Server) handleMessage(session *relay.Session, data []byte) {
	logger := s.logger()

	envelope, err := Decode(data)
	if err != nil {
		logger.Warn("Dropping undecodable frame",
			zap.String("session_id", session.ID), zap.Error(err))
		return
	}

	switch envelope.Type {
	case relay.EventDeviceRegister:
		var info models.DeviceInfo
		if err := json.Unmarshal(envelope.Payload, &info); err != nil {
			logger.Warn("Malformed registration payload", zap.Error(err))
			return
		}
		if issues := deviceIDValidator.Validate(&info.DeviceID); issues != nil {
			logger.Warn("Registration without valid device id",
				zap.String("session_id", session.ID))
			return
		}
		s.Relay.Registry.Register(session, info)

	case relay.EventSensorData:
		var record models.TelemetryRecord
		if err := json.Unmarshal(envelope.Payload, &record); err != nil {
			logger.Warn("Malformed telemetry payload", zap.Error(err))
			return
		}
		s.Relay.Ingest(session, &record)

	case relay.EventDeviceCommand:
		var msg commandMessage
		if err := json.Unmarshal(envelope.Payload, &msg); err != nil {
			logger.Warn("Malformed command payload", zap.Error(err))
			return
		}
		s.Relay.Dispatch(session, msg.DeviceID, msg.Command, msg.Value)

	default:
		logger.Warn("Unknown message type",
			zap.String("type", envelope.Type),
			zap.String("session_id", session.ID))
	}
}

func (s *Server) logger() *zap.Logger {
	return common.GetLoggerWith(
		common.LoggerNameWsServer,
		zap.String(common.LoggerFieldRelayCategory, common.LoggerCategorySession),
	)
}
