package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rishi925-eng/Vital-Trace/pkg/common"
	"go.uber.org/zap"
)

const (
	writeWait     = 10 * time.Second
	pingPeriod    = 50 * time.Second
	outboundDepth = 64
)

// connSender adapts one websocket connection to relay.Sender. All
// writes funnel through a single pump goroutine (gorilla allows one
// writer); Send never blocks, a slow peer with a full outbound queue
// loses frames instead of stalling the relay.
type connSender struct {
	conn *websocket.Conn

	outbound  chan []byte
	closeOnce sync.Once
	closed    chan struct{}
}

func newConnSender(conn *websocket.Conn) *connSender {
	s := &connSender{
		conn:     conn,
		outbound: make(chan []byte, outboundDepth),
		closed:   make(chan struct{}),
	}
	go s.writePump()
	return s
}

func (s *connSender) Send(event string, payload any) error {
	data, err := Encode(event, payload)
	if err != nil {
		return err
	}

	select {
	case <-s.closed:
		return websocket.ErrCloseSent
	case s.outbound <- data:
		return nil
	default:
		common.GetLoggerWith(common.LoggerNameWsServer).Warn(
			"Outbound queue full, dropping frame",
			zap.String("event", event))
		return nil
	}
}

func (s *connSender) Close() error {
	s.closeOnce.Do(func() { close(s.closed) })
	return nil
}

func (s *connSender) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case <-s.closed:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			s.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case data := <-s.outbound:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
