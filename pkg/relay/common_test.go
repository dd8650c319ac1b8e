package relay

import (
	"sync"
	"testing"

	"github.com/rishi925-eng/Vital-Trace/pkg/relay/mocks"
	"go.uber.org/mock/gomock"
)

type sentEvent struct {
	Event   string
	Payload any
}

// fakeSender records everything sent to one connection.
type fakeSender struct {
	mu       sync.Mutex
	events   []sentEvent
	closed   bool
	failSend bool
}

func (f *fakeSender) Send(event string, payload any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSend {
		return errSendFailed
	}
	f.events = append(f.events, sentEvent{Event: event, Payload: payload})
	return nil
}

func (f *fakeSender) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeSender) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func (f *fakeSender) eventsOf(name string) []sentEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []sentEvent
	for _, e := range f.events {
		if e.Event == name {
			matched = append(matched, e)
		}
	}
	return matched
}

func (f *fakeSender) lastEventOf(name string) (sentEvent, bool) {
	matched := f.eventsOf(name)
	if len(matched) == 0 {
		return sentEvent{}, false
	}
	return matched[len(matched)-1], true
}

func (f *fakeSender) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = nil
}

type sendError string

func (e sendError) Error() string { return string(e) }

const errSendFailed = sendError("send failed")

func GetMockRelay(t *testing.T, useMockSink bool) (*gomock.Controller, *Relay, *mocks.MockISink) {
	ctrl := gomock.NewController(t)

	mockSink := mocks.NewMockISink(ctrl)

	registry := NewRegistry()
	relayInstance := New(registry)
	if useMockSink {
		relayInstance.WithServices(ServiceOpts{Sink: mockSink})
	}

	return ctrl, relayInstance, mockSink
}
