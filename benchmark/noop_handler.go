package benchmark

import (
	"github.com/philipp01105/mqttlog/core"
	"github.com/philipp01105/mqttlog/handler"
)

// noopHandler measures the logger alone: it touches the entry and lets
// the logger recycle it.
type noopHandler struct{}

func newNoopHandler() handler.Handler {
	return &noopHandler{}
}

func (h *noopHandler) Handle(e *core.Entry) error {
	_ = len(e.Message) + len(e.Channel) + len(e.Fields)
	return nil
}

func (h *noopHandler) CanRecycleEntry() bool { return true }

func (h *noopHandler) Close() error {
	return nil
}
