package consolehandler

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/philipp01105/mqttlog/core"
	"github.com/philipp01105/mqttlog/formatter"
	"github.com/philipp01105/mqttlog/handler"
)

func newEntry(sev core.Severity, channel, msg string) *core.Entry {
	entry := core.GetEntry()
	entry.Severity = sev
	entry.Channel = channel
	entry.Message = msg
	return entry
}

func TestConsoleHandler_Sync(t *testing.T) {
	var buf bytes.Buffer
	h := NewConsoleHandler(ConsoleConfig{
		Writer:    &buf,
		Formatter: formatter.NewTextFormatter(formatter.Config{}),
	})
	defer h.Close()

	if err := h.Handle(newEntry(core.Warning, "net", "keep alive expired")); err != nil {
		t.Errorf("Handle() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "[warning] [net] keep alive expired") {
		t.Errorf("unexpected output: %s", out)
	}
	if !handler.CanRecycle(h) {
		t.Error("sync console handler should allow recycling")
	}
}

func TestConsoleHandler_Async(t *testing.T) {
	var buf bytes.Buffer
	h := NewConsoleHandler(ConsoleConfig{
		Writer:     &buf,
		Async:      true,
		BufferSize: 100,
		Formatter:  formatter.NewTextFormatter(formatter.Config{}),
	})
	if _, ok := h.(*handler.Async); !ok {
		t.Fatalf("expected *handler.Async, got %T", h)
	}

	for i := 0; i < 50; i++ {
		if err := h.Handle(newEntry(core.Info, "broker", "async test")); err != nil {
			t.Fatalf("Handle() error = %v", err)
		}
	}
	// Close drains the queue; the buffer is only read afterwards.
	if err := h.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if count := strings.Count(buf.String(), "async test"); count != 50 {
		t.Errorf("expected 50 messages, got %d", count)
	}
}

// slowWriter blocks every Write until release is closed.
type slowWriter struct {
	mu      sync.Mutex
	buf     bytes.Buffer
	release chan struct{}
	started chan struct{}
	once    sync.Once
}

func (w *slowWriter) Write(p []byte) (int, error) {
	w.once.Do(func() { close(w.started) })
	<-w.release
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.Write(p)
}

func TestConsoleHandler_AsyncDropNewest(t *testing.T) {
	w := &slowWriter{release: make(chan struct{}), started: make(chan struct{})}
	h := NewConsoleHandler(ConsoleConfig{
		Writer:         w,
		Async:          true,
		BufferSize:     2,
		OverflowPolicy: map[core.Severity]handler.OverflowPolicy{core.Info: handler.DropNewest},
	})

	_ = h.Handle(newEntry(core.Info, "", "first"))
	<-w.started
	for i := 0; i < 10; i++ {
		_ = h.Handle(newEntry(core.Info, "", "more"))
	}

	close(w.release)
	if err := h.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	snap := h.(handler.StatsProvider).Stats()
	if snap.DroppedTotal[core.Info] != 8 {
		t.Errorf("expected 8 dropped, got %d", snap.DroppedTotal[core.Info])
	}
	if snap.ProcessedTotal != 3 {
		t.Errorf("expected 3 processed, got %d", snap.ProcessedTotal)
	}
}

func TestConsoleHandler_AsyncErrorBlocksInsteadOfDropping(t *testing.T) {
	w := &slowWriter{release: make(chan struct{}), started: make(chan struct{})}
	h := NewConsoleHandler(ConsoleConfig{
		Writer:       w,
		Async:        true,
		BufferSize:   1,
		BlockTimeout: 5 * time.Millisecond,
	})

	_ = h.Handle(newEntry(core.Error, "", "first"))
	<-w.started
	_ = h.Handle(newEntry(core.Error, "", "queued"))

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = h.Handle(newEntry(core.Error, "", "overflow"))
	}()
	time.Sleep(20 * time.Millisecond)
	close(w.release)
	<-done
	_ = h.Close()

	snap := h.(handler.StatsProvider).Stats()
	if snap.DroppedTotal[core.Error] != 0 {
		t.Errorf("error records must not be dropped, got %d", snap.DroppedTotal[core.Error])
	}
	if got := strings.Count(w.buf.String(), "\n"); got != 3 {
		t.Errorf("expected 3 lines, got %d", got)
	}
}

func TestConsoleHandler_HandleAfterClose(t *testing.T) {
	h := NewConsoleHandler(ConsoleConfig{Writer: io.Discard})
	if err := h.Close(); err != nil {
		t.Fatal(err)
	}
	if err := h.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if err := h.Handle(newEntry(core.Info, "", "late")); err != ErrClosed {
		t.Errorf("Handle after Close = %v, want ErrClosed", err)
	}
}

func TestConsoleHandler_AsyncHandleAfterClose(t *testing.T) {
	var buf bytes.Buffer
	h := NewConsoleHandler(ConsoleConfig{
		Writer:    &buf,
		Async:     true,
		Formatter: formatter.NewTextFormatter(formatter.Config{}),
	})

	if err := h.Handle(newEntry(core.Error, "net", "before close")); err != nil {
		t.Fatal(err)
	}
	if err := h.Close(); err != nil {
		t.Fatal(err)
	}
	err := h.Handle(newEntry(core.Error, "net", "after close"))
	if !errors.Is(err, handler.ErrClosed) {
		t.Errorf("Handle after Close = %v, want ErrClosed", err)
	}

	out := buf.String()
	if !strings.Contains(out, "before close") {
		t.Errorf("queued entry not written on Close: %q", out)
	}
	if strings.Contains(out, "after close") {
		t.Errorf("entry written after Close: %q", out)
	}
}

func TestIsConcurrentSafeWriter(t *testing.T) {
	tests := []struct {
		name     string
		writer   io.Writer
		expected bool
	}{
		{"io.Discard", io.Discard, true},
		{"os.Stdout", os.Stdout, true},
		{"os.Stderr", os.Stderr, true},
		{"bytes.Buffer", &bytes.Buffer{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isConcurrentSafeWriter(tt.writer); got != tt.expected {
				t.Errorf("isConcurrentSafeWriter(%T) = %v, want %v", tt.writer, got, tt.expected)
			}
		})
	}
}

func TestConcurrentSafeConfig(t *testing.T) {
	h := NewConsoleHandler(ConsoleConfig{Writer: io.Discard})
	if !h.(*ConsoleHandler).concurrentSafe {
		t.Error("Expected concurrentSafe=true for io.Discard")
	}
	h.Close()

	h = NewConsoleHandler(ConsoleConfig{Writer: &bytes.Buffer{}})
	if h.(*ConsoleHandler).concurrentSafe {
		t.Error("Expected concurrentSafe=false for bytes.Buffer")
	}
	h.Close()

	h = NewConsoleHandler(ConsoleConfig{Writer: &bytes.Buffer{}, ConcurrentWriter: true})
	if !h.(*ConsoleHandler).concurrentSafe {
		t.Error("Expected concurrentSafe=true with ConcurrentWriter=true")
	}
	h.Close()
}

func TestConsoleHandler_Parallel(t *testing.T) {
	var buf bytes.Buffer
	h := NewConsoleHandler(ConsoleConfig{
		Writer:    &buf,
		Formatter: formatter.NewJSONFormatter(formatter.Config{}),
	})
	defer h.Close()

	const goroutines = 8
	const msgs = 100
	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < msgs; i++ {
				e := newEntry(core.Info, "net", "parallel")
				_ = h.Handle(e)
				core.PutEntry(e)
			}
		}()
	}
	wg.Wait()

	snap := h.(handler.StatsProvider).Stats()
	if snap.ProcessedTotal != goroutines*msgs {
		t.Errorf("Expected %d processed, got %d", goroutines*msgs, snap.ProcessedTotal)
	}
	if lines := strings.Count(buf.String(), "\n"); lines != goroutines*msgs {
		t.Errorf("Expected %d lines, got %d", goroutines*msgs, lines)
	}
}
