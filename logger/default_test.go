package logger

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipp01105/mqttlog/core"
	"github.com/philipp01105/mqttlog/handler/consolehandler"
)

func TestDefault_ConcurrentFirstUse(t *testing.T) {
	prev := defaultLogger.Load()
	SetDefault(nil)
	defer SetDefault(prev)

	const callers = 32
	got := make([]*Logger, callers)
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			got[i] = Default()
		}(i)
	}
	close(start)
	wg.Wait()

	require.NotNil(t, got[0])
	for _, l := range got[1:] {
		assert.Same(t, got[0], l)
	}
	assert.Same(t, got[0], Default())
}

func TestDefault_Configuration(t *testing.T) {
	prev := defaultLogger.Load()
	SetDefault(nil)
	defer SetDefault(prev)

	l := Default()
	assert.Equal(t, core.Info, l.Level())
	assert.IsType(t, &consolehandler.ConsoleHandler{}, l.Handler())
	assert.True(t, l.Enabled("net", core.Info))
	assert.False(t, l.Enabled("net", core.Debug))
}

func TestSetDefault(t *testing.T) {
	log, capture := newCaptureLogger(core.Trace)
	prev := defaultLogger.Load()
	SetDefault(log)
	defer SetDefault(prev)

	assert.Same(t, log, Default())

	Log("net", core.Warning).Msg("pkg log")
	LogFP(core.ChannelKey, "persist").Msg("pkg logfp")
	Trace("pkg trace")
	Debugf("pkg %s", "debugf")
	err := Scoped(func(l *Logger) { l.Error("scoped") }, core.ChannelKey, "broker")
	require.NoError(t, err)
	With(String("k", "v")).Info("with")

	child, chain, err := Attach(core.ChannelKey, "auth")
	require.NoError(t, err)
	child.Warning("attached")
	chain.Release()

	all := capture.all()
	require.Len(t, all, 7)
	assert.Equal(t, "net", all[0].Channel)
	assert.Equal(t, "persist", all[1].Channel)
	assert.Equal(t, core.Trace, all[2].Severity)
	assert.Equal(t, "pkg debugf", all[3].Message)
	assert.Equal(t, "broker", all[4].Channel)
	assert.Equal(t, "v", all[5].Fields[0].Str)
	assert.Equal(t, "auth", all[6].Channel)
}

func TestPackageFatal(t *testing.T) {
	log, capture := newCaptureLogger(core.Trace)
	prev := defaultLogger.Load()
	SetDefault(log)
	defer SetDefault(prev)

	exitCode := -1
	origExit := osExit
	osExit = func(code int) { exitCode = code }
	defer func() { osExit = origExit }()

	Fatalf("cannot bind %s", ":1883")
	assert.Equal(t, 1, exitCode)
	assert.Equal(t, "cannot bind :1883", capture.last(t).Message)
}
