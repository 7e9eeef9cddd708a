// Package logger is the public API of mqttlog. Most users only need to
// import this package.
//
// Every statement starts with Log or LogFP and ends with Msg or Msgf:
//
//	logger.Log("net", core.Warning).Msg("keep alive expired")
//	logger.LogFP(core.ChannelKey, "persist", core.SeverityKey, core.Debug, "client_id", id).
//	    Msgf("stored %d messages", n)
//
// The record carries MqttChannel and MqttSeverity as scoped attributes
// for as long as it takes to emit it, plus the call site as MqttFile,
// MqttLine and MqttFunction. Statement attributes live in a set private
// to the statement, so concurrent statements never see each other's.
// Filtered statements return a nil *Record, whose methods do nothing.
//
// Scoped attributes for a block come from Attach or Scoped; the child
// logger sees them until the chain is released, the parent never does:
//
//	err := log.Scoped(func(log *logger.Logger) {
//	    log.Info("connected")
//	}, core.ChannelKey, "net", "client_id", id)
//
// Default returns the process-wide logger, created on first use with
// synchronous text output to stdout and an Info threshold. Setup installs
// one built from a config.Config instead.
//
// A Logger's handler, fields and global threshold are fixed by the
// Builder. Per-channel thresholds can change at runtime and are shared by
// derived loggers.
package logger
