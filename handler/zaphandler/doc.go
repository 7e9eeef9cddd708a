// Package zaphandler forwards log entries to a go.uber.org/zap Core, so
// programs that already configure zap sinks and encoders can reuse them.
package zaphandler
