// Package filehandler writes formatted log entries to a file rotated by
// gopkg.in/natefinch/lumberjack.v2.
//
// Files rotate by size (FileConfig.MaxSize, in megabytes), by interval
// (RotateInterval) or on demand through FileHandler.Rotate. Rotated files
// are pruned by MaxBackups and MaxAge and optionally gzip-compressed.
//
// NewFileHandler returns a synchronous *FileHandler, or, when
// FileConfig.Async is set, that handler wrapped in a *handler.Async.
package filehandler
