// Package config loads logger settings from YAML and MQTT_LOG_*
// environment variables with github.com/ilyakaznacheev/cleanenv.
//
// Environment variables:
//
//	MQTT_LOG_LEVEL            global threshold (default info)
//	MQTT_LOG_FORMAT           text, json or console (default text)
//	MQTT_LOG_OUTPUT           stdout, stderr or file (default stdout)
//	MQTT_LOG_ASYNC            queue records in the background
//	MQTT_LOG_BUFFER_SIZE      async queue size (default 1000)
//	MQTT_LOG_DISABLE_CALLER   drop the call site from output (default false)
//	MQTT_LOG_CHANNELS         per-channel thresholds, "net:debug,persist:warning"
//	MQTT_LOG_FILE_PATH        file output path
//	MQTT_LOG_FILE_MAX_SIZE    megabytes before rotation (default 100)
//	MQTT_LOG_FILE_MAX_BACKUPS rotated files kept (default 3)
//	MQTT_LOG_FILE_MAX_AGE     days rotated files are kept (default 7)
//	MQTT_LOG_FILE_COMPRESS    gzip rotated files
package config
