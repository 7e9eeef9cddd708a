package core

// Attribute names carried by MQTT log records.
const (
	// SeverityKey and ChannelKey are attached as scoped attributes for the
	// lifetime of one log statement.
	SeverityKey = "MqttSeverity"
	ChannelKey  = "MqttChannel"

	// FileKey, LineKey and FunctionKey describe the call site and are set on
	// the emitted record only.
	FileKey     = "MqttFile"
	LineKey     = "MqttLine"
	FunctionKey = "MqttFunction"

	// AddressKey identifies the object that emitted the record.
	AddressKey = "MqttAddress"
)
