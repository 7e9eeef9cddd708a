// Package core defines the shared types used across mqttlog.
//
// It provides the Severity type (trace through fatal), the attribute
// keyword names every MQTT record carries (MqttSeverity, MqttChannel,
// MqttFile, MqttLine, MqttFunction, MqttAddress), the Entry type that
// represents a single emitted record, and the Field type for typed
// key-value attributes.
//
// Entry objects are pooled via sync.Pool to keep the emission path
// cheap. Callers get an Entry with GetEntry and must return it with
// PutEntry once the handler has consumed it, unless the handler keeps
// the Entry (see handler.Handler and CanRecycleEntry).
//
// Field encodes values into fixed-size numeric fields (Int64, Float64)
// wherever possible so that common types like int, bool, Severity and
// time.Time never escape to the heap. The Any field holds scalar values
// of named types; composite and reference values are rendered to a string
// when the Field is built.
package core
