// Package attr implements the attribute store that scoped attributes are
// attached to.
//
// A Set holds constant-valued bindings identified by a Token. Sets are
// layered: a child Set created with NewSet(parent) sees every binding of
// its parent, shadows parent bindings that share a key, and never writes
// to the parent. The logger gives every log statement a private child Set,
// which is what keeps one goroutine's per-statement attributes out of
// another goroutine's records.
//
// Removing a binding by its Token removes exactly that binding, so nested
// attachments of the same key unwind correctly: after the inner binding is
// removed, Lookup returns the outer value again.
package attr
