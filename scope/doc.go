// Package scope attaches a list of name/value pairs to an attribute Set
// for the duration of a scope and releases them in reverse order.
//
// A Chain is built by walking the pairs in order and pushing one guard per
// pair. Release pops the guards, so the last attribute attached is the
// first one detached, exactly like nested scopes unwinding:
//
//	chain, err := scope.Attach(set, core.ChannelKey, "net", core.SeverityKey, core.Warning)
//	if err != nil {
//	    return err
//	}
//	defer chain.Release()
//
// Do wraps the same lifecycle around a function.
package scope
