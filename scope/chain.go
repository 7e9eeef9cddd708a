package scope

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/philipp01105/mqttlog/attr"
	"github.com/philipp01105/mqttlog/core"
)

var (
	// ErrNoPairs is returned when no name/value pair is given
	ErrNoPairs = errors.New("scope: at least one name/value pair is required")
	// ErrOddPairs is returned when a name has no value
	ErrOddPairs = errors.New("scope: odd number of arguments, name without value")
	// ErrInvalidName is returned when a name is not a non-empty string
	ErrInvalidName = errors.New("scope: attribute name must be a non-empty string")
	// ErrDuplicateName is returned when a name appears twice in one call
	ErrDuplicateName = errors.New("scope: duplicate attribute name")
)

// Chain owns the attachment of a fixed list of attributes to a Set.
type Chain struct {
	set      *attr.Set
	tokens   []attr.Token
	released atomic.Bool
}

// Attach validates pairs (alternating name, value) and attaches every pair
// to set, in the order given, as a constant attribute. Values are captured
// with core.FieldOf at this point. Nothing is attached when validation
// fails.
func Attach(set *attr.Set, pairs ...interface{}) (*Chain, error) {
	fields, err := Fields(pairs...)
	if err != nil {
		return nil, err
	}
	return attach(set, fields), nil
}

// AttachFields is Attach for prebuilt fields.
func AttachFields(set *attr.Set, fields ...core.Field) (*Chain, error) {
	if len(fields) == 0 {
		return nil, ErrNoPairs
	}
	for i, f := range fields {
		if f.Key == "" {
			return nil, fmt.Errorf("%w: field %d", ErrInvalidName, i)
		}
		for _, prev := range fields[:i] {
			if prev.Key == f.Key {
				return nil, fmt.Errorf("%w: %q", ErrDuplicateName, f.Key)
			}
		}
	}
	return attach(set, fields), nil
}

// Do attaches pairs to set, runs fn, and releases the attributes when fn
// returns or panics. fn is not run when the pairs are invalid.
func Do(set *attr.Set, fn func(), pairs ...interface{}) error {
	chain, err := Attach(set, pairs...)
	if err != nil {
		return err
	}
	defer chain.Release()
	fn()
	return nil
}

// Fields converts alternating name/value arguments into fields, checking
// the same rules as Attach.
func Fields(pairs ...interface{}) ([]core.Field, error) {
	if len(pairs) == 0 {
		return nil, ErrNoPairs
	}
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("%w: %d arguments", ErrOddPairs, len(pairs))
	}

	fields := make([]core.Field, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		name, ok := pairs[i].(string)
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: argument %d is %T", ErrInvalidName, i, pairs[i])
		}
		for _, prev := range fields {
			if prev.Key == name {
				return nil, fmt.Errorf("%w: %q", ErrDuplicateName, name)
			}
		}
		fields = append(fields, core.FieldOf(name, pairs[i+1]))
	}
	return fields, nil
}

func attach(set *attr.Set, fields []core.Field) *Chain {
	c := &Chain{
		set:    set,
		tokens: make([]attr.Token, 0, len(fields)),
	}
	for _, f := range fields {
		c.tokens = append(c.tokens, set.Add(f))
	}
	return c
}

// Len returns the number of attributes the chain attached.
func (c *Chain) Len() int {
	return len(c.tokens)
}

// Set returns the set the chain attached to.
func (c *Chain) Set() *attr.Set {
	return c.set
}

// Released reports whether Release has been called.
func (c *Chain) Released() bool {
	return c.released.Load()
}

// Release detaches the chain's attributes, last attached first. Only the
// first call has any effect.
func (c *Chain) Release() {
	if c == nil || !c.released.CompareAndSwap(false, true) {
		return
	}
	for i := len(c.tokens) - 1; i >= 0; i-- {
		c.set.Remove(c.tokens[i])
	}
}
