package proto

import (
	"fmt"
	"slices"
	"sync"
)

// Registry is a read-only catalogue of descriptors keyed by protocol name.
type Registry struct {
	descriptors map[Name]*Descriptor
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns a process-wide registry of every built-in protocol.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry builds a registry holding the given descriptors, or every
// built-in one when called without arguments.
func NewRegistry(descs ...*Descriptor) *Registry {
	if len(descs) == 0 {
		descs = builtins()
	}

	r := &Registry{descriptors: make(map[Name]*Descriptor, len(descs))}
	for _, d := range descs {
		r.descriptors[d.Name] = d
	}

	return r
}

func builtins() []*Descriptor {
	return []*Descriptor{
		EthernetDescriptor,
		ARPDescriptor,
		IPv4Descriptor,
		IPv6Descriptor,
		TCPDescriptor,
		UDPDescriptor,
		ICMPDescriptor,
	}
}

// Lookup returns the descriptor registered under name.
func (r *Registry) Lookup(name Name) (*Descriptor, error) {
	d, ok := r.descriptors[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProtocol, string(name))
	}
	return d, nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name Name) bool {
	_, ok := r.descriptors[name]
	return ok
}

// Names returns the registered protocol names in sorted order.
func (r *Registry) Names() []Name {
	names := make([]Name, 0, len(r.descriptors))
	for n := range r.descriptors {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}
