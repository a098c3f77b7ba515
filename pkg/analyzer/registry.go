package analyzer

import (
	"fmt"
	"sync"
)

// globalRegistry stores the built-in descriptors.
var globalRegistry = &registry{ //nolint:gochecknoglobals
	descriptors: map[string]*Descriptor{},
}

type registry struct {
	mu          sync.RWMutex
	descriptors map[string]*Descriptor
}

// Register adds a descriptor to the built-in registry.
// Call this from init() functions. Register panics if the descriptor is
// invalid or its analyzer name is already taken because both are programming
// errors that must not survive process start.
func Register(d *Descriptor) {
	if err := d.Validate(); err != nil {
		panic(fmt.Sprintf("register an analyzer: %v", err))
	}
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	name := d.Name()
	if _, ok := globalRegistry.descriptors[name]; ok {
		panic(fmt.Sprintf("register an analyzer: %s is already registered", name))
	}
	globalRegistry.descriptors[name] = d
}

// Registered returns all built-in descriptors sorted by analyzer name.
func Registered() []*Descriptor {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	descriptors := make([]*Descriptor, 0, len(globalRegistry.descriptors))
	for _, d := range globalRegistry.descriptors {
		descriptors = append(descriptors, d)
	}
	SortDescriptors(descriptors)
	return descriptors
}
