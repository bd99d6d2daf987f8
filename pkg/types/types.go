package types

// Capability is a platform permission token drawn from the closed vocabulary.
type Capability string

const (
	CapConsoleWrite   Capability = "ConsoleWrite"
	CapEndpointCreate Capability = "EndpointCreate"
	CapShmCreate      Capability = "ShmCreate"
	CapProcessSpawn   Capability = "ProcessSpawn"
	CapTimer          Capability = "Timer"
	CapFsRoot         Capability = "FsRoot"
	CapWindowServer   Capability = "WindowServer"
	CapInputDevice    Capability = "InputDevice"
	CapGpuDevice      Capability = "GpuDevice"
)

// KnownCapabilities is the full capability vocabulary. Validation rejects
// anything outside it; there is no forward-compat tolerance for unknown names.
var KnownCapabilities = map[Capability]struct{}{
	CapConsoleWrite:   {},
	CapEndpointCreate: {},
	CapShmCreate:      {},
	CapProcessSpawn:   {},
	CapTimer:          {},
	CapFsRoot:         {},
	CapWindowServer:   {},
	CapInputDevice:    {},
	CapGpuDevice:      {},
}

// IsKnownCapability reports whether s names a capability from the vocabulary.
func IsKnownCapability(s string) bool {
	_, ok := KnownCapabilities[Capability(s)]
	return ok
}

// ModuleRecord is the validated content of a module manifest.
type ModuleRecord struct {
	Name         string
	Version      string
	Provides     []string
	Slots        []string
	RequiresCaps []string
	Depends      []string
}

// SlotContract is the validated content of a slot contract file. Slot carries
// a mandatory @<revision> suffix that plain slot references inside module
// manifests do not have.
type SlotContract struct {
	Slot         string
	Summary      string
	Provides     []string
	RequiresCaps []string
}

// IndexEntry is one record of the marketplace index: a module record plus
// where it came from and whether its bundle carried a valid signature.
type IndexEntry struct {
	ModuleRecord
	Verified bool
	File     string
}
