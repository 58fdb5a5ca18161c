package topo

// DeviceType is the optional role tag attached to a node. It is used only by
// layout heuristics (root and center selection, grid ordering) and never
// affects graph structure.
type DeviceType string

// Known device types. Unknown strings are accepted and treated as
// [TypeGeneric] by the heuristics.
const (
	TypeRouter      DeviceType = "router"
	TypeSwitch      DeviceType = "switch"
	TypeFirewall    DeviceType = "firewall"
	TypeServer      DeviceType = "server"
	TypeCloud       DeviceType = "cloud"
	TypeWorkstation DeviceType = "workstation"
	TypeGeneric     DeviceType = "generic"
)

// typePriorities ranks device types for grid ordering. Higher values claim
// earlier (top-left) cells. The numbers are empirically tuned defaults, not
// correctness invariants.
var typePriorities = map[DeviceType]int{
	TypeRouter:      100,
	TypeSwitch:      90,
	TypeFirewall:    80,
	TypeServer:      70,
	TypeCloud:       60,
	TypeWorkstation: 50,
}

// TypePriority returns the placement priority for a device type.
// Unknown or generic types score 0.
func TypePriority(t DeviceType) int {
	return typePriorities[t]
}

// IsRouterClass reports whether the type should receive the router bonus in
// root and center selection heuristics.
func IsRouterClass(t DeviceType) bool {
	return t == TypeRouter
}
