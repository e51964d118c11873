package systems

// SystemInfo describes a simulation phase for UI display.
type SystemInfo struct {
	ID          string // Internal identifier (used for perf tracking)
	Name        string // Display name
	Description string // What this system does
	Category    string // Grouping (e.g., "physics", "render")
}

// SystemRegistry holds metadata about all phases.
// This centralizes naming so the HUD and perf tracker stay in sync.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]SystemInfo
}

// NewSystemRegistry creates a registry with all known phases.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{
		byID: make(map[string]SystemInfo),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds all known phases to the registry.
// Update this when adding new systems.
func (r *SystemRegistry) registerDefaults() {
	r.Register(SystemInfo{ID: "input", Name: "Input", Description: "Applies keyboard and mouse controls", Category: "frontend"})
	r.Register(SystemInfo{ID: "gravity", Name: "Gravity", Description: "Sums pairwise forces and integrates", Category: "physics"})
	r.Register(SystemInfo{ID: "trail", Name: "Trails", Description: "Records trajectories", Category: "physics"})
	r.Register(SystemInfo{ID: "collision", Name: "Collision", Description: "Detects overlapping bodies", Category: "physics"})
	r.Register(SystemInfo{ID: "telemetry", Name: "Telemetry", Description: "Collects window statistics", Category: "internal"})
	r.Register(SystemInfo{ID: "render", Name: "Render", Description: "Draws bodies, trails and the HUD", Category: "frontend"})
}

// Register adds a system to the registry.
func (r *SystemRegistry) Register(info SystemInfo) {
	r.systems = append(r.systems, info)
	r.byID[info.ID] = info
}

// Get returns system info by ID.
func (r *SystemRegistry) Get(id string) (SystemInfo, bool) {
	info, ok := r.byID[id]
	return info, ok
}

// GetName returns the display name for a system ID.
// Falls back to the ID itself if not found.
func (r *SystemRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// IDs returns all system IDs in registration order.
func (r *SystemRegistry) IDs() []string {
	ids := make([]string, len(r.systems))
	for i, info := range r.systems {
		ids[i] = info.ID
	}
	return ids
}
