package health

import (
	"maps"
	"time"
)

// ComponentDetails is the static identity of a measurable sub-component.
type ComponentDetails struct {
	// Status is the component's current status.
	Status Status

	// ComponentName is a human-readable name for the component.
	ComponentName string

	// MeasurementName names the data point type the status is reported for.
	MeasurementName string

	// ComponentID identifies a specific instance of the component.
	ComponentID string

	// ComponentType is the type of the component (e.g. "datastore", "system").
	ComponentType string

	// ObservedUnit is the unit ObservedValue is reported in.
	ObservedUnit string

	// Links points at more information about the component's health.
	Links string
}

// ID returns the monitor id "<component_name>:<measurement_name>".
func (c ComponentDetails) ID() string {
	return c.ComponentName + ":" + c.MeasurementName
}

// DynamicComponentDetails extends ComponentDetails with observed state.
type DynamicComponentDetails struct {
	ComponentDetails

	// ObservedValue is the last measured value. Any shape is allowed.
	ObservedValue any

	// Output explains the status when it is not pass.
	Output string

	// Time is when the component last moved to warn or fail.
	Time time.Time
}

// ServiceInfo is the static identity of the owning service.
type ServiceInfo struct {
	Status      Status
	Version     string
	ReleaseID   string
	Notes       string
	Links       string
	Description string
}

// DynamicServiceInfo extends ServiceInfo with the per-component details.
type DynamicServiceInfo struct {
	ServiceInfo

	ServiceID string
	Output    string

	// Detail maps monitor ids to component entries.
	Detail map[string]*DynamicComponentDetails
}

// Clone returns a deep copy of the record. Observed values are copied by
// assignment, so reference-typed values stay shared.
func (d *DynamicServiceInfo) Clone() DynamicServiceInfo {
	out := *d
	out.Detail = make(map[string]*DynamicComponentDetails, len(d.Detail))
	for id, c := range d.Detail {
		cp := *c
		out.Detail[id] = &cp
	}
	return out
}

// StatusCounts returns how many components are in each status.
func (d *DynamicServiceInfo) StatusCounts() map[Status]int {
	counts := make(map[Status]int, 3)
	for _, c := range d.Detail {
		counts[c.Status]++
	}
	return counts
}

// IDs returns the registered monitor ids in no particular order.
func (d *DynamicServiceInfo) IDs() []string {
	ids := make([]string, 0, len(d.Detail))
	for id := range maps.Keys(d.Detail) {
		ids = append(ids, id)
	}
	return ids
}
