package health

import (
	"net/http"
	"time"
)

// Document is the JSON health document for a service.
type Document struct {
	Status      Status                       `json:"status"`
	Version     string                       `json:"version,omitempty"`
	ReleaseID   string                       `json:"releaseId,omitempty"`
	Notes       string                       `json:"notes,omitempty"`
	Links       string                       `json:"links,omitempty"`
	Description string                       `json:"description,omitempty"`
	ServiceID   string                       `json:"serviceId,omitempty"`
	Output      string                       `json:"output,omitempty"`
	Details     map[string]ComponentDocument `json:"details,omitempty"`
}

// ComponentDocument is one entry of Document.Details.
type ComponentDocument struct {
	Status          Status `json:"status"`
	ComponentName   string `json:"componentName,omitempty"`
	MeasurementName string `json:"measurementName,omitempty"`
	ComponentID     string `json:"componentId,omitempty"`
	ComponentType   string `json:"componentType,omitempty"`
	ObservedUnit    string `json:"observedUnit,omitempty"`
	Links           string `json:"links,omitempty"`
	ObservedValue   any    `json:"observedValue,omitempty"`
	Output          string `json:"output,omitempty"`
	Time            string `json:"time,omitempty"`
}

// NewDocument builds the health document for info.
func NewDocument(info DynamicServiceInfo) Document {
	doc := Document{
		Status:      wireStatus(info.Status),
		Version:     info.Version,
		ReleaseID:   info.ReleaseID,
		Notes:       info.Notes,
		Links:       info.Links,
		Description: info.Description,
		ServiceID:   info.ServiceID,
		Output:      info.Output,
	}
	if len(info.Detail) == 0 {
		return doc
	}

	doc.Details = make(map[string]ComponentDocument, len(info.Detail))
	for id, c := range info.Detail {
		entry := ComponentDocument{
			Status:          wireStatus(c.Status),
			ComponentName:   c.ComponentName,
			MeasurementName: c.MeasurementName,
			ComponentID:     c.ComponentID,
			ComponentType:   c.ComponentType,
			ObservedUnit:    c.ObservedUnit,
			Links:           c.Links,
			ObservedValue:   c.ObservedValue,
			Output:          c.Output,
		}
		if !c.Time.IsZero() {
			entry.Time = c.Time.UTC().Format(time.RFC3339)
		}
		doc.Details[id] = entry
	}
	return doc
}

// wireStatus reports out-of-range statuses as fail, matching their severity.
func wireStatus(s Status) Status {
	if s.Severity() == StatusFail.Severity() {
		return StatusFail
	}
	return s
}

// HTTPStatusCode maps a service status to an HTTP response code.
func HTTPStatusCode(s Status) int {
	switch s {
	case StatusPass, StatusWarn:
		return http.StatusOK
	default:
		return http.StatusServiceUnavailable
	}
}
