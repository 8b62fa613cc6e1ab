// Reliefmap - Humanitarian Coverage Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reliefmap

package events

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// TopicDatasetChanged carries a DatasetChanged after every store write.
const TopicDatasetChanged = "dataset.changed"

// SchemaVersion is the current DatasetChanged schema version.
const SchemaVersion = 1

// DatasetChanged announces a new dataset version.
type DatasetChanged struct {
	SchemaVersion int       `json:"schema_version"`
	EventID       string    `json:"event_id"`
	Version       uint64    `json:"version"`
	Operation     string    `json:"operation"`
	EntityID      string    `json:"entity_id,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// NewDatasetChanged builds an event for a write that produced version.
func NewDatasetChanged(version uint64, operation, entityID string) *DatasetChanged {
	return &DatasetChanged{
		SchemaVersion: SchemaVersion,
		EventID:       uuid.New().String(),
		Version:       version,
		Operation:     operation,
		EntityID:      entityID,
		Timestamp:     time.Now().UTC(),
	}
}

// Validate checks the fields a consumer relies on.
func (e *DatasetChanged) Validate() error {
	if e.EventID == "" {
		return fmt.Errorf("event_id is required")
	}
	if e.Version == 0 {
		return fmt.Errorf("version must be positive")
	}
	if e.Operation == "" {
		return fmt.Errorf("operation is required")
	}
	return nil
}

// Marshal encodes the event.
func (e *DatasetChanged) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

// UnmarshalDatasetChanged decodes and validates an event payload.
func UnmarshalDatasetChanged(data []byte) (*DatasetChanged, error) {
	var e DatasetChanged
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("decode dataset event: %w", err)
	}
	if err := e.Validate(); err != nil {
		return nil, fmt.Errorf("invalid dataset event: %w", err)
	}
	return &e, nil
}
