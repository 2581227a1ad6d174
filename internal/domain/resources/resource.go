// Package resources declares the owned resource kinds exposed by the API.
//
// Every kind has a required name, an immutable owner, and store-managed
// timestamps. Records are considered "the same" when owner and name match;
// nothing in the schema enforces that.
package resources

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Owned is the constraint satisfied by pointers to resource structs.
type Owned[T any] interface {
	*T
	GetID() uuid.UUID
	SetID(uuid.UUID)
	GetOwnerID() uuid.UUID
	SetOwnerID(uuid.UUID)
	GetName() string
	Validate() error
}

// Patch is a partial update. Absent fields leave the record untouched; a patch
// never carries an owner.
type Patch[T any] interface {
	ApplyTo(rec *T)
}

// MissingFieldsError lists required fields absent from a write.
type MissingFieldsError struct {
	Kind   string
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("%s validation failed: %s required", e.Kind, strings.Join(e.Fields, ", "))
}

type required struct {
	name  string
	value string
}

func requireFields(kind string, fields ...required) error {
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &MissingFieldsError{Kind: kind, Fields: missing}
}

func apply(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
