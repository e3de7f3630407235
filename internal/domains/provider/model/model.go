package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"pitstop/shared/model"
)

const (
	TableName  = "providers"
	EntityName = "provider"

	FieldID          = "id"
	FieldUserID      = "user_id"
	FieldName        = "name"
	FieldEmail       = "email"
	FieldPhone       = "phone"
	FieldSlotCatalog = "slot_catalog"
	FieldActive      = "active"
)

// SlotCatalog is a provider's custom set of bookable time labels, stored as
// jsonb. An empty catalog means the provider uses the configured default.
type SlotCatalog []string

func (c SlotCatalog) Value() (driver.Value, error) {
	if len(c) == 0 {
		return nil, nil
	}

	value, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal slot catalog: %w", err)
	}

	return value, nil
}

func (c *SlotCatalog) Scan(src any) error {
	if src == nil {
		*c = nil

		return nil
	}

	var raw []byte

	switch value := src.(type) {
	case []byte:
		raw = value
	case string:
		raw = []byte(value)
	default:
		return errors.New("unsupported source type for slot catalog")
	}

	if err := json.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("failed to unmarshal slot catalog: %w", err)
	}

	return nil
}

type Provider struct {
	ID          string      `db:"id"`
	UserID      string      `db:"user_id"`
	Name        string      `db:"name"`
	Email       string      `db:"email"`
	Phone       string      `db:"phone"`
	SlotCatalog SlotCatalog `db:"slot_catalog"`
	Active      bool        `db:"active"`
	model.Metadata
}

// Catalog returns the provider's bookable slot labels, falling back to the
// configured defaults when no custom catalog is set.
func (p *Provider) Catalog(defaults []string) []string {
	if len(p.SlotCatalog) > 0 {
		return p.SlotCatalog
	}

	return defaults
}

// HasSlot reports whether the given label belongs to the provider's catalog.
func (p *Provider) HasSlot(label string, defaults []string) bool {
	for _, slot := range p.Catalog(defaults) {
		if slot == label {
			return true
		}
	}

	return false
}
