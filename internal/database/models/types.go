package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// UUIDSlice stores an ordered list of UUIDs as a JSONB column
type UUIDSlice []uuid.UUID

// Value implements driver.Valuer
func (s UUIDSlice) Value() (driver.Value, error) {
	if s == nil {
		return json.Marshal([]uuid.UUID{})
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner
func (s *UUIDSlice) Scan(value interface{}) error {
	if value == nil {
		*s = UUIDSlice{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type for UUIDSlice: %T", value)
	}
	if len(data) == 0 {
		*s = UUIDSlice{}
		return nil
	}
	return json.Unmarshal(data, s)
}

// GormDataType tells GORM which column type to use
func (UUIDSlice) GormDataType() string {
	return "jsonb"
}

// IndexOf returns the position of id in the slice, or -1 if absent
func (s UUIDSlice) IndexOf(id uuid.UUID) int {
	for i, v := range s {
		if v == id {
			return i
		}
	}
	return -1
}

// HasDuplicates reports whether any id appears more than once
func (s UUIDSlice) HasDuplicates() bool {
	seen := make(map[uuid.UUID]struct{}, len(s))
	for _, v := range s {
		if _, ok := seen[v]; ok {
			return true
		}
		seen[v] = struct{}{}
	}
	return false
}
