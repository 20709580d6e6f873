// Package jsonb maps Go values to PostgreSQL jsonb columns for gorm models and
// raw SQL scans alike.
package jsonb

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Doc stores V as one jsonb document.
type Doc[T any] struct {
	V T
}

func (d Doc[T]) Value() (driver.Value, error) {
	b, err := json.Marshal(d.V)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (d *Doc[T]) Scan(src any) error {
	var v T
	if err := decode(src, &v); err != nil {
		return err
	}
	d.V = v
	return nil
}

// List stores a slice as a jsonb array. A nil list is written as [] and a SQL
// NULL reads back as nil.
type List[T any] []T

func (l List[T]) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]T(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *List[T]) Scan(src any) error {
	if src == nil {
		*l = nil
		return nil
	}
	var v []T
	if err := decode(src, &v); err != nil {
		return err
	}
	*l = v
	return nil
}

// Object stores a map as a jsonb object. A nil map is written as {}.
type Object map[string]any

func (o Object) Value() (driver.Value, error) {
	if o == nil {
		return "{}", nil
	}
	b, err := json.Marshal(map[string]any(o))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (o *Object) Scan(src any) error {
	m := map[string]any{}
	if err := decode(src, &m); err != nil {
		return err
	}
	*o = m
	return nil
}

func decode(src, dst any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("jsonb: unsupported column type %T", src)
	}
}
