// internal/app/system/schema/schema.go

// Package schema validates request documents against a fixed catalogue of
// named schemas. Validation stops at the first violation and reports the
// offending field path with the schema root stripped ("location.lat", not
// "/Location.location.lat"). Properties are checked in declaration order,
// so the first reported field is deterministic.
//
// The catalogue is built once at init and is read-only afterwards; Validate
// is safe for concurrent use.
package schema

import (
	"fmt"
	"regexp"
)

// Error describes the first violation found in a document.
type Error struct {
	Path   string // field path relative to the document root
	Detail string // what was wrong with it
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s field is invalid: %s", e.Path, e.Detail)
}

// Property is one constrained field of a schema. Exactly one of Type or Ref
// is set; the remaining constraints apply when present.
type Property struct {
	Name     string
	Type     string // "string" | "number" | "object" | "array"
	Ref      string // name of a nested schema instead of a Type
	Required bool
	Min      *float64       // inclusive, numbers only
	Max      *float64       // inclusive, numbers only
	Pattern  *regexp.Regexp // strings only
	Items    string         // element type, arrays only
}

// Schema is a named, ordered set of property constraints.
type Schema struct {
	Name       string
	Properties []Property
}

// Validate checks doc against the named schema. It returns nil when the
// document conforms, *Error on the first violation, and a plain error when
// the schema name is unknown.
func Validate(doc map[string]any, schemaName string) error {
	s, ok := catalogue[schemaName]
	if !ok {
		return fmt.Errorf("unknown schema %q", schemaName)
	}
	return validate(doc, s, "")
}

func validate(doc map[string]any, s *Schema, prefix string) error {
	for _, p := range s.Properties {
		path := p.Name
		if prefix != "" {
			path = prefix + "." + p.Name
		}

		value, present := doc[p.Name]
		if !present {
			if p.Required {
				return &Error{Path: path, Detail: "required field is missing"}
			}
			continue
		}

		if p.Ref != "" {
			nested, ok := value.(map[string]any)
			if !ok {
				return &Error{Path: path, Detail: "expected an object"}
			}
			ref, ok := catalogue[p.Ref]
			if !ok {
				return fmt.Errorf("schema %q references unknown schema %q", s.Name, p.Ref)
			}
			if err := validate(nested, ref, path); err != nil {
				return err
			}
			continue
		}

		if err := checkValue(value, p, path); err != nil {
			return err
		}
	}
	return nil
}

func checkValue(value any, p Property, path string) error {
	switch p.Type {
	case "string":
		s, ok := value.(string)
		if !ok {
			return &Error{Path: path, Detail: "expected a string"}
		}
		if p.Pattern != nil && !p.Pattern.MatchString(s) {
			return &Error{Path: path, Detail: "does not match required pattern"}
		}

	case "number":
		n, ok := toNumber(value)
		if !ok {
			return &Error{Path: path, Detail: "expected a number"}
		}
		if p.Min != nil && n < *p.Min {
			return &Error{Path: path, Detail: fmt.Sprintf("must be >= %v", *p.Min)}
		}
		if p.Max != nil && n > *p.Max {
			return &Error{Path: path, Detail: fmt.Sprintf("must be <= %v", *p.Max)}
		}

	case "object":
		if _, ok := value.(map[string]any); !ok {
			return &Error{Path: path, Detail: "expected an object"}
		}

	case "array":
		items, ok := value.([]any)
		if !ok {
			return &Error{Path: path, Detail: "expected an array"}
		}
		if p.Items == "string" {
			for i, item := range items {
				if _, ok := item.(string); !ok {
					return &Error{
						Path:   fmt.Sprintf("%s[%d]", path, i),
						Detail: "expected a string",
					}
				}
			}
		}

	default:
		return fmt.Errorf("schema property %q has unknown type %q", path, p.Type)
	}
	return nil
}

// toNumber accepts the numeric shapes a decoded JSON body or a BSON
// document can carry.
func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
