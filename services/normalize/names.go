// Package normalize reconciles the backend's inconsistent payload shapes into
// display-ready movie records.
package normalize

import (
	"bytes"
	"strings"

	"github.com/goccy/go-json"
)

// Shape identifies which form a polymorphic payload field arrived in.
type Shape int

const (
	ShapeAbsent  Shape = iota // missing or null
	ShapeSingle               // one bare string
	ShapeStrings              // list of strings
	ShapeObjects              // list of objects (or one object)
	ShapeMixed                // list mixing strings and objects
	ShapeUnknown              // anything else; treated as absent
)

func (s Shape) String() string {
	switch s {
	case ShapeAbsent:
		return "absent"
	case ShapeSingle:
		return "single"
	case ShapeStrings:
		return "strings"
	case ShapeObjects:
		return "objects"
	case ShapeMixed:
		return "mixed"
	default:
		return "unknown"
	}
}

// NameField is the parsed form of an actor/director/cast/episodes value.
type NameField struct {
	Shape Shape
	Names []string
}

// Present reports whether the field carried any usable name.
func (f NameField) Present() bool {
	return len(f.Names) > 0
}

type namedObject struct {
	Name         string `json:"name"`
	OriginalName string `json:"original_name"`
	Title        string `json:"title"`
}

func (o namedObject) label() string {
	for _, v := range []string{o.Name, o.OriginalName, o.Title} {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// ParseNames classifies raw and flattens it to names. Blank entries are
// dropped; unknown shapes produce no names.
func ParseNames(raw json.RawMessage) NameField {
	data := bytes.TrimSpace(raw)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return NameField{Shape: ShapeAbsent}
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return NameField{Shape: ShapeUnknown}
		}
		names := splitNames(s)
		if len(names) == 0 {
			return NameField{Shape: ShapeAbsent}
		}
		return NameField{Shape: ShapeSingle, Names: names}
	case '{':
		var obj namedObject
		if err := json.Unmarshal(data, &obj); err != nil {
			return NameField{Shape: ShapeUnknown}
		}
		if label := obj.label(); label != "" {
			return NameField{Shape: ShapeObjects, Names: []string{label}}
		}
		return NameField{Shape: ShapeObjects}
	case '[':
		return parseNameList(data)
	default:
		return NameField{Shape: ShapeUnknown}
	}
}

// Names is ParseNames reduced to the flat name list.
func Names(raw json.RawMessage) []string {
	return ParseNames(raw).Names
}

func parseNameList(data []byte) NameField {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return NameField{Shape: ShapeUnknown}
	}

	var (
		names              []string
		sawString, sawObjs bool
	)
	for _, item := range items {
		item = bytes.TrimSpace(item)
		if len(item) == 0 {
			continue
		}
		switch item[0] {
		case '"':
			var s string
			if json.Unmarshal(item, &s) != nil {
				continue
			}
			sawString = true
			if s = strings.TrimSpace(s); s != "" {
				names = append(names, s)
			}
		case '{':
			var obj namedObject
			if json.Unmarshal(item, &obj) != nil {
				continue
			}
			sawObjs = true
			if label := obj.label(); label != "" {
				names = append(names, label)
			}
		}
	}

	shape := ShapeStrings
	switch {
	case sawString && sawObjs:
		shape = ShapeMixed
	case sawObjs:
		shape = ShapeObjects
	case !sawString && len(items) > 0:
		shape = ShapeUnknown
	}
	return NameField{Shape: shape, Names: names}
}

// splitNames breaks a single comma-separated string into names.
func splitNames(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
