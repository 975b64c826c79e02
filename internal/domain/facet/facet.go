// Package facet models a course discovery request: a set of independently
// optional, named search constraints.
package facet

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/kailas-cloud/coursedex/internal/domain"
)

// Name is a facet name.
type Name string

// Recognized facet names.
const (
	Dept        Name = "dept"
	SectionNum  Name = "section_num"
	Day         Name = "day"
	TimeStart   Name = "time_start"
	TimeEnd     Name = "time_end"
	WalkingTime Name = "walking_time"
	Building    Name = "building"
	EnrollLower Name = "enroll_lower"
	EnrollUpper Name = "enroll_upper"
	Terms       Name = "terms"
)

type kind int

const (
	kindString kind = iota
	kindStrings
	kindInt
	kindFloat
)

var kinds = map[Name]kind{
	Dept:        kindString,
	SectionNum:  kindString,
	Day:         kindStrings,
	TimeStart:   kindInt,
	TimeEnd:     kindInt,
	WalkingTime: kindFloat,
	Building:    kindString,
	EnrollLower: kindInt,
	EnrollUpper: kindInt,
	Terms:       kindString,
}

// IsRecognized reports whether n is a facet the engine understands.
func IsRecognized(n Name) bool {
	_, ok := kinds[n]
	return ok
}

// Request is a validated facet request. Values are normalized to string,
// []string, int64 or float64 depending on the facet. Unrecognized names are
// kept as given; they count toward emptiness but never constrain the query.
type Request struct {
	values map[Name]any
}

// NewRequest validates raw facet values (typically decoded from JSON).
func NewRequest(raw map[string]any) (Request, error) {
	values := make(map[Name]any, len(raw))
	for k, v := range raw {
		name := Name(k)
		kd, ok := kinds[name]
		if !ok {
			values[name] = v
			continue
		}
		norm, err := normalize(kd, v)
		if err != nil {
			return Request{}, domain.NewFacetError(k, err.Error())
		}
		values[name] = norm
	}

	if _, ok := values[WalkingTime]; ok {
		if _, hasBuilding := values[Building]; !hasBuilding {
			return Request{}, fmt.Errorf("%w: %s requires %s", domain.ErrConfiguration, WalkingTime, Building)
		}
	}

	return Request{values: values}, nil
}

// MustRequest calls NewRequest and panics on error.
func MustRequest(raw map[string]any) Request {
	r, err := NewRequest(raw)
	if err != nil {
		panic(err)
	}
	return r
}

// Len returns the number of requested facets, recognized or not.
func (r Request) Len() int { return len(r.values) }

// IsEmpty reports whether no facet was requested.
func (r Request) IsEmpty() bool { return len(r.values) == 0 }

// Has reports whether facet n was requested.
func (r Request) Has(n Name) bool {
	_, ok := r.values[n]
	return ok
}

// HasAny reports whether any of the given facets was requested.
func (r Request) HasAny(names ...Name) bool {
	for _, n := range names {
		if r.Has(n) {
			return true
		}
	}
	return false
}

// OnlyTerms reports whether terms is the single requested facet.
func (r Request) OnlyTerms() bool {
	return len(r.values) == 1 && r.Has(Terms)
}

// Names returns the requested facet names in sorted order.
func (r Request) Names() []string {
	out := make([]string, 0, len(r.values))
	for n := range r.values {
		out = append(out, string(n))
	}
	sort.Strings(out)
	return out
}

// Value returns the normalized value of facet n.
func (r Request) Value(n Name) (any, bool) {
	v, ok := r.values[n]
	return v, ok
}

// String returns a string-valued facet.
func (r Request) String(n Name) string {
	s, _ := r.values[n].(string)
	return s
}

// Strings returns a list-valued facet.
func (r Request) Strings(n Name) []string {
	s, _ := r.values[n].([]string)
	return s
}

// Int returns an integer-valued facet.
func (r Request) Int(n Name) int64 {
	i, _ := r.values[n].(int64)
	return i
}

// Float returns a real-valued facet.
func (r Request) Float(n Name) float64 {
	f, _ := r.values[n].(float64)
	return f
}

func normalize(kd kind, v any) (any, error) {
	switch kd {
	case kindString:
		return toString(v)
	case kindStrings:
		return toStrings(v)
	case kindInt:
		f, err := toFloat(v)
		if err != nil {
			return nil, err
		}
		if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
			return nil, fmt.Errorf("must be an integer, got %v", f)
		}
		// float64(MaxInt64) rounds up to 2^63, which int64 cannot hold.
		if f < math.MinInt64 || f >= math.MaxInt64 {
			return nil, fmt.Errorf("out of range, got %v", f)
		}
		return int64(f), nil
	case kindFloat:
		f, err := toFloat(v)
		if err != nil {
			return nil, err
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("must be finite, got %v", f)
		}
		if f < 0 {
			return nil, fmt.Errorf("must not be negative, got %v", f)
		}
		return f, nil
	default:
		return nil, fmt.Errorf("unsupported facet kind %d", kd)
	}
}

func toString(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case json.Number:
		return x.String(), nil
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	default:
		return "", fmt.Errorf("must be a string, got %T", v)
	}
}

func toStrings(v any) ([]string, error) {
	var out []string
	switch x := v.(type) {
	case string:
		out = []string{x}
	case []string:
		out = append(out, x...)
	case []any:
		out = make([]string, 0, len(x))
		for _, item := range x {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("must be a list of strings, got element %T", item)
			}
			out = append(out, s)
		}
	default:
		return nil, fmt.Errorf("must be a string or list of strings, got %T", v)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("must not be empty")
	}
	return out, nil
}

func toFloat(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0, fmt.Errorf("must be a number, got %q", x.String())
		}
		return f, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, fmt.Errorf("must be a number, got %q", x)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("must be a number, got %T", v)
	}
}
