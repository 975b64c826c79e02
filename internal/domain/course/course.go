// Package course holds the catalog entities: courses, their sections and
// the (department, course number) identifier shared by the store and the index.
package course

import (
	"encoding/json"
	"fmt"
	"sort"
)

// UnknownEnrollment marks a section whose enrollment is unknown or unbounded.
const UnknownEnrollment = -1

// ID identifies a course by department code and course number.
// The catalog index may carry abbreviated department codes (CMS for CMSC).
type ID struct {
	Dept string
	Num  string
}

// NewID creates a course identifier.
func NewID(dept, num string) ID {
	return ID{Dept: dept, Num: num}
}

func (id ID) String() string { return id.Dept + " " + id.Num }

// MarshalJSON encodes the identifier as a two-element array, the index artifact format.
func (id ID) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{id.Dept, id.Num})
}

// UnmarshalJSON decodes a two-element [department, number] array.
func (id *ID) UnmarshalJSON(data []byte) error {
	var pair []string
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("course id: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("course id: want 2 elements, got %d", len(pair))
	}
	id.Dept, id.Num = pair[0], pair[1]
	return nil
}

// SortIDs orders identifiers by department, then number.
func SortIDs(ids []ID) {
	sort.Slice(ids, func(i, j int) bool {
		if ids[i].Dept != ids[j].Dept {
			return ids[i].Dept < ids[j].Dept
		}
		return ids[i].Num < ids[j].Num
	})
}

// Course is a catalog course. Immutable once loaded.
type Course struct {
	ID    ID
	Title string
}

// Section is a scheduled offering of exactly one course.
type Section struct {
	Course     ID
	Number     string
	Day        string
	TimeStart  int // minutes since midnight
	TimeEnd    int
	Building   string
	Enrollment int
}

// HasKnownEnrollment reports whether the enrollment is a real count.
func (s Section) HasKnownEnrollment() bool {
	return s.Enrollment > UnknownEnrollment
}

// Building is a GPS point keyed by building code.
type Building struct {
	Code string
	Lon  float64
	Lat  float64
}
