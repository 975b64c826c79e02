package chi

import (
	"fmt"
	"net/url"

	"github.com/oapi-codegen/runtime"

	"github.com/kailas-cloud/coursedex/internal/domain/facet"
)

// bindFindCoursesParams binds form-style, exploded query parameters
// (day=M&day=W) into params.
func bindFindCoursesParams(q url.Values) (FindCoursesParams, error) {
	var params FindCoursesParams
	bindings := []struct {
		name facet.Name
		dest any
	}{
		{facet.Dept, &params.Dept},
		{facet.SectionNum, &params.SectionNum},
		{facet.Day, &params.Day},
		{facet.TimeStart, &params.TimeStart},
		{facet.TimeEnd, &params.TimeEnd},
		{facet.WalkingTime, &params.WalkingTime},
		{facet.Building, &params.Building},
		{facet.EnrollLower, &params.EnrollLower},
		{facet.EnrollUpper, &params.EnrollUpper},
		{facet.Terms, &params.Terms},
	}
	for _, b := range bindings {
		if err := runtime.BindQueryParameter("form", true, false, string(b.name), q, b.dest); err != nil {
			return FindCoursesParams{}, fmt.Errorf("invalid format for parameter %s: %w", b.name, err)
		}
	}
	return params, nil
}

// facets converts the bound parameters into raw facet values; absent
// parameters are omitted.
func (p FindCoursesParams) facets() map[string]any {
	raw := make(map[string]any)
	putString := func(n facet.Name, v *string) {
		if v != nil {
			raw[string(n)] = *v
		}
	}
	putInt := func(n facet.Name, v *int) {
		if v != nil {
			raw[string(n)] = *v
		}
	}
	putString(facet.Dept, p.Dept)
	putString(facet.SectionNum, p.SectionNum)
	putString(facet.Building, p.Building)
	putString(facet.Terms, p.Terms)
	putInt(facet.TimeStart, p.TimeStart)
	putInt(facet.TimeEnd, p.TimeEnd)
	putInt(facet.EnrollLower, p.EnrollLower)
	putInt(facet.EnrollUpper, p.EnrollUpper)
	if p.Day != nil {
		raw[string(facet.Day)] = *p.Day
	}
	if p.WalkingTime != nil {
		raw[string(facet.WalkingTime)] = *p.WalkingTime
	}
	return raw
}
