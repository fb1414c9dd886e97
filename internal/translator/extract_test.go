package translator

import "testing"

func TestExtract_ProximityQuery(t *testing.T) {
	ex := Extract("Find all schools within 1km of hospitals in Mumbai")

	if ex.Verb != "find" {
		t.Errorf("verb = %q, want find", ex.Verb)
	}
	if !ex.Proximity {
		t.Error("proximity not detected")
	}
	if len(ex.Subjects) != 1 || ex.Subjects[0] != "schools" {
		t.Errorf("subjects = %v, want [schools]", ex.Subjects)
	}
	if ex.Reference != "hospitals" {
		t.Errorf("reference = %q, want hospitals", ex.Reference)
	}
	if ex.Location != "Mumbai" {
		t.Errorf("location = %q, want Mumbai", ex.Location)
	}
	if ex.DistanceM != 1000 {
		t.Errorf("distance = %v, want 1000", ex.DistanceM)
	}
}

func TestExtract_Distances(t *testing.T) {
	cases := []struct {
		query string
		want  float64
	}{
		{"within 1km of", 1000},
		{"within 2.5 km of", 2500},
		{"within 500 m of", 500},
		{"within 500 meters of", 500},
		{"within 2 miles of", 3218.688},
	}
	for _, c := range cases {
		ex := Extract(c.query)
		if ex.DistanceM != c.want {
			t.Errorf("Extract(%q).DistanceM = %v, want %v", c.query, ex.DistanceM, c.want)
		}
	}
}

func TestExtract_LocationFallback(t *testing.T) {
	ex := Extract("Find all parks in Springfield")
	if ex.Location != "Springfield" {
		t.Errorf("location = %q, want Springfield", ex.Location)
	}
}

func TestExtract_DensityQuery(t *testing.T) {
	ex := Extract("Calculate population density by district using census data")

	if ex.Verb != "calculate" {
		t.Errorf("verb = %q, want calculate", ex.Verb)
	}
	if ex.Measure != "density" {
		t.Errorf("measure = %q, want density", ex.Measure)
	}
	if ex.GroupBy != "districts" {
		t.Errorf("group_by = %q, want districts", ex.GroupBy)
	}
	found := false
	for _, ds := range ex.Datasets {
		if ds == "census" {
			found = true
		}
	}
	if !found {
		t.Errorf("datasets = %v, want census included", ex.Datasets)
	}
}

func TestExtract_Classification(t *testing.T) {
	ex := Extract("Generate land use classification from satellite imagery")

	if ex.Verb != "classify" {
		t.Errorf("verb = %q, want classify", ex.Verb)
	}
	if ex.Scheme != "land_use" {
		t.Errorf("scheme = %q, want land_use", ex.Scheme)
	}
	found := false
	for _, ds := range ex.Datasets {
		if ds == "satellite_imagery" {
			found = true
		}
	}
	if !found {
		t.Errorf("datasets = %v, want satellite_imagery included", ex.Datasets)
	}
}

func TestExtract_Nonsense(t *testing.T) {
	ex := Extract("asdfqwerty nonsense")

	if ex.Verb != "" || len(ex.Subjects) != 0 || ex.Proximity {
		t.Errorf("nonsense extracted something: %+v", ex)
	}
}
