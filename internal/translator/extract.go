package translator

import (
	"regexp"
	"strconv"
	"strings"
)

// Extraction holds the entities pulled out of a query by the deterministic
// rule pass. Operation selection works exclusively off this struct, so two
// translations of the same query always see the same candidates.
type Extraction struct {
	Verb      string   `json:"verb,omitempty"`    // find, calculate, classify, count
	Measure   string   `json:"measure,omitempty"` // density, area, count
	Proximity bool     `json:"proximity,omitempty"`
	Subjects  []string `json:"subjects,omitempty"`  // feature classes before the proximity keyword
	Reference string   `json:"reference,omitempty"` // feature class after the proximity keyword
	Location  string   `json:"location,omitempty"`
	DistanceM float64  `json:"distance_m,omitempty"`
	Datasets  []string `json:"datasets,omitempty"` // explicitly named auxiliary datasets
	GroupBy   string   `json:"group_by,omitempty"` // zone noun, e.g. district
	Scheme    string   `json:"scheme,omitempty"`   // classification scheme
}

type classPattern struct {
	re      *regexp.Regexp
	dataset string
}

var featureClasses = []classPattern{
	{regexp.MustCompile(`(?i)\bmetro stations?\b`), "metro_stations"},
	{regexp.MustCompile(`(?i)\brailway stations?\b`), "railway_stations"},
	{regexp.MustCompile(`(?i)\bschools?\b`), "schools"},
	{regexp.MustCompile(`(?i)\bhospitals?\b`), "hospitals"},
	{regexp.MustCompile(`(?i)\bparks?\b`), "parks"},
	{regexp.MustCompile(`(?i)\broads?\b`), "roads"},
	{regexp.MustCompile(`(?i)\bbuildings?\b`), "buildings"},
	{regexp.MustCompile(`(?i)\brivers?\b`), "rivers"},
	{regexp.MustCompile(`(?i)\bforests?\b`), "forests"},
	{regexp.MustCompile(`(?i)\bcit(?:y|ies)\b`), "cities"},
	{regexp.MustCompile(`(?i)\bvillages?\b`), "villages"},
}

var auxDatasets = []classPattern{
	{regexp.MustCompile(`(?i)\bcensus( data)?\b`), "census"},
	{regexp.MustCompile(`(?i)\bsatellite (imagery|data|images?)\b`), "satellite_imagery"},
	{regexp.MustCompile(`(?i)\b(elevation( data)?|dem)\b`), "elevation"},
	{regexp.MustCompile(`(?i)\b(rainfall|precipitation)( data)?\b`), "rainfall"},
	{regexp.MustCompile(`(?i)\bland ?use( data)?\b`), "landuse"},
}

// Known place names. Anything else is picked up by the "in <Name>" fallback.
var gazetteer = []string{
	"Mumbai", "New Delhi", "Delhi", "Bengaluru", "Bangalore", "Chennai",
	"Kolkata", "Hyderabad", "Pune", "Ahmedabad", "Jaipur", "India",
}

var (
	proximityRe = regexp.MustCompile(`(?i)\b(within|near(?:by)?|close to|around)\b`)
	distanceRe  = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(kms?|kilomet(?:er|re)s?|m|met(?:er|re)s?|mi|miles?)\b`)
	locationRe  = regexp.MustCompile(`\bin\s+([A-Z][A-Za-z]+(?:\s[A-Z][A-Za-z]+)?)`)
	groupByRe   = regexp.MustCompile(`(?i)\bby\s+(district|state|ward|zone|region|block)s?\b`)
	schemeRe    = regexp.MustCompile(`(?i)\b(land ?use|land ?cover|flood risk|soil)\s+classification\b`)
)

var verbPatterns = []struct {
	re   *regexp.Regexp
	verb string
}{
	{regexp.MustCompile(`(?i)\b(classify|categorize|classification)\b`), "classify"},
	{regexp.MustCompile(`(?i)\b(calculate|compute|estimate)\b`), "calculate"},
	{regexp.MustCompile(`(?i)\bcount\b`), "count"},
	{regexp.MustCompile(`(?i)\b(find|identify|locate|show|list)\b`), "find"},
}

var measurePatterns = []struct {
	re      *regexp.Regexp
	measure string
}{
	{regexp.MustCompile(`(?i)\bdensity\b`), "density"},
	{regexp.MustCompile(`(?i)\barea\b`), "area"},
	{regexp.MustCompile(`(?i)\b(count|number of)\b`), "count"},
}

// Extract runs the rule pass over a query. It never fails; an empty
// Extraction simply matches no intent downstream.
func Extract(query string) Extraction {
	var ex Extraction

	for _, vp := range verbPatterns {
		if vp.re.MatchString(query) {
			ex.Verb = vp.verb
			break
		}
	}

	for _, mp := range measurePatterns {
		if mp.re.MatchString(query) {
			ex.Measure = mp.measure
			break
		}
	}

	// Split feature classes around the proximity keyword: classes before it
	// are the subject of the query, the first class after it is the
	// reference the subject is measured against.
	proxIdx := -1
	if loc := proximityRe.FindStringIndex(query); loc != nil {
		ex.Proximity = true
		proxIdx = loc[0]
	}

	seen := make(map[string]bool)
	for _, fc := range featureClasses {
		loc := fc.re.FindStringIndex(query)
		if loc == nil || seen[fc.dataset] {
			continue
		}
		seen[fc.dataset] = true
		if proxIdx >= 0 && loc[0] > proxIdx {
			if ex.Reference == "" {
				ex.Reference = fc.dataset
			}
		} else {
			ex.Subjects = append(ex.Subjects, fc.dataset)
		}
	}

	for _, ds := range auxDatasets {
		if ds.re.MatchString(query) && !seen[ds.dataset] {
			seen[ds.dataset] = true
			ex.Datasets = append(ex.Datasets, ds.dataset)
		}
	}

	for _, place := range gazetteer {
		if strings.Contains(query, place) {
			ex.Location = place
			break
		}
	}
	if ex.Location == "" {
		if m := locationRe.FindStringSubmatch(query); m != nil {
			ex.Location = m[1]
		}
	}

	if m := distanceRe.FindStringSubmatch(query); m != nil {
		value, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			ex.DistanceM = toMeters(value, m[2])
		}
	}

	if m := groupByRe.FindStringSubmatch(query); m != nil {
		ex.GroupBy = strings.ToLower(m[1]) + "s"
	}

	if m := schemeRe.FindStringSubmatch(query); m != nil {
		ex.Scheme = strings.ReplaceAll(strings.ToLower(m[1]), " ", "_")
	}

	return ex
}

func toMeters(value float64, unit string) float64 {
	switch strings.ToLower(unit)[0] {
	case 'k':
		return value * 1000
	case 'm':
		if strings.HasPrefix(strings.ToLower(unit), "mi") {
			return value * 1609.344
		}
		return value
	}
	return value
}
