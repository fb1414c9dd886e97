package executor

import (
	"context"
	"errors"
	"fmt"
)

// ErrDatasetNotFound is returned when a step input cannot be resolved to any
// known dataset.
var ErrDatasetNotFound = errors.New("dataset not found")

// Handle points at resolvable data. The executor only threads handles
// between steps; fetching and reading them is the runner's business.
type Handle struct {
	Ref string `json:"ref"`
	URI string `json:"uri"`
}

// Resolver maps dataset references from workflow steps to concrete handles.
type Resolver interface {
	Resolve(ctx context.Context, ref string) (Handle, error)
}

// StaticResolver serves handles from a fixed name->URI catalog built at
// startup. Read-only afterwards, so it is safe for concurrent executions.
type StaticResolver struct {
	catalog map[string]string
}

func NewStaticResolver(catalog map[string]string) *StaticResolver {
	m := make(map[string]string, len(catalog))
	for k, v := range catalog {
		m[k] = v
	}
	return &StaticResolver{catalog: m}
}

func (r *StaticResolver) Resolve(ctx context.Context, ref string) (Handle, error) {
	uri, ok := r.catalog[ref]
	if !ok {
		return Handle{}, fmt.Errorf("%w: %s", ErrDatasetNotFound, ref)
	}
	return Handle{Ref: ref, URI: uri}, nil
}

// DefaultCatalog maps the builtin feature classes to their OpenStreetMap
// Overpass queries. Deployments extend or override it from config.
func DefaultCatalog() map[string]string {
	return map[string]string{
		"schools":          "osm://amenity=school",
		"hospitals":        "osm://amenity=hospital",
		"parks":            "osm://leisure=park",
		"roads":            "osm://highway=*",
		"buildings":        "osm://building=*",
		"rivers":           "osm://waterway=river",
		"forests":          "osm://landuse=forest",
		"metro_stations":   "osm://railway=station&station=subway",
		"railway_stations": "osm://railway=station",
		"cities":           "osm://place=city",
		"villages":         "osm://place=village",
		"districts":        "osm://boundary=administrative&admin_level=5",
	}
}
