package registry

// builtinCatalog covers the vector and raster operations the translator can
// emit out of the box. Deployments can extend or override it via LoadCatalog.
var builtinCatalog = []OperationTemplate{
	{
		Kind:        "spatial_filter",
		Description: "Keep only the features of a dataset that fall inside a named region.",
		Required: []Parameter{
			{Name: "input", Type: ParamDataset},
			{Name: "region", Type: ParamRegion},
		},
		Optional: []Parameter{
			{Name: "predicate", Type: ParamString, Description: "within (default) or intersects"},
		},
	},
	{
		Kind:        "buffer",
		Description: "Build buffer zones of a fixed radius around every feature.",
		Required: []Parameter{
			{Name: "input", Type: ParamDataset},
			{Name: "distance_m", Type: ParamNumber},
		},
		Optional: []Parameter{
			{Name: "dissolve", Type: ParamString},
		},
	},
	{
		Kind:        "spatial_join",
		Description: "Join two datasets on a spatial predicate.",
		Required: []Parameter{
			{Name: "left", Type: ParamDataset},
			{Name: "right", Type: ParamDataset},
		},
		Optional: []Parameter{
			{Name: "predicate", Type: ParamString, Description: "intersects (default), within, contains"},
		},
	},
	{
		Kind:        "attribute_filter",
		Description: "Filter features by an attribute expression.",
		Required: []Parameter{
			{Name: "input", Type: ParamDataset},
			{Name: "expression", Type: ParamString},
		},
	},
	{
		Kind:        "clip",
		Description: "Clip a dataset to the extent of a mask dataset.",
		Required: []Parameter{
			{Name: "input", Type: ParamDataset},
			{Name: "mask", Type: ParamDataset},
		},
	},
	{
		Kind:        "count",
		Description: "Count features, optionally grouped by an attribute.",
		Required: []Parameter{
			{Name: "input", Type: ParamDataset},
		},
		Optional: []Parameter{
			{Name: "group_by", Type: ParamString},
		},
	},
	{
		Kind:        "area",
		Description: "Compute feature areas.",
		Required: []Parameter{
			{Name: "input", Type: ParamDataset},
		},
		Optional: []Parameter{
			{Name: "unit", Type: ParamString, Description: "km2 (default) or m2"},
		},
	},
	{
		Kind:        "density",
		Description: "Compute a density surface of a value dataset over zone polygons.",
		Required: []Parameter{
			{Name: "input", Type: ParamDataset, Description: "value dataset, e.g. census points"},
			{Name: "zones", Type: ParamDataset, Description: "zone polygons, e.g. districts"},
		},
		Optional: []Parameter{
			{Name: "value_field", Type: ParamString},
		},
	},
	{
		Kind:        "aggregate",
		Description: "Aggregate an attribute with a statistic.",
		Required: []Parameter{
			{Name: "input", Type: ParamDataset},
			{Name: "statistic", Type: ParamString},
		},
		Optional: []Parameter{
			{Name: "group_by", Type: ParamString},
		},
	},
	{
		Kind:        "raster_classify",
		Description: "Classify a raster into discrete classes under a named scheme.",
		Required: []Parameter{
			{Name: "input", Type: ParamDataset},
			{Name: "scheme", Type: ParamString},
		},
		Optional: []Parameter{
			{Name: "classes", Type: ParamNumber},
		},
	},
}
