// Package log defines standard attribute keys for dataset and analysis
// operations.
//
// Using these keys consistently makes the JSON log output of the example
// programs filterable by stage (acquisition, parsing, encoding, clustering,
// rendering) without guessing at ad hoc field names.

package log

// Dataset acquisition context.
const (
	// URLKey is the remote archive location being fetched.
	URLKey = "dataset.url"

	// CachePathKey is the local archive cache file.
	CachePathKey = "dataset.cache_path"

	// TablePathKey is the extracted tabular file.
	TablePathKey = "dataset.table_path"

	// CacheHitKey reports whether the fetch was skipped because the cache
	// file already existed.
	CacheHitKey = "dataset.cache_hit"
)

// Data shape context.
const (
	// RowsKey is the number of rows in a table or matrix.
	RowsKey = "data.rows"

	// ColumnsKey is the number of columns in a table or matrix.
	ColumnsKey = "data.columns"

	// ColumnKey names a single column an operation works on.
	ColumnKey = "data.column"
)

// Estimator context.
const (
	// EstimatorKey identifies the estimator type.
	// Examples: "OneHotEncoder", "OrdinalEncoder", "KMeans"
	EstimatorKey = "estimator.name"

	// OperationKey is the estimator operation being performed.
	// Standard values: "fit", "transform", "fit_transform", "predict"
	OperationKey = "estimator.operation"

	// ClustersKey is the number of clusters requested from k-means.
	ClustersKey = "cluster.k"

	// InertiaKey is the within-cluster sum of squared errors.
	InertiaKey = "cluster.inertia"

	// SilhouetteKey is the mean silhouette coefficient of a labeling.
	SilhouetteKey = "cluster.silhouette"
)

// Rendering context.
const (
	// PlotPathKey is the file a plot was written to.
	PlotPathKey = "plot.path"

	// PlotCountKey is the number of plots in a batch render.
	PlotCountKey = "plot.count"
)

// Standard operation values.
const (
	OperationFit          = "fit"
	OperationTransform    = "transform"
	OperationFitTransform = "fit_transform"
	OperationPredict      = "predict"
)
