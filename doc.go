// Package edago provides the building blocks behind an introductory
// machine-learning course's Go walkthroughs: acquiring and caching the
// California housing census dataset, exploratory data analysis, and
// categorical-feature encoding demonstrations.
//
// # Packages
//
//   - dataset: archive fetch-and-cache, CSV parsing into named-column
//     tables, the California housing loader and a synthetic sample
//     generator
//   - stats: descriptive statistics and correlation, delegated to gonum
//   - preprocessing: ordinal and one-hot categorical encoders plus a
//     standard scaler
//   - cluster: k-means clustering
//   - metrics: clustering quality measures
//   - visualize: histogram, scatter and heatmap rendering via gonum/plot
//
// # Quick Start
//
// Load the housing dataset and summarize it:
//
//	cfg := dataset.DefaultConfig()
//	table, err := dataset.LoadCaliforniaHousing(context.Background(), cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	summaries, err := stats.Describe(table)
//
// The runnable walkthroughs live under examples/: examples/eda covers the
// analysis session end to end, examples/encoding compares ordinal and
// one-hot encoding feeding the same k-means clustering.
package edago
