// Package genphen maintains entry-indexed genomic and phenomic datasets.
//
// A Dataset is a dense entry × feature matrix of float64 measurements over
// uniquely-named samples (entries) and columns (features), with per-cell
// missingness and an independent boolean usability mask. Two thin views share
// the container: Genomes (features are locus-allele descriptors holding
// allele frequencies) and Phenomes (features are trait names).
//
// # Quick Start
//
//	g := genphen.NewGenomes(100, 500)
//	// populate g.Entries, g.Features, g.Values, ... from a simulator or import
//
//	sub, _ := g.Slice([]int{0, 1, 2}, nil) // first three entries, all loci
//	merged, _ := sub.Merge(other, genphen.ConflictWeights{0.9, 0.1})
//
//	res, _ := distance.Pairwise(merged, distance.WithMetrics(distance.Euclidean, distance.Correlation))
//	corr := res.Matrices["features|correlation"]
//
// # Invariants
//
// Every transformation (Slice, Filter, Merge, AddCompositeFeature) validates
// its inputs, allocates fresh storage, and re-validates its output. A caller
// holding a reference to an input Dataset never observes changes from any
// derived operation.
//
// # Persistence
//
// Datasets are serialized through the snapshot package onto any blobstore
// backend (memory, local filesystem, S3, MinIO), compressed with zstd or lz4.
package genphen
