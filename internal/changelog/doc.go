// Package changelog implements the commit classification and release
// grouping engine for gitchangelog.
//
// This package implements:
//   - Commit subject parsing into a category and cleaned display text
//   - Git-flow aware merge commit reclassification
//   - Branch slug humanization
//   - Release tag filtering and ordering
//   - Pseudo-version synthesis for untagged history
//   - Partitioning of the classified commit sequence into release sections
//
// The engine is a pure transformation: an ordered commit feed plus an
// Options value in, an ordered section list out. It holds no state across
// calls, so independent builds may run concurrently with distinct inputs.
package changelog
