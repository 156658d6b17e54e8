// Package dataset provides the CSV table model shared by the matching
// features.
//
// A Dataset keeps the original header order and every row as a header->value
// map, so columns that the matcher does not understand survive a round trip
// unchanged. Column detection maps whatever headers a source file uses onto
// the canonical track/artist/album trio, first by exact lowercased match and
// then by substring.
package dataset
