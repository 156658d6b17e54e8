// Package utils provides common utility functions for the track-matcher application.
// It includes lenient type conversion helpers used when reading loosely typed
// CSV cells, and other shared logic that doesn't fit into domain-specific packages.
package utils
