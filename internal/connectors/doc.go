// Package connectors provides implementations of the ChapterSource interface.
// Each connector knows how to discover and read chapter files from one
// kind of location. The filesystem connector is the only one today.
package connectors
