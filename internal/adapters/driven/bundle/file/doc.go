// Package file provides a BundleStore that writes bundle outputs as JSON files.
//
// Files are written through a temporary file and renamed into place, so an
// interrupted run leaves the previous output intact. With compression enabled
// a zstd-compressed copy is written next to each JSON file.
package file
