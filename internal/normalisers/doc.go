// Package normalisers provides implementations of the ChapterNormaliser
// interface. Each normaliser knows how to turn one input JSON shape into
// domain chapters and index entries.
package normalisers
