// Package cli provides the cobra command tree for chapter-bundler.
//
// The root command runs a full bundle. Subcommands rebuild only the index,
// list the discovered chapter files and manage settings.
package cli
