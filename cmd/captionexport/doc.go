// Package main hosts the captionexport CLI entrypoint and command graph.
//
// The Cobra command tree loads a project file, resolves configuration and
// flag overrides, and hands the document to the export pipeline. Output
// naming, logging setup, and status rendering live here so the internal
// packages stay free of terminal concerns.
package main
