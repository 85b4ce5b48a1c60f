// Package project provides an in-memory timeline document and loaders for the
// project file formats captionexport reads.
//
// Tree-shaped projects are read from JSON, YAML, or TOML; relational projects
// are read from a SQLite database opened in query-only mode. Every loader
// decodes into the raw file schema first and converts that into the Project
// model, which implements timeline.Document. Nothing returned retains the
// underlying file or database handle.
//
// The builder methods (New, AddTrack, AddEvent, ...) exist for tests and for
// callers that assemble documents programmatically.
package project
