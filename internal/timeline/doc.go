// Package timeline defines the read-only view of a host project that caption
// extraction consumes.
//
// The host owns tracks, events, takes, media and generator effects. This
// package only describes the handful of queries extraction needs: iterate
// tracks and events, test whether something is video, resolve the active take,
// its media and generator, and look up a named typed parameter. Every lookup
// that can miss returns an explicit ok flag instead of a nil interface so that
// callers never have to guess whether absence is an error.
//
// Implementations must not expect callers to mutate anything they return.
package timeline
