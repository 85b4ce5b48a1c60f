// Package report turns caption records into the timecoded text report.
//
// Records are stably sorted by frame position, each rendered as
// "<timecode> <text>" with line breaks flattened, and encoded in full before
// the target is touched. The file is then replaced atomically under an
// advisory lock, so a failed write never leaves a partial report behind.
package report
