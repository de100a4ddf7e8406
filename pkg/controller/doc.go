// Package controller owns the state of one lead form: the typed values, the
// per-field errors and the single outbound submission. Front ends drive it
// through Change and Submit and redraw from Snapshot, either after each call
// or from a Listen callback.
package controller
