// Package model defines the lead form vocabulary shared by the validator, the
// submission controller and the renderers: the nine field keys, the FormData
// values a visitor types in, the FormErrors produced by validation, and the
// SubmissionState tracking the single outbound request.
//
// Field keys are the stable identifiers used in HTML input names, message
// catalog keys ("fields.<key>.label") and FormErrors. The server-side naming
// scheme of the extraction service lives in pkg/extraction, not here.
package model
