// Package extraction talks to the remote solution extraction service. It
// turns lead form data into the service's Portuguese keyed JSON payload,
// performs a single POST per call and returns the markdown content of a
// successful answer.
package extraction
