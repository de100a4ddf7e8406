// Package render holds the renderer-independent pieces shared by the HTML and
// terminal front ends: the message catalog and translation helpers, hidden
// form inputs, and the mapping of validation output into displayable errors.
package render
