// Package html converts the HTML fragments found in issue descriptions and
// comments into readable plain text for terminal output.
package html
