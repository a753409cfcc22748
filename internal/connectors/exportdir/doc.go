// Package exportdir watches a drop folder for tracker XML exports.
//
// Editors and download managers often write a file in several steps, so
// changes are reported only after a file has been quiet for a settle period.
package exportdir
