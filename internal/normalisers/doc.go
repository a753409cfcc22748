// Package normalisers holds the converters that turn tracker exports into
// normalised records.
//
//   - jira: Jira XML exports into domain.Issue values
//   - html: markup in issue text into readable plain text
package normalisers
