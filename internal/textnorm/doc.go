// Package textnorm cleans text coming back from the recognition engine.
//
// # Body Text
//
// Normalize prepares description text for the output file:
//   - CRLF and CR line endings become LF
//   - runs of whitespace inside a line collapse to one space
//   - leading symbols (anything that is not a letter or digit) are stripped
//   - lines left empty are dropped, the rest keep their order
//
// # Filename Stems
//
// Sanitize turns a title into a filename stem: uppercased, restricted to
// letters, marks, digits and underscores, with separator runs joined by a
// single underscore and no underscore at either end. A title with nothing
// usable yields Placeholder.
//
// Both functions are idempotent, so re-running the tool over its own output
// produces the same names and text.
package textnorm
