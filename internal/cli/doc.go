// Package cli implements the classic terminal front end: the y/n prompts,
// the spinner progress reporter, the summary table and the closing banner.
//
// # Naming Conventions
//
//   - Display* functions write formatted output to an [io.Writer].
//   - Format* functions return a formatted string without performing I/O.
//   - Ask* functions read an answer from the user.
package cli
