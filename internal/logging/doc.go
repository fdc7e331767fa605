// Package logging provides concrete implementations of the cosmosload.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: Writes progress lines to a writer (stdout by default), optionally styled
//   - NullLogger: Discards all messages (useful for testing)
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging
