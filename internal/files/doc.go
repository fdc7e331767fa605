// Package files groups file access used by the loader.
//
// Sub-packages:
//   - filesystem: filesystem abstraction with OS and in-memory implementations
package files
