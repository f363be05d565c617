// Package pkguid provides identifier generators.
//
// Callers depend on StringID or NumberID rather than a concrete strategy:
//   - UUID (v7) strings name uploaded blobs and bus events.
//   - Snowflake numbers tag pipeline runs and sort by creation time.
package pkguid
