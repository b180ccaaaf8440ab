// Package ports defines the interfaces that connect the i2p core to its
// infrastructure adapters.
//
// # Port Interfaces
//
//   - [SourceFetcher]: Retrieves and parses the remote source document
//   - [PacketStore]: Read side of the packet registry
//   - [LookupRecorder]: Receives lookup outcomes for metrics
//   - [HTTPClient]: HTTP request abstraction for dependency injection
//
// The core packages (registry, lookup, app) depend only on these
// interfaces. Adapters (internal/adapters, internal/metrics) implement them.
package ports
