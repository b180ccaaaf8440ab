// Package domain contains the core entities and value objects for i2p.
//
// It has no dependencies on infrastructure concerns (HTTP, file system,
// logging) and holds only the types shared by the registry, the lookup
// service and the adapters.
//
// # Entities
//
//   - [Direction]: which way a packet travels (client-bound or server-bound)
//   - [Packet]: one (id, name) record from the source document
//   - [SourceDocument]: the parsed remote payload, one packet list per direction
//   - [Entry] and [Listing]: what enumeration hands back to callers
package domain
