// Package arxharvest extracts bibliographic records from arXiv search
// listings. It pages through a result set, parses each listing page into
// structured records, derives keywords for each abstract with an embedding
// model, and persists the accumulated records as a single JSON document.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, gemini/, http/).
package arxharvest
