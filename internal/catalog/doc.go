// Package catalog stores rendered saved queries in SQLite.
//
// Every save of a named query appends a revision. A revision records the
// rendered JQL, the search fields, a content hash and the import batch it
// arrived in. Saving content identical to the latest revision is a no-op,
// so re-importing an unchanged definition directory adds nothing.
//
// # Content hash
//
//	SHA256("jqlkit/query/v1" + 0x00 + canonical)
//
// canonical is the JSON array [jql, fields, description] with every string
// NFC-normalised, so visually identical text typed on different platforms
// hashes the same.
//
// The folding applies to the hash only. A save whose text differs from the
// latest revision only in Unicode normalisation is reported unchanged, and
// the stored jql keeps the bytes of the revision that first recorded it.
//
// # Ordering
//
// List orders by name using COLLATE BINARY; History orders by revision.
// Neither depends on insertion order or locale.
//
// # Concurrency
//
// The database runs in WAL mode with a single connection. A Store is safe
// for concurrent use; writes are serialised by SQLite.
package catalog
