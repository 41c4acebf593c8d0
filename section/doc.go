// Package section describes the physical layout of a signal table.
//
// A signal table is an Arrow IPC file whose record batches share the schema below:
//
//	┌──────────┬────────────────────────────────────┬────────────────────────────┐
//	│ Column   │ Arrow type                         │ Notes                      │
//	├──────────┼────────────────────────────────────┼────────────────────────────┤
//	│ read_id  │ fixed_size_binary(16)              │ UUID of the owning read    │
//	│ signal   │ large_list<int16> | list<int16>    │ uncompressed tables        │
//	│ signal   │ large_binary | binary              │ compressed tables          │
//	│ samples  │ uint32                             │ samples in the row         │
//	└──────────┴────────────────────────────────────┴────────────────────────────┘
//
// The samples column always holds the decompressed sample count, whichever storage
// mode the table uses. Compressed tables name their byte codec in the "compression"
// metadata entry of the signal field (zstd when absent).
//
// # Schema Metadata
//
//	Key                       | Required | Description
//	--------------------------|----------|---------------------------------------
//	MINKNOW:pod5_version      | yes      | semantic version of the table layout
//	MINKNOW:software          | no       | software that wrote the file
//	MINKNOW:file_identifier   | no       | UUID shared by all tables of a file
//
// ParseFieldLocations resolves the column positions once per table; the resulting
// FieldLocations is shared by every batch of the table.
package section
