package section

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/google/uuid"
	"github.com/hashicorp/go-version"

	"github.com/arloliu/sigtab/errs"
)

var supportedVersions = mustConstraint(SupportedVersions)

func mustConstraint(c string) version.Constraints {
	cs, err := version.NewConstraint(c)
	if err != nil {
		panic(err)
	}

	return cs
}

// SchemaMetadata is the parsed schema-level metadata of a signal table.
type SchemaMetadata struct {
	// Version is the table layout version.
	Version *version.Version
	// Software names the writer of the file, if recorded.
	Software string
	// FileIdentifier identifies the file the table belongs to; uuid.Nil when absent.
	FileIdentifier uuid.UUID
}

// ParseSchemaMetadata parses and validates schema metadata.
//
// Returns an error wrapping errs.ErrSchema when the version is missing, malformed or
// outside SupportedVersions, or when the file identifier is not a UUID.
func ParseSchemaMetadata(md arrow.Metadata) (SchemaMetadata, error) {
	var meta SchemaMetadata

	raw, ok := lookup(md, MetaKeyVersion)
	if !ok {
		return meta, fmt.Errorf("%w: key %s", errs.ErrMissingVersion, MetaKeyVersion)
	}

	v, err := version.NewVersion(raw)
	if err != nil {
		return meta, fmt.Errorf("%w: %q: %w", errs.ErrUnsupportedVersion, raw, err)
	}
	if !supportedVersions.Check(v) {
		return meta, fmt.Errorf("%w: %s does not satisfy %s", errs.ErrUnsupportedVersion, v, SupportedVersions)
	}
	meta.Version = v

	meta.Software, _ = lookup(md, MetaKeySoftware)

	if id, ok := lookup(md, MetaKeyFileIdentifier); ok && id != "" {
		meta.FileIdentifier, err = uuid.Parse(id)
		if err != nil {
			return meta, fmt.Errorf("%w: %q: %w", errs.ErrInvalidFileIdentity, id, err)
		}
	}

	return meta, nil
}

// ToArrow converts the metadata back to Arrow schema metadata.
//
// A nil Version is written as CurrentVersion.
func (m SchemaMetadata) ToArrow() arrow.Metadata {
	ver := CurrentVersion
	if m.Version != nil {
		ver = m.Version.String()
	}

	keys := []string{MetaKeyVersion}
	values := []string{ver}

	if m.Software != "" {
		keys = append(keys, MetaKeySoftware)
		values = append(values, m.Software)
	}
	if m.FileIdentifier != uuid.Nil {
		keys = append(keys, MetaKeyFileIdentifier)
		values = append(values, m.FileIdentifier.String())
	}

	return arrow.NewMetadata(keys, values)
}

func lookup(md arrow.Metadata, key string) (string, bool) {
	idx := md.FindKey(key)
	if idx < 0 {
		return "", false
	}

	return md.Values()[idx], true
}
