package registry

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jacksparrot/jsp/internal/messages"
)

const (
	// RecordSeparator separates manifest records.
	RecordSeparator = ";"
	// FieldSeparator separates fields inside a record.
	FieldSeparator = ","

	fieldsPerRecord = 3
)

// ErrFormat is matched by every *FormatError via errors.Is.
var ErrFormat = errors.New(messages.RegistryFormatError)

// FormatError reports a malformed manifest record.
// Record is the zero-based index of the offending record in the raw manifest.
type FormatError struct {
	Record int
	Raw    string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf(messages.RegistryFormatErrorFmt, e.Record, e.Raw, e.Reason)
}

// Is reports whether target is ErrFormat.
func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

// ParseManifest parses "name,url,revision;name,url,revision" text into descriptors.
//
// Whitespace around records and fields is ignored and blank records are skipped,
// so a trailing separator is accepted. Any other malformed record rejects the whole
// manifest with a *FormatError. Delimiters cannot be escaped.
//
// Repeated names resolve last-write-wins: the surviving entry keeps the position of
// the first occurrence and the fields of the last one.
func ParseManifest(raw string) ([]PackageDescriptor, error) {
	descriptors := make([]PackageDescriptor, 0)
	positions := make(map[string]int)
	for idx, record := range strings.Split(raw, RecordSeparator) {
		record = strings.TrimSpace(record)
		if record == "" {
			continue
		}
		descriptor, err := parseRecord(idx, record)
		if err != nil {
			return nil, err
		}
		if pos, ok := positions[descriptor.Name]; ok {
			descriptors[pos] = descriptor
			continue
		}
		positions[descriptor.Name] = len(descriptors)
		descriptors = append(descriptors, descriptor)
	}
	return descriptors, nil
}

func parseRecord(idx int, record string) (PackageDescriptor, error) {
	fields := strings.Split(record, FieldSeparator)
	if len(fields) != fieldsPerRecord {
		return PackageDescriptor{}, &FormatError{
			Record: idx,
			Raw:    record,
			Reason: fmt.Sprintf(messages.RegistryFieldCountFmt, fieldsPerRecord, len(fields)),
		}
	}
	descriptor := PackageDescriptor{
		Name:           strings.TrimSpace(fields[0]),
		SourceURL:      strings.TrimSpace(fields[1]),
		RemoteRevision: strings.TrimSpace(fields[2]),
	}
	if descriptor.Name == "" {
		return PackageDescriptor{}, &FormatError{Record: idx, Raw: record, Reason: messages.RegistryEmptyName}
	}
	return descriptor, nil
}

// FormatManifest renders descriptors back into manifest text.
// It fails when a field contains a delimiter, since the format has no escaping.
func FormatManifest(descriptors []PackageDescriptor) (string, error) {
	records := make([]string, 0, len(descriptors))
	for _, d := range descriptors {
		for _, field := range []string{d.Name, d.SourceURL, d.RemoteRevision} {
			if strings.ContainsAny(field, RecordSeparator+FieldSeparator) {
				return "", fmt.Errorf(messages.RegistryFieldHasDelimiterFmt, field)
			}
		}
		if strings.TrimSpace(d.Name) == "" {
			return "", errors.New(messages.RegistryEmptyName)
		}
		records = append(records, strings.Join([]string{d.Name, d.SourceURL, d.RemoteRevision}, FieldSeparator))
	}
	return strings.Join(records, RecordSeparator), nil
}

// ValidateManifest reports whether raw parses as a manifest.
func ValidateManifest(raw string) error {
	_, err := ParseManifest(raw)
	return err
}
