package logger

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// messager describes an error that can report its own message without the
// chain. This matches the Message() method provided by zerr.Error
// (go.trai.ch/zerr v0.3.0+). If zerr's API changes, errors gracefully fall
// back to standard error handling.
type messager interface {
	Message() string
}

// metadataer describes an error that carries structured metadata, matching
// the Metadata() method of zerr.Error.
type metadataer interface {
	Metadata() map[string]any
}

// ErrorEntry is one level of an error chain prepared for rendering.
type ErrorEntry struct {
	Message  string
	Metadata map[string]any
}

// collectErrorEntries walks an error chain and collapses it into renderable
// entries. Successive zerr layers that repeat the same message (as produced
// by zerr.With) merge into a single entry with their metadata combined.
// A non-zerr error terminates the walk with its full Error() text.
func collectErrorEntries(err error) []ErrorEntry {
	var entries []ErrorEntry

	current := err
	for current != nil {
		m, ok := current.(messager)
		if !ok {
			entries = append(entries, ErrorEntry{Message: current.Error()})
			break
		}

		msg := m.Message()

		meta := map[string]any{}
		if md, ok := current.(metadataer); ok {
			for k, v := range md.Metadata() {
				meta[k] = v
			}
		}

		if n := len(entries); n > 0 && entries[n-1].Message == msg {
			for k, v := range meta {
				if _, exists := entries[n-1].Metadata[k]; !exists {
					entries[n-1].Metadata[k] = v
				}
			}
		} else {
			entries = append(entries, ErrorEntry{Message: msg, Metadata: meta})
		}

		current = errors.Unwrap(current)
	}

	return entries
}

// formatErrorEntries renders collected entries hierarchically. The first
// entry becomes the main error line, every further entry a cause. Metadata
// renders as sorted key/value lines under its entry.
func formatErrorEntries(entries []ErrorEntry) string {
	if len(entries) == 0 {
		return ""
	}

	var lines []string

	for i, entry := range entries {
		msgLines := strings.Split(entry.Message, "\n")

		if i == 0 {
			lines = append(lines, "Error: "+msgLines[0])
			for _, line := range msgLines[1:] {
				lines = append(lines, "       "+line)
			}
			lines = append(lines, metadataLines(entry.Metadata, "       ")...)

			continue
		}

		if i == 1 {
			lines = append(lines, "", "  Caused by:")
		}

		lines = append(lines, "    → "+msgLines[0])
		for _, line := range msgLines[1:] {
			lines = append(lines, "      "+line)
		}
		lines = append(lines, metadataLines(entry.Metadata, "      ")...)
	}

	return strings.Join(lines, "\n")
}

func metadataLines(metadata map[string]any, indent string) []string {
	if len(metadata) == 0 {
		return nil
	}

	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s%s: %v", indent, k, metadata[k]))
	}

	return lines
}
