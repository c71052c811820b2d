// Package storage persists the reference library as JSONL (source of truth)
// with a SQLite cache for lookup and full-text search.
package storage

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/scribehub/scribe/internal/reference"
)

// MaxJSONLLineCapacity is the maximum buffer size for reading JSONL lines (1MB per line).
const MaxJSONLLineCapacity = 1024 * 1024

// ReadAll reads all references from a JSONL file.
func ReadAll(path string) ([]reference.Reference, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // Missing file is an empty library
		}
		return nil, fmt.Errorf("opening refs file: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode reads JSONL references from r. Blank lines are skipped.
func Decode(r io.Reader) ([]reference.Reference, error) {
	var refs []reference.Reference
	scanner := bufio.NewScanner(r)

	// Increase buffer size for long lines
	buf := make([]byte, MaxJSONLLineCapacity)
	scanner.Buffer(buf, MaxJSONLLineCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var ref reference.Reference
		if err := json.Unmarshal(line, &ref); err != nil {
			return nil, fmt.Errorf("parsing line %d: %w", lineNum, err)
		}
		refs = append(refs, ref)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading refs: %w", err)
	}

	return refs, nil
}

// Append adds a reference to the end of a JSONL file.
func Append(path string, ref reference.Reference) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening refs file for append: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(ref)
	if err != nil {
		return fmt.Errorf("encoding reference: %w", err)
	}

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing reference: %w", err)
	}

	return nil
}

// WriteAll writes all references to a JSONL file, replacing existing content.
// The file is written beside the target and renamed into place.
func WriteAll(path string, refs []reference.Reference) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("creating refs file: %w", err)
	}

	w := bufio.NewWriter(f)
	for i, ref := range refs {
		data, err := json.Marshal(ref)
		if err != nil {
			f.Close()
			os.Remove(tmp)
			return fmt.Errorf("encoding reference %d: %w", i, err)
		}
		w.Write(data)
		w.WriteByte('\n')
	}

	if err := w.Flush(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("writing refs file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("closing refs file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing refs file: %w", err)
	}

	return nil
}

// FindByDOI searches for a reference by DOI. DOIs compare case-insensitively.
func FindByDOI(refs []reference.Reference, doi string) (int, bool) {
	doi = strings.TrimSpace(doi)
	if doi == "" {
		return -1, false
	}
	for i, ref := range refs {
		if strings.EqualFold(ref.DOI, doi) {
			return i, true
		}
	}
	return -1, false
}

// FindByID searches for a reference by ID.
func FindByID(refs []reference.Reference, id string) (int, bool) {
	for i, ref := range refs {
		if ref.ID == id {
			return i, true
		}
	}
	return -1, false
}

// FindBySourceID searches for a reference by import source type and ID.
func FindBySourceID(refs []reference.Reference, sourceType, sourceID string) (int, bool) {
	if sourceID == "" {
		return -1, false
	}
	for i, ref := range refs {
		if ref.Source.Type == sourceType && ref.Source.ID == sourceID {
			return i, true
		}
	}
	return -1, false
}

// GenerateUniqueID returns an ID that doesn't conflict with existing references.
// If the base ID exists, appends -2, -3, etc.
func GenerateUniqueID(refs []reference.Reference, baseID string) string {
	if _, found := FindByID(refs, baseID); !found {
		return baseID
	}

	// Start at 2: baseID is taken, so first duplicate becomes baseID-2
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s-%d", baseID, i)
		if _, found := FindByID(refs, candidate); !found {
			return candidate
		}
	}
}
