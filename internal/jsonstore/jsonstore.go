// =============================================================================
// POS Billing - JSON Document Store
// =============================================================================
//
// A JSON document here is a file whose root is a list of records:
//
//   [
//     {"bill_id": "2501021", "grand_total": 6, ...},
//     {"bill_id": "2501022", "grand_total": 9, ...}
//   ]
//
// AppendRecord rewrites the whole document with one more record. The write is
// atomic, so a crash leaves either the old list or the new one.
//
// =============================================================================

package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ginjaninja78/pos-billing/pkg/utils"
)

// ErrMalformedDocument is returned when a document's root is not a list.
var ErrMalformedDocument = errors.New("malformed JSON document: root is not a list")

// ReadDocument reads the records of the document at path.
//
// RETURNS:
//   - The records in file order. A missing or empty file yields no records.
//   - ErrMalformedDocument (wrapped) if the root is not a list, or a parse
//     error if the file is not JSON.
func ReadDocument(path string) ([]map[string]any, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return []map[string]any{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(data) == 0 {
		return []map[string]any{}, nil
	}

	var root any
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	list, ok := root.([]any)
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, ErrMalformedDocument)
	}

	records := make([]map[string]any, 0, len(list))
	for i, entry := range list {
		record, ok := entry.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s: entry %d is not an object: %w", path, i, ErrMalformedDocument)
		}
		records = append(records, record)
	}
	return records, nil
}

// AppendRecord adds record to the end of the document at path, creating the
// document if needed.
func AppendRecord(path string, record map[string]any) error {
	records, err := ReadDocument(path)
	if err != nil {
		return err
	}
	records = append(records, record)

	return utils.WriteFileAtomic(path, func(w io.Writer) error {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(records)
	})
}
