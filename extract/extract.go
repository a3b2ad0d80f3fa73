// Package extract obtains the raw embedded schema JSON for a local parquet
// sample file, either by scraping the output of an external metadata tool or
// by reading the file footer directly. The rest of the pipeline only sees
// the Extractor interface and the returned JSON blob.
package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrSchemaNotFound reports that no embedded schema marker was present in
// the metadata of a sample file.
var ErrSchemaNotFound = errors.New("no embedded schema found")

// schemaMarkers are the metadata keys under which the writing tools embed
// the schema, newest convention first.
var schemaMarkers = []string{"parquet.avro.schema", "avro.schema"}

// Extractor returns the raw schema document for one local parquet file.
type Extractor interface {
	Extract(ctx context.Context, path string) ([]byte, error)
}

// findRawSchema locates one of the known marker keys in tool output and
// returns the brace-delimited JSON object that follows it.
func findRawSchema(output []byte) ([]byte, error) {
	for _, marker := range schemaMarkers {
		idx := bytes.Index(output, []byte(marker))
		if idx < 0 {
			continue
		}

		rest := output[idx+len(marker):]
		start := bytes.IndexByte(rest, '{')
		if start < 0 {
			continue
		}

		// The decoder consumes exactly one JSON value, whatever follows.
		var raw json.RawMessage
		if err := json.NewDecoder(bytes.NewReader(rest[start:])).Decode(&raw); err != nil {
			return nil, fmt.Errorf("decoding schema after %s marker: %w", marker, err)
		}
		return raw, nil
	}

	return nil, ErrSchemaNotFound
}
