package decoder

import (
	"bytes"
	"fmt"
	"io"
	"os"

	avro "github.com/hamba/avro/v2"
	"github.com/hamba/avro/v2/ocf"
	"github.com/ohler55/ojg/oj"
)

// DefaultRowBatchSize is the number of decoded rows per EventRows batch.
const DefaultRowBatchSize = 1024

// DecodeAvroStream opens an Avro object-container file and decodes it
// block-by-block on a background goroutine, emitting typed events on the
// returned channel: EventSchema first, then EventRows batches, then exactly
// one terminal EventComplete or EventError. The channel is closed after the
// terminal event.
func DecodeAvroStream(filePath string, batchSize int) <-chan Event {
	if batchSize <= 0 {
		batchSize = DefaultRowBatchSize
	}

	events := make(chan Event, 4)
	go func() {
		defer close(events)

		fail := func(err error) {
			events <- Event{Type: EventError, Err: err}
		}

		// Compressed containers are decompressed into memory first; plain
		// files stream straight from disk.
		var src io.Reader
		if _, compression := DetectKindAndCompression(filePath); compression != CompressionNone {
			data, _, err := ReadSource(filePath)
			if err != nil {
				fail(err)
				return
			}
			src = bytes.NewReader(data)
		} else {
			f, err := os.Open(filePath)
			if err != nil {
				fail(err)
				return
			}
			defer f.Close()
			src = f
		}

		dec, err := ocf.NewDecoder(src)
		if err != nil {
			fail(fmt.Errorf("failed to open avro container: %w", err))
			return
		}

		schema, err := avroSchemaFromMetadata(dec.Metadata())
		if err != nil {
			fail(err)
			return
		}
		events <- Event{Type: EventSchema, Schema: schema}

		var all []Record
		batch := make([]Record, 0, batchSize)
		for dec.HasNext() {
			var value any
			if err := dec.Decode(&value); err != nil {
				fail(fmt.Errorf("failed to decode avro row %d: %w", len(all), err))
				return
			}
			rec := toRecord(value)
			all = append(all, rec)
			batch = append(batch, rec)
			if len(batch) >= batchSize {
				events <- Event{Type: EventRows, Rows: batch}
				batch = make([]Record, 0, batchSize)
			}
		}
		if err := dec.Error(); err != nil {
			fail(fmt.Errorf("avro decode stream failed: %w", err))
			return
		}
		if len(batch) > 0 {
			events <- Event{Type: EventRows, Rows: batch}
		}

		events <- Event{
			Type:   EventComplete,
			Schema: schema,
			Flat:   FlattenAll(all),
		}
	}()

	return events
}

// avroSchemaFromMetadata extracts and validates the writer schema from the
// container metadata. Raw carries the declared schema JSON, parsed, so it
// passes through to consumers unmodified.
func avroSchemaFromMetadata(meta map[string][]byte) (*Schema, error) {
	raw, ok := meta["avro.schema"]
	if !ok {
		return nil, fmt.Errorf("avro container has no schema metadata")
	}

	parsed, err := avro.Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse avro schema: %w", err)
	}

	schema := &Schema{}
	if rawJSON, err := oj.Parse(raw); err == nil {
		schema.Raw = rawJSON
	} else {
		schema.Raw = string(raw)
	}

	if rs, ok := parsed.(*avro.RecordSchema); ok {
		for _, fld := range rs.Fields() {
			schema.Fields = append(schema.Fields, Field{
				Name: fld.Name(),
				Type: DisplayTypeName(avroTypeName(fld.Type())),
			})
		}
	}

	return schema, nil
}

// avroTypeName renders a field schema as a plain type name. Unions resolve
// to their first non-null branch, matching how nullable fields display.
func avroTypeName(s avro.Schema) string {
	if union, ok := s.(*avro.UnionSchema); ok {
		for _, branch := range union.Types() {
			if branch.Type() != avro.Null {
				return avroTypeName(branch)
			}
		}
		return string(avro.Null)
	}
	return string(s.Type())
}

// toRecord shapes one decoded avro value as a Record. Non-record top-level
// values (valid in avro containers) are wrapped under a single field.
func toRecord(value any) Record {
	if m, ok := value.(map[string]any); ok {
		return Record(m)
	}
	return Record{"value": value}
}
