package decoder

// Flatten produces a FlatRecord from a Record by merging every nested Record
// field into the top level, depth-first. Nested field names overwrite
// same-named sibling fields (last merge wins); scalar fields are copied
// as-is. No cycle detection is performed: source formats are acyclic.
func Flatten(rec Record) FlatRecord {
	flat := make(FlatRecord, len(rec))
	mergeInto(flat, rec)
	return flat
}

// FlattenAll flattens a sequence of Records in order.
func FlattenAll(recs []Record) []FlatRecord {
	flat := make([]FlatRecord, len(recs))
	for i, rec := range recs {
		flat[i] = Flatten(rec)
	}
	return flat
}

func mergeInto(dst FlatRecord, rec Record) {
	for name, value := range rec {
		switch nested := value.(type) {
		case Record:
			if nested == nil {
				dst[name] = nil
				continue
			}
			mergeInto(dst, nested)
		case map[string]any:
			if nested == nil {
				dst[name] = nil
				continue
			}
			mergeInto(dst, Record(nested))
		default:
			dst[name] = value
		}
	}
}
