package decoder

// EventType identifies a progressive decode event.
type EventType int

const (
	// EventSchema is emitted exactly once, before any row event, as soon as
	// the schema is known. This lets the caller render progressively.
	EventSchema EventType = iota
	// EventRows is emitted for each decoded batch of rows.
	EventRows
	// EventComplete is the terminal success event, emitted exactly once,
	// last, carrying the complete flattened row sequence and the schema.
	EventComplete
	// EventError is the terminal failure event. Decode errors are reported
	// explicitly rather than dropped; no further events follow.
	EventError
)

// String returns the string representation of EventType
func (t EventType) String() string {
	switch t {
	case EventSchema:
		return "Schema"
	case EventRows:
		return "Rows"
	case EventComplete:
		return "Complete"
	case EventError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Event is one typed event of a progressive decode stream.
type Event struct {
	Type   EventType
	Schema *Schema      // EventSchema and EventComplete
	Rows   []Record     // EventRows: the raw, possibly nested batch
	Flat   []FlatRecord // EventComplete: the full flattened sequence
	Err    error        // EventError
}
