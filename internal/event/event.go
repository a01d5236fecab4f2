package event

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	TypeTextChanged    // Fired when the session text or entities change
	TypeFormatToggled  // Fired after a formatting toggle was applied
	TypeHistoryApplied // Fired after an undo or redo step
	TypeParseFailed    // Fired when markdown input fell back to plain text
)

func (t Type) String() string {
	switch t {
	case TypeTextChanged:
		return "TextChanged"
	case TypeFormatToggled:
		return "FormatToggled"
	case TypeHistoryApplied:
		return "HistoryApplied"
	case TypeParseFailed:
		return "ParseFailed"
	}
	return "Unknown"
}

// Event is the structure passed through the event bus.
type Event struct {
	Type Type        // The kind of event
	Data interface{} // Payload carrying event-specific data
}

// TextChangedData describes an edit. Offset, Removed and Inserted are UTF-16
// code units; a wholesale replacement reports the full old and new lengths.
type TextChangedData struct {
	SessionID string
	Offset    int
	Removed   int
	Inserted  int
}

// FormatToggledData carries the requested entity and whether it was added.
type FormatToggledData struct {
	SessionID string
	Kind      string // Entity type name, e.g. "bold"
	Offset    int
	Length    int
	Added     bool
}

// HistoryAppliedData reports an undo or redo step and the restored selection.
type HistoryAppliedData struct {
	SessionID string
	Redo      bool
	Offset    int
	Length    int
}

// ParseFailedData holds the reason markdown input was taken literally.
type ParseFailedData struct {
	SessionID string
	Message   string
	Offset    int
}
