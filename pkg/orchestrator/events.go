package orchestrator

// Event is an input processed by Handle.
type Event interface {
	event()
}

// FieldChanged carries a new value for a text field or select.
type FieldChanged struct {
	FieldID string
	Value   string
}

// GroupChanged carries the checked state of every member of a checkbox or
// radio group.
type GroupChanged struct {
	FieldID string
	Checked []bool
}

// PostalResolved carries the address returned by the postal lookup. A zero
// Address is a miss.
type PostalResolved struct {
	Address Address
}

// ErrorReported flags a field with an externally supplied message, such as a
// server-side validation error. An empty message clears the field.
type ErrorReported struct {
	FieldID string
	Message string
}

func (FieldChanged) event()   {}
func (GroupChanged) event()   {}
func (PostalResolved) event() {}
func (ErrorReported) event()  {}
