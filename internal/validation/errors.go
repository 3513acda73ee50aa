package validation

// FieldError reports a single field contract violation. Message is
// user-facing and may span multiple lines.
type FieldError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	return e.Message
}

// ErrorSet maps a field key (including per-row keys like socialAccount_0) to
// a human-readable message. It is recomputed fully on every submit attempt
// and never persisted.
type ErrorSet map[string]string

// NewErrorSet returns an empty, ready-to-use set.
func NewErrorSet() ErrorSet {
	return make(ErrorSet)
}

// Add records a message for the field, keeping the first message when the
// field already has one.
func (s ErrorSet) Add(field, message string) {
	if _, exists := s[field]; exists {
		return
	}
	s[field] = message
}

// AddError records a FieldError.
func (s ErrorSet) AddError(err *FieldError) {
	if err == nil {
		return
	}
	s.Add(err.Field, err.Message)
}

// Empty reports whether the set holds no errors.
func (s ErrorSet) Empty() bool {
	return len(s) == 0
}

// Merge copies all entries of other into the set.
func (s ErrorSet) Merge(other ErrorSet) {
	for field, message := range other {
		s.Add(field, message)
	}
}
