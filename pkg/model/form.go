package model

// FormData holds the values typed into the lead form. The zero value is the
// empty form every session starts with.
type FormData struct {
	Company     string `json:"company"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Role        string `json:"role"`
	Sector      string `json:"sector"`
	Description string `json:"description"`
	Problems    string `json:"problems"`
	Innovation  string `json:"innovation"`
}

func (d *FormData) ref(field Field) *string {
	switch field {
	case FieldCompany:
		return &d.Company
	case FieldName:
		return &d.Name
	case FieldEmail:
		return &d.Email
	case FieldPhone:
		return &d.Phone
	case FieldRole:
		return &d.Role
	case FieldSector:
		return &d.Sector
	case FieldDescription:
		return &d.Description
	case FieldProblems:
		return &d.Problems
	case FieldInnovation:
		return &d.Innovation
	default:
		return nil
	}
}

// Get returns the value of field, or "" for unknown keys.
func (d FormData) Get(field Field) string {
	if ptr := d.ref(field); ptr != nil {
		return *ptr
	}
	return ""
}

// Set overwrites the value of field. It reports false for unknown keys.
func (d *FormData) Set(field Field, value string) bool {
	ptr := d.ref(field)
	if ptr == nil {
		return false
	}
	*ptr = value
	return true
}

// IsZero reports whether every field is empty.
func (d FormData) IsZero() bool {
	return d == FormData{}
}

// Values returns the form as a field keyed map.
func (d FormData) Values() map[Field]string {
	out := make(map[Field]string, len(dataOrder))
	for _, field := range dataOrder {
		out[field] = d.Get(field)
	}
	return out
}

// FormErrors maps a field to its visible validation message. An absent or
// empty entry means the field has no error.
type FormErrors map[Field]string

// NewFormErrors returns an error map with every field present and empty.
func NewFormErrors() FormErrors {
	out := make(FormErrors, len(dataOrder))
	for _, field := range dataOrder {
		out[field] = ""
	}
	return out
}

// Get returns the message for field.
func (e FormErrors) Get(field Field) string {
	if e == nil {
		return ""
	}
	return e[field]
}

// Has reports whether field carries a non-empty message.
func (e FormErrors) Has(field Field) bool {
	return e.Get(field) != ""
}

// Set records a message for field.
func (e FormErrors) Set(field Field, message string) {
	if e == nil {
		return
	}
	e[field] = message
}

// Clear removes the message of a single field.
func (e FormErrors) Clear(field Field) {
	if e == nil {
		return
	}
	if _, ok := e[field]; ok {
		e[field] = ""
	}
}

// Valid reports whether no field carries a message.
func (e FormErrors) Valid() bool {
	for _, message := range e {
		if message != "" {
			return false
		}
	}
	return true
}

// Fields lists the fields with a message, in data order.
func (e FormErrors) Fields() []Field {
	var out []Field
	for _, field := range dataOrder {
		if e.Has(field) {
			out = append(out, field)
		}
	}
	return out
}

// Clone returns an independent copy with every field present.
func (e FormErrors) Clone() FormErrors {
	out := NewFormErrors()
	for field, message := range e {
		out[field] = message
	}
	return out
}
