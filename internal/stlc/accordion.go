package stlc

// Accordion tracks which input sections are expanded. Only the requirements
// section starts open.
type Accordion struct {
	open [InputFieldCount]bool
}

// NewAccordion returns the initial configuration.
func NewAccordion() Accordion {
	var a Accordion
	a.open[FieldRequirements] = true
	return a
}

// Toggle flips the expanded state of field.
func (a *Accordion) Toggle(field InputField) {
	if field < 0 || int(field) >= InputFieldCount {
		return
	}
	a.open[field] = !a.open[field]
}

// IsOpen reports whether field is expanded.
func (a Accordion) IsOpen(field InputField) bool {
	if field < 0 || int(field) >= InputFieldCount {
		return false
	}
	return a.open[field]
}

// OpenFields returns the expanded fields in display order.
func (a Accordion) OpenFields() []InputField {
	var fields []InputField
	for _, f := range InputFields {
		if a.open[f] {
			fields = append(fields, f)
		}
	}
	return fields
}
