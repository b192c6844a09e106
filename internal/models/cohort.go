package models

// Batch is a sub-group within a semester (e.g. batch "A" of "S1").
type Batch struct {
	Name            string   `json:"name" validate:"required"`
	RegisterNumbers []string `json:"register_numbers"`
}

// Semester groups candidate register numbers into batches.
type Semester struct {
	Name    string  `json:"name" validate:"required"`
	Batches []Batch `json:"batches"`
}

// AllRegisterNumbers flattens every batch in declaration order.
func (s Semester) AllRegisterNumbers() []string {
	var all []string
	for _, batch := range s.Batches {
		all = append(all, batch.RegisterNumbers...)
	}
	return all
}

// BatchLabel returns the combined label for a batch, e.g. "S1"+"A" -> "S1A".
func (s Semester) BatchLabel(batchName string) string {
	return s.Name + batchName
}
