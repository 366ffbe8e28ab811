package domain

// Ingredient is a catalogue entry. (Name, MeasurementUnit) is unique.
type Ingredient struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}
