package models

// Species is read-only reference data.
type Species struct {
	ID             int64  `json:"id" yaml:"id"`
	Name           string `json:"name" yaml:"name"`
	ScientificName string `json:"scientificName" yaml:"scientificName"`
	Description    string `json:"description" yaml:"description"`
	Color          string `json:"color,omitempty" yaml:"color"`
	ImageURL       string `json:"imageUrl,omitempty" yaml:"imageUrl"`
}
