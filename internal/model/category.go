package model

// Category groups sites under a named chip.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NewCategory creates a Category with a generated UUID.
func NewCategory(name string) Category {
	return Category{
		ID:   GenerateUUID(),
		Name: name,
	}
}
