// Package risk defines the classification levels shared by the report services.
package risk

// Level is a risk classification. A record failing every threshold is
// excluded from results entirely rather than labeled low.
type Level string

const (
	Medium Level = "Medium"
	High   Level = "High"
)
