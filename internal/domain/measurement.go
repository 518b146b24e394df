// Package domain defines the core types and interfaces for the recipe
// organizer. All other packages depend on domain; domain depends on nothing
// but the id generator's uuid library.
package domain

// Conversion is a directed, weighted edge between two measurement units:
// 1 unit of the owning measurement equals Factor units of ToMeasurementID.
//
// Edges are authored independently per direction. An edge A -> B does not imply
// B -> A, and two edges A -> B, B -> C do not imply A -> C. An absent edge means
// "unknown path", never zero.
type Conversion struct {
	ToMeasurementID string
	Factor          float64
}

// Measurement is a unit of measure (cup, gram, piece, ...) together with its
// outgoing conversion edges. Countable units carry no conversions at all.
type Measurement struct {
	ID          string
	Name        string
	Conversions []Conversion
}

// Ingredient is a flat catalog entry. IsCustom marks user-created entries so
// migrations never overwrite them with shipped defaults.
type Ingredient struct {
	ID       string
	Name     string
	IsCustom bool
}
