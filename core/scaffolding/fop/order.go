package fop

// Set of directions for data ordering.
const (
	ASC  = "ASC"
	DESC = "DESC"
)

var directions = map[string]string{
	ASC:  "ASC",
	DESC: "DESC",
}

// By represents a field used to order by and direction.
type By struct {
	Field     string
	Direction string
}

// NewBy constructs a By, falling back to ASC for an unknown direction.
func NewBy(field string, direction string) By {
	if _, exists := directions[direction]; !exists {
		return By{Field: field, Direction: ASC}
	}

	return By{Field: field, Direction: direction}
}
