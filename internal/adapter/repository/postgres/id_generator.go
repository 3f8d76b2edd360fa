package postgres

import (
	"github.com/oklog/ulid/v2"
)

// ULIDGenerator generates sortable run ids, so ordering by id follows start time.
type ULIDGenerator struct{}

// NewULIDGenerator creates a new ULIDGenerator.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{}
}

// Generate generates a new ULID.
func (g *ULIDGenerator) Generate() string {
	return ulid.Make().String()
}
