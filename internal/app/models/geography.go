package models

// Geography is a city/region pair that schools belong to.
type Geography struct {
	Base
	City   string `db:"city" json:"city" binding:"required"`
	Region string `db:"region" json:"region" binding:"required"`
}

func (g *Geography) Fields() ([]string, []any) {
	return []string{"city", "region"}, []any{g.City, g.Region}
}

// GeographyDescriptor wires Geography into the generic resource stack.
var GeographyDescriptor = Descriptor{
	Name:     "geography",
	Path:     "/geographies",
	Table:    "geography",
	Sortable: []string{"id", "city", "region", "created_at", "updated_at"},
	Dependents: []Dependent{
		{Table: "schools", Column: "geography_id"},
	},
}
