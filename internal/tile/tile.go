// Package tile defines the closed set of tile kinds, the four zoning
// categories they belong to, and the score delta applied whenever a cell
// changes kind.
package tile

// Category groups tile kinds into the four zoning families.
// Every kind belongs to exactly one category, permanently.
type Category uint8

const (
	Residential Category = iota // Housing in all its tiers
	Leisure                     // Gardens, parks, entertainment
	Commercial                  // Shops and what they grow into
	Education                   // Schools and universities
)

// Categories lists all categories in declaration order.
var Categories = [4]Category{Residential, Leisure, Commercial, Education}

// CategoryName returns a human-readable category name.
func CategoryName(c Category) string {
	switch c {
	case Residential:
		return "residential"
	case Leisure:
		return "leisure"
	case Commercial:
		return "commercial"
	case Education:
		return "education"
	}
	return "unknown"
}

// Kind enumerates every tile that can occupy a cell.
type Kind uint8

const (
	House      Kind = iota // Default residential
	Villa                  // Residential beside leisure, away from the road
	Hotel                  // Residential in a commercial-heavy block
	Apartments             // Tier-2 residential in a mixed block
	Highrise               // Top-tier residential
	Slum                   // Degraded residential; cured by leisure or education

	Garden      // Default leisure
	Playground  // Leisure beside a school
	SportsField // Leisure surrounded by leisure
	Plaza       // Leisure in a full 2×2 leisure square
	Park        // Leisure in a leisure-dominated block
	Cinema      // Leisure beside a mall

	Shop       // Default commercial
	Mall       // Commercial cluster on the road, or mall contagion
	Restaurant // Commercial beside commerce near many residents
	Bank       // Commercial near tier-2 housing

	School     // Default education
	HighSchool // Education near many residents and another school
	University // Education in an education-dense block
)

// Kinds lists every kind in declaration order.
var Kinds = [19]Kind{
	House, Villa, Hotel, Apartments, Highrise, Slum,
	Garden, Playground, SportsField, Plaza, Park, Cinema,
	Shop, Mall, Restaurant, Bank,
	School, HighSchool, University,
}

// CategoryOf returns the category a kind permanently belongs to.
func CategoryOf(k Kind) Category {
	switch k {
	case House, Villa, Hotel, Apartments, Highrise, Slum:
		return Residential
	case Garden, Playground, SportsField, Plaza, Park, Cinema:
		return Leisure
	case Shop, Mall, Restaurant, Bank:
		return Commercial
	case School, HighSchool, University:
		return Education
	}
	panic("tile: kind without category")
}

// DefaultKind returns the kind placed when a tile of the category is drawn.
func DefaultKind(c Category) Kind {
	switch c {
	case Residential:
		return House
	case Leisure:
		return Garden
	case Commercial:
		return Shop
	case Education:
		return School
	}
	panic("tile: category without default kind")
}

// Points returns the score delta applied when a cell changes to this kind.
// Defaults score nothing; Slum is the only negative kind.
func Points(k Kind) int {
	switch k {
	case House, Garden, Shop, School:
		return 0
	case Villa:
		return 15
	case Hotel:
		return 20
	case Apartments:
		return 10
	case Highrise:
		return 50
	case Slum:
		return -6
	case Playground:
		return 8
	case SportsField:
		return 12
	case Plaza:
		return 20
	case Park:
		return 25
	case Cinema:
		return 30
	case Mall:
		return 25
	case Restaurant:
		return 15
	case Bank:
		return 30
	case HighSchool:
		return 20
	case University:
		return 40
	}
	panic("tile: kind without point value")
}

// KindName returns a stable machine-friendly name, used in the API and logs.
func KindName(k Kind) string {
	switch k {
	case House:
		return "house"
	case Villa:
		return "villa"
	case Hotel:
		return "hotel"
	case Apartments:
		return "apartments"
	case Highrise:
		return "highrise"
	case Slum:
		return "slum"
	case Garden:
		return "garden"
	case Playground:
		return "playground"
	case SportsField:
		return "sports_field"
	case Plaza:
		return "plaza"
	case Park:
		return "park"
	case Cinema:
		return "cinema"
	case Shop:
		return "shop"
	case Mall:
		return "mall"
	case Restaurant:
		return "restaurant"
	case Bank:
		return "bank"
	case School:
		return "school"
	case HighSchool:
		return "high_school"
	case University:
		return "university"
	}
	return "unknown"
}
