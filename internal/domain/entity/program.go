package entity

// RoomTypeOption is one room-type line of a package price: the type name and
// the configured guest count per room.
type RoomTypeOption struct {
	Type   string `bson:"type" json:"type"`
	Guests int    `bson:"guests" json:"guests"`
}

// PackagePrice is one price structure inside a package, covering a hotel
// combination and the room types sold for it.
type PackagePrice struct {
	HotelCombination string           `bson:"hotelCombination" json:"hotelCombination"`
	RoomTypes        []RoomTypeOption `bson:"roomTypes" json:"roomTypes"`
}

// Package groups the hotels offered per city and the price structures of one
// sellable program variant. Hotels maps a city name to the hotel names valid
// for that city.
type Package struct {
	Name   string              `bson:"name" json:"name"`
	Hotels map[string][]string `bson:"hotels" json:"hotels"`
	Prices []PackagePrice      `bson:"prices" json:"prices"`
}

// Program is the read-only trip configuration the allocator consults for
// hotel sets and room capacities. It is master data owned by the back office.
type Program struct {
	ID       string    `json:"id"`
	TenantID string    `json:"tenantId"`
	Name     string    `json:"name"`
	Packages []Package `json:"packages"`
}

// HotelsForCity returns the distinct hotel names configured for the city
// across all packages, in package order.
func (p *Program) HotelsForCity(city string) []string {
	seen := make(map[string]bool)
	var hotels []string
	for _, pkg := range p.Packages {
		for _, name := range pkg.Hotels[city] {
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			hotels = append(hotels, name)
		}
	}
	return hotels
}
