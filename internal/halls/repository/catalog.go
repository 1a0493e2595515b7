package repository

import (
	"utsav/pkg/model"
	"utsav/pkg/sanitizer"
)

// SeedHalls returns the function halls offered to planners. The migration job
// upserts them into Mongo; the memory repository serves them directly.
func SeedHalls() []model.Hall {
	halls := []model.Hall{
		{ID: "m1", Name: "The Sea View Banquet", City: "Mumbai", Address: "Marine Drive, Churchgate, Mumbai", Capacity: 500, PricePerSlot: 150000, Amenities: []string{"Sea view", "Air conditioning", "Valet parking", "In-house catering"}},
		{ID: "m2", Name: "Royal Palms Hall", City: "Mumbai", Address: "Aarey Road, Goregaon East, Mumbai", Capacity: 300, PricePerSlot: 90000, Amenities: []string{"Garden", "Air conditioning", "Parking"}},
		{ID: "m3", Name: "Juhu Celebration Lawns", City: "Mumbai", Address: "Juhu Tara Road, Juhu, Mumbai", Capacity: 800, PricePerSlot: 210000, Amenities: []string{"Open lawn", "Stage", "Generator backup"}},
		{ID: "d1", Name: "Imperial Gardens", City: "Delhi", Address: "Chhattarpur Farms, New Delhi", Capacity: 1000, PricePerSlot: 250000, Amenities: []string{"Farmhouse lawn", "Bridal suite", "Parking", "DJ setup"}},
		{ID: "d2", Name: "Lotus Banquets", City: "Delhi", Address: "Rajouri Garden, New Delhi", Capacity: 400, PricePerSlot: 110000, Amenities: []string{"Air conditioning", "In-house catering", "Lift access"}},
		{ID: "b1", Name: "Garden City Convention Centre", City: "Bangalore", Address: "Palace Road, Vasanth Nagar, Bangalore", Capacity: 700, PricePerSlot: 180000, Amenities: []string{"Conference AV", "Air conditioning", "Parking"}},
		{ID: "b2", Name: "Lalbagh Pavilion", City: "Bangalore", Address: "Lalbagh Fort Road, Bangalore", Capacity: 250, PricePerSlot: 75000, Amenities: []string{"Garden", "Stage", "Vegetarian kitchen"}},
		{ID: "j1", Name: "Rajmahal Heritage Courtyard", City: "Jaipur", Address: "Amer Road, Jaipur", Capacity: 600, PricePerSlot: 200000, Amenities: []string{"Heritage courtyard", "Folk performers", "Guest rooms"}},
		{ID: "j2", Name: "Pink City Banquet", City: "Jaipur", Address: "MI Road, Jaipur", Capacity: 350, PricePerSlot: 95000, Amenities: []string{"Air conditioning", "In-house catering", "Parking"}},
		{ID: "c1", Name: "Marina Grand Hall", City: "Chennai", Address: "Kamarajar Salai, Mylapore, Chennai", Capacity: 550, PricePerSlot: 140000, Amenities: []string{"Air conditioning", "Vegetarian kitchen", "Parking"}},
		{ID: "h1", Name: "Nizam Palace Convention", City: "Hyderabad", Address: "Road No. 12, Banjara Hills, Hyderabad", Capacity: 900, PricePerSlot: 230000, Amenities: []string{"Chandeliers", "Bridal suite", "Valet parking"}},
		{ID: "k1", Name: "Hooghly Riverside Hall", City: "Kolkata", Address: "Strand Road, Kolkata", Capacity: 450, PricePerSlot: 120000, Amenities: []string{"River view", "Air conditioning", "Stage"}},
	}
	for i := range halls {
		halls[i].CityKey = sanitizer.CityKey(halls[i].City)
	}
	return halls
}
