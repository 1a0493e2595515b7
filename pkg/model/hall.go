package model

type Hall struct {
	ID           string   `json:"id" bson:"_id"`
	Name         string   `json:"name" bson:"name"`
	City         string   `json:"city" bson:"city"`
	CityKey      string   `json:"-" bson:"city_key"`
	Address      string   `json:"address" bson:"address"`
	Capacity     int      `json:"capacity" bson:"capacity"`
	PricePerSlot float64  `json:"price" bson:"price_per_slot"`
	Amenities    []string `json:"amenities" bson:"amenities"`
	ImageURL     string   `json:"image,omitempty" bson:"image_url,omitempty"`
}
