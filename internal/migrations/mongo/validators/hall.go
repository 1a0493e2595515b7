package validators

import "go.mongodb.org/mongo-driver/bson"

var HallValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"_id", "name", "city", "city_key", "price_per_slot"},
		"additionalProperties": true,
		"properties": bson.M{
			"_id":            bson.M{"bsonType": "string"},
			"name":           bson.M{"bsonType": "string", "minLength": 1},
			"city":           bson.M{"bsonType": "string", "minLength": 1},
			"city_key":       bson.M{"bsonType": "string", "minLength": 1},
			"address":        bson.M{"bsonType": "string"},
			"capacity":       bson.M{"bsonType": bson.A{"int", "long"}, "minimum": 0},
			"price_per_slot": bson.M{"bsonType": bson.A{"double", "int", "long"}, "minimum": 0},
			"amenities": bson.M{
				"bsonType": bson.A{"array", "null"},
				"items":    bson.M{"bsonType": "string"},
			},
		},
	},
}
