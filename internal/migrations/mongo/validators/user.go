package validators

import "go.mongodb.org/mongo-driver/bson"

var UserValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"_id", "username", "email", "password_hash", "created_at"},
		"additionalProperties": true,
		"properties": bson.M{
			"_id":           bson.M{"bsonType": "string"},
			"username":      bson.M{"bsonType": "string", "minLength": 3, "maxLength": 30},
			"email":         bson.M{"bsonType": "string", "pattern": `^\S+@\S+\.\S+$`},
			"password_hash": bson.M{"bsonType": "string", "minLength": 1},
			"created_at":    bson.M{"bsonType": "date"},
		},
	},
}
