package validators

import (
	"utsav/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
)

var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"_id",
			"hall_id",
			"hall_name",
			"user_id",
			"user_name",
			"booking_date",
			"time_slot",
			"price",
			"booked_at",
			"payment_status",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"hall_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"hall_name": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"user_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"user_name": bson.M{
				"bsonType": "string",
			},

			"booking_date": bson.M{
				"bsonType": "string",
				"pattern":  `^\d{4}-\d{2}-\d{2}$`,
			},

			"time_slot": bson.M{
				"enum": model.TimeSlots,
			},

			"price": bson.M{
				"bsonType": bson.A{"double", "int", "long", "decimal"},
				"minimum":  0,
			},

			"booked_at": bson.M{
				"bsonType": "date",
			},

			"payment_status": bson.M{
				"enum": bson.A{
					string(model.PaymentPending),
					string(model.PaymentCompleted),
					string(model.PaymentFailed),
				},
			},
		},
	},
}
