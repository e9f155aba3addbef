package validators

import "go.mongodb.org/mongo-driver/bson"

var AppointmentValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"customer_name",
			"customer_phone",
			"service_id",
			"appointment_date",
			"appointment_time",
			"status",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"customer_name": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 100,
			},

			"customer_phone": bson.M{
				"bsonType": "string",
				"pattern":  "^01[0-9]{9}$",
			},

			"service_id": bson.M{
				"bsonType": "string",
				"enum": []string{
					"haircut",
					"trimming",
					"trimming_beard",
					"beard",
					"styling",
					"combo",
				},
			},

			"appointment_date": bson.M{
				"bsonType": "string",
				"pattern":  "^[0-9]{4}-[0-9]{2}-[0-9]{2}$",
			},

			"appointment_time": bson.M{
				"bsonType": "string",
				"pattern":  "^[0-9]{2}:[0-9]{2}:[0-9]{2}$",
			},

			"status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"confirmed",
					"paid",
					"pending",
				},
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
