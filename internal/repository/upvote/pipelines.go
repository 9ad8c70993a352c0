package upvote

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func topActivePipeline(limit int) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$officer.badge_number"},
			{Key: "name", Value: bson.D{{Key: "$first", Value: "$officer.name"}}},
			{Key: "email", Value: bson.D{{Key: "$first", Value: "$officer.email"}}},
			{Key: "upvote_count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "upvote_count", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "badge_number", Value: "$_id"},
			{Key: "name", Value: 1},
			{Key: "email", Value: 1},
			{Key: "upvote_count", Value: 1},
		}}},
	}
}

func areaCoveragePipeline(limit int) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "crimes"},
			{Key: "localField", Value: "crime_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "crime_data"},
		}}},
		{{Key: "$unwind", Value: "$crime_data"}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{
				{Key: "badge_number", Value: "$officer.badge_number"},
				{Key: "name", Value: "$officer.name"},
				{Key: "email", Value: "$officer.email"},
			}},
			{Key: "unique_areas", Value: bson.D{{Key: "$addToSet", Value: "$crime_data.area.name"}}},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "badge_number", Value: "$_id.badge_number"},
			{Key: "name", Value: "$_id.name"},
			{Key: "email", Value: "$_id.email"},
			{Key: "unique_area_count", Value: bson.D{{Key: "$size", Value: "$unique_areas"}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "unique_area_count", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
	}
}

func multiBadgePipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{
				{Key: "crime_id", Value: "$crime_id"},
				{Key: "email", Value: "$officer.email"},
			}},
			{Key: "unique_badges", Value: bson.D{{Key: "$addToSet", Value: "$officer.badge_number"}}},
		}}},
		// A second array element existing means more than one distinct badge.
		{{Key: "$match", Value: bson.D{
			{Key: "unique_badges.1", Value: bson.D{{Key: "$exists", Value: true}}},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "crimes"},
			{Key: "localField", Value: "_id.crime_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "crime_data"},
		}}},
		{{Key: "$unwind", Value: "$crime_data"}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "crime_id", Value: "$_id.crime_id"},
			{Key: "email", Value: "$_id.email"},
			{Key: "badge_numbers", Value: "$unique_badges"},
			{Key: "crime_description", Value: "$crime_data.crime_description"},
			{Key: "date_occurred", Value: "$crime_data.date_occurred"},
			{Key: "area", Value: "$crime_data.area.name"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "date_occurred", Value: 1}}}},
	}
}

func areasForOfficerPipeline(officerName string) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "officer.name", Value: officerName}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "crimes"},
			{Key: "localField", Value: "crime_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "crime_data"},
		}}},
		{{Key: "$unwind", Value: "$crime_data"}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$crime_data.area.name"},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "area", Value: "$_id"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "area", Value: 1}}}},
	}
}
