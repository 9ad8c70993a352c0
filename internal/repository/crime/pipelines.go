package crime

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Pipeline builders. Dates arrive pre-validated and re-formatted as
// MM/DD/YYYY, so the prefix patterns contain only digits and slashes and
// need no regex escaping.

func countByCodePipeline(start, end string) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{
			{Key: "date_occurred", Value: bson.D{
				{Key: "$gte", Value: start},
				{Key: "$lte", Value: end},
			}},
		}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$crime_code"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
	}
}

func countByDayPipeline(crimeCode int, days []string) mongo.Pipeline {
	prefixes := make([]string, len(days))
	for i, d := range days {
		prefixes[i] = "^" + d
	}

	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{
			{Key: "crime_code", Value: crimeCode},
			{Key: "date_occurred", Value: primitive.Regex{Pattern: strings.Join(prefixes, "|")}},
		}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$date_occurred"},
			{Key: "report_count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}
}

func mostCommonByAreaPipeline(day string) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{
			{Key: "date_occurred", Value: primitive.Regex{Pattern: "^" + day}},
		}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{
				{Key: "area", Value: "$area.name"},
				{Key: "crime", Value: "$crime_description"},
			}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$_id.area"},
			{Key: "crimes", Value: bson.D{{Key: "$push", Value: bson.D{
				{Key: "crime", Value: "$_id.crime"},
				{Key: "count", Value: "$count"},
			}}}},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "area", Value: "$_id"},
			{Key: "crimes", Value: bson.D{{Key: "$slice", Value: bson.A{"$crimes", 3}}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "area", Value: 1}}}},
	}
}

func leastCommonPipeline(start, end string, limit int) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{
			{Key: "date_occurred", Value: primitive.Regex{Pattern: "^(" + start + "|" + end + ")"}},
		}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$crime_description"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: 1}}}},
		{{Key: "$limit", Value: limit}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "crime", Value: "$_id"},
			{Key: "count", Value: 1},
		}}},
	}
}

func weaponsUsedPipeline(crimeCode int) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "crime_code", Value: crimeCode}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "weapons"},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "crime_id"},
			{Key: "as", Value: "weapon_data"},
		}}},
		{{Key: "$unwind", Value: "$weapon_data"}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{
				{Key: "area", Value: "$area.name"},
				{Key: "weapon", Value: "$weapon_data.weapon_description"},
			}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{
			{Key: "_id.area", Value: 1},
			{Key: "count", Value: -1},
		}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$_id.area"},
			{Key: "weapons", Value: bson.D{{Key: "$push", Value: bson.D{
				{Key: "weapon", Value: "$_id.weapon"},
				{Key: "count", Value: "$count"},
			}}}},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "area", Value: "$_id"},
			{Key: "weapons", Value: 1},
		}}},
	}
}

func topUpvotedPipeline(day string, limit int) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{
			{Key: "date_occurred", Value: primitive.Regex{Pattern: "^" + day}},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "upvotes"},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "crime_id"},
			{Key: "as", Value: "upvote_data"},
		}}},
		{{Key: "$addFields", Value: bson.D{
			{Key: "upvote_count", Value: bson.D{{Key: "$size", Value: "$upvote_data"}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "upvote_count", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "DR_NO", Value: 1},
			{Key: "crime_description", Value: 1},
			{Key: "area.name", Value: 1},
			{Key: "date_occurred", Value: 1},
			{Key: "upvote_count", Value: 1},
		}}},
	}
}
