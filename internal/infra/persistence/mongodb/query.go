package mongodb

import (
	"regexp"
	"time"

	"userapi/internal/domain/entity"
	"userapi/internal/infra/persistence/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// buildUserFilter translates a UserFilter into a store predicate. Constraints
// are AND-combined by sitting side by side in one document; an empty filter
// matches every user.
func buildUserFilter(filter entity.UserFilter) bson.D {
	conditions := bson.D{}

	if term, ok := filter.SearchTerm(); ok {
		// Regex metacharacters in the term are matched literally.
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
		conditions = append(conditions, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: model.UserFieldName, Value: pattern}},
			bson.D{{Key: model.UserFieldEmail, Value: pattern}},
		}})
	}

	ageRange := bson.D{}
	if filter.MinAge != nil {
		ageRange = append(ageRange, bson.E{Key: "$gte", Value: *filter.MinAge})
	}
	if filter.MaxAge != nil {
		ageRange = append(ageRange, bson.E{Key: "$lte", Value: *filter.MaxAge})
	}
	if len(ageRange) > 0 {
		conditions = append(conditions, bson.E{Key: model.UserFieldAge, Value: ageRange})
	}

	if filter.IsActive != nil {
		conditions = append(conditions, bson.E{Key: model.UserFieldIsActive, Value: *filter.IsActive})
	}

	return conditions
}

// buildUserUpdate produces a single $set with the present fields of input.
func buildUserUpdate(input *entity.UserUpdate, now time.Time) bson.D {
	set := bson.D{}

	if v, ok := input.Name.Get(); ok {
		set = append(set, bson.E{Key: model.UserFieldName, Value: v})
	}
	if v, ok := input.Email.Get(); ok {
		set = append(set, bson.E{Key: model.UserFieldEmail, Value: v})
	}
	if v, ok := input.Age.Get(); ok {
		set = append(set, bson.E{Key: model.UserFieldAge, Value: v})
	}
	if v, ok := input.IsActive.Get(); ok {
		set = append(set, bson.E{Key: model.UserFieldIsActive, Value: v})
	}
	set = append(set, bson.E{Key: model.UserFieldUpdatedAt, Value: now})

	return bson.D{{Key: "$set", Value: set}}
}

func byID(id primitive.ObjectID) bson.D {
	return bson.D{{Key: model.UserFieldID, Value: id}}
}

// creationOrder sorts on _id, whose leading bytes are the creation timestamp.
var creationOrder = bson.D{{Key: model.UserFieldID, Value: 1}}
