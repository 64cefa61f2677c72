package api

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StringifyIDs walks a decoded bson value and converts every ObjectID to its
// hex string, recursing through nested documents and arrays. Database-native
// identifier types never cross the response boundary; this is applied once at
// response construction and stays out of the scoring data path.
func StringifyIDs(v any) any {
	switch val := v.(type) {
	case primitive.ObjectID:
		return val.Hex()
	case bson.M:
		for k, item := range val {
			val[k] = StringifyIDs(item)
		}
		return val
	case map[string]any:
		for k, item := range val {
			val[k] = StringifyIDs(item)
		}
		return val
	case bson.D:
		doc := make(bson.M, len(val))
		for _, e := range val {
			doc[e.Key] = StringifyIDs(e.Value)
		}
		return doc
	case bson.A:
		for i := range val {
			val[i] = StringifyIDs(val[i])
		}
		return val
	case []any:
		for i := range val {
			val[i] = StringifyIDs(val[i])
		}
		return val
	default:
		return v
	}
}
