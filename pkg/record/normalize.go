package record

import (
	"github.com/octofit/octofit-web/pkg/errs"
	"github.com/tidwall/gjson"
)

const resultsField = "results"

// Normalize turns a tracker API payload into a collection. A payload that is
// an object with a truthy "results" field yields that field, anything else
// is used as is. A repeated "results" key takes its last value. The chosen
// value must be an array of objects.
func Normalize(payload []byte) (Collection, error) {
	const op errs.Op = "record.Normalize"

	if !gjson.ValidBytes(payload) {
		return nil, errs.E(op, errs.IO, "payload is not valid JSON")
	}

	v := gjson.ParseBytes(payload)

	if v.IsObject() {
		if results, _ := fromObject(v).Lookup(resultsField); truthy(results) {
			v = results
		}
	}

	if !v.IsArray() {
		return nil, errs.E(op, errs.IO, errs.Parameter(resultsField), "payload is not a list of records")
	}

	items := v.Array()
	collection := make(Collection, 0, len(items))

	for _, item := range items {
		if !item.IsObject() {
			return nil, errs.E(op, errs.IO, "list contains a value that is not a record")
		}

		collection = append(collection, fromObject(item))
	}

	return collection, nil
}

func truthy(v gjson.Result) bool {
	switch v.Type {
	case gjson.Null, gjson.False:
		return false
	case gjson.Number:
		return v.Num != 0
	case gjson.String:
		return v.Str != ""
	default:
		return v.Exists()
	}
}
