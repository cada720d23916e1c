package lexer

import (
	"fmt"

	"github.com/buger/jsonparser"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// decodeJSON decodes a single, complete JSON value using jsonparser
// rather than a hand-rolled recursive-descent JSON parser. Object
// literals are decoded into an order-preserving
// *orderedmap.OrderedMap[string, any] (ast.JSONObject) since
// jsonparser.ObjectEach walks keys in their source order.
func decodeJSON(data []byte) (any, error) {
	value, dataType, _, err := jsonparser.Get(data)
	if err != nil {
		return nil, err
	}
	return decodeTyped(value, dataType)
}

func decodeTyped(value []byte, dataType jsonparser.ValueType) (any, error) {
	switch dataType {
	case jsonparser.Null:
		return nil, nil
	case jsonparser.Boolean:
		return jsonparser.ParseBoolean(value)
	case jsonparser.Number:
		return jsonparser.ParseFloat(value)
	case jsonparser.String:
		return jsonparser.ParseString(value)
	case jsonparser.Array:
		items := make([]any, 0)
		var innerErr error
		if _, err := jsonparser.ArrayEach(value, func(v []byte, dt jsonparser.ValueType, _ int, err error) {
			if err != nil || innerErr != nil {
				return
			}
			decoded, e := decodeTyped(v, dt)
			if e != nil {
				innerErr = e
				return
			}
			items = append(items, decoded)
		}); err != nil {
			return nil, err
		}
		if innerErr != nil {
			return nil, innerErr
		}
		return items, nil
	case jsonparser.Object:
		obj := orderedmap.New[string, any]()
		err := jsonparser.ObjectEach(value, func(key, v []byte, dt jsonparser.ValueType, _ int) error {
			decoded, e := decodeTyped(v, dt)
			if e != nil {
				return e
			}
			obj.Set(string(key), decoded)
			return nil
		})
		if err != nil {
			return nil, err
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("unsupported json value type %v", dataType)
	}
}
