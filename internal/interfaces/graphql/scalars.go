package graphql

import (
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"
	"github.com/shopspring/decimal"
)

// Decimal is a fixed-point number. It serializes as a string with two
// decimals and accepts strings, ints and floats as input.
var Decimal = graphql.NewScalar(graphql.ScalarConfig{
	Name:        "Decimal",
	Description: "Fixed-point decimal serialized as a string, e.g. \"999.99\"",
	Serialize:   serializeDecimal,
	ParseValue:  parseDecimalValue,
	ParseLiteral: func(valueAST ast.Value) any {
		switch v := valueAST.(type) {
		case *ast.StringValue:
			return parseDecimalString(v.Value)
		case *ast.IntValue:
			return parseDecimalString(v.Value)
		case *ast.FloatValue:
			return parseDecimalString(v.Value)
		}
		return nil
	},
})

func serializeDecimal(value any) any {
	switch v := value.(type) {
	case decimal.Decimal:
		return v.StringFixed(2)
	case *decimal.Decimal:
		if v == nil {
			return nil
		}
		return v.StringFixed(2)
	}
	return nil
}

func parseDecimalValue(value any) any {
	switch v := value.(type) {
	case decimal.Decimal:
		return v
	case string:
		return parseDecimalString(v)
	case float64:
		return decimal.NewFromFloat(v)
	case float32:
		return decimal.NewFromFloat32(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	}
	return nil
}

// parseDecimalString returns nil for unparsable input so the executor
// reports a coercion error.
func parseDecimalString(s string) any {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return d
}
