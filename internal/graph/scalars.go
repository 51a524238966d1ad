package graph

import (
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"

	"fintrack/internal/storage"
)

// uploadScalar carries a file attached to a multipart GraphQL request. The
// HTTP handler injects *storage.Upload values into the variables; the
// scalar passes them through coercion untouched. Uploads cannot appear as
// inline literals.
var uploadScalar = graphql.NewScalar(graphql.ScalarConfig{
	Name:        "Upload",
	Description: "A file attached via the multipart request convention.",
	Serialize: func(value interface{}) interface{} {
		return nil
	},
	ParseValue: func(value interface{}) interface{} {
		if upload, ok := value.(*storage.Upload); ok {
			return upload
		}
		return nil
	},
	ParseLiteral: func(valueAST ast.Value) interface{} {
		return nil
	},
})
