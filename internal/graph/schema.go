package graph

import (
	"errors"

	"github.com/graphql-go/graphql"

	"fintrack/internal/services"
	"fintrack/internal/storage"
)

var errUnexpectedSource = errors.New("graph: unexpected source type")

// Resolver carries the service dependencies the schema resolves against.
// Everything is injected once at startup.
type Resolver struct {
	Auth         services.AuthServicer
	Users        services.UserServicer
	Categories   services.CategoryServicer
	Transactions services.TransactionServicer
	Storage      storage.Uploader
}

// NewSchema builds the executable schema for the given resolver.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	t := buildTypes(r)

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"getUser": &graphql.Field{
				Type: t.user,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.resolveGetUser,
			},
			"getCategory": &graphql.Field{
				Type: t.category,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.resolveGetCategory,
			},
			"listCategories": &graphql.Field{
				Type:    graphql.NewList(graphql.NewNonNull(t.category)),
				Resolve: r.resolveListCategories,
			},
			"listTransactions": &graphql.Field{
				Type: t.paginatedTransactions,
				Args: graphql.FieldConfigArgument{
					"limit":   &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 10},
					"offset":  &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 0},
					"filters": &graphql.ArgumentConfig{Type: t.transactionsFilter},
				},
				Resolve: r.resolveListTransactions,
			},
			"balanceSummary": &graphql.Field{
				Type:    t.balanceSummary,
				Resolve: r.resolveBalanceSummary,
			},
			"categorySummary": &graphql.Field{
				Type:    graphql.NewList(graphql.NewNonNull(t.categorySummary)),
				Resolve: r.resolveCategorySummary,
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"register": &graphql.Field{
				Type: t.authPayload,
				Args: graphql.FieldConfigArgument{
					"data": &graphql.ArgumentConfig{Type: graphql.NewNonNull(t.registerInput)},
				},
				Resolve: r.resolveRegister,
			},
			"login": &graphql.Field{
				Type: t.authPayload,
				Args: graphql.FieldConfigArgument{
					"data": &graphql.ArgumentConfig{Type: graphql.NewNonNull(t.loginInput)},
				},
				Resolve: r.resolveLogin,
			},
			"refreshToken": &graphql.Field{
				Type: t.authPayload,
				Args: graphql.FieldConfigArgument{
					"data": &graphql.ArgumentConfig{Type: graphql.NewNonNull(t.refreshTokenInput)},
				},
				Resolve: r.resolveRefreshToken,
			},
			"forgotPassword": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Args: graphql.FieldConfigArgument{
					"data": &graphql.ArgumentConfig{Type: graphql.NewNonNull(t.forgotPasswordInput)},
				},
				Resolve: r.resolveForgotPassword,
			},
			"resetPassword": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Args: graphql.FieldConfigArgument{
					"data": &graphql.ArgumentConfig{Type: graphql.NewNonNull(t.resetPasswordInput)},
				},
				Resolve: r.resolveResetPassword,
			},
			"createCategory": &graphql.Field{
				Type: t.category,
				Args: graphql.FieldConfigArgument{
					"data": &graphql.ArgumentConfig{Type: graphql.NewNonNull(t.createCategoryInput)},
				},
				Resolve: r.resolveCreateCategory,
			},
			"updateCategory": &graphql.Field{
				Type: t.category,
				Args: graphql.FieldConfigArgument{
					"id":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"data": &graphql.ArgumentConfig{Type: graphql.NewNonNull(t.updateCategoryInput)},
				},
				Resolve: r.resolveUpdateCategory,
			},
			"deleteCategory": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.resolveDeleteCategory,
			},
			"createTransaction": &graphql.Field{
				Type: t.transaction,
				Args: graphql.FieldConfigArgument{
					"categoryId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"data":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(t.createTransactionInput)},
				},
				Resolve: r.resolveCreateTransaction,
			},
			"updateTransaction": &graphql.Field{
				Type: t.transaction,
				Args: graphql.FieldConfigArgument{
					"id":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"data": &graphql.ArgumentConfig{Type: graphql.NewNonNull(t.updateTransactionInput)},
				},
				Resolve: r.resolveUpdateTransaction,
			},
			"deleteTransaction": &graphql.Field{
				Type: t.transaction,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.resolveDeleteTransaction,
			},
			"updateUser": &graphql.Field{
				Type: t.user,
				Args: graphql.FieldConfigArgument{
					"id":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"data": &graphql.ArgumentConfig{Type: graphql.NewNonNull(t.updateUserInput)},
				},
				Resolve: r.resolveUpdateUser,
			},
			"updateProfile": &graphql.Field{
				Type: t.profilePayload,
				Args: graphql.FieldConfigArgument{
					"data": &graphql.ArgumentConfig{Type: graphql.NewNonNull(t.updateUserInput)},
				},
				Resolve: r.resolveUpdateProfile,
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    query,
		Mutation: mutation,
	})
}
