package graph

import (
	"github.com/graphql-go/graphql"

	"fintrack/internal/auth"
	"fintrack/internal/models"
)

// schemaTypes holds every named type of the schema. Types are built per
// schema instance because field resolvers close over the Resolver.
type schemaTypes struct {
	categoryColor *graphql.Enum

	user                  *graphql.Object
	category              *graphql.Object
	transaction           *graphql.Object
	paginatedTransactions *graphql.Object
	balanceSummary        *graphql.Object
	categorySummary       *graphql.Object
	authPayload           *graphql.Object
	profilePayload        *graphql.Object

	registerInput       *graphql.InputObject
	loginInput          *graphql.InputObject
	refreshTokenInput   *graphql.InputObject
	forgotPasswordInput *graphql.InputObject
	resetPasswordInput  *graphql.InputObject

	createCategoryInput *graphql.InputObject
	updateCategoryInput *graphql.InputObject

	createTransactionInput *graphql.InputObject
	updateTransactionInput *graphql.InputObject
	transactionsFilter     *graphql.InputObject

	updateUserInput *graphql.InputObject
}

func buildTypes(r *Resolver) *schemaTypes {
	t := &schemaTypes{}

	t.categoryColor = graphql.NewEnum(graphql.EnumConfig{
		Name:        "CategoryColor",
		Description: "Allowed colors for categories",
		Values: graphql.EnumValueConfigMap{
			"BLUE":   &graphql.EnumValueConfig{Value: string(models.CategoryColorBlue)},
			"GREEN":  &graphql.EnumValueConfig{Value: string(models.CategoryColorGreen)},
			"ORANGE": &graphql.EnumValueConfig{Value: string(models.CategoryColorOrange)},
			"PINK":   &graphql.EnumValueConfig{Value: string(models.CategoryColorPink)},
			"PURPLE": &graphql.EnumValueConfig{Value: string(models.CategoryColorPurple)},
			"RED":    &graphql.EnumValueConfig{Value: string(models.CategoryColorRed)},
			"YELLOW": &graphql.EnumValueConfig{Value: string(models.CategoryColorYellow)},
		},
	})

	// The default resolver does not reach fields promoted from the embedded
	// Base struct, so id/createdAt/updatedAt carry explicit resolvers.
	t.user = graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.ID),
				Resolve: userField(func(u *models.User) interface{} { return u.ID }),
			},
			"name":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"email":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"avatarUrl": &graphql.Field{Type: graphql.String},
			"createdAt": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.DateTime),
				Resolve: userField(func(u *models.User) interface{} { return u.CreatedAt }),
			},
			"updatedAt": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.DateTime),
				Resolve: userField(func(u *models.User) interface{} { return u.UpdatedAt }),
			},
		},
	})

	t.category = graphql.NewObject(graphql.ObjectConfig{
		Name: "Category",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.ID),
				Resolve: categoryField(func(c *models.Category) interface{} { return c.ID }),
			},
			"title":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"description": &graphql.Field{Type: graphql.String},
			"icon":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"color": &graphql.Field{
				Type:    graphql.NewNonNull(t.categoryColor),
				Resolve: categoryField(func(c *models.Category) interface{} { return string(c.Color) }),
			},
			"userId": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"createdAt": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.DateTime),
				Resolve: categoryField(func(c *models.Category) interface{} { return c.CreatedAt }),
			},
			"updatedAt": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.DateTime),
				Resolve: categoryField(func(c *models.Category) interface{} { return c.UpdatedAt }),
			},
		},
	})

	t.transaction = graphql.NewObject(graphql.ObjectConfig{
		Name: "Transaction",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.ID),
				Resolve: transactionField(func(tx *models.Transaction) interface{} { return tx.ID }),
			},
			"description": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"amount":      &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"type": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.String),
				Resolve: transactionField(func(tx *models.Transaction) interface{} { return string(tx.Type) }),
			},
			"date":       &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
			"categoryId": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"userId":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"createdAt": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.DateTime),
				Resolve: transactionField(func(tx *models.Transaction) interface{} { return tx.CreatedAt }),
			},
			"updatedAt": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.DateTime),
				Resolve: transactionField(func(tx *models.Transaction) interface{} { return tx.UpdatedAt }),
			},
		},
	})

	// Cross-references between Category and Transaction are added after both
	// objects exist.
	t.category.AddFieldConfig("user", &graphql.Field{
		Type: t.user,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			category, err := categoryFromSource(p.Source)
			if err != nil {
				return nil, err
			}
			return r.Users.FindUser(category.UserID)
		},
	})
	t.category.AddFieldConfig("transactions", &graphql.Field{
		Type: graphql.NewList(graphql.NewNonNull(t.transaction)),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			identity, err := auth.RequireIdentity(p.Context)
			if err != nil {
				return nil, err
			}
			category, err := categoryFromSource(p.Source)
			if err != nil {
				return nil, err
			}
			return r.Transactions.ListTransactionsByCategory(identity.UserID, category.ID)
		},
	})
	t.category.AddFieldConfig("transactionCount", &graphql.Field{
		Type: graphql.NewNonNull(graphql.Int),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			identity, err := auth.RequireIdentity(p.Context)
			if err != nil {
				return nil, err
			}
			category, err := categoryFromSource(p.Source)
			if err != nil {
				return nil, err
			}
			return r.Transactions.CountTransactionsByCategory(identity.UserID, category.ID)
		},
	})

	t.transaction.AddFieldConfig("user", &graphql.Field{
		Type: t.user,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			transaction, err := transactionFromSource(p.Source)
			if err != nil {
				return nil, err
			}
			return r.Users.FindUser(transaction.UserID)
		},
	})
	t.transaction.AddFieldConfig("category", &graphql.Field{
		Type: t.category,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			transaction, err := transactionFromSource(p.Source)
			if err != nil {
				return nil, err
			}
			return r.Categories.GetCategory(transaction.UserID, transaction.CategoryID)
		},
	})

	t.paginatedTransactions = graphql.NewObject(graphql.ObjectConfig{
		Name: "PaginatedTransactions",
		Fields: graphql.Fields{
			"items":      &graphql.Field{Type: graphql.NewList(graphql.NewNonNull(t.transaction))},
			"totalCount": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		},
	})

	t.balanceSummary = graphql.NewObject(graphql.ObjectConfig{
		Name: "BalanceSummary",
		Fields: graphql.Fields{
			"balance":      &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"monthIncome":  &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"monthExpense": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		},
	})

	t.categorySummary = graphql.NewObject(graphql.ObjectConfig{
		Name: "CategorySummary",
		Fields: graphql.Fields{
			"category":    &graphql.Field{Type: t.category},
			"count":       &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"totalAmount": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		},
	})

	t.authPayload = graphql.NewObject(graphql.ObjectConfig{
		Name: "AuthPayload",
		Fields: graphql.Fields{
			"token":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"refreshToken": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"user":         &graphql.Field{Type: graphql.NewNonNull(t.user)},
		},
	})

	t.profilePayload = graphql.NewObject(graphql.ObjectConfig{
		Name: "UpdateProfilePayload",
		Fields: graphql.Fields{
			"user": &graphql.Field{Type: graphql.NewNonNull(t.user)},
		},
	})

	t.registerInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "RegisterInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"email":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"password": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	t.loginInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "LoginInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"email":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"password": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	t.refreshTokenInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "RefreshTokenInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"refreshToken": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	t.forgotPasswordInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "ForgotPasswordInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"email": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	t.resetPasswordInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "ResetPasswordInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"email":           &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"code":            &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"password":        &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"confirmPassword": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	t.createCategoryInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CreateCategoryInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"title":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"description": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"icon":        &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"color":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(t.categoryColor)},
		},
	})

	t.updateCategoryInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UpdateCategoryInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"title":       &graphql.InputObjectFieldConfig{Type: graphql.String},
			"description": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"icon":        &graphql.InputObjectFieldConfig{Type: graphql.String},
			"color":       &graphql.InputObjectFieldConfig{Type: t.categoryColor},
		},
	})

	t.createTransactionInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CreateTransactionInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"description": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"type":        &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"amount":      &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Int)},
			"date":        &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.DateTime)},
		},
	})

	t.updateTransactionInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UpdateTransactionInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"description": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"type":        &graphql.InputObjectFieldConfig{Type: graphql.String},
			"amount":      &graphql.InputObjectFieldConfig{Type: graphql.Int},
			"date":        &graphql.InputObjectFieldConfig{Type: graphql.DateTime},
			"categoryId":  &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	t.transactionsFilter = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "GetTransactionsFilterInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"type":        &graphql.InputObjectFieldConfig{Type: graphql.String},
			"categoryId":  &graphql.InputObjectFieldConfig{Type: graphql.String},
			"description": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"month":       &graphql.InputObjectFieldConfig{Type: graphql.Int},
			"year":        &graphql.InputObjectFieldConfig{Type: graphql.Int},
			"startDate":   &graphql.InputObjectFieldConfig{Type: graphql.DateTime},
			"endDate":     &graphql.InputObjectFieldConfig{Type: graphql.DateTime},
		},
	})

	t.updateUserInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UpdateUserInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":         &graphql.InputObjectFieldConfig{Type: graphql.String},
			"avatar":       &graphql.InputObjectFieldConfig{Type: uploadScalar},
			"removeAvatar": &graphql.InputObjectFieldConfig{Type: graphql.Boolean},
		},
	})

	return t
}

func userField(fn func(*models.User) interface{}) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		user, err := userFromSource(p.Source)
		if err != nil {
			return nil, err
		}
		return fn(user), nil
	}
}

func categoryField(fn func(*models.Category) interface{}) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		category, err := categoryFromSource(p.Source)
		if err != nil {
			return nil, err
		}
		return fn(category), nil
	}
}

func transactionField(fn func(*models.Transaction) interface{}) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		transaction, err := transactionFromSource(p.Source)
		if err != nil {
			return nil, err
		}
		return fn(transaction), nil
	}
}

func userFromSource(source interface{}) (*models.User, error) {
	switch v := source.(type) {
	case *models.User:
		return v, nil
	case models.User:
		return &v, nil
	}
	return nil, errUnexpectedSource
}

func categoryFromSource(source interface{}) (*models.Category, error) {
	switch v := source.(type) {
	case *models.Category:
		return v, nil
	case models.Category:
		return &v, nil
	}
	return nil, errUnexpectedSource
}

func transactionFromSource(source interface{}) (*models.Transaction, error) {
	switch v := source.(type) {
	case *models.Transaction:
		return v, nil
	case models.Transaction:
		return &v, nil
	}
	return nil, errUnexpectedSource
}
