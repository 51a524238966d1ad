package graph

import (
	"github.com/graphql-go/graphql"

	"fintrack/internal/auth"
	"fintrack/internal/models"
	"fintrack/internal/services"
)

func (r *Resolver) resolveGetCategory(p graphql.ResolveParams) (interface{}, error) {
	identity, err := auth.RequireIdentity(p.Context)
	if err != nil {
		return nil, err
	}
	return r.Categories.GetCategory(identity.UserID, stringArg(p.Args, "id"))
}

func (r *Resolver) resolveListCategories(p graphql.ResolveParams) (interface{}, error) {
	identity, err := auth.RequireIdentity(p.Context)
	if err != nil {
		return nil, err
	}
	return r.Categories.ListCategories(identity.UserID)
}

func (r *Resolver) resolveCreateCategory(p graphql.ResolveParams) (interface{}, error) {
	identity, err := auth.RequireIdentity(p.Context)
	if err != nil {
		return nil, err
	}
	data := inputArg(p.Args, "data")
	var description string
	if d := optString(data, "description"); d != nil {
		description = *d
	}
	return r.Categories.CreateCategory(
		identity.UserID,
		stringArg(data, "title"),
		description,
		stringArg(data, "icon"),
		models.CategoryColor(stringArg(data, "color")),
	)
}

func (r *Resolver) resolveUpdateCategory(p graphql.ResolveParams) (interface{}, error) {
	identity, err := auth.RequireIdentity(p.Context)
	if err != nil {
		return nil, err
	}
	data := inputArg(p.Args, "data")
	update := services.CategoryUpdate{
		Title:       optString(data, "title"),
		Description: optString(data, "description"),
		Icon:        optString(data, "icon"),
	}
	if c := optString(data, "color"); c != nil {
		color := models.CategoryColor(*c)
		update.Color = &color
	}
	return r.Categories.UpdateCategory(identity.UserID, stringArg(p.Args, "id"), update)
}

func (r *Resolver) resolveDeleteCategory(p graphql.ResolveParams) (interface{}, error) {
	identity, err := auth.RequireIdentity(p.Context)
	if err != nil {
		return nil, err
	}
	if err := r.Categories.DeleteCategory(identity.UserID, stringArg(p.Args, "id")); err != nil {
		return nil, err
	}
	return true, nil
}
