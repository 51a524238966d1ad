package graph

import (
	"context"

	"github.com/graphql-go/graphql"

	"fintrack/internal/auth"
	"fintrack/internal/services"
)

func (r *Resolver) resolveGetUser(p graphql.ResolveParams) (interface{}, error) {
	if _, err := auth.RequireIdentity(p.Context); err != nil {
		return nil, err
	}
	return r.Users.FindUser(stringArg(p.Args, "id"))
}

func (r *Resolver) resolveUpdateUser(p graphql.ResolveParams) (interface{}, error) {
	if _, err := auth.RequireIdentity(p.Context); err != nil {
		return nil, err
	}
	return r.applyUserUpdate(p.Context, stringArg(p.Args, "id"), inputArg(p.Args, "data"))
}

func (r *Resolver) resolveUpdateProfile(p graphql.ResolveParams) (interface{}, error) {
	identity, err := auth.RequireIdentity(p.Context)
	if err != nil {
		return nil, err
	}
	user, err := r.applyUserUpdate(p.Context, identity.UserID, inputArg(p.Args, "data"))
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"user": user}, nil
}

func (r *Resolver) applyUserUpdate(ctx context.Context, userID string, data map[string]interface{}) (interface{}, error) {
	update := services.UserUpdate{
		Name:         optString(data, "name"),
		RemoveAvatar: optBool(data, "removeAvatar"),
	}
	if up := optUpload(data, "avatar"); up != nil {
		url, err := r.Storage.Upload(ctx, up.File, up.Size, up.Filename, up.ContentType, "avatars")
		if err != nil {
			return nil, err
		}
		update.AvatarURL = &url
	}
	return r.Users.UpdateUser(userID, update)
}
