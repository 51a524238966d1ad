package graph

import (
	"github.com/graphql-go/graphql"
)

func (r *Resolver) resolveRegister(p graphql.ResolveParams) (interface{}, error) {
	data := inputArg(p.Args, "data")
	return r.Auth.Register(
		stringArg(data, "name"),
		stringArg(data, "email"),
		stringArg(data, "password"),
	)
}

func (r *Resolver) resolveLogin(p graphql.ResolveParams) (interface{}, error) {
	data := inputArg(p.Args, "data")
	return r.Auth.Login(
		stringArg(data, "email"),
		stringArg(data, "password"),
	)
}

func (r *Resolver) resolveRefreshToken(p graphql.ResolveParams) (interface{}, error) {
	data := inputArg(p.Args, "data")
	return r.Auth.RefreshToken(stringArg(data, "refreshToken"))
}

func (r *Resolver) resolveForgotPassword(p graphql.ResolveParams) (interface{}, error) {
	data := inputArg(p.Args, "data")
	return r.Auth.ForgotPassword(stringArg(data, "email"))
}

func (r *Resolver) resolveResetPassword(p graphql.ResolveParams) (interface{}, error) {
	data := inputArg(p.Args, "data")
	return r.Auth.ResetPassword(
		stringArg(data, "email"),
		stringArg(data, "code"),
		stringArg(data, "password"),
		stringArg(data, "confirmPassword"),
	)
}
