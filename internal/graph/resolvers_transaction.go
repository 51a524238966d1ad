package graph

import (
	"github.com/graphql-go/graphql"

	"fintrack/internal/auth"
	"fintrack/internal/pagination"
	"fintrack/internal/services"
)

func (r *Resolver) resolveCreateTransaction(p graphql.ResolveParams) (interface{}, error) {
	identity, err := auth.RequireIdentity(p.Context)
	if err != nil {
		return nil, err
	}
	data := inputArg(p.Args, "data")
	return r.Transactions.CreateTransaction(
		identity.UserID,
		stringArg(p.Args, "categoryId"),
		stringArg(data, "type"),
		int64Arg(data, "amount"),
		stringArg(data, "description"),
		timeArg(data, "date"),
	)
}

func (r *Resolver) resolveUpdateTransaction(p graphql.ResolveParams) (interface{}, error) {
	identity, err := auth.RequireIdentity(p.Context)
	if err != nil {
		return nil, err
	}
	data := inputArg(p.Args, "data")
	update := services.TransactionUpdate{
		Description: optString(data, "description"),
		Amount:      optInt64(data, "amount"),
		Type:        optString(data, "type"),
		Date:        optTime(data, "date"),
		CategoryID:  optString(data, "categoryId"),
	}
	return r.Transactions.UpdateTransaction(identity.UserID, stringArg(p.Args, "id"), update)
}

func (r *Resolver) resolveDeleteTransaction(p graphql.ResolveParams) (interface{}, error) {
	identity, err := auth.RequireIdentity(p.Context)
	if err != nil {
		return nil, err
	}
	return r.Transactions.DeleteTransaction(identity.UserID, stringArg(p.Args, "id"))
}

func (r *Resolver) resolveListTransactions(p graphql.ResolveParams) (interface{}, error) {
	identity, err := auth.RequireIdentity(p.Context)
	if err != nil {
		return nil, err
	}
	page := pagination.Page{
		Limit:  intArgOr(p.Args, "limit", 10),
		Offset: intArgOr(p.Args, "offset", 0),
	}
	var filter services.TransactionFilter
	if filters := inputArg(p.Args, "filters"); filters != nil {
		filter = services.TransactionFilter{
			Type:        optString(filters, "type"),
			CategoryID:  optString(filters, "categoryId"),
			Description: optString(filters, "description"),
			Month:       optInt(filters, "month"),
			Year:        optInt(filters, "year"),
			StartDate:   optTime(filters, "startDate"),
			EndDate:     optTime(filters, "endDate"),
		}
	}
	return r.Transactions.ListTransactions(identity.UserID, page, filter)
}

func (r *Resolver) resolveBalanceSummary(p graphql.ResolveParams) (interface{}, error) {
	identity, err := auth.RequireIdentity(p.Context)
	if err != nil {
		return nil, err
	}
	return r.Transactions.GetBalanceSummary(identity.UserID)
}

func (r *Resolver) resolveCategorySummary(p graphql.ResolveParams) (interface{}, error) {
	identity, err := auth.RequireIdentity(p.Context)
	if err != nil {
		return nil, err
	}
	return r.Transactions.GetCategorySummary(identity.UserID)
}
