package http

import (
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

func pathParam(ctx echo.Context, name string) (string, error) {
	var value string
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &value,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	return value, err
}

// ListBidsParams are the query parameters of GET /bids. Absent parameters stay nil.
type ListBidsParams struct {
	Status *string
	Q      *string
	Limit  *int
	Offset *int
}

func bindListBidsParams(ctx echo.Context) (ListBidsParams, error) {
	var params ListBidsParams
	q := ctx.QueryParams()
	if err := runtime.BindQueryParameter("form", true, false, "status", q, &params.Status); err != nil {
		return params, err
	}
	if err := runtime.BindQueryParameter("form", true, false, "q", q, &params.Q); err != nil {
		return params, err
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", q, &params.Limit); err != nil {
		return params, err
	}
	if err := runtime.BindQueryParameter("form", true, false, "offset", q, &params.Offset); err != nil {
		return params, err
	}
	return params, nil
}

func valueOr[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
