package graphql

import (
	"net/http"

	gql "github.com/graphql-go/graphql"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type RequestPayload struct {
	Query         string                 `json:"query" validate:"required"`
	Variables     map[string]interface{} `json:"variables,omitempty"`
	OperationName string                 `json:"operationName,omitempty"`
	Extensions    map[string]interface{} `json:"extensions,omitempty"`
}

type handler struct {
	schema gql.Schema
}

// execute runs a single GraphQL operation. Resolver failures are reported in
// the errors array of a 200 response; only an unreadable request fails at the
// HTTP level.
func (h *handler) execute(c echo.Context) error {
	params := RequestPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	result := gql.Do(gql.Params{
		Schema:         h.schema,
		RequestString:  params.Query,
		VariableValues: params.Variables,
		OperationName:  params.OperationName,
		Context:        c.Request().Context(),
	})

	return errors.WithStack(c.JSON(http.StatusOK, result))
}
