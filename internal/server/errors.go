package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/parfolio/internal/agent"
	"github.com/jonathan/parfolio/internal/chains"
	"github.com/jonathan/parfolio/internal/db"
)

// HTTPStatus maps domain errors to response codes. Model-side failures are
// 502s: the request was fine, the upstream model was not.
func HTTPStatus(err error) int {
	var (
		malformed *agent.MalformedAgentOutput
		invoke    *chains.InvokeError
		parse     *chains.ParseError
		output    *chains.OutputError
	)
	switch {
	case errors.Is(err, db.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &malformed), errors.As(err, &invoke), errors.As(err, &parse), errors.As(err, &output):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
