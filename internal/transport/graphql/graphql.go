// Package graphql serves the app channel's read model over GraphQL: the
// caller's groups with their members and activities, the notification
// history and the next outstanding response. Writes go through the REST API.
package graphql

import (
	_ "embed"
	"log/slog"

	"github.com/99designs/gqlgen/graphql"
	"github.com/99designs/gqlgen/graphql/handler"
	"github.com/99designs/gqlgen/graphql/handler/transport"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
)

//go:embed schema.graphqls
var schemaSource string

var parsedSchema = gqlparser.MustLoadSchema(&ast.Source{Name: "schema.graphqls", Input: schemaSource})

// NewHandler returns the GraphQL HTTP handler for es. Queries are accepted
// over GET and POST; domain errors are mapped by NewErrorPresenter.
func NewHandler(es graphql.ExecutableSchema, log *slog.Logger) *handler.Server {
	srv := handler.New(es)
	srv.AddTransport(transport.Options{})
	srv.AddTransport(transport.GET{})
	srv.AddTransport(transport.POST{})
	srv.SetErrorPresenter(NewErrorPresenter(log))
	return srv
}
