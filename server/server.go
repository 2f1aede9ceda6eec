// Package server exposes the GraphQL API over HTTP. There is a single
// /graphql endpoint; request ids, logging, panic recovery and CORS all
// happen in middleware so the handler stays a bare schema executor.
package server

import (
	"net/http"

	"github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"

	"github.com/jrsteele09/go-blog-server/graph"
	"github.com/jrsteele09/go-blog-server/internal/config"
	"github.com/jrsteele09/go-blog-server/internal/errors"
	"github.com/jrsteele09/go-blog-server/session"
	"github.com/jrsteele09/go-blog-server/storage"
	"github.com/jrsteele09/go-blog-server/token"
)

type Server struct {
	env      string // Environment (e.g., "DEV", "production")
	mux      *http.ServeMux
	routes   []string
	config   config.Config
	schema   *graphql.Schema
	sessions *session.ContextBuilder
}

func New(config config.Config, repos storage.Repos) (*Server, error) {
	tokens := token.NewService(token.NewHMACSigner(config.GetTokenSecret()))
	resolver := graph.NewResolver(repos, tokens, config)

	schema, err := graphql.ParseSchema(graph.Schema, resolver)
	if err != nil {
		return nil, errors.Wrapf(err, "server.New parse schema")
	}

	s := &Server{
		mux:      http.NewServeMux(),
		config:   config,
		schema:   schema,
		sessions: session.NewContextBuilder(tokens, repos),
	}
	s.env = config.GetEnv()

	s.initRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) initRoutes() {
	graphqlHandler := &relay.Handler{Schema: s.schema}

	s.RegisterRouteFunc("/graphql", ChainMiddleware(
		graphqlHandler.ServeHTTP,
		s.APIMiddleware(s.sessions.Middleware)...,
	))
	s.RegisterRouteFunc("GET /healthz", s.healthHandler())
}

func (s *Server) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}
}
