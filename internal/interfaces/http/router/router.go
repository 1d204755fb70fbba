// Package router mounts the supplier order endpoints on a gin engine under
// a versioned /api prefix.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Mounter attaches a resource's endpoints to the versioned API group
type Mounter interface {
	Mount(api *gin.RouterGroup)
}

// Router collects resources and mounts them once Setup is called
type Router struct {
	engine     *gin.Engine
	version    string
	middleware []gin.HandlerFunc
	mounters   []Mounter
}

// Option configures a Router
type Option func(*Router)

// WithAPIVersion sets the version segment, e.g. "v1"
func WithAPIVersion(version string) Option {
	return func(r *Router) {
		r.version = version
	}
}

// NewRouter returns a Router for engine, defaulting to /api/v1
func NewRouter(engine *gin.Engine, opts ...Option) *Router {
	r := &Router{engine: engine, version: "v1"}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Use adds middleware that only runs for API routes. Handlers registered
// directly on the engine, such as /health, skip it.
func (r *Router) Use(middleware ...gin.HandlerFunc) *Router {
	r.middleware = append(r.middleware, middleware...)
	return r
}

// Register queues m for Setup
func (r *Router) Register(m Mounter) *Router {
	r.mounters = append(r.mounters, m)
	return r
}

// Setup creates the /api/{version} group and mounts every registered resource
func (r *Router) Setup() {
	api := r.engine.Group("/api/"+r.version, r.middleware...)
	for _, m := range r.mounters {
		m.Mount(api)
	}
}

// Resource is one top-level path segment and the endpoints below it
type Resource struct {
	prefix    string
	endpoints []endpoint
}

type endpoint struct {
	method  string
	path    string
	handler gin.HandlerFunc
}

// NewResource starts a resource mounted at prefix, e.g. "/orders"
func NewResource(prefix string) *Resource {
	return &Resource{prefix: prefix}
}

// GET adds a read endpoint
func (res *Resource) GET(path string, h gin.HandlerFunc) *Resource {
	return res.add(http.MethodGet, path, h)
}

// POST adds an endpoint that accepts a JSON body
func (res *Resource) POST(path string, h gin.HandlerFunc) *Resource {
	return res.add(http.MethodPost, path, h)
}

func (res *Resource) add(method, path string, h gin.HandlerFunc) *Resource {
	res.endpoints = append(res.endpoints, endpoint{method: method, path: path, handler: h})
	return res
}

// Mount implements Mounter
func (res *Resource) Mount(api *gin.RouterGroup) {
	group := api.Group(res.prefix)
	for _, e := range res.endpoints {
		group.Handle(e.method, e.path, e.handler)
	}
}
