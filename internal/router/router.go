// Package router, method + path pattern eşleşmesiyle çalışan küçük bir
// HTTP router'ı sağlar. Route'lar `{param}` parçaları içerebilir, gruplar
// ortak prefix ve middleware taşır.
package router

import (
	"context"
	"net/http"
	"sort"
	"strings"

	"github.com/biyonik/person-directory/internal/http/request"
	"github.com/biyonik/person-directory/internal/http/response"
	"github.com/biyonik/person-directory/internal/middleware"
)

// HandlerFunc, router'ın handler tipidir. Standart http.HandlerFunc'tan
// farkı *request.Request almasıdır.
type HandlerFunc func(http.ResponseWriter, *request.Request)

// Router, HTTP routing yapısını temsil eder.
type Router struct {
	routes      []*Route
	middlewares []middleware.Middleware
}

// Route, tek bir HTTP route'unu temsil eder.
type Route struct {
	method      string
	path        string
	handler     HandlerFunc
	middlewares []middleware.Middleware
}

// RouteGroup, ortak prefix ve middleware paylaşan route'lar.
type RouteGroup struct {
	prefix      string
	middlewares []middleware.Middleware
	router      *Router
}

// New, yeni bir Router oluşturur.
func New() *Router {
	return &Router{}
}

// Use, router seviyesinde global middleware ekler. Global middleware'ler
// eşleşmeyen isteklerde de çalışır.
func (r *Router) Use(m middleware.Middleware) {
	r.middlewares = append(r.middlewares, m)
}

func (r *Router) GET(path string, handler HandlerFunc) *Route {
	return r.addRoute(http.MethodGet, path, handler)
}

func (r *Router) POST(path string, handler HandlerFunc) *Route {
	return r.addRoute(http.MethodPost, path, handler)
}

func (r *Router) addRoute(method, path string, handler HandlerFunc) *Route {
	route := &Route{method: method, path: path, handler: handler}
	r.routes = append(r.routes, route)
	return route
}

// Middleware, route'a middleware ekler (method chaining için).
//
// Kullanım:
//
//	r.POST("/cache/flush", home.FlushCache).
//	    Middleware(middleware.RateLimit(10, 60))
func (route *Route) Middleware(m middleware.Middleware) *Route {
	route.middlewares = append(route.middlewares, m)
	return route
}

// Group, route grubu oluşturur.
//
// Kullanım:
//
//	api := r.Group("/api")
//	api.Use(middleware.RateLimit(100, 60))
//	api.GET("/persons", handler)
func (r *Router) Group(prefix string) *RouteGroup {
	return &RouteGroup{prefix: strings.TrimRight(prefix, "/"), router: r}
}

// Use, grup seviyesinde middleware ekler. Sadece bu çağrıdan sonra
// tanımlanan route'ları etkiler.
func (g *RouteGroup) Use(m middleware.Middleware) {
	g.middlewares = append(g.middlewares, m)
}

func (g *RouteGroup) GET(path string, handler HandlerFunc) *Route {
	return g.add(http.MethodGet, path, handler)
}

func (g *RouteGroup) POST(path string, handler HandlerFunc) *Route {
	return g.add(http.MethodPost, path, handler)
}

func (g *RouteGroup) add(method, path string, handler HandlerFunc) *Route {
	route := g.router.addRoute(method, g.prefix+path, handler)
	route.middlewares = append(append([]middleware.Middleware{}, g.middlewares...), route.middlewares...)
	return route
}

// ServeHTTP, http.Handler interface'ini implement eder.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	handler := middleware.Chain(http.HandlerFunc(r.handleRequest), r.middlewares...)
	handler.ServeHTTP(w, req)
}

// handleRequest, gelen isteği uygun route'a yönlendirir. Path eşleşip
// method eşleşmezse 405 ve Allow header'ı, hiç eşleşme yoksa 404 döner.
func (r *Router) handleRequest(w http.ResponseWriter, req *http.Request) {
	var allowed []string

	for _, route := range r.routes {
		params, matched := matchRoute(route.path, req.URL.Path)
		if !matched {
			continue
		}
		if route.method != req.Method {
			allowed = append(allowed, route.method)
			continue
		}

		ctx := context.WithValue(req.Context(), request.RequestParamsKey, params)
		handler := middleware.Chain(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			route.handler(w, request.New(req))
		}), route.middlewares...)

		handler.ServeHTTP(w, req.WithContext(ctx))
		return
	}

	if len(allowed) > 0 {
		sort.Strings(allowed)
		w.Header().Set("Allow", strings.Join(allowed, ", "))
		response.MethodNotAllowed(w)
		return
	}

	response.NotFound(w, "Sayfa bulunamadı")
}

// matchRoute, route pattern'i ile URL path'ini karşılaştırır.
// Parametreleri extract eder ve match durumunu döndürür.
//
// Pattern örnekleri:
//
//	/persons/{email}
//	/persons/card.png
func matchRoute(pattern, path string) (map[string]string, bool) {
	patternParts := strings.Split(strings.Trim(pattern, "/"), "/")
	pathParts := strings.Split(strings.Trim(path, "/"), "/")

	if len(patternParts) != len(pathParts) {
		return nil, false
	}

	params := make(map[string]string)
	for i, part := range patternParts {
		if strings.HasPrefix(part, "{") && strings.HasSuffix(part, "}") {
			params[strings.Trim(part, "{}")] = pathParts[i]
			continue
		}

		// Statik part eşleşmeli (route'lar küçük harfle tanımlanır)
		if part != strings.ToLower(pathParts[i]) {
			return nil, false
		}
	}

	return params, true
}
