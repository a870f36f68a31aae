package main

import (
	"encoding/json"
	"fmt"
	"time"

	fuzzypath "github.com/baditaflorin/go_fuzzypath"
	"github.com/baditaflorin/go_fuzzypath/internal/ports"
	"github.com/valyala/fasthttp"
)

// PathsRequest carries a batch of raw paths
type PathsRequest struct {
	Paths []string `json:"paths"`
}

// NormalizeResponse lists the normalized forms in request order
type NormalizeResponse struct {
	Paths []fuzzypath.Path `json:"paths"`
}

// CompareRequest carries two raw paths
type CompareRequest struct {
	A string `json:"a"`
	B string `json:"b"`
}

// CompareResponse reports equality and ordering of two normalized paths
type CompareResponse struct {
	Equal bool           `json:"equal"`
	Order int            `json:"order"`
	A     fuzzypath.Path `json:"a"`
	B     fuzzypath.Path `json:"b"`
}

// DedupeResponse lists groups sorted by normalized path
type DedupeResponse struct {
	Groups     []fuzzypath.Group `json:"groups"`
	Duplicates int               `json:"duplicates"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

type server struct {
	logger   ports.Logger
	maxPaths int
}

func newServer(logger ports.Logger, maxPaths int) *server {
	return &server{logger: logger, maxPaths: maxPaths}
}

// handle is the main fasthttp request handler
func (s *server) handle(ctx *fasthttp.RequestCtx) {
	startTime := time.Now()

	ctx.Response.Header.Set("Content-Type", "application/json")

	switch string(ctx.Path()) {
	case "/health":
		s.handleHealthCheck(ctx)
	case "/normalize":
		s.handleNormalize(ctx)
	case "/compare":
		s.handleCompare(ctx)
	case "/dedupe":
		s.handleDedupe(ctx)
	default:
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		s.writeJSONError(ctx, "Not found")
	}

	s.logger.Info("Request processed",
		"method", string(ctx.Method()),
		"path", string(ctx.Path()),
		"status", ctx.Response.StatusCode(),
		"ip", ctx.RemoteIP().String(),
		"duration", time.Since(startTime),
	)
}

// handleHealthCheck responds to health check requests
func (s *server) handleHealthCheck(ctx *fasthttp.RequestCtx) {
	ctx.SetStatusCode(fasthttp.StatusOK)
	s.writeJSONResponse(ctx, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (s *server) handleNormalize(ctx *fasthttp.RequestCtx) {
	var req PathsRequest
	if !s.decodePost(ctx, &req) || !s.checkBatch(ctx, req.Paths) {
		return
	}

	resp := NormalizeResponse{Paths: make([]fuzzypath.Path, len(req.Paths))}
	for i, p := range req.Paths {
		resp.Paths[i] = fuzzypath.New(p)
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	s.writeJSONResponse(ctx, resp)
}

func (s *server) handleCompare(ctx *fasthttp.RequestCtx) {
	var req CompareRequest
	if !s.decodePost(ctx, &req) {
		return
	}

	a, b := fuzzypath.New(req.A), fuzzypath.New(req.B)
	ctx.SetStatusCode(fasthttp.StatusOK)
	s.writeJSONResponse(ctx, CompareResponse{
		Equal: a.Equal(b),
		Order: a.Compare(b),
		A:     a,
		B:     b,
	})
}

func (s *server) handleDedupe(ctx *fasthttp.RequestCtx) {
	var req PathsRequest
	if !s.decodePost(ctx, &req) || !s.checkBatch(ctx, req.Paths) {
		return
	}

	groups := fuzzypath.GroupInputs(req.Paths)
	resp := DedupeResponse{
		Groups:     groups,
		Duplicates: len(fuzzypath.Duplicates(groups)),
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	s.writeJSONResponse(ctx, resp)
}

// decodePost accepts only POST requests and parses the JSON body into dst.
// It writes the error response itself and reports whether handling may go on.
func (s *server) decodePost(ctx *fasthttp.RequestCtx, dst interface{}) bool {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		s.writeJSONError(ctx, "Method not allowed")
		return false
	}
	if err := json.Unmarshal(ctx.PostBody(), dst); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		s.writeJSONError(ctx, "Invalid request: "+err.Error())
		return false
	}
	return true
}

func (s *server) checkBatch(ctx *fasthttp.RequestCtx, paths []string) bool {
	if len(paths) > s.maxPaths {
		ctx.SetStatusCode(fasthttp.StatusRequestEntityTooLarge)
		s.writeJSONError(ctx, fmt.Sprintf("Too many paths: %d (max %d)", len(paths), s.maxPaths))
		return false
	}
	return true
}

// writeJSONResponse writes a JSON response to the context
func (s *server) writeJSONResponse(ctx *fasthttp.RequestCtx, data interface{}) {
	response, err := json.Marshal(data)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		s.logger.Error("Error marshaling JSON response", "error", err)
		s.writeJSONError(ctx, "Internal server error")
		return
	}

	ctx.SetBody(response)
}

// writeJSONError writes a JSON error response to the context
func (s *server) writeJSONError(ctx *fasthttp.RequestCtx, message string) {
	response, err := json.Marshal(ErrorResponse{Error: message})
	if err != nil {
		s.logger.Error("Error marshaling JSON error response", "error", err)
		ctx.SetBodyString(`{"error":"Internal server error"}`)
		return
	}

	ctx.SetBody(response)
}
