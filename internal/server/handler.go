// Package server exposes the interpreter over HTTP/3, with an optional
// HTTP/1.1 listener for clients without QUIC.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/vlang-lab/vlang/internal/ast"
	"github.com/vlang-lab/vlang/internal/cli"
	"github.com/vlang-lab/vlang/internal/diagnostic"
	"github.com/vlang-lab/vlang/internal/env"
	"github.com/vlang-lab/vlang/internal/interpreter"
	"github.com/vlang-lab/vlang/internal/parser"
)

// DefaultMaxBody bounds request bodies when Options.MaxBody is unset.
const DefaultMaxBody = 1 << 20

// DefaultTimeout bounds one /v1/run evaluation when Options.Timeout is unset.
const DefaultTimeout = 10 * time.Second

// Options configures the handler.
type Options struct {
	MaxBody        int64
	FloatPrecision int
	MaxCallDepth   int
	Timeout        time.Duration
	Logger         *cli.Logger
}

// Request is the body of the POST endpoints.
type Request struct {
	Source   string `json:"source"`
	Filename string `json:"filename,omitempty"`
}

// Response is the body returned by every endpoint except /v1/version.
type Response struct {
	Output      string                 `json:"output,omitempty"`
	Diagnostics []diagnostic.Record    `json:"diagnostics"`
	Symbols     *env.SymbolTable       `json:"symbols,omitempty"`
	AST         map[string]interface{} `json:"ast,omitempty"`
	OK          bool                   `json:"ok"`
}

// VersionResponse is returned by /v1/version.
type VersionResponse struct {
	*cli.VersionInfo
	Satisfies *bool  `json:"satisfies,omitempty"`
	Error     string `json:"error,omitempty"`
}

type handler struct {
	opts Options
}

// NewHandler returns the endpoint routes:
//
//	POST /v1/run      evaluate within Options.Timeout and return output,
//	                  diagnostics and symbols
//	POST /v1/check    parse and check break, continue and return placement
//	POST /v1/ast      parse and return the syntax tree
//	GET  /v1/version  version info; ?requires=<constraint> checks it
func NewHandler(opts Options) http.Handler {
	if opts.MaxBody <= 0 {
		opts.MaxBody = DefaultMaxBody
	}
	if opts.MaxCallDepth <= 0 {
		opts.MaxCallDepth = interpreter.DefaultMaxDepth
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	h := &handler{opts: opts}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/run", h.run)
	mux.HandleFunc("POST /v1/check", h.check)
	mux.HandleFunc("POST /v1/ast", h.ast)
	mux.HandleFunc("GET /v1/version", h.version)
	return mux
}

func (h *handler) logf(format string, args ...interface{}) {
	if h.opts.Logger != nil {
		h.opts.Logger.Info(format, args...)
	}
}

func (h *handler) decode(w http.ResponseWriter, r *http.Request) (*Request, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.opts.MaxBody)
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
		} else {
			writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		}
		return nil, false
	}
	if strings.TrimSpace(req.Filename) == "" {
		req.Filename = "main.vl"
	}
	return &req, true
}

func (h *handler) run(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	// a client that goes away cancels the evaluation as well
	ctx, cancel := context.WithTimeout(r.Context(), h.opts.Timeout)
	defer cancel()

	opts := []interpreter.Option{
		interpreter.WithContext(ctx),
		interpreter.WithMaxDepth(h.opts.MaxCallDepth),
	}
	if h.opts.FloatPrecision > 0 {
		opts = append(opts, interpreter.WithFloatPrecision(h.opts.FloatPrecision))
	}
	result := interpreter.Run(req.Source, req.Filename, opts...)
	h.logf("run %s: %d diagnostic(s)", req.Filename, len(result.Diagnostics))

	resp := &Response{
		Output:      result.Output,
		Diagnostics: diagnostic.Records(result.Diagnostics),
		OK:          !result.HasErrors(),
	}
	if result.Program != nil {
		resp.Symbols = result.Symbols
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handler) check(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	prog, errs := parser.ParseSource(req.Source, req.Filename)
	if len(errs) == 0 {
		errs = interpreter.Validate(prog)
	}
	diags := diagnostic.FromErrors(errs)
	h.logf("check %s: %d diagnostic(s)", req.Filename, len(diags))
	writeJSON(w, http.StatusOK, &Response{Diagnostics: diagnostic.Records(diags), OK: len(diags) == 0})
}

func (h *handler) ast(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	prog, errs := parser.ParseSource(req.Source, req.Filename)
	resp := &Response{Diagnostics: diagnostic.Records(diagnostic.FromErrors(errs)), OK: len(errs) == 0}
	if prog != nil && len(errs) == 0 {
		resp.AST = ast.Dump(prog)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handler) version(w http.ResponseWriter, r *http.Request) {
	resp := &VersionResponse{VersionInfo: cli.GetVersionInfo()}
	if requires := r.URL.Query().Get("requires"); requires != "" {
		err := cli.CheckVersion(requires)
		ok := err == nil
		resp.Satisfies = &ok
		if err != nil {
			resp.Error = err.Error()
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
