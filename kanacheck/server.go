package kanacheck

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Alfex4936/kanacheck/internal/middleware"
	"github.com/Alfex4936/kanacheck/internal/parse"
	"github.com/Alfex4936/kanacheck/internal/util"
)

// CheckRequest is the HTTP request body for /v1/check.
type CheckRequest struct {
	Text       string          `json:"text"`                 // text to check (required)
	Allow      json.RawMessage `json:"allow,omitempty"`      // allow list, see Options.Allow
	StrictMode *bool           `json:"strictMode,omitempty"` // server default when absent
	Timeout    int             `json:"timeout,omitempty"`    // seconds, default 8
}

// Server serves the check API. The server-wide allow list (from a
// file) applies to requests that send no "allow" of their own.
type Server struct {
	logger zerolog.Logger
	strict bool

	mu     sync.RWMutex
	allow  []string
	engine *Engine // allow + strict, reused across requests
}

// NewServer builds a Server. allow nil means the built-in list.
func NewServer(logger zerolog.Logger, allow []string, strict bool) *Server {
	s := &Server{logger: logger, strict: strict}
	s.SetAllow(allow)
	return s
}

// SetAllow swaps the server-wide allow list.
func (s *Server) SetAllow(allow []string) {
	e := NewEngine(Options{Allow: allow, StrictMode: s.strict})
	s.mu.Lock()
	s.allow, s.engine = allow, e
	s.mu.Unlock()
}

func (s *Server) current() ([]string, *Engine) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.allow, s.engine
}

// engineFor picks the engine for one request, compiling a new one only
// when the request overrides the server settings.
func (s *Server) engineFor(req *CheckRequest) (*Engine, error) {
	base, e := s.current()
	list, err := parse.JSON(req.Allow)
	if err != nil {
		return nil, err
	}
	strict := s.strict
	if req.StrictMode != nil {
		strict = *req.StrictMode
	}
	if list == nil && strict == s.strict {
		return e, nil
	}
	if list == nil {
		list = base
	}
	return NewEngine(Options{Allow: list, StrictMode: strict}), nil
}

// CheckHandler handles POST /v1/check requests.
func (s *Server) CheckHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	log := s.logger.With().Str("rid", middleware.GetRequestID(r)).Logger()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeError(w, http.StatusRequestEntityTooLarge, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, fmt.Sprintf("read body: %v", err))
		return
	}
	defer r.Body.Close()

	var req CheckRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, ErrEmptyText.Error())
		return
	}

	engine, err := s.engineFor(&req)
	if err != nil {
		log.Warn().Err(err).Msg("rejected allow list")
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	timeout := 8 * time.Second
	if req.Timeout > 0 {
		timeout = time.Duration(req.Timeout) * time.Second
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	res, err := engine.CheckDocument(ctx, req.Text)
	if err != nil {
		log.Error().Err(err).Msg("check failed")
		writeError(w, http.StatusServiceUnavailable, fmt.Sprintf("check failed: %v", err))
		return
	}
	log.Debug().
		Int("chars", res.CharCount).
		Int("units", res.UnitCount).
		Int("findings", res.FindingCount).
		Msg("checked")

	writeJSON(w, http.StatusOK, res)
}

// AllowListHandler handles GET /v1/allowlist: the expanded server list.
func (s *Server) AllowListHandler(w http.ResponseWriter, r *http.Request) {
	_, e := s.current()
	writeJSON(w, http.StatusOK, map[string][]string{"allow": e.AllowEntries()})
}

// HealthHandler handles GET /health requests
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "kanacheck",
	})
}

// OpenAPIHandler serves the OpenAPI 3.0 spec at GET /openapi.json
func OpenAPIHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, openAPISpec)
}

// DocsHandler serves the Redoc UI at GET /
func DocsHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, redocHTML)
}

// writeJSON keeps 「」 and <> readable in the output.
func writeJSON(w http.ResponseWriter, status int, v any) {
	out, err := util.MarshalNoEscape(v, true)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	w.Write(out)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

const openAPISpec = `{
  "openapi": "3.0.3",
  "info": {
    "title": "kanacheck API",
    "description": "Flags kanji, hiragana and katakana typed in place of a look-alike from the neighbouring script.",
    "version": "1.0.0"
  },
  "paths": {
    "/v1/check": {
      "post": {
        "summary": "Check text",
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": { "$ref": "#/components/schemas/CheckRequest" },
              "examples": {
                "basic": { "value": { "text": "二クロム線とコー匕ー" } },
                "strict": { "value": { "text": "アへン", "strictMode": true } },
                "allow": { "value": { "text": "ライ千", "allow": ["recommend", "ライ千"] } }
              }
            }
          }
        },
        "responses": {
          "200": {
            "description": "Findings",
            "content": {
              "application/json": {
                "schema": { "$ref": "#/components/schemas/Result" },
                "example": {
                  "original": "コー匕ー",
                  "corrected": "コーヒー",
                  "charCount": 4,
                  "unitCount": 1,
                  "findingCount": 1,
                  "units": [
                    {
                      "idx": 0, "offset": 0, "line": 1, "input": "コー匕ー",
                      "findings": [
                        {
                          "rule": "kanji-in-katakana", "index": 2, "length": 1,
                          "original": "匕", "corrected": "ヒ",
                          "message": "漢字の「匕」はカタカナの「ヒ」の誤りの可能性があります",
                          "fix": { "range": [2, 3], "text": "ヒ" },
                          "offset": 2, "line": 1, "column": 3
                        }
                      ]
                    }
                  ]
                }
              }
            }
          },
          "400": { "description": "Bad request (JSON error, empty text, allow list with non-string members)" },
          "413": { "description": "Body too large" }
        }
      }
    },
    "/v1/allowlist": {
      "get": {
        "summary": "Expanded server allow list",
        "responses": { "200": { "description": "{\"allow\": [...]}" } }
      }
    },
    "/health": {
      "get": {
        "summary": "Health",
        "responses": {
          "200": {
            "description": "Service is up",
            "content": { "application/json": { "example": { "status": "ok", "service": "kanacheck" } } }
          }
        }
      }
    }
  },
  "components": {
    "schemas": {
      "CheckRequest": {
        "type": "object",
        "required": ["text"],
        "properties": {
          "text":       { "type": "string" },
          "allow":      { "type": "array", "items": { "type": "string" }, "description": "Exceptions. \"$num$\" expands to 二/三/八. Include \"recommend\" to keep the built-in list." },
          "strictMode": { "type": "boolean", "description": "Also flag へ between katakana" },
          "timeout":    { "type": "integer", "description": "Seconds, default 8" }
        }
      },
      "Result": {
        "type": "object",
        "properties": {
          "original":     { "type": "string" },
          "corrected":    { "type": "string", "description": "Every fix applied" },
          "charCount":    { "type": "integer" },
          "unitCount":    { "type": "integer" },
          "findingCount": { "type": "integer" },
          "units":        { "type": "array", "items": { "$ref": "#/components/schemas/Unit" } }
        }
      },
      "Unit": {
        "type": "object",
        "properties": {
          "idx":      { "type": "integer" },
          "offset":   { "type": "integer" },
          "line":     { "type": "integer" },
          "input":    { "type": "string" },
          "findings": { "type": "array", "items": { "$ref": "#/components/schemas/Finding" } }
        }
      },
      "Finding": {
        "type": "object",
        "properties": {
          "rule":      { "type": "string", "enum": ["kanji-in-katakana", "hiragana-in-katakana", "katakana-in-hiragana"] },
          "index":     { "type": "integer", "description": "Rune offset in the line" },
          "length":    { "type": "integer" },
          "original":  { "type": "string" },
          "corrected": { "type": "string" },
          "message":   { "type": "string" },
          "fix":       { "type": "object", "properties": { "range": { "type": "array", "items": { "type": "integer" } }, "text": { "type": "string" } } },
          "offset":    { "type": "integer", "description": "Rune offset in the document" },
          "line":      { "type": "integer" },
          "column":    { "type": "integer" }
        }
      }
    }
  }
}`

const redocHTML = `<!DOCTYPE html>
<html>
<head>
  <title>kanacheck API Docs</title>
  <meta charset="utf-8"/>
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <style>body { margin: 0; padding: 0; }</style>
</head>
<body>
  <redoc spec-url="/openapi.json" expand-responses="200" hide-download-button></redoc>
  <script src="https://cdn.jsdelivr.net/npm/redoc@latest/bundles/redoc.standalone.js"></script>
</body>
</html>`
