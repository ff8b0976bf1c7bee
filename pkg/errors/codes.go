// Package errors provides the unified error type and error code taxonomy for
// gem-flux-mcp.  All error codes are grouped by the tool surface's seven-way
// classification, and each also maps to an HTTP status code via HTTPStatus.
package errors

import (
	"net/http"
	"strconv"
)

// ErrorCode is a typed, stable identifier for a failure category.  Codes are
// grouped by the taxonomy class the tool surface reports to callers:
// validation, not-found, infeasibility, library, database, storage, and
// server errors.  Each class occupies its own hundred-block so a new code can
// be inserted without renumbering its neighbours.
type ErrorCode int

const (
	// CodeOK is never attached to an error; GetCode returns it for a nil error.
	CodeOK      ErrorCode = 0
	CodeUnknown ErrorCode = 1

	// ── validation_error (1xx) ────────────────────────────────────────────────
	CodeInvalidParam    ErrorCode = 100
	CodeInvalidAlias    ErrorCode = 101
	CodeInvalidEquation ErrorCode = 102
	CodeInvalidMediaSet ErrorCode = 103
	CodeInvalidModelID  ErrorCode = 104

	// ── not_found_error (2xx) ─────────────────────────────────────────────────
	CodeNotFound         ErrorCode = 200
	CodeModelNotFound    ErrorCode = 201
	CodeMediaNotFound    ErrorCode = 202
	CodeTemplateNotFound ErrorCode = 203
	CodeCompoundNotFound ErrorCode = 204
	CodeReactionNotFound ErrorCode = 205

	// ── infeasibility_error (3xx) ─────────────────────────────────────────────
	CodeInfeasible        ErrorCode = 300
	CodeGapfillExhausted  ErrorCode = 301
	CodeATPCorrectionFail ErrorCode = 302
	CodeUnbounded         ErrorCode = 303

	// ── library_error (4xx) ───────────────────────────────────────────────────
	CodeAnnotatorFailure  ErrorCode = 400
	CodeSolverFailure     ErrorCode = 401
	CodeConstructionError ErrorCode = 402

	// ── database_error (5xx) ──────────────────────────────────────────────────
	CodeBiochemIndexError ErrorCode = 500
	CodeCacheError        ErrorCode = 501
	CodeGraphError        ErrorCode = 502
	CodeSearchIndexError  ErrorCode = 503
	CodeEventBusError     ErrorCode = 504

	// ── storage_error (6xx) ───────────────────────────────────────────────────
	CodeObjectStoreError  ErrorCode = 600
	CodeTemplateLoadError ErrorCode = 601

	// ── server_error (7xx) ────────────────────────────────────────────────────
	CodeInternal     ErrorCode = 700
	CodeConflict     ErrorCode = 701
	CodeUnauthorized ErrorCode = 702
	CodeForbidden    ErrorCode = 703
	CodeRateLimit    ErrorCode = 704
	CodeUnavailable  ErrorCode = 705
)

// codeNames backs ErrorCode.String and is kept in sync with the const block
// above; a code missing here still prints as its numeric value.
var codeNames = map[ErrorCode]string{
	CodeOK:      "OK",
	CodeUnknown: "UNKNOWN",

	CodeInvalidParam:    "INVALID_PARAM",
	CodeInvalidAlias:    "INVALID_ALIAS",
	CodeInvalidEquation: "INVALID_EQUATION",
	CodeInvalidMediaSet: "INVALID_MEDIA_SET",
	CodeInvalidModelID:  "INVALID_MODEL_ID",

	CodeNotFound:         "NOT_FOUND",
	CodeModelNotFound:    "MODEL_NOT_FOUND",
	CodeMediaNotFound:    "MEDIA_NOT_FOUND",
	CodeTemplateNotFound: "TEMPLATE_NOT_FOUND",
	CodeCompoundNotFound: "COMPOUND_NOT_FOUND",
	CodeReactionNotFound: "REACTION_NOT_FOUND",

	CodeInfeasible:        "INFEASIBLE",
	CodeGapfillExhausted:  "GAPFILL_EXHAUSTED",
	CodeATPCorrectionFail: "ATP_CORRECTION_FAILED",
	CodeUnbounded:         "UNBOUNDED",

	CodeAnnotatorFailure:  "ANNOTATOR_FAILURE",
	CodeSolverFailure:     "SOLVER_FAILURE",
	CodeConstructionError: "CONSTRUCTION_ERROR",

	CodeBiochemIndexError: "BIOCHEM_INDEX_ERROR",
	CodeCacheError:        "CACHE_ERROR",
	CodeGraphError:        "GRAPH_ERROR",
	CodeSearchIndexError:  "SEARCH_INDEX_ERROR",
	CodeEventBusError:     "EVENT_BUS_ERROR",

	CodeObjectStoreError:  "OBJECT_STORE_ERROR",
	CodeTemplateLoadError: "TEMPLATE_LOAD_ERROR",

	CodeInternal:     "INTERNAL",
	CodeConflict:     "CONFLICT",
	CodeUnauthorized: "UNAUTHORIZED",
	CodeForbidden:    "FORBIDDEN",
	CodeRateLimit:    "RATE_LIMIT",
	CodeUnavailable:  "UNAVAILABLE",
}

// String renders the code's symbolic name, falling back to its numeric value
// for a code added without a matching codeNames entry.
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "CODE_" + strconv.Itoa(int(c))
}

// Taxonomy is the externally reported error-class string. Every tool error
// response carries one of these seven strings in its error_type field.
func (c ErrorCode) Taxonomy() string {
	switch {
	case c >= 100 && c < 200:
		return "validation_error"
	case c >= 200 && c < 300:
		return "not_found_error"
	case c >= 300 && c < 400:
		return "infeasibility_error"
	case c >= 400 && c < 500:
		return "library_error"
	case c >= 500 && c < 600:
		return "database_error"
	case c >= 600 && c < 700:
		return "storage_error"
	default:
		return "server_error"
	}
}

// HTTPStatus maps a code onto an HTTP status code. No server surface in this
// module calls it: the MCP tool surface reports Taxonomy() instead, and the
// optional admin surface is gRPC.
func (c ErrorCode) HTTPStatus() int {
	switch c.Taxonomy() {
	case "validation_error":
		return http.StatusBadRequest
	case "not_found_error":
		return http.StatusNotFound
	case "infeasibility_error":
		return http.StatusUnprocessableEntity
	case "library_error", "database_error", "storage_error":
		return http.StatusBadGateway
	default:
		switch c {
		case CodeUnauthorized:
			return http.StatusUnauthorized
		case CodeForbidden:
			return http.StatusForbidden
		case CodeConflict:
			return http.StatusConflict
		case CodeRateLimit:
			return http.StatusTooManyRequests
		case CodeUnavailable:
			return http.StatusServiceUnavailable
		default:
			return http.StatusInternalServerError
		}
	}
}
