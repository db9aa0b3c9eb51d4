// Package errs provides error values carrying the operation that failed and a
// kind that classifies the failure, plus translation of those errors into HTTP
// responses.
package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	json "github.com/goccy/go-json"
	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Op describes an operation, usually as the package and method,
// such as "viewService.Mount".
type Op string

// Parameter names the input that caused the error.
type Parameter string

// Kind defines the kind of error this is.
type Kind uint8

const (
	Other          Kind = iota // Unclassified error.
	InvalidRequest             // Request could not be decoded.
	Validation                 // Input failed validation.
	NotExist                   // Item does not exist.
	IO                         // External I/O error such as a network failure.
	Internal                   // Internal error or inconsistency.
)

func (k Kind) String() string {
	switch k {
	case InvalidRequest:
		return "invalid_request"
	case Validation:
		return "validation_error"
	case NotExist:
		return "not_exist"
	case IO:
		return "io_error"
	case Internal:
		return "internal_error"
	default:
		return "unknown_error"
	}
}

func (k Kind) statusCode() int {
	switch k {
	case InvalidRequest, Validation:
		return http.StatusBadRequest
	case NotExist:
		return http.StatusNotFound
	case IO:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

type Error struct {
	Op    Op
	Kind  Kind
	Param Parameter
	Err   error
}

func (e *Error) isZero() bool {
	return e.Op == "" && e.Kind == 0 && e.Param == "" && e.Err == nil
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Error() string {
	b := new(strings.Builder)

	if e.Op != "" {
		b.WriteString(string(e.Op))
	}

	if e.Param != "" {
		pad(b, ": ")
		b.WriteString("parameter ")
		b.WriteString(string(e.Param))
	}

	if e.Kind != 0 {
		pad(b, ": ")
		b.WriteString(e.Kind.String())
	}

	if e.Err != nil {
		var prev *Error
		if errors.As(e.Err, &prev) {
			if !prev.isZero() {
				pad(b, ": ")
				b.WriteString(e.Err.Error())
			}
		} else {
			pad(b, ": ")
			b.WriteString(e.Err.Error())
		}
	}

	if b.Len() == 0 {
		return "no error"
	}

	return b.String()
}

func pad(b *strings.Builder, str string) {
	if b.Len() == 0 {
		return
	}

	b.WriteString(str)
}

// E builds an error value from its arguments. The type of each argument
// determines its meaning; a string becomes a new error with a stack trace.
// If Kind is not given it is inherited from a wrapped *Error.
func E(args ...any) error {
	if len(args) == 0 {
		panic("call to errs.E with no arguments")
	}

	e := &Error{}

	for _, arg := range args {
		switch arg := arg.(type) {
		case Op:
			e.Op = arg
		case Kind:
			e.Kind = arg
		case Parameter:
			e.Param = arg
		case string:
			e.Err = pkgerrors.New(arg)
		case *Error:
			cp := *arg
			e.Err = &cp
		case error:
			e.Err = arg
		default:
			return fmt.Errorf("unknown type %T, value %v in error call", arg, arg)
		}
	}

	var prev *Error
	if errors.As(e.Err, &prev) && e.Kind == Other {
		e.Kind = prev.Kind
	}

	return e
}

// KindIs reports whether err is an *Error of the given kind. If the
// outermost kind is Other, wrapped errors are consulted.
func KindIs(kind Kind, err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}

	if e.Kind != Other {
		return e.Kind == kind
	}

	if e.Err != nil {
		return KindIs(kind, e.Err)
	}

	return false
}

// OpStack returns the chain of operations recorded in err, outermost first.
func OpStack(err error) []string {
	var ops []string

	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			break
		}

		if e.Op != "" {
			ops = append(ops, string(e.Op))
		}

		err = e.Err
	}

	return ops
}

type errResponse struct {
	Error svcError `json:"error"`
}

type svcError struct {
	Kind      string `json:"kind,omitempty"`
	Parameter string `json:"param,omitempty"`
	Message   string `json:"message,omitempty"`
}

// HTTPErrorResponse logs err and writes a JSON error body with the
// status code derived from its kind.
func HTTPErrorResponse(w http.ResponseWriter, logger zerolog.Logger, err error) {
	if err == nil {
		logger.Error().Msg("nil error passed to HTTPErrorResponse")
		w.WriteHeader(http.StatusInternalServerError)

		return
	}

	var e *Error
	if !errors.As(err, &e) {
		logger.Error().Err(err).Msg("unknown error")
		writeError(w, logger, http.StatusInternalServerError, svcError{
			Kind:    Internal.String(),
			Message: http.StatusText(http.StatusInternalServerError),
		})

		return
	}

	kind := e.Kind
	if kind == Other {
		for _, k := range []Kind{InvalidRequest, Validation, NotExist, IO, Internal} {
			if KindIs(k, err) {
				kind = k
				break
			}
		}
	}

	logger.Error().
		Err(err).
		Strs("op_stack", OpStack(err)).
		Str("kind", kind.String()).
		Msg("error response")

	code := kind.statusCode()

	msg := err.Error()
	if code >= http.StatusInternalServerError {
		msg = http.StatusText(code)
	}

	writeError(w, logger, code, svcError{
		Kind:      kind.String(),
		Parameter: string(e.Param),
		Message:   msg,
	})
}

func writeError(w http.ResponseWriter, logger zerolog.Logger, code int, body svcError) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)

	err := json.NewEncoder(w).Encode(errResponse{Error: body})
	if err != nil {
		logger.Error().Err(err).Msg("encoding error response")
	}
}
