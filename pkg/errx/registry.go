package errx

import (
	"fmt"
	"net/http"
	"sync"
)

// Code is a registry-qualified error code such as "RESUME.NOT_FOUND".
type Code string

func (c Code) String() string { return string(c) }

type definition struct {
	typ       Type
	status    int
	message   string
	retryable bool
}

// Registry holds the error codes of one domain.
type Registry struct {
	prefix string

	mu   sync.RWMutex
	defs map[Code]definition
}

func NewRegistry(prefix string) *Registry {
	return &Registry{
		prefix: prefix,
		defs:   make(map[Code]definition),
	}
}

// Register declares a code. Registering the same code twice panics, since
// codes are declared in package-level vars and a clash is a programming error.
func (r *Registry) Register(code string, t Type, httpStatus int, message string) Code {
	return r.register(code, definition{typ: t, status: httpStatus, message: message})
}

// RegisterRetryable declares a code whose errors callers may retry.
func (r *Registry) RegisterRetryable(code string, t Type, httpStatus int, message string) Code {
	return r.register(code, definition{typ: t, status: httpStatus, message: message, retryable: true})
}

func (r *Registry) register(code string, def definition) Code {
	full := Code(r.prefix + "." + code)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.defs[full]; exists {
		panic(fmt.Sprintf("errx: code %s registered twice", full))
	}
	r.defs[full] = def
	return full
}

// New builds a fresh *Error for code. Unknown codes yield an internal error
// that still carries the code.
func (r *Registry) New(code Code) *Error {
	r.mu.RLock()
	def, ok := r.defs[code]
	r.mu.RUnlock()

	if !ok {
		return &Error{
			Code:       code,
			Type:       TypeInternal,
			Message:    "unregistered error code",
			HTTPStatus: http.StatusInternalServerError,
		}
	}

	return &Error{
		Code:       code,
		Type:       def.typ,
		Message:    def.message,
		HTTPStatus: def.status,
		Retryable:  def.retryable,
	}
}

func (r *Registry) NewWithCause(code Code, cause error) *Error {
	return r.New(code).WithCause(cause)
}

func (r *Registry) NewWithMessage(code Code, message string) *Error {
	e := r.New(code)
	e.Message = message
	return e
}
