package apperrors

type appError struct {
	msg        string
	base       Error
	wrapped    []error
	statusCode int
}

// clone copies the error, keeping the original on the derivation chain so
// errors.Is against the source sentinel still holds.
func (e *appError) clone() *appError {
	c := *e
	c.base = e
	c.wrapped = append([]error(nil), e.wrapped...)
	return &c
}

func (e *appError) Error() string {
	return e.msg
}

func (e *appError) ErrorAll() string {
	msg := e.msg
	for _, err := range e.wrapped {
		msg += ": " + err.Error()
	}
	return msg
}

func (e *appError) Unwrap() []error {
	return e.wrapped
}

func (e *appError) New(msg string) Error {
	return &appError{
		msg:        msg,
		base:       e,
		statusCode: e.statusCode,
	}
}

func (e *appError) Msg(msg string) Error {
	c := e.clone()
	c.msg = msg
	return c
}

func (e *appError) MsgErr(msg string, errs ...error) Error {
	c := e.clone()
	c.msg = msg
	c.wrapped = append(c.wrapped, errs...)
	return c
}

func (e *appError) Err(errs ...error) Error {
	c := e.clone()
	c.wrapped = append(c.wrapped, errs...)
	return c
}

func (e *appError) Is(target error) bool {
	if e == target {
		return true
	}
	if e.base != nil && e.base.Is(target) {
		return true
	}
	if c, ok := target.(*appError); ok && e.base == nil && c.base == nil {
		return e.msg == c.msg
	}
	for _, err := range e.wrapped {
		if err == target {
			return true
		}
	}
	return false
}

func (e *appError) SetStatusCode(code int) Error {
	e.statusCode = code
	return e
}

func (e *appError) StatusCode() int {
	return e.statusCode
}

// New creates a root error with no status code. Callers typically chain
// SetStatusCode when declaring sentinels.
func New(msg string) Error {
	return &appError{msg: msg}
}
