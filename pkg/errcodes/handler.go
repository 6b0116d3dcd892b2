package errcodes

import (
	"net/http"

	"github.com/iancoleman/strcase"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/robinjoseph08/golib/errutils"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// Handle is an Echo error handler that uses HTTP errors accordingly, and any
// generic error will be interpreted as an internal server error.
func (h *Handler) Handle(err error, c echo.Context) {
	if errutils.IsIgnorableErr(err) {
		logger.FromEchoContext(c).Err(err).Warn("broken pipe")
		return
	}

	e := Classify(err)

	if e.HTTPCode == http.StatusInternalServerError {
		logger.FromEchoContext(c).Err(err).Error("server error")
	}

	payload := map[string]interface{}{
		"error": map[string]interface{}{
			"code":        e.Code,
			"message":     e.Message,
			"status_code": e.HTTPCode,
		},
	}
	if err := c.JSON(e.HTTPCode, payload); err != nil {
		logger.FromEchoContext(c).Err(errors.WithStack(err)).Error("error handler json error")
	}
}

// Classify maps any error onto the client-facing Error it should be reported
// as. Echo errors keep their status, custom errors pass through, and anything
// else becomes Internal.
func Classify(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg, ok := he.Message.(string)
		if !ok {
			msg = http.StatusText(he.Code)
		}
		if he.Code != http.StatusInternalServerError || msg != "" {
			return &Error{he.Code, msg, strcase.ToSnake(msg)}
		}
	}

	return Internal().(*Error)
}
