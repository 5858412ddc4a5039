package handler

import (
	"errors"
	"net/http"

	"postboard/domain"

	"github.com/labstack/echo/v4"
)

// messages are the client-facing texts of one operation. Causes stay in the
// server log.
type messages struct {
	invalid  string
	notFound string
	failed   string
}

var (
	createMessages = messages{
		invalid: "Server could not create post because there are missing data from client",
		failed:  "Server could not create post because of database connection",
	}
	updateMessages = messages{
		invalid:  "Server could not update post because there are missing data from client",
		notFound: "Server could not find a requested post to update",
		failed:   "Server could not update post because of database connection",
	}
	deleteMessages = messages{
		notFound: "Server could not find a requested post to delete",
		failed:   "Server could not delete post because of database connection",
	}
	readMessages = messages{
		notFound: "Server could not find a requested post",
		failed:   "Server could not read post because of database connection",
	}
)

func (m messages) wrap(err error) error {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return echo.NewHTTPError(http.StatusBadRequest, m.invalid).SetInternal(err)
	case errors.Is(err, domain.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, m.notFound).SetInternal(err)
	}
	return echo.NewHTTPError(http.StatusInternalServerError, m.failed).SetInternal(err)
}

// HTTPErrorHandler renders every error as {"message": ...}. Server errors
// are logged with their cause; anything that is not an *echo.HTTPError is
// reported as a bare 500.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := http.StatusText(code)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok && m != "" {
			msg = m
		}
	}
	if code >= http.StatusInternalServerError {
		c.Logger().Error(err)
	} else if code != http.StatusNotFound {
		c.Logger().Debug(err)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, Message{Message: msg})
	}
	if err != nil {
		c.Logger().Error(err)
	}
}
