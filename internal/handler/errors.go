package handler

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	apperrors "newsportal/internal/errors"
)

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator returns a validator that reports fields by their JSON names.
func NewValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	return &CustomValidator{validator: v}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// fail converts err into an echo error carrying the JSON envelope. The
// original error stays attached so the error handler can log it.
func fail(err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse()).SetInternal(err)
}

func invalidBody(err error) error {
	return fail(fmt.Errorf("%w: %v", apperrors.InvalidInput("Invalid request body."), err))
}

func invalidRequest(err error) error {
	return fail(apperrors.InvalidInput(validationMessage(err)))
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request."
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", fe.Field())
	case "email":
		return "Please provide a valid email."
	case "min":
		return fmt.Sprintf("%s must be at least %s characters.", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s cannot exceed %s characters.", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid.", fe.Field())
	}
}

// statusCodes names the envelope code for errors raised by echo itself.
var statusCodes = map[int]string{
	http.StatusBadRequest:            "INVALID_INPUT",
	http.StatusUnauthorized:          "UNAUTHENTICATED",
	http.StatusForbidden:             "FORBIDDEN",
	http.StatusNotFound:              "NOT_FOUND",
	http.StatusMethodNotAllowed:      "METHOD_NOT_ALLOWED",
	http.StatusRequestEntityTooLarge: "PAYLOAD_TOO_LARGE",
	http.StatusTooManyRequests:       "RATE_LIMITED",
}

// ErrorHandler renders every error, including router and middleware errors,
// as {success: false, message, code}. Causes of 5xx responses are logged and
// never returned.
func ErrorHandler(log logrus.FieldLogger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body, cause := render(err)
		if status >= http.StatusInternalServerError {
			log.WithError(cause).WithFields(logrus.Fields{
				"method":     c.Request().Method,
				"uri":        c.Request().RequestURI,
				"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
			}).Error("unhandled error")
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, body)
		}
		if writeErr != nil {
			log.WithError(writeErr).Warn("write error response")
		}
	}
}

func render(err error) (int, apperrors.ErrorResponse, error) {
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		httpErr := apperrors.MapErrorToHTTP(err)
		return httpErr.StatusCode, httpErr.ToErrorResponse(), err
	}

	cause := error(he)
	if he.Internal != nil {
		cause = he.Internal
	}

	if resp, ok := he.Message.(apperrors.ErrorResponse); ok {
		return he.Code, resp, cause
	}

	if he.Code >= http.StatusInternalServerError {
		return he.Code, apperrors.ErrorResponse{Message: apperrors.InternalMessage, Code: "INTERNAL_ERROR"}, cause
	}
	message, ok := he.Message.(string)
	if !ok || message == "" {
		message = http.StatusText(he.Code)
	}
	return he.Code, apperrors.ErrorResponse{Message: message, Code: statusCodes[he.Code]}, cause
}
