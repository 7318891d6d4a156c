package handler

import (
	"encoding/json"
	"io"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// bindStrictJSON decodes the request body into target, rejecting unknown
// keys. Used by endpoints that construct a user record from client input,
// where a mistyped field must fail loudly instead of being silently dropped.
func bindStrictJSON(c echo.Context, target any) error {
	decoder := json.NewDecoder(c.Request().Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(target); err != nil {
		return errors.Wrap(err, "failed to decode request body")
	}

	// A second document after the first is as malformed as an unknown key.
	if err := decoder.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("unexpected trailing data in request body")
	}

	return nil
}
