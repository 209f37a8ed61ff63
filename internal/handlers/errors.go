package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/danielgtaylor/huma/v2"
)

const textContentType = "text/plain"

// TextError is the error body every operation writes: the message alone, as
// plain text, with the HTTP status carried separately.
type TextError struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func (e *TextError) Error() string {
	return e.Message
}

func (e *TextError) GetStatus() int {
	return e.Status
}

func (e *TextError) ContentType(string) string {
	return textContentType
}

// NewTextError joins msg with the detail of each err, e.g.
// "validation failed: expected string (body.name)".
func NewTextError(status int, msg string, errs ...error) huma.StatusError {
	details := make([]string, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			details = append(details, err.Error())
		}
	}
	if len(details) > 0 {
		msg = msg + ": " + strings.Join(details, "; ")
	}
	return &TextError{Status: status, Message: msg}
}

func init() {
	huma.NewError = NewTextError
}

var textFormat = huma.Format{
	Marshal: func(w io.Writer, v any) error {
		if err, ok := v.(error); ok {
			_, werr := io.WriteString(w, err.Error())
			return werr
		}
		return json.NewEncoder(w).Encode(v)
	},
	Unmarshal: func(data []byte, v any) error {
		return errors.New("text/plain request bodies are not supported")
	},
}

// APIConfig is huma's default config with plain-text errors. The schema link
// transformer is left out so error values reach the text format untouched.
func APIConfig(title, version string) huma.Config {
	config := huma.DefaultConfig(title, version)
	config.CreateHooks = nil

	formats := make(map[string]huma.Format, len(config.Formats)+1)
	for ct, format := range config.Formats {
		formats[ct] = format
	}
	formats[textContentType] = textFormat
	config.Formats = formats

	return config
}
