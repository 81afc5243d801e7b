package shared

import (
	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
)

type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

var JSONAPI = sonic.Config{
	UseNumber:            true,
	EscapeHTML:           false,
	SortMapKeys:          false,
	CompactMarshaler:     true,
	NoQuoteTextMarshaler: true,
	NoNullSliceOrMap:     true,
}.Froze()

var (
	successResponse       = mustMarshal(Response{Code: 200, Message: "Success"})
	createdResponse       = mustMarshal(Response{Code: 201, Message: "Created"})
	notFoundResponse      = mustMarshal(Response{Code: 404, Message: "Not Found"})
	unauthorizedResponse  = mustMarshal(Response{Code: 401, Message: "Unauthorized"})
	forbiddenResponse     = mustMarshal(Response{Code: 403, Message: "Forbidden"})
	internalErrorResponse = mustMarshal(Response{Code: 500, Message: "Internal Server Error"})
)

func mustMarshal(v interface{}) []byte {
	b, _ := JSONAPI.Marshal(v)
	return b
}

// ResponseJSON writes the standard {code, message, data} envelope.
func ResponseJSON(c *fiber.Ctx, httpCode int, message string, data interface{}) error {
	if data == nil {
		var cached []byte
		switch {
		case httpCode == 200 && message == "Success":
			cached = successResponse
		case httpCode == 201 && message == "Created":
			cached = createdResponse
		case httpCode == 404 && message == "Not Found":
			cached = notFoundResponse
		case httpCode == 401 && message == "Unauthorized":
			cached = unauthorizedResponse
		case httpCode == 403 && message == "Forbidden":
			cached = forbiddenResponse
		case httpCode == 500 && message == "Internal Server Error":
			cached = internalErrorResponse
		}
		if cached != nil {
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
			return c.Status(httpCode).Send(cached)
		}
	}

	body, err := JSONAPI.Marshal(Response{
		Code:    httpCode,
		Message: message,
		Data:    data,
	})
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.Status(httpCode).Send(body)
}
