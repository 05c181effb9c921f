package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
)

// Request describes one API call. Exactly one of JSON, Form and File may be
// set. The body is encoded once up front so the call can be replayed after a
// token refresh.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header

	JSON any
	Form url.Values
	File *FilePart

	// SkipAuth sends the request without a bearer token and disables the
	// refresh-and-retry on 401. Used by login, register and refresh.
	SkipAuth bool
}

// FilePart is a multipart upload with a single file part plus plain fields.
type FilePart struct {
	FieldName string
	FileName  string
	Content   []byte
	Fields    map[string]string
}

type encodedBody struct {
	contentType string
	data        []byte
}

func (r *Request) encode() (*encodedBody, error) {
	set := 0
	for _, b := range []bool{r.JSON != nil, r.Form != nil, r.File != nil} {
		if b {
			set++
		}
	}
	if set > 1 {
		return nil, fmt.Errorf("request %s %s: more than one body kind set", r.Method, r.Path)
	}

	switch {
	case r.JSON != nil:
		b, err := json.Marshal(r.JSON)
		if err != nil {
			return nil, fmt.Errorf("encode json body: %w", err)
		}
		return &encodedBody{contentType: "application/json", data: b}, nil
	case r.Form != nil:
		return &encodedBody{contentType: "application/x-www-form-urlencoded", data: []byte(r.Form.Encode())}, nil
	case r.File != nil:
		return r.File.encode()
	default:
		return &encodedBody{}, nil
	}
}

func (f *FilePart) encode() (*encodedBody, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	field := f.FieldName
	if field == "" {
		field = "file"
	}
	part, err := w.CreateFormFile(field, f.FileName)
	if err != nil {
		return nil, fmt.Errorf("encode multipart: %w", err)
	}
	if _, err := part.Write(f.Content); err != nil {
		return nil, fmt.Errorf("encode multipart: %w", err)
	}
	for k, v := range f.Fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("encode multipart: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("encode multipart: %w", err)
	}
	return &encodedBody{contentType: w.FormDataContentType(), data: buf.Bytes()}, nil
}

// Response is a fully read HTTP response.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// Decode unmarshals the body into dst. An empty body leaves dst untouched.
func (r *Response) Decode(dst any) error {
	if dst == nil || len(bytes.TrimSpace(r.Body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Body, dst); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// errorBody covers both FastAPI shapes: {"detail": "..."} and the 422
// {"detail": [{"msg": "...", "loc": [...]}]}, plus {"message": "..."}.
type errorBody struct {
	Detail  json.RawMessage `json:"detail"`
	Message string          `json:"message"`
}

func errorMessage(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return DefaultErrorMessage
	}

	if len(eb.Detail) > 0 {
		var s string
		if json.Unmarshal(eb.Detail, &s) == nil && s != "" {
			return s
		}
		var items []struct {
			Msg string `json:"msg"`
		}
		if json.Unmarshal(eb.Detail, &items) == nil && len(items) > 0 && items[0].Msg != "" {
			return items[0].Msg
		}
	}
	if eb.Message != "" {
		return eb.Message
	}
	return DefaultErrorMessage
}
