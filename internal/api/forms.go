package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/erazemk/fundbuero/internal/media"
)

// multipartSlack leaves room for form fields and part headers next to a
// maximum-size file.
const multipartSlack = 1 << 20

// isMultipart reports whether r carries a multipart/form-data body.
func isMultipart(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "multipart/form-data"
}

// parseMultipart parses a multipart body capped at the upload limit.
func parseMultipart(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, media.MaxUploadSize+multipartSlack)
	if err := r.ParseMultipartForm(media.MaxUploadSize + multipartSlack); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return media.ErrTooLarge
		}
		return badRequest("invalid multipart form")
	}
	return nil
}

// formUpload returns the first file sent under one of names, or nil if none.
func formUpload(r *http.Request, names ...string) (*media.Upload, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	for _, name := range names {
		files := r.MultipartForm.File[name]
		if len(files) == 0 {
			continue
		}
		return media.FromMultipart(files[0])
	}
	return nil, nil
}

// formValue returns the first non-empty form value among names.
func formValue(r *http.Request, names ...string) string {
	for _, name := range names {
		if v := strings.TrimSpace(r.FormValue(name)); v != "" {
			return v
		}
	}
	return ""
}

// Timestamp is a point in time in epoch seconds. It decodes from a JSON
// number or from a string holding epoch seconds, RFC 3339 or YYYY-MM-DD.
// An empty string decodes to zero, which callers treat as unset.
type Timestamp int64

var timestampType = reflect.TypeOf(Timestamp(0))

// UnmarshalJSON implements json.Unmarshaler. Malformed values fail with a
// *json.UnmarshalTypeError so the decoder can name the field.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var raw string
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		raw = n.String()
	} else if err := json.Unmarshal(data, &raw); err != nil {
		return &json.UnmarshalTypeError{Value: string(data), Type: timestampType}
	}

	if strings.TrimSpace(raw) == "" {
		*t = 0
		return nil
	}
	v, err := parseTimestamp(raw)
	if err != nil {
		return &json.UnmarshalTypeError{Value: "string " + raw, Type: timestampType}
	}
	*t = Timestamp(v)
	return nil
}

// set reports whether t holds a point in time. Nil, empty and zero are unset.
func (t *Timestamp) set() bool {
	return t != nil && *t != 0
}

// parseTimestamp parses epoch seconds, RFC 3339 or a YYYY-MM-DD date (UTC
// midnight).
func parseTimestamp(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int64(f), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Unix(), nil
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t.Unix(), nil
	}
	return 0, fmt.Errorf("invalid timestamp %q", s)
}

// formTimestamp parses an optional timestamp form field.
func formTimestamp(r *http.Request, name string) (*Timestamp, error) {
	v := formValue(r, name)
	if v == "" {
		return nil, nil
	}
	n, err := parseTimestamp(v)
	if err != nil {
		return nil, badRequest("invalid attributes (" + name + ")")
	}
	ts := Timestamp(n)
	return &ts, nil
}
