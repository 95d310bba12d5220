package gateway

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"sort"
)

// encodeMultipart renders a Form into a multipart/form-data body.
// Fields are written in sorted order so request bodies are stable.
func encodeMultipart(form Form) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	names := make([]string, 0, len(form.Fields))
	for name := range form.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := w.WriteField(name, form.Fields[name]); err != nil {
			return nil, "", fmt.Errorf("coffrefort/gateway: write form field %q: %w", name, err)
		}
	}

	if form.File != nil {
		part, err := w.CreateFormFile(form.FileField, form.FileName)
		if err != nil {
			return nil, "", fmt.Errorf("coffrefort/gateway: create file part: %w", err)
		}
		if _, err := io.Copy(part, form.File); err != nil {
			return nil, "", fmt.Errorf("coffrefort/gateway: copy file content: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("coffrefort/gateway: finalize form: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
