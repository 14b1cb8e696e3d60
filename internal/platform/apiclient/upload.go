// Copyright (c) 2026 Vocaboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"github.com/taibuivan/vocaboard/internal/platform/apperr"
)

// # Multipart Uploads

// FilePart is the single file carried by an [Upload].
type FilePart struct {
	Field       string
	FileName    string
	ContentType string
	Content     io.Reader
}

// Upload posts a multipart form made of text fields and one file part.
//
// The form is assembled in memory; callers bound the file size before calling.
func (client *Client) Upload(ctx context.Context, cred Credential, path string, fields map[string]string, file FilePart, out any) error {
	var buffer bytes.Buffer
	writer := multipart.NewWriter(&buffer)

	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return apperr.Internal(fmt.Errorf("apiclient: write field %s: %w", name, err))
		}
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, file.Field, file.FileName))
	if file.ContentType != "" {
		header.Set("Content-Type", file.ContentType)
	} else {
		header.Set("Content-Type", "application/octet-stream")
	}

	part, err := writer.CreatePart(header)
	if err != nil {
		return apperr.Internal(fmt.Errorf("apiclient: create file part: %w", err))
	}
	if _, err := io.Copy(part, file.Content); err != nil {
		return apperr.Internal(fmt.Errorf("apiclient: copy file part: %w", err))
	}
	if err := writer.Close(); err != nil {
		return apperr.Internal(fmt.Errorf("apiclient: close multipart: %w", err))
	}

	return client.send(ctx, cred, http.MethodPost, path, nil, &buffer, writer.FormDataContentType(), out)
}
