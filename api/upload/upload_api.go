package upload

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"

	"buildmart.GO/client"
	"buildmart.GO/model"
)

// File pairs a filename with its content for multipart upload.
type File struct {
	Name   string
	Reader io.Reader
}

// API uploads files as multipart/form-data. No chunking, no resumability,
// no progress reporting — the whole body is encoded up front.
type API struct {
	c *client.Client
}

func New(c *client.Client) *API {
	return &API{c: c}
}

// UploadFile sends a single file under the "file" field. folder, when set,
// tells the backend where to store it.
func (a *API) UploadFile(ctx context.Context, f File, folder string) (*model.UploadedFile, error) {
	body, contentType, err := encodeForm([]File{f}, "file", folder)
	if err != nil {
		return nil, err
	}
	resp, err := a.c.PostMultipart(ctx, "/upload", body, contentType)
	if err != nil {
		return nil, err
	}
	result, err := client.Decode[model.UploadedFile](resp)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// UploadFiles sends multiple files under the "files" field.
func (a *API) UploadFiles(ctx context.Context, files []File, folder string) ([]model.UploadedFile, error) {
	body, contentType, err := encodeForm(files, "files", folder)
	if err != nil {
		return nil, err
	}
	resp, err := a.c.PostMultipart(ctx, "/upload/multiple", body, contentType)
	if err != nil {
		return nil, err
	}
	return client.Decode[[]model.UploadedFile](resp)
}

func encodeForm(files []File, field, folder string) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range files {
		part, err := w.CreateFormFile(field, f.Name)
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(part, f.Reader); err != nil {
			return nil, "", fmt.Errorf("encode %s: %w", f.Name, err)
		}
	}
	if folder != "" {
		if err := w.WriteField("folder", folder); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
