package api

import (
	"context"
	"mime"
	"net/url"
	"os"
	"path"
	"path/filepath"

	dErrors "kampomido/pkg/domain-errors"
)

// Download is a binary response destined for the local filesystem, the client
// side of the browser save-as action.
type Download struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Download fetches a binary resource. The filename comes from the
// Content-Disposition header when the server provides one, falling back to the
// last path segment.
func (c *Client) Download(ctx context.Context, p string, query url.Values) (*Download, error) {
	resp, err := c.do(ctx, "GET", p, query, nil)
	if err != nil {
		return nil, err
	}

	filename := filenameFromDisposition(resp.Header.Get("Content-Disposition"))
	if filename == "" {
		filename = path.Base(p)
	}

	return &Download{
		Filename:    filename,
		ContentType: resp.Header.Get("Content-Type"),
		Data:        resp.Body,
	}, nil
}

// SaveTo writes the download into dir under its server-given name and returns
// the full path.
func (d *Download) SaveTo(dir string) (string, error) {
	// path.Base guards against a hostile filename escaping the directory.
	target := filepath.Join(dir, filepath.Base(d.Filename))
	if err := os.WriteFile(target, d.Data, 0o644); err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "save download")
	}
	return target, nil
}

func filenameFromDisposition(header string) string {
	if header == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(header)
	if err != nil {
		return ""
	}
	return params["filename"]
}
