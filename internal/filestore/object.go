package filestore

import (
	"path"
	"strings"

	"github.com/koustreak/schemagen/internal/errs"
)

// contentTypes maps artifact extensions to MIME types.
var contentTypes = map[string]string{
	".json": "application/json",
	".js":   "text/javascript",
	".ts":   "application/typescript",
}

// ContentType returns the MIME type for key's extension, or
// application/octet-stream when unknown.
func ContentType(key string) string {
	if ct, ok := contentTypes[strings.ToLower(path.Ext(key))]; ok {
		return ct
	}
	return "application/octet-stream"
}

// CleanKey normalises key and rejects keys that would escape the store
// root (absolute paths, "..").
func CleanKey(key string) (string, error) {
	if key == "" {
		return "", errs.New(errs.ErrKindInvalidInput, "empty key")
	}
	if strings.HasPrefix(key, "/") {
		return "", errs.Newf(errs.ErrKindInvalidInput, "absolute key %q", key)
	}
	cleaned := path.Clean(key)
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", errs.Newf(errs.ErrKindInvalidInput, "key %q escapes the store root", key)
	}
	return cleaned, nil
}
