package minio

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/koustreak/schemagen/internal/errs"
	"github.com/koustreak/schemagen/internal/filestore"
	miniogo "github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_ObjectKeyAndLocation(t *testing.T) {
	tests := []struct {
		name    string
		prefix  string
		key     string
		wantKey string
	}{
		{"no prefix", "", "src/api/user/routes/user.js", "src/api/user/routes/user.js"},
		{"prefix", "scaffold/", "src/api/user/routes/user.js", "scaffold/src/api/user/routes/user.js"},
		{"prefix without slash", "runs/42", "src/api/a.json", "runs/42/src/api/a.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Store{bucket: "artifacts", prefix: tt.prefix}
			got, err := s.objectKey(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.wantKey, got)
			assert.Equal(t, "s3://artifacts/"+tt.wantKey, s.Location(tt.key))
		})
	}
}

func TestStore_ObjectKeyRejectsEscape(t *testing.T) {
	s := &Store{bucket: "artifacts", prefix: "scaffold"}
	_, err := s.objectKey("../../etc/passwd")
	require.Error(t, err)
	assert.True(t, errs.IsInvalidInput(err))
}

func TestNew_RequiresBucket(t *testing.T) {
	_, err := New(context.Background(), &filestore.Config{Provider: filestore.ProviderMinIO, Endpoint: "localhost:9000"})
	require.Error(t, err)
	assert.True(t, errs.IsInvalidInput(err))
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want errs.ErrKind
	}{
		{"no such bucket", miniogo.ErrorResponse{Code: "NoSuchBucket"}, errs.ErrKindNotFound},
		{"access denied", miniogo.ErrorResponse{Code: "AccessDenied"}, errs.ErrKindPermissionDenied},
		{"bad object name", miniogo.ErrorResponse{Code: "InvalidObjectName"}, errs.ErrKindInvalidInput},
		{"slow down", miniogo.ErrorResponse{Code: "SlowDown"}, errs.ErrKindTimeout},
		{"storage full", miniogo.ErrorResponse{Code: "XMinioStorageFull", StatusCode: http.StatusInsufficientStorage}, errs.ErrKindFilesystem},
		{"forbidden status", miniogo.ErrorResponse{StatusCode: http.StatusForbidden}, errs.ErrKindPermissionDenied},
		{"not found status", miniogo.ErrorResponse{StatusCode: http.StatusNotFound}, errs.ErrKindNotFound},
		{"server error", miniogo.ErrorResponse{StatusCode: http.StatusInternalServerError}, errs.ErrKindFilesystem},
		{"deadline", context.DeadlineExceeded, errs.ErrKindTimeout},
		{"network", errors.New("connection reset by peer"), errs.ErrKindFilesystem},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapError(tt.err, "upload", errs.ErrKindFilesystem)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Kind)
		})
	}

	assert.Nil(t, mapError(nil, "upload", errs.ErrKindFilesystem))
}
