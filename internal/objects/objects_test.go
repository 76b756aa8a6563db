package objects

import (
	"context"
	"errors"
	"io"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/portfolio/internal/model"
)

func parseUpload(t *testing.T, raw string) (id, expires, sig string) {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(u.Path, "/objects/upload/"), u.Path)
	return strings.TrimPrefix(u.Path, "/objects/upload/"), u.Query().Get("expires"), u.Query().Get("signature")
}

func TestUploadRoundTrip(t *testing.T) {
	ctx := context.Background()
	l := NewLocal(t.TempDir(), []byte("secret"), "http://localhost:8080/", time.Minute)

	raw, err := l.UploadURL(ctx)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(raw, "http://localhost:8080/objects/upload/"))

	id, expires, sig := parseUpload(t, raw)
	require.NoError(t, l.Verify(id, expires, sig))

	objPath, err := l.Put(ctx, id, strings.NewReader("png bytes"))
	require.NoError(t, err)
	assert.Equal(t, "uploads/"+id, objPath)

	rc, info, err := l.Object(ctx, objPath)
	require.NoError(t, err)
	defer rc.Close()
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "png bytes", string(body))
	assert.Equal(t, int64(9), info.Size)
}

func TestPut_RefusesSecondUpload(t *testing.T) {
	ctx := context.Background()
	l := NewLocal(t.TempDir(), []byte("secret"), "", time.Minute)
	id := "3f1c1f7e-6f57-4a36-9d33-0f1f0b6d2a11"

	objPath, err := l.Put(ctx, id, strings.NewReader("first"))
	require.NoError(t, err)

	_, err = l.Put(ctx, id, strings.NewReader("second"))
	assert.ErrorIs(t, err, ErrForbidden)

	rc, _, err := l.Object(ctx, objPath)
	require.NoError(t, err)
	defer rc.Close()
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "first", string(body))
}

func TestVerify_Rejects(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	l := NewLocal(t.TempDir(), []byte("secret"), "", time.Minute)
	l.now = func() time.Time { return now }

	raw, err := l.UploadURL(context.Background())
	require.NoError(t, err)
	id, expires, sig := parseUpload(t, raw)

	assert.ErrorIs(t, l.Verify(id, expires, sig+"00"), ErrForbidden)
	assert.ErrorIs(t, l.Verify("not-a-uuid", expires, sig), ErrForbidden)
	assert.ErrorIs(t, l.Verify(id, "abc", sig), ErrForbidden)

	now = now.Add(2 * time.Minute)
	assert.ErrorIs(t, l.Verify(id, expires, sig), ErrForbidden)
}

func TestUploadURL_RequiresSecret(t *testing.T) {
	_, err := NewLocal(t.TempDir(), nil, "", 0).UploadURL(context.Background())
	var up *model.UpstreamError
	assert.True(t, errors.As(err, &up))
}

func TestPut_TooLarge(t *testing.T) {
	l := NewLocal(t.TempDir(), []byte("s"), "", 0)
	l.MaxBytes = 4

	_, err := l.Put(context.Background(), "3f1c1f7e-6f57-4a36-9d33-0f1f0b6d2a11", strings.NewReader("12345"))
	var verr *model.ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestObject_NotFound(t *testing.T) {
	l := NewLocal(t.TempDir(), []byte("s"), "", 0)
	for _, p := range []string{"uploads/missing", "../../etc/passwd", "", "uploads"} {
		_, _, err := l.Object(context.Background(), p)
		assert.True(t, errors.Is(err, model.ErrNotFound), "path %q: %v", p, err)
	}
}
