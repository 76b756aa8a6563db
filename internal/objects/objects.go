// Package objects stores uploaded media. The rest of the app only needs a
// signed upload URL and read-by-path, captured by Storage.
package objects

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Zachkp/portfolio/internal/model"
)

// ErrForbidden is returned for a bad or expired upload signature.
var ErrForbidden = errors.New("upload signature invalid or expired")

type ObjectInfo struct {
	Path    string
	Size    int64
	ModTime time.Time
}

type Storage interface {
	// UploadURL returns a single-use URL the client can PUT an object to.
	// A second PUT to the same URL is refused.
	UploadURL(ctx context.Context) (string, error)
	// Object opens a stored object by its path below the storage root.
	Object(ctx context.Context, objectPath string) (io.ReadCloser, ObjectInfo, error)
}

const uploadsDir = "uploads"

// Local keeps objects on disk and signs upload URLs with HMAC-SHA256.
type Local struct {
	Root    string
	Secret  []byte
	BaseURL string
	TTL     time.Duration
	// MaxBytes caps a single upload; zero means 10 MiB.
	MaxBytes int64

	now func() time.Time
}

func NewLocal(root string, secret []byte, baseURL string, ttl time.Duration) *Local {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &Local{
		Root:    root,
		Secret:  secret,
		BaseURL: strings.TrimRight(baseURL, "/"),
		TTL:     ttl,
		now:     time.Now,
	}
}

func (l *Local) sign(id string, expires int64) string {
	mac := hmac.New(sha256.New, l.Secret)
	fmt.Fprintf(mac, "%s.%d", id, expires)
	return hex.EncodeToString(mac.Sum(nil))
}

func (l *Local) UploadURL(ctx context.Context) (string, error) {
	if len(l.Secret) == 0 {
		return "", &model.UpstreamError{Service: "object storage", Err: errors.New("signing secret not configured")}
	}
	id := uuid.NewString()
	expires := l.now().Add(l.TTL).Unix()
	q := url.Values{}
	q.Set("expires", strconv.FormatInt(expires, 10))
	q.Set("signature", l.sign(id, expires))
	return l.BaseURL + "/objects/upload/" + id + "?" + q.Encode(), nil
}

// Verify checks an upload URL's id, expiry and signature.
func (l *Local) Verify(id, expires, signature string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrForbidden
	}
	exp, err := strconv.ParseInt(expires, 10, 64)
	if err != nil || l.now().Unix() > exp {
		return ErrForbidden
	}
	want := l.sign(id, exp)
	if !hmac.Equal([]byte(want), []byte(signature)) {
		return ErrForbidden
	}
	return nil
}

// Put stores the body of a verified upload and returns its object path. An id
// that already holds an object gives ErrForbidden.
func (l *Local) Put(ctx context.Context, id string, r io.Reader) (string, error) {
	limit := l.MaxBytes
	if limit <= 0 {
		limit = 10 << 20
	}
	dir := filepath.Join(l.Root, uploadsDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &model.UpstreamError{Service: "object storage", Err: err}
	}
	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return "", &model.UpstreamError{Service: "object storage", Err: err}
	}
	defer os.Remove(tmp.Name())

	n, err := io.Copy(tmp, io.LimitReader(r, limit+1))
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", &model.UpstreamError{Service: "object storage", Err: err}
	}
	if n > limit {
		return "", model.Invalid("body", fmt.Sprintf("upload exceeds %d bytes", limit))
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	// Link fails on an existing name, so an upload URL is good for one object.
	if err := os.Link(tmp.Name(), filepath.Join(dir, id)); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return "", ErrForbidden
		}
		return "", &model.UpstreamError{Service: "object storage", Err: err}
	}
	return path.Join(uploadsDir, id), nil
}

func (l *Local) Object(ctx context.Context, objectPath string) (io.ReadCloser, ObjectInfo, error) {
	clean := path.Clean("/" + objectPath)[1:]
	if clean == "" || strings.HasPrefix(path.Base(clean), ".") {
		return nil, ObjectInfo{}, &model.NotFoundError{Kind: "object", ID: objectPath}
	}
	full := filepath.Join(l.Root, filepath.FromSlash(clean))

	f, err := os.Open(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ObjectInfo{}, &model.NotFoundError{Kind: "object", ID: objectPath}
		}
		return nil, ObjectInfo{}, &model.UpstreamError{Service: "object storage", Err: err}
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, ObjectInfo{}, &model.UpstreamError{Service: "object storage", Err: err}
	}
	if info.IsDir() {
		f.Close()
		return nil, ObjectInfo{}, &model.NotFoundError{Kind: "object", ID: objectPath}
	}
	return f, ObjectInfo{Path: clean, Size: info.Size(), ModTime: info.ModTime()}, nil
}
