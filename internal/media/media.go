// Package media stores uploaded images and resolves their public paths.
package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/erazemk/fundbuero/internal/imaging"
)

// MaxUploadSize is the largest accepted upload in bytes.
const MaxUploadSize = 5 << 20

// PublicPrefix is the URL prefix under which stored files are served.
const PublicPrefix = "/uploads/"

// ProfilesNamespace holds profile pictures.
const ProfilesNamespace = "profiles"

var (
	// ErrNotImage is returned when an upload is not an image.
	ErrNotImage = errors.New("file is not an image")
	// ErrTooLarge is returned when an upload exceeds MaxUploadSize.
	ErrTooLarge = errors.New("file exceeds 5 MiB")
	// ErrNotFound is returned when no file is stored under a key.
	ErrNotFound = errors.New("file not found")
	// ErrInvalidKey is returned for keys escaping the media root.
	ErrInvalidKey = errors.New("invalid media key")
)

// Upload is a file received from a client.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// FromMultipart reads a multipart file part. Oversized parts are rejected
// from their declared size before being read.
func FromMultipart(fh *multipart.FileHeader) (*Upload, error) {
	if fh.Size > MaxUploadSize {
		return nil, ErrTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("opening upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxUploadSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}

	return &Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// Check applies the upload rules: the declared type must be image/*, the
// size at most MaxUploadSize and the content must sniff as an image.
func Check(u *Upload) (imaging.Kind, error) {
	declared := strings.ToLower(strings.TrimSpace(u.ContentType))
	if !strings.HasPrefix(declared, "image/") {
		return imaging.Kind{}, ErrNotImage
	}
	if len(u.Data) > MaxUploadSize {
		return imaging.Kind{}, ErrTooLarge
	}
	kind, err := imaging.Detect(u.Data)
	if err != nil {
		return imaging.Kind{}, fmt.Errorf("%w: %w", ErrNotImage, err)
	}
	return kind, nil
}

// Backend persists files by slash-separated key.
type Backend interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// Library names, validates and stores uploads on a Backend.
type Library struct {
	backend Backend
}

// NewLibrary returns a Library storing files on b.
func NewLibrary(b Backend) *Library {
	return &Library{backend: b}
}

// Save checks u and stores it under a generated name in namespace ("" for
// the root), returning the public path to persist.
func (l *Library) Save(ctx context.Context, namespace string, u *Upload) (string, error) {
	kind, err := Check(u)
	if err != nil {
		return "", err
	}

	key := generateKey(namespace, kind.Extension)
	if err := l.backend.Put(ctx, key, bytes.NewReader(u.Data), int64(len(u.Data)), kind.MIME); err != nil {
		return "", fmt.Errorf("storing %s: %w", key, err)
	}
	return PublicPrefix + key, nil
}

// Open returns the content stored under a public path.
func (l *Library) Open(ctx context.Context, publicPath string) (io.ReadCloser, error) {
	key, err := KeyFromPath(publicPath)
	if err != nil {
		return nil, err
	}
	return l.backend.Open(ctx, key)
}

// Remove deletes the file behind a public path. Missing files are not an
// error.
func (l *Library) Remove(ctx context.Context, publicPath string) error {
	key, err := KeyFromPath(publicPath)
	if err != nil {
		return err
	}
	if err := l.backend.Delete(ctx, key); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("removing %s: %w", key, err)
	}
	return nil
}

// KeyFromPath turns a public path or bare key into a backend key.
func KeyFromPath(p string) (string, error) {
	key := strings.TrimPrefix(p, PublicPrefix)
	key = strings.TrimPrefix(key, "/")
	if key == "" || !validKey(key) {
		return "", ErrInvalidKey
	}
	return key, nil
}

func validKey(key string) bool {
	if strings.Contains(key, `\`) || path.Clean(key) != key {
		return false
	}
	for _, seg := range strings.Split(key, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return false
		}
	}
	return true
}

// generateKey names a file by a fresh UUID and the extension of its sniffed
// type. The client's filename is never used.
func generateKey(namespace, ext string) string {
	name := uuid.NewString() + ext
	if namespace == "" {
		return name
	}
	if namespace == ProfilesNamespace {
		name = "profile_" + name
	}
	return namespace + "/" + name
}
