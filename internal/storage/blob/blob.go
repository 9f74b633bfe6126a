// Package blob stores uploaded study documents on the local filesystem and
// issues signed, time-limited download tokens for them.
package blob

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/luzeprogresso/portal/internal/platform/id"
)

// DefaultDownloadTTL bounds how long a signed download link stays valid.
const DefaultDownloadTTL = 15 * time.Minute

// maxUploadSize caps a single study document.
const maxUploadSize = 25 << 20

// Bucket is a filesystem-backed blob store rooted at one directory.
type Bucket struct {
	root   string
	secret []byte
	clock  func() time.Time
	newID  func() (string, error)
}

// Config carries the collaborators a Bucket needs.
type Config struct {
	Root   string
	Secret []byte

	// Clock and NewID exist as seams for tests.
	Clock func() time.Time
	NewID func() (string, error)
}

// Open prepares the bucket directory and returns a Bucket.
func Open(cfg Config) (*Bucket, error) {
	root := strings.TrimSpace(cfg.Root)
	if root == "" {
		return nil, fmt.Errorf("bucket root is required")
	}
	if len(cfg.Secret) == 0 {
		return nil, fmt.Errorf("signing secret is required")
	}
	root = filepath.Clean(root)
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create bucket root: %w", err)
	}
	bucket := &Bucket{
		root:   root,
		secret: cfg.Secret,
		clock:  cfg.Clock,
		newID:  cfg.NewID,
	}
	if bucket.clock == nil {
		bucket.clock = time.Now
	}
	if bucket.newID == nil {
		bucket.newID = id.NewID
	}
	return bucket, nil
}

// Save stores the reader's content under a generated object key and returns
// the key plus the number of bytes written. The original file name only
// contributes its extension.
func (b *Bucket) Save(fileName string, r io.Reader) (string, int64, error) {
	objectID, err := b.newID()
	if err != nil {
		return "", 0, fmt.Errorf("generate object id: %w", err)
	}
	key := objectID + sanitizeExtension(fileName)

	file, err := os.OpenFile(filepath.Join(b.root, key), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", 0, fmt.Errorf("create blob: %w", err)
	}

	size, err := io.Copy(file, io.LimitReader(r, maxUploadSize+1))
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(file.Name())
		return "", 0, fmt.Errorf("write blob: %w", err)
	}
	if size > maxUploadSize {
		_ = os.Remove(file.Name())
		return "", 0, fmt.Errorf("blob exceeds %d bytes", maxUploadSize)
	}
	return key, size, nil
}

// Reader opens a stored object for reading.
func (b *Bucket) Reader(key string) (io.ReadCloser, error) {
	cleanKey, err := cleanObjectKey(key)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(filepath.Join(b.root, cleanKey))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("blob %q: %w", cleanKey, os.ErrNotExist)
	}
	if err != nil {
		return nil, fmt.Errorf("open blob: %w", err)
	}
	return file, nil
}

type downloadClaims struct {
	jwt.RegisteredClaims
	FileName string `json:"file_name,omitempty"`
}

// SignDownload issues a time-limited token granting one object's download.
// The display name rides along so the handler can set Content-Disposition.
func (b *Bucket) SignDownload(key, fileName string, ttl time.Duration) (string, error) {
	cleanKey, err := cleanObjectKey(key)
	if err != nil {
		return "", err
	}
	if ttl <= 0 {
		ttl = DefaultDownloadTTL
	}
	now := b.clock().UTC()
	claims := downloadClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   cleanKey,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		FileName: strings.TrimSpace(fileName),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(b.secret)
	if err != nil {
		return "", fmt.Errorf("sign download token: %w", err)
	}
	return signed, nil
}

// VerifyDownload validates a download token and returns the object key and
// display file name it grants.
func (b *Bucket) VerifyDownload(token string) (key, fileName string, err error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", "", fmt.Errorf("download token is required")
	}
	var claims downloadClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return b.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return b.clock().UTC() }),
	)
	if err != nil {
		return "", "", fmt.Errorf("parse download token: %w", err)
	}
	if !parsed.Valid {
		return "", "", fmt.Errorf("download token is invalid")
	}
	cleanKey, err := cleanObjectKey(claims.Subject)
	if err != nil {
		return "", "", err
	}
	return cleanKey, claims.FileName, nil
}

func sanitizeExtension(fileName string) string {
	ext := strings.ToLower(path.Ext(path.Base(strings.TrimSpace(fileName))))
	if ext == "" || ext == "." || len(ext) > 10 {
		return ""
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}

func cleanObjectKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", fmt.Errorf("object key is required")
	}
	cleaned := path.Clean(key)
	if cleaned != key || strings.Contains(cleaned, "/") || strings.HasPrefix(cleaned, ".") {
		return "", fmt.Errorf("object key %q is invalid", key)
	}
	return cleaned, nil
}
