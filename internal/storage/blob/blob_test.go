package blob

import (
	"io"
	"strings"
	"testing"
	"time"
)

func openTestBucket(t *testing.T, clock func() time.Time) *Bucket {
	t.Helper()
	counter := 0
	bucket, err := Open(Config{
		Root:   t.TempDir(),
		Secret: []byte("test-secret"),
		Clock:  clock,
		NewID: func() (string, error) {
			counter++
			return "object", nil
		},
	})
	if err != nil {
		t.Fatalf("open bucket: %v", err)
	}
	return bucket
}

func TestSaveAndRead(t *testing.T) {
	bucket := openTestBucket(t, nil)

	key, size, err := bucket.Save("Trabalho Final.PDF", strings.NewReader("conteúdo do trabalho"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if key != "object.pdf" {
		t.Fatalf("key = %q, want sanitized lowercase extension", key)
	}
	if size != int64(len("conteúdo do trabalho")) {
		t.Fatalf("size = %d", size)
	}

	reader, err := bucket.Reader(key)
	if err != nil {
		t.Fatalf("reader: %v", err)
	}
	defer reader.Close()
	content, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(content) != "conteúdo do trabalho" {
		t.Fatalf("content = %q", content)
	}
}

func TestSaveDropsSuspiciousExtension(t *testing.T) {
	bucket := openTestBucket(t, nil)
	key, _, err := bucket.Save("../../../etc/passwd", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if key != "object" {
		t.Fatalf("key = %q, want bare object id", key)
	}
}

func TestSignedDownloadRoundTrip(t *testing.T) {
	now := time.Date(2024, 3, 15, 19, 0, 0, 0, time.UTC)
	bucket := openTestBucket(t, func() time.Time { return now })

	token, err := bucket.SignDownload("object.pdf", "Trabalho Final.pdf", 10*time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	key, fileName, err := bucket.VerifyDownload(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if key != "object.pdf" || fileName != "Trabalho Final.pdf" {
		t.Fatalf("verify = (%q, %q)", key, fileName)
	}
}

func TestSignedDownloadExpires(t *testing.T) {
	now := time.Date(2024, 3, 15, 19, 0, 0, 0, time.UTC)
	bucket := openTestBucket(t, func() time.Time { return now })

	token, err := bucket.SignDownload("object.pdf", "", time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	now = now.Add(2 * time.Minute)
	if _, _, err := bucket.VerifyDownload(token); err == nil {
		t.Fatal("expected expired token to fail verification")
	}
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	bucket := openTestBucket(t, nil)
	if _, _, err := bucket.VerifyDownload("not-a-token"); err == nil {
		t.Fatal("expected error")
	}
}

func TestReaderRejectsTraversal(t *testing.T) {
	bucket := openTestBucket(t, nil)
	if _, err := bucket.Reader("../secrets.txt"); err == nil {
		t.Fatal("expected traversal to be rejected")
	}
	if _, err := bucket.Reader(".hidden"); err == nil {
		t.Fatal("expected dotfile key to be rejected")
	}
}
