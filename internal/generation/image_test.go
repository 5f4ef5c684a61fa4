package generation

import (
	"context"
	"errors"
	"testing"

	"github.com/lucasrivero/brandforge-backend/pkg/gemini"
)

type stubImageProvider struct {
	img   *gemini.Image
	err   error
	calls int
}

func (s *stubImageProvider) GenerateImage(_ context.Context, _ string) (*gemini.Image, error) {
	s.calls++
	return s.img, s.err
}

type stubUploader struct {
	url        string
	err        error
	calls      int
	lastFolder string
	lastFile   string
	lastMIME   string
}

func (s *stubUploader) Upload(_ context.Context, _ []byte, contentType, folder, filename string) (string, error) {
	s.calls++
	s.lastMIME = contentType
	s.lastFolder = folder
	s.lastFile = filename
	return s.url, s.err
}

func TestImageUploadsGeneratedBytes(t *testing.T) {
	uploader := &stubUploader{url: "https://storage.googleapis.com/bucket/theme_options/x.png"}
	gen := &imageGenerator{
		provider: &stubImageProvider{img: &gemini.Image{Data: []byte{1, 2, 3}, MIMEType: "image/png"}},
		uploads:  uploader,
	}

	url := gen.Generate(context.Background(), "prompt", "theme_options", "x.png", 0)
	if url != uploader.url {
		t.Fatalf("expected hosted url, got %q", url)
	}
	if uploader.lastFolder != "theme_options" || uploader.lastFile != "x.png" || uploader.lastMIME != "image/png" {
		t.Fatalf("unexpected upload call: %+v", uploader)
	}
}

func TestImageFallsBackToPlaceholderOnProviderError(t *testing.T) {
	uploader := &stubUploader{}
	gen := &imageGenerator{provider: &stubImageProvider{err: errors.New("unavailable")}, uploads: uploader}

	url := gen.Generate(context.Background(), "prompt", "f", "x.png", 2)
	if url != "https://images.unsplash.com/photo-1600000000002?w=1080" {
		t.Fatalf("unexpected placeholder url: %q", url)
	}
	if uploader.calls != 0 {
		t.Fatal("expected no upload attempt after provider failure")
	}
}

func TestImageFallsBackToPlaceholderOnUploadError(t *testing.T) {
	gen := &imageGenerator{
		provider: &stubImageProvider{img: &gemini.Image{Data: []byte{1}, MIMEType: "image/png"}},
		uploads:  &stubUploader{err: errors.New("denied")},
	}

	url := gen.Generate(context.Background(), "prompt", "f", "x.png", 0)
	if url != "https://images.unsplash.com/photo-1600000000000?w=1080" {
		t.Fatalf("unexpected placeholder url: %q", url)
	}
}
