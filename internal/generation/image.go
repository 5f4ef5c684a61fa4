package generation

import (
	"context"
	"fmt"
	"time"

	"github.com/lucasrivero/brandforge-backend/pkg/gemini"
	"github.com/lucasrivero/brandforge-backend/pkg/metrics"
)

const (
	stageImage = "image"

	placeholderSeed = 1600000000000
)

type imageProvider interface {
	GenerateImage(ctx context.Context, prompt string) (*gemini.Image, error)
}

type blobUploader interface {
	Upload(ctx context.Context, data []byte, contentType, folder, filename string) (string, error)
}

// imageGenerator produces hosted image URLs. Provider or upload failures
// yield an indexed placeholder URL instead of an error.
type imageGenerator struct {
	provider imageProvider
	uploads  blobUploader
	gen      *metrics.GenerationMetrics
}

// Generate creates one image for the prompt and uploads it under
// folder/filename, returning the hosted URL or a placeholder.
func (g *imageGenerator) Generate(ctx context.Context, prompt, folder, filename string, index int) string {
	started := time.Now()
	defer func() { g.gen.ObserveDuration(stageImage, time.Since(started)) }()

	image, err := g.provider.GenerateImage(ctx, prompt)
	if err != nil || image == nil || len(image.Data) == 0 {
		g.gen.IncFallback(stageImage)
		return placeholderURL(index)
	}

	url, err := g.uploads.Upload(ctx, image.Data, image.MIMEType, folder, filename)
	if err != nil {
		g.gen.IncFallback(stageImage)
		return placeholderURL(index)
	}

	g.gen.IncGenerated(stageImage)
	return url
}

// placeholderURL is stable per unit index so retries render the same stand-in.
func placeholderURL(index int) string {
	return fmt.Sprintf("https://images.unsplash.com/photo-%d?w=1080", placeholderSeed+index)
}
