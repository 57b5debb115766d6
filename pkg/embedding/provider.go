package embedding

import "context"

// Provider generates a fixed-dimension embedding vector for a text. Every
// query is re-embedded; providers do not cache.
type Provider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
