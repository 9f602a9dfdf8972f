// Package mock provides test double implementations of AI service interfaces.
//
// It contains mock implementations of ai.Embedder, ai.Generator, and
// ai.Provider for use in unit tests, allowing tests to run without an
// external model server and with controlled, deterministic behavior.
//
//	// Basic usage with default behavior
//	provider := mock.NewMockProvider()
//	vec, err := provider.Embedder().EmbedText(ctx, "test")
//
//	// Custom behavior injection
//	gen := mock.NewMockGenerator()
//	gen.GenerateFunc = func(ctx context.Context, prompt string) (string, error) {
//	    return "", errors.New("service down")
//	}
//
//	// Check call counts
//	count := gen.CallCount()
package mock
