package fetch

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// Load resolves a source argument into raw document text: "-" reads
// stdin, http(s) URLs go through the fetcher, anything else is a file path.
func (f *Fetcher) Load(ctx context.Context, source string) (string, error) {
	switch {
	case source == "-":
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil

	case strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://"):
		return f.Fetch(ctx, source)

	default:
		data, err := os.ReadFile(source)
		if err != nil {
			return "", fmt.Errorf("read source file: %w", err)
		}
		return string(data), nil
	}
}
