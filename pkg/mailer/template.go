package mailer

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

var fence = []byte("---")

// splitFrontmatter separates the YAML header of a template file from its
// markdown body. Files without a leading fence have no metadata.
func splitFrontmatter(content []byte) (map[string]any, string, error) {
	meta := map[string]any{}
	if !bytes.HasPrefix(content, fence) {
		return meta, string(content), nil
	}

	rest := bytes.TrimLeft(content[len(fence):], "\r\n")
	if len(rest) == 0 {
		return nil, "", fmt.Errorf("%w: nothing after opening fence", ErrInvalidFrontmatter)
	}
	end := bytes.Index(rest, fence)
	if end < 0 {
		return nil, "", fmt.Errorf("%w: missing closing fence", ErrInvalidFrontmatter)
	}

	header := rest[:end]
	body := rest[end+len(fence):]
	switch {
	case bytes.HasPrefix(body, []byte("\r\n")):
		body = body[2:]
	case bytes.HasPrefix(body, []byte("\n")):
		body = body[1:]
	}

	if len(bytes.TrimSpace(header)) > 0 {
		if err := yaml.Unmarshal(header, &meta); err != nil {
			return nil, "", fmt.Errorf("%w: %v", ErrInvalidFrontmatter, err)
		}
		if meta == nil {
			meta = map[string]any{}
		}
	}
	return meta, string(body), nil
}
