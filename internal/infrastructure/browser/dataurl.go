package browser

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

const pngDataURLPrefix = "data:image/png;base64,"

func pngDataURL(png []byte) string {
	return pngDataURLPrefix + base64.StdEncoding.EncodeToString(png)
}

// decodeDataURL returns the payload of a base64 data URL.
func decodeDataURL(s string) ([]byte, error) {
	if !strings.HasPrefix(s, "data:") {
		return nil, errors.New("not a data URL")
	}
	meta, payload, ok := strings.Cut(s[len("data:"):], ",")
	if !ok {
		return nil, errors.New("data URL has no payload")
	}
	if !strings.HasSuffix(meta, ";base64") {
		return nil, fmt.Errorf("unsupported data URL encoding %q", meta)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode data URL: %w", err)
	}
	if len(data) == 0 {
		return nil, errors.New("empty data URL")
	}
	return data, nil
}
