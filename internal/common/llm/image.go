package llm

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
)

// DecodeImage accepts raw base64 or a data URL ("data:image/png;base64,...").
// An empty string yields nil.
func DecodeImage(encoded, mimeType string) (*Image, error) {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return nil, nil
	}

	if strings.HasPrefix(encoded, "data:") {
		header, data, ok := strings.Cut(encoded, ",")
		if !ok {
			return nil, fmt.Errorf("malformed data URL")
		}
		if mimeType == "" {
			mimeType = strings.TrimSuffix(strings.TrimPrefix(header, "data:"), ";base64")
		}
		encoded = data
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	if mimeType == "" {
		mimeType = http.DetectContentType(data)
		if !strings.HasPrefix(mimeType, "image/") {
			mimeType = "image/png"
		}
	}
	return &Image{Data: data, MIMEType: mimeType}, nil
}
