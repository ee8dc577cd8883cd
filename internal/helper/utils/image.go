package utils

import (
	"encoding/base64"
	"strings"

	"github.com/nguyenchibao12/job-backend/internal/common"
	pkgutils "github.com/nguyenchibao12/job-backend/pkg/utils"
)

// MaxImageBytes caps decoded inline image payloads.
const MaxImageBytes = 10 * 1024 * 1024

// DecodeImagePayload turns an inline base64 image, with or without a
// data:image/...;base64, prefix, into raw bytes.
func DecodeImagePayload(payload string) ([]byte, error) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil, common.Validation("image payload is required")
	}

	if strings.HasPrefix(payload, "data:image") {
		idx := strings.Index(payload, "base64,")
		if idx < 0 {
			return nil, common.Validation("unsupported image payload encoding")
		}
		payload = payload[idx+len("base64,"):]
	}

	dec := base64.NewDecoder(base64.StdEncoding, strings.NewReader(payload))
	b, err := pkgutils.ReadAllLimit(dec, MaxImageBytes)
	if err != nil {
		return nil, common.Validation("invalid or oversized image payload")
	}
	if len(b) == 0 {
		return nil, common.Validation("image payload is required")
	}
	return b, nil
}
