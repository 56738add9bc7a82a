// Package extraction turns label images into structured field extractions
// using the Anthropic vision API.
package extraction

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
)

// LabelImage is one photograph of a bottle label, ready to send to the
// vision API. Index is the image's position within the application and is
// carried through to merge provenance.
type LabelImage struct {
	Index     int
	Name      string
	MediaType string
	Data      []byte
}

// Base64 returns the image payload encoded for the API.
func (img LabelImage) Base64() string {
	return base64.StdEncoding.EncodeToString(img.Data)
}

// mediaTypeForExt maps common label photo extensions to MIME types.
func mediaTypeForExt(ext string) (string, bool) {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg":
		return "image/jpeg", true
	case ".png":
		return "image/png", true
	case ".gif":
		return "image/gif", true
	case ".webp":
		return "image/webp", true
	default:
		return "", false
	}
}

// LoadImages reads image files from disk in the given order. The slice
// position becomes the image index.
func LoadImages(paths []string) ([]LabelImage, error) {
	images := make([]LabelImage, 0, len(paths))
	for i, p := range paths {
		mediaType, ok := mediaTypeForExt(filepath.Ext(p))
		if !ok {
			return nil, eris.Errorf("extraction: unsupported image type %q", filepath.Ext(p))
		}

		data, err := os.ReadFile(p)
		if err != nil {
			return nil, eris.Wrapf(err, "extraction: read image %s", p)
		}

		images = append(images, LabelImage{
			Index:     i,
			Name:      filepath.Base(p),
			MediaType: mediaType,
			Data:      data,
		})
	}
	return images, nil
}
