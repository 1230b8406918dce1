package media

import (
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
)

// CardTransformation crops bus photos to the dashboard card size.
const CardTransformation = "c_fill,w_320,h_200,q_auto,f_auto"

// Resolver turns a stored image reference into a URL a browser can load.
type Resolver interface {
	ImageURL(ref string) string
}

// Passthrough returns references unchanged.
type Passthrough struct{}

func (Passthrough) ImageURL(ref string) string { return ref }

// CloudinaryResolver renders Cloudinary public IDs (or Cloudinary delivery
// URLs) with the card transformation. Other URLs are passed through.
type CloudinaryResolver struct {
	cld            *cloudinary.Cloudinary
	transformation string
}

func NewCloudinaryResolver(cloudinaryURL string) (*CloudinaryResolver, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, err
	}
	return &CloudinaryResolver{cld: cld, transformation: CardTransformation}, nil
}

func (c *CloudinaryResolver) ImageURL(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}

	publicID := ref
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		if !strings.Contains(ref, "res.cloudinary.com") {
			return ref
		}
		publicID = PublicIDFromURL(ref)
		if publicID == "" {
			return ref
		}
	}

	img, err := c.cld.Image(publicID)
	if err != nil {
		return ref
	}
	img.Transformation = c.transformation
	url, err := img.String()
	if err != nil {
		return ref
	}
	return url
}

// PublicIDFromURL extracts the public ID from a Cloudinary delivery URL:
// the path after "upload" without transformation segments, the version and
// the file extension.
func PublicIDFromURL(url string) string {
	parts := strings.Split(url, "/")

	uploadIndex := -1
	for i, part := range parts {
		if part == "upload" {
			uploadIndex = i
			break
		}
	}
	if uploadIndex == -1 {
		return ""
	}

	rest := parts[uploadIndex+1:]
	versioned := false
	for i, seg := range rest {
		if isVersion(seg) {
			rest = rest[i+1:]
			versioned = true
			break
		}
	}
	// without a version the transformations are only recognisable by shape
	for !versioned && len(rest) > 1 && isTransformation(rest[0]) {
		rest = rest[1:]
	}

	publicID := strings.Join(rest, "/")
	return strings.TrimSuffix(publicID, path.Ext(publicID))
}

// isTransformation reports whether every comma-separated component of seg
// looks like a Cloudinary parameter such as "c_fill" or "w_100".
func isTransformation(seg string) bool {
	if seg == "" {
		return false
	}
	for _, p := range strings.Split(seg, ",") {
		key, _, ok := strings.Cut(p, "_")
		if !ok || len(key) == 0 || len(key) > 3 {
			return false
		}
		for _, r := range key {
			if r < 'a' || r > 'z' {
				return false
			}
		}
	}
	return true
}

func isVersion(seg string) bool {
	if len(seg) < 2 || seg[0] != 'v' {
		return false
	}
	for _, r := range seg[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
