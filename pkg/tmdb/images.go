package tmdb

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// ImageType selects which configured size an image path is resolved with.
type ImageType string

const (
	Poster   ImageType = "poster"
	Backdrop ImageType = "backdrop"
	Profile  ImageType = "profile"
)

// Preferred sizes, used when the server advertises them.
const (
	preferredPosterSize   = "w185"
	preferredBackdropSize = "w1280"
	preferredProfileSize  = "w185"
	originalSize          = "original"
)

// ImageSizes holds the size chosen for each image type and the image host base path.
// The zero value is what a client holds after a failed bootstrap.
type ImageSizes struct {
	Poster   string
	Backdrop string
	Profile  string
	BasePath string
}

// ImagesConfiguration is the "images" section of the /configuration response.
type ImagesConfiguration struct {
	BaseURL       string   `json:"base_url"`
	SecureBaseURL string   `json:"secure_base_url"`
	PosterSizes   []string `json:"poster_sizes"`
	BackdropSizes []string `json:"backdrop_sizes"`
	ProfileSizes  []string `json:"profile_sizes"`
	LogoSizes     []string `json:"logo_sizes"`
	StillSizes    []string `json:"still_sizes"`
}

type configurationResponse struct {
	Images ImagesConfiguration `json:"images"`
}

// SelectImageSizes picks a size per image type from the advertised lists.
//
// Poster falls back to the first advertised size, backdrop and profile fall
// back to "original".
func SelectImageSizes(images ImagesConfiguration) ImageSizes {
	sizes := ImageSizes{
		Backdrop: originalSize,
		Profile:  originalSize,
		BasePath: images.BaseURL,
	}

	if slices.Contains(images.PosterSizes, preferredPosterSize) {
		sizes.Poster = preferredPosterSize
	} else if len(images.PosterSizes) > 0 {
		sizes.Poster = images.PosterSizes[0]
	}

	if slices.Contains(images.BackdropSizes, preferredBackdropSize) {
		sizes.Backdrop = preferredBackdropSize
	}

	if slices.Contains(images.ProfileSizes, preferredProfileSize) {
		sizes.Profile = preferredProfileSize
	}

	return sizes
}

// LoadConfiguration fetches /configuration and selects image sizes from it.
func (c *Client) LoadConfiguration(ctx context.Context) (ImageSizes, error) {
	res, err := c.SendRequest(ctx, "/configuration", nil, "")
	if err != nil {
		return ImageSizes{}, err
	}

	var cfg configurationResponse
	if err := res.Decode(&cfg); err != nil {
		return ImageSizes{}, fmt.Errorf("decode configuration: %w", err)
	}
	return SelectImageSizes(cfg.Images), nil
}

// Size returns the configured size for an image type, or "" for an unknown type.
func (s ImageSizes) Size(t ImageType) string {
	switch t {
	case Poster:
		return s.Poster
	case Backdrop:
		return s.Backdrop
	case Profile:
		return s.Profile
	}
	return ""
}

var (
	httpSlashRun = regexp.MustCompile(`http://(/+)`)
	slashRun     = regexp.MustCompile(`/{2,}`)
)

// ImagePath builds the full URL for an image path from an API response.
// An empty path yields "".
func (s ImageSizes) ImagePath(path string, t ImageType) string {
	if path == "" {
		return ""
	}
	joined := httpSlashRun.ReplaceAllString(s.BasePath+"/"+s.Size(t)+"/"+path, "/")

	// Collapse separators after the scheme only.
	scheme, rest, ok := strings.Cut(joined, "://")
	if !ok {
		return slashRun.ReplaceAllString(joined, "/")
	}
	return scheme + "://" + slashRun.ReplaceAllString(rest, "/")
}

// ImagePath resolves an image path with the sizes selected at bootstrap.
func (c *Client) ImagePath(path string, t ImageType) string {
	return c.sizes.ImagePath(path, t)
}
