package vk

import (
	"fmt"
	"net/url"
)

const (
	// BaseURL is the base URL for VK API methods
	BaseURL = "https://api.vk.com/method"

	// PhotosGetEndpoint is the album listing method
	PhotosGetEndpoint = "/photos.get"

	// DefaultAPIVersion is the VK API version used when none is configured
	DefaultAPIVersion = "5.154"

	// AlbumProfile is the identifier of the built-in profile album
	AlbumProfile = "profile"
)

// photosGetURL constructs the photos.get URL with auth and album parameters
func photosGetURL(baseURL, token, version, ownerID, albumID string) string {
	params := url.Values{}
	params.Set("access_token", token)
	params.Set("v", version)
	params.Set("owner_id", ownerID)
	params.Set("album_id", albumID)
	params.Set("extended", "1")

	return fmt.Sprintf("%s%s?%s", baseURL, PhotosGetEndpoint, params.Encode())
}
