// Package vk wraps the single VK API call an album backup needs: the
// photos.get method. The client owns a pre-obtained access token and the
// id of the user whose album is fetched; it performs no authentication
// flow of its own.
//
// Responses are decoded into typed structs. VK's error envelope is
// surfaced as a typed error rather than being folded into an empty
// result, so callers can tell "no photos" apart from "the API refused".
package vk
