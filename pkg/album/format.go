// Package album turns a raw VK album into an ordered list of download
// descriptors with collision-safe file names.
package album

import (
	"fmt"

	"vkbackup/pkg/vk"
)

// Descriptor pairs a photo's best-available URL with its computed
// destination file name. Immutable once created.
type Descriptor struct {
	URL      string `json:"url"`
	SizeTag  string `json:"size"`
	FileName string `json:"file_name"`
}

// BuildDownloadList takes the first min(count, len(items)) photos of the
// album, in source order, and names each one after its like count.
//
// The first photo with a given like count gets "<likes>.jpg"; any later
// photo sharing that count gets "<likes>_<date>.jpg" with its raw
// timestamp. The combined name is not dedup-checked again, so two photos
// sharing both likes and date still collide. Photos without size variants
// get empty URL and size tag.
func BuildDownloadList(a *vk.Album, count int) []Descriptor {
	if a == nil || count <= 0 {
		return nil
	}

	items := a.Items
	if count < len(items) {
		items = items[:count]
	}

	result := make([]Descriptor, 0, len(items))
	seenLikes := make(map[int]bool, len(items))

	for _, item := range items {
		d := Descriptor{}
		if best, ok := item.BestSize(); ok {
			d.URL = best.URL
			d.SizeTag = best.Type
		}

		likes := item.Likes.Count
		if seenLikes[likes] {
			d.FileName = fmt.Sprintf("%d_%d.jpg", likes, item.Date)
		} else {
			d.FileName = fmt.Sprintf("%d.jpg", likes)
			seenLikes[likes] = true
		}

		result = append(result, d)
	}

	return result
}
