package vk

// apiResponse is the envelope every VK API method returns: exactly one of
// Response or Error is populated.
type apiResponse struct {
	Response *Album    `json:"response"`
	Error    *apiError `json:"error"`
}

// apiError is the VK-level error object
type apiError struct {
	ErrorCode int    `json:"error_code"`
	ErrorMsg  string `json:"error_msg"`
}

// Album is the body of a photos.get response
type Album struct {
	Count int     `json:"count"`
	Items []Photo `json:"items"`
}

// Photo represents a single photo in an album
type Photo struct {
	ID      int64  `json:"id"`
	OwnerID int64  `json:"owner_id"`
	AlbumID int64  `json:"album_id"`
	Date    int64  `json:"date"`
	Likes   Likes  `json:"likes"`
	Sizes   []Size `json:"sizes"`
}

// Likes holds the like counter for a photo
type Likes struct {
	Count int `json:"count"`
}

// Size is one resolution variant of a photo. VK returns variants ordered
// smallest to largest.
type Size struct {
	URL    string `json:"url"`
	Type   string `json:"type"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// BestSize returns the highest-resolution size variant, the last one in
// the list. The second return value is false when the photo has no
// variants at all.
func (p *Photo) BestSize() (Size, bool) {
	if len(p.Sizes) == 0 {
		return Size{}, false
	}
	return p.Sizes[len(p.Sizes)-1], true
}
