package disk

// Link is the operation link the Disk API returns for an accepted
// upload-by-url request.
type Link struct {
	Href      string `json:"href"`
	Method    string `json:"method"`
	Templated bool   `json:"templated"`
}

// apiError is the Disk API error payload
type apiError struct {
	Message     string `json:"message"`
	Description string `json:"description"`
	ErrorID     string `json:"error"`
}
