// Package newsapi contains the logic for interacting with the NewsAPI
// "everything" endpoint.
package newsapi

// EverythingResponse is the JSON envelope NewsAPI returns.
type EverythingResponse struct {
	Status       string       `json:"status"`
	TotalResults int          `json:"totalResults"`
	Articles     []APIArticle `json:"articles"`

	// Code and Message are set when Status is "error".
	Code    string `json:"code"`
	Message string `json:"message"`
}

// APIArticle is a single article object in the response envelope.
type APIArticle struct {
	Source      APISource `json:"source"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	PublishedAt string    `json:"publishedAt"`
}

// APISource is the nested source object carrying the outlet name.
type APISource struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
