package handlers

import "time"

// CreateShortURLRequest is the request body for creating a short URL.
type CreateShortURLRequest struct {
	Body struct {
		URL        string `doc:"The URL to shorten"        example:"https://example.com/very/long/path" json:"url"`
		CustomCode string `doc:"Optional custom short code" example:"promo"                              json:"customCode,omitempty"`
	}
}

// CreateShortURLResponse is the response for a successfully created short URL.
type CreateShortURLResponse struct {
	Headers struct {
		Location string `doc:"The short URL location" header:"Location"`
	}
	Body struct {
		Code        string    `doc:"The short code"      example:"abc123"                             json:"code"`
		ShortURL    string    `doc:"The full short URL"  example:"http://localhost:8888/abc123"       json:"shortUrl"`
		OriginalURL string    `doc:"The original URL"    example:"https://example.com/very/long/path" json:"originalUrl"`
		CreatedAt   time.Time `doc:"When the link was stored"                                         json:"createdAt"`
	}
}

// CodeRequest addresses a link by its short code.
type CodeRequest struct {
	Code string `doc:"The short code" example:"abc123" path:"code"`
}

// RedirectResponse sends the client on to the original URL.
type RedirectResponse struct {
	Status  int
	Headers struct {
		Location string `header:"Location"`
	}
}

// QRCodeResponse is a PNG image encoding the short URL.
type QRCodeResponse struct {
	ContentType string `header:"Content-Type"`
	Body        []byte
}

// RecentRequest selects how many of the newest links to return.
type RecentRequest struct {
	Limit int `default:"5" doc:"Maximum number of links, capped at 100" query:"limit"`
}

// LinkBody is a single link in a listing.
type LinkBody struct {
	Code      string    `json:"code"`
	Target    string    `json:"target"`
	CreatedAt time.Time `json:"createdAt"`
}

// RecentResponse lists links newest first.
type RecentResponse struct {
	Body struct {
		Links []LinkBody `json:"links"`
	}
}

// CreatePostRequest is the request body for creating a post.
type CreatePostRequest struct {
	Body struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	}
}

// PostRequest addresses a post by id.
type PostRequest struct {
	ID int64 `path:"id"`
}

// PostBody is the wire form of a post.
type PostBody struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

// PostResponse wraps a single post.
type PostResponse struct {
	Body PostBody
}

// PostListResponse wraps all posts.
type PostListResponse struct {
	Body struct {
		Posts []PostBody `json:"posts"`
	}
}
