package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// RegisterRoutes registers the link and post routes.
func RegisterRoutes(api huma.API, urlHandler *URLHandler, postHandler *PostHandler) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-short-url",
		Method:        http.MethodPost,
		Path:          "/shorten",
		Summary:       "Create short URL",
		Description:   "Stores the URL under the given custom code, or under a generated one.",
		Tags:          []string{"URLs"},
		DefaultStatus: http.StatusCreated,
	}, urlHandler.CreateShortURL)

	huma.Register(api, huma.Operation{
		OperationID: "list-recent-urls",
		Method:      http.MethodGet,
		Path:        "/recent",
		Summary:     "List recent short URLs",
		Tags:        []string{"URLs"},
	}, urlHandler.RecentLinks)

	huma.Register(api, huma.Operation{
		OperationID:   "create-post",
		Method:        http.MethodPost,
		Path:          "/posts",
		Summary:       "Create post",
		Tags:          []string{"Posts"},
		DefaultStatus: http.StatusCreated,
	}, postHandler.CreatePost)

	huma.Register(api, huma.Operation{
		OperationID: "list-posts",
		Method:      http.MethodGet,
		Path:        "/posts",
		Summary:     "List posts",
		Tags:        []string{"Posts"},
	}, postHandler.ListPosts)

	huma.Register(api, huma.Operation{
		OperationID: "get-post",
		Method:      http.MethodGet,
		Path:        "/posts/{id}",
		Summary:     "Get post",
		Tags:        []string{"Posts"},
	}, postHandler.GetPost)

	huma.Register(api, huma.Operation{
		OperationID: "redirect",
		Method:      http.MethodGet,
		Path:        "/{code}",
		Summary:     "Redirect to original URL",
		Description: "Redirects to the original URL associated with the short code.",
		Tags:        []string{"URLs"},
	}, urlHandler.RedirectToURL)

	huma.Register(api, huma.Operation{
		OperationID: "qr-code",
		Method:      http.MethodGet,
		Path:        "/{code}/qr",
		Summary:     "QR code for a short URL",
		Tags:        []string{"URLs"},
		Responses: map[string]*huma.Response{
			"200": {
				Description: "PNG image",
				Content:     map[string]*huma.MediaType{"image/png": {}},
			},
		},
	}, urlHandler.QRCode)
}
