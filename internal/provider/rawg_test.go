package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRAWGClient_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/games", r.URL.Path)
		assert.Equal(t, "key-123", r.URL.Query().Get("key"))
		assert.Equal(t, "Hollow Knight", r.URL.Query().Get("search"))
		assert.Equal(t, "10", r.URL.Query().Get("page_size"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"results": [
				{
					"id": 1234,
					"name": "Hollow Knight",
					"background_image": "https://media.rawg.io/hollow.jpg",
					"rating": 4.41,
					"released": "2017-02-23",
					"genres": [{"name": "Indie"}],
					"platforms": [{"platform": {"name": "PC"}}]
				}
			]
		}`))
	}))
	defer server.Close()

	client := NewRAWGClient("key-123", 10)
	client.baseURL = server.URL

	candidates, err := client.Search(context.Background(), "Hollow Knight")
	assert.NoError(t, err)

	if assert.Len(t, candidates, 1) {
		c := candidates[0]
		assert.Equal(t, "1234", c.ID)
		assert.Equal(t, "Hollow Knight", c.Name)
		assert.Equal(t, "https://media.rawg.io/hollow.jpg", c.CoverImage)
		assert.Equal(t, 4.41, c.Rating)
		assert.Equal(t, "2017-02-23", c.ReleaseDate)
		assert.Equal(t, []GenreRef{{Name: "Indie"}}, c.Genres)
		assert.Equal(t, []PlatformRef{{Name: "PC"}}, c.Platforms)
	}
}

func TestRAWGClient_SearchErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewRAWGClient("key-123", 10)
	client.baseURL = server.URL

	_, err := client.Search(context.Background(), "Hollow Knight")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestRAWGClient_DefaultLimit(t *testing.T) {
	client := NewRAWGClient("key", -1)
	assert.Equal(t, 10, client.limit)
	assert.Equal(t, "RAWG", client.Name())
}
