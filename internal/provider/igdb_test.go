package provider

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIGDBClient_Search(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/games", r.URL.Path)
		assert.Equal(t, "client-123", r.Header.Get("Client-ID"))
		assert.Equal(t, "Bearer token-abc", r.Header.Get("Authorization"))

		body, _ := io.ReadAll(r.Body)
		gotQuery = string(body)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{
				"id": 9001,
				"name": "Hollow Knight",
				"summary": "Descend into Hallownest.",
				"rating": 92.1,
				"first_release_date": 1487894400,
				"cover": {"url": "//images.igdb.com/hollow.jpg"},
				"genres": [{"name": "Metroidvania"}],
				"platforms": [{"name": "PC"}, {"name": "Nintendo Switch"}]
			}
		]`))
	}))
	defer server.Close()

	client := NewIGDBClient("client-123", "token-abc", 10)
	client.baseURL = server.URL

	candidates, err := client.Search(context.Background(), "Hollow Knight")
	assert.NoError(t, err)

	assert.Contains(t, gotQuery, `search "Hollow Knight"`)
	assert.Contains(t, gotQuery, "limit 10")

	if assert.Len(t, candidates, 1) {
		c := candidates[0]
		assert.Equal(t, "9001", c.ID)
		assert.Equal(t, "Hollow Knight", c.Name)
		assert.Equal(t, "Descend into Hallownest.", c.Summary)
		assert.Equal(t, 92.1, c.Rating)
		assert.Equal(t, "2017-02-24", c.ReleaseDate)
		assert.Equal(t, []GenreRef{{Name: "Metroidvania"}}, c.Genres)
		assert.Equal(t, []PlatformRef{{Name: "PC"}, {Name: "Nintendo Switch"}}, c.Platforms)
	}
}

func TestIGDBClient_SearchEscapesQuotes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.True(t, strings.Contains(string(body), `search "The \"Game\""`))
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewIGDBClient("id", "token", 5)
	client.baseURL = server.URL

	candidates, err := client.Search(context.Background(), `The "Game"`)
	assert.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestIGDBClient_SearchErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewIGDBClient("id", "bad-token", 5)
	client.baseURL = server.URL

	_, err := client.Search(context.Background(), "Hollow Knight")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestIGDBClient_DefaultLimit(t *testing.T) {
	client := NewIGDBClient("id", "token", 0)
	assert.Equal(t, 10, client.limit)
	assert.Equal(t, "IGDB", client.Name())
}
