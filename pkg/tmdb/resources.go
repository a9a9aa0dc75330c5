package tmdb

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
)

// SearchMovie searches movies by title. Extra params (page, year, ...) are optional.
func (c *Client) SearchMovie(ctx context.Context, query string, extra ...url.Values) (*Result, error) {
	return c.SendRequest(ctx, "/search/movie", searchParams(query, extra), "")
}

// SearchPerson searches people by name.
func (c *Client) SearchPerson(ctx context.Context, query string, extra ...url.Values) (*Result, error) {
	return c.SendRequest(ctx, "/search/person", searchParams(query, extra), "")
}

func searchParams(query string, extra []url.Values) url.Values {
	params := url.Values{"query": {query}}
	for _, e := range extra {
		for k, vs := range e {
			if k == "query" {
				continue
			}
			for _, v := range vs {
				params.Add(k, v)
			}
		}
	}
	return params
}

// Object fetches /{object}/{id}, or /{object}/{id}/{part} when part is set.
func (c *Client) Object(ctx context.Context, object string, id int64, part string) (*Result, error) {
	path := fmt.Sprintf("/%s/%d", object, id)
	if part != "" {
		path += "/" + part
	}
	return c.SendRequest(ctx, path, nil, "")
}

// Collection fetches a collection of movies (e.g. a franchise).
func (c *Client) Collection(ctx context.Context, id int64) (*Result, error) {
	return c.Object(ctx, "collection", id, "")
}

// Movie fetches a movie, or one of its parts (credits, images, ...).
func (c *Client) Movie(ctx context.Context, id int64, part string) (*Result, error) {
	return c.Object(ctx, "movie", id, part)
}

// Person fetches a person, or one of their parts.
func (c *Client) Person(ctx context.Context, id int64, part string) (*Result, error) {
	return c.Object(ctx, "person", id, part)
}

// Company fetches a company, or one of its parts.
func (c *Client) Company(ctx context.Context, id int64, part string) (*Result, error) {
	return c.Object(ctx, "company", id, part)
}

// AddRating rates a movie. The rating must lie in [1, 10]; otherwise a
// *ValidationError is returned and no request is made.
func (c *Client) AddRating(ctx context.Context, movieID int64, rating float64) (*Result, error) {
	if math.IsNaN(rating) || rating < 1 || rating > 10 {
		return nil, &ValidationError{Field: "rating", Message: RatingMessage}
	}
	params := url.Values{"value": {strconv.FormatFloat(rating, 'f', -1, 64)}}
	return c.SendRequest(ctx, fmt.Sprintf("/movie/%d/rating", movieID), params, http.MethodPost)
}

// LatestMovie fetches the most recently added movie.
func (c *Client) LatestMovie(ctx context.Context) (*Result, error) {
	return c.SendRequest(ctx, "/latest/movie", nil, "")
}

// PlayingMovies fetches movies now playing in theatres.
func (c *Client) PlayingMovies(ctx context.Context) (*Result, error) {
	return c.SendRequest(ctx, "/movie/now-playing", nil, "")
}

// TopRatedMovies fetches the top rated movies.
func (c *Client) TopRatedMovies(ctx context.Context) (*Result, error) {
	return c.SendRequest(ctx, "/movie/top-rated", nil, "")
}

// PopularMovies fetches the most popular movies.
func (c *Client) PopularMovies(ctx context.Context) (*Result, error) {
	return c.SendRequest(ctx, "/movie/popular", nil, "")
}
