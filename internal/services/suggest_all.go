package services

import (
	"context"

	"github.com/Conceptual-Machines/museforge-api/internal/models"
	"golang.org/x/sync/errgroup"
)

// SuggestAll runs the five suggestions for one context concurrently.
// The first failure cancels the rest and is returned.
func SuggestAll(ctx context.Context, gen Generator, sc models.SuggestionContext) (*models.SuggestAllResponse, error) {
	g, ctx := errgroup.WithContext(ctx)
	var out models.SuggestAllResponse

	g.Go(func() error {
		r, err := gen.EnhancePrompt(ctx, sc)
		if err != nil {
			return err
		}
		out.Prompt = r.Prompt
		return nil
	})
	g.Go(func() error {
		r, err := gen.SuggestGenres(ctx, sc)
		if err != nil {
			return err
		}
		out.Genres = r.Genres
		return nil
	})
	g.Go(func() error {
		r, err := gen.SuggestArtists(ctx, sc)
		if err != nil {
			return err
		}
		out.Artists = r.Artists
		return nil
	})
	g.Go(func() error {
		r, err := gen.SuggestLanguages(ctx, sc)
		if err != nil {
			return err
		}
		out.Languages = r.Languages
		return nil
	})
	g.Go(func() error {
		r, err := gen.EnhanceLyrics(ctx, sc)
		if err != nil {
			return err
		}
		out.Lyrics = r.Lyrics
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}
