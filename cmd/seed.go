package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/jaswdr/faker"
	"github.com/spf13/cobra"

	"stream/pkg/content"
	"stream/pkg/post"
)

var (
	f = faker.New()

	seedEmojis   = []string{"🔥", "🐛", "💀", "🚀", "☕", "🤡", "📉"}
	seedVariants = []string{"fire", "warn", "calm", "night"}
	seedKinds    = []content.Highlight{
		content.HighlightKeyword,
		content.HighlightFunction,
		content.HighlightComment,
		content.HighlightValue,
		content.HighlightPlain,
	}
)

func newSeedCmd(a *app) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the feed with generated posts",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStorage(cmd.Context(), a)
			if err != nil {
				return err
			}
			defer store.close()

			return seed(cmd.Context(), post.NewService(store.repo), count)
		},
	}
	cmd.Flags().IntVar(&count, "count", 10, "number of posts to create")
	return cmd
}

type postCreator interface {
	Create(context.Context, *post.View) (*post.View, error)
}

func seed(ctx context.Context, svc postCreator, count int) error {
	for i := 0; i < count; i++ {
		if _, err := svc.Create(ctx, genPost(i)); err != nil {
			return fmt.Errorf("seed: can't add post: %w", err)
		}
	}
	return nil
}

func genPost(sortOrder int) *post.View {
	first := f.Person().FirstName()
	v := &post.View{
		Author:    first + " " + f.Person().LastName(),
		Avatar:    strings.ToUpper(first[:1]),
		Timestamp: fmt.Sprintf("%dh ago", f.IntBetween(1, 23)),
		Caption:   f.Lorem().Sentence(f.IntBetween(4, 10)),
		Hashtags:  genHashtags(),
		SortOrder: sortOrder,
	}
	if f.IntBetween(0, 1) == 0 {
		city := f.Address().City()
		v.Location = &city
	}

	if f.IntBetween(0, 1) == 0 {
		v.Content = genSnippet()
	} else {
		v.Content = &content.ImageCard{
			Emoji:   f.RandomStringElement(seedEmojis),
			Title:   strings.Join(f.Lorem().Words(f.IntBetween(2, 4)), " "),
			Variant: f.RandomStringElement(seedVariants),
		}
	}
	return v
}

func genSnippet() *content.CodeSnippet {
	snippet := &content.CodeSnippet{}
	for i := f.IntBetween(1, 5); i > 0; i-- {
		line := content.CodeLine{}
		for j := f.IntBetween(1, 4); j > 0; j-- {
			line.Segments = append(line.Segments, content.CodeSegment{
				Text: f.Lorem().Word() + " ",
				Kind: seedKinds[f.IntBetween(0, len(seedKinds)-1)],
			})
		}
		snippet.Lines = append(snippet.Lines, line)
	}
	return snippet
}

func genHashtags() []string {
	tags := []string{}
	for i := f.IntBetween(0, 3); i > 0; i-- {
		tags = append(tags, "#"+f.Lorem().Word())
	}
	return tags
}
