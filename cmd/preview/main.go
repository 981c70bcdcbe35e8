// Command preview generates and formats a post locally without publishing.
// Useful for checking prompt output and length validation against the real
// completion service.
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/joho/godotenv"
	"github.com/mabdullah/linkedin-seo-poster/internal/completion"
	"github.com/mabdullah/linkedin-seo-poster/internal/config"
	"github.com/mabdullah/linkedin-seo-poster/internal/content"
	"github.com/mabdullah/linkedin-seo-poster/internal/profile"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	completer, err := completion.NewCompleter(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize completion client: %v", err)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	pipeline := content.NewPipeline(
		profile.Default(),
		profile.DefaultThemes(),
		profile.DefaultHashtagPools(),
		completer,
		rng,
	)

	fmt.Println("Generating post content...")
	raw, err := pipeline.Generate(ctx)
	if err != nil {
		log.Fatalf("Generation failed: %v", err)
	}

	formatted := pipeline.FormatContent(raw)

	fmt.Println("\n--- Formatted post ---")
	fmt.Println(formatted)
	fmt.Println("----------------------")

	fmt.Printf("\nWord count (total): %d\n", content.WordCount(formatted))
	fmt.Printf("Length valid (150-175 excl. URLs/hashtags): %v\n", pipeline.ValidateLength(formatted))
	fmt.Printf("Hashtag count: %d\n", content.CountHashtags(formatted))
	fmt.Printf("Emoji count: %d\n", content.CountEmojis(formatted))

	fmt.Println("\nKeyword density:")
	for keyword, density := range pipeline.KeywordDensity(formatted) {
		fmt.Printf("  %-28s %.2f%%\n", keyword, density)
	}
}
