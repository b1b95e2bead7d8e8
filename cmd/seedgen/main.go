// Command seedgen writes a demo seed file of fake posts, for local
// development and testing.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"masterblog/internal/seed"
)

func main() {
	count := flag.Int("count", 25, "number of posts to generate")
	out := flag.String("out", "static/posts_data.json", "output file path")
	flag.Parse()

	posts := seed.NewFactory().BuildPosts(*count)

	data, err := json.MarshalIndent(posts, "", "  ")
	if err != nil {
		log.Fatalf("failed to encode posts: %v", err)
	}

	if err := os.WriteFile(*out, data, 0o644); err != nil {
		log.Fatalf("failed to write %s: %v", *out, err)
	}

	log.Printf("wrote %d posts to %s", len(posts), *out)
}
