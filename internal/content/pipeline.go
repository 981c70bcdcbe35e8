package content

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"regexp"
	"strings"

	"github.com/mabdullah/linkedin-seo-poster/internal/completion"
	"github.com/mabdullah/linkedin-seo-poster/internal/profile"
	"github.com/sirupsen/logrus"
)

const (
	// Word-count band a post must land in before it is publishable
	minWordCount = 150
	maxWordCount = 175

	// Words kept when an over-long post is cut down
	truncateWordCount = 170
)

// spacedEmojis get a trailing space inserted for consistent rendering
var spacedEmojis = []string{"🚀", "💡", "🤖", "✨", "💪", "🔍", "🎯", "⚡", "🔮", "💻", "🤝"}

// countedEmojis are the glyphs counted for the emoji SEO metric
var countedEmojis = []string{"🚀", "💡", "🤖", "✨", "💪", "🔍", "🤝"}

var (
	urlPattern     = regexp.MustCompile(`http\S+|www.\S+`)
	hashtagPattern = regexp.MustCompile(`#\w+`)
)

const promptTemplate = `Create a concise LinkedIn post for an AI & Machine Learning Developer. The post MUST be between 150-175 words total.

Profile Context:
- Name: %s %s
- Role: %s
- Key Skills: %s

Content Theme: %s

Structure Requirements:

1. Headline (with %s):
- Include keyword: %s
- Keep under 15 words

2. Introduction (2 short paragraphs):
- First paragraph: Core message (25-30 words)
- Second paragraph: Value proposition (25-30 words)
- Mention %s and %s

3. Key Points (2-3 bullet points):
- Use ✨, 💪, 🔍
- Each point 15-20 words
- Focus on outcomes

4. Call-to-Action:
- Short networking invitation
- End with 🤝
- Profile URL on new line "%s"

Important:
- Total word count must be 150-175 words
- Use concise, impactful language
- Avoid repetition`

// Pipeline produces publishable post text from static profile data and a
// randomly chosen theme
type Pipeline struct {
	profile   profile.Profile
	themes    []profile.Theme
	pools     profile.HashtagPools
	completer completion.Completer
	rng       *rand.Rand
}

// NewPipeline creates a content pipeline. The random source is injected so
// tests can pin the seed for deterministic theme, keyword and hashtag choices.
func NewPipeline(p profile.Profile, themes []profile.Theme, pools profile.HashtagPools, completer completion.Completer, rng *rand.Rand) *Pipeline {
	return &Pipeline{
		profile:   p,
		themes:    themes,
		pools:     pools,
		completer: completer,
		rng:       rng,
	}
}

// SelectTheme picks one of the fixed themes uniformly at random
func (p *Pipeline) SelectTheme() profile.Theme {
	return p.themes[p.rng.Intn(len(p.themes))]
}

// BuildPrompt renders the post-generation prompt for a theme
func (p *Pipeline) BuildPrompt(theme profile.Theme) string {
	keyword := p.profile.PrimaryKeywords[p.rng.Intn(len(p.profile.PrimaryKeywords))]

	return fmt.Sprintf(promptTemplate,
		p.profile.Name, p.profile.Pronouns,
		p.profile.Title,
		strings.Join(p.profile.Skills, ", "),
		theme.Focus,
		theme.HeadlineEmojis[0],
		keyword,
		p.profile.Skills[0], p.profile.Skills[1],
		p.profile.ProfileURL,
	)
}

// Generate invokes the completion service for a freshly built prompt. Service
// failures propagate to the caller; the orchestrator's retry loop is the only
// recovery layer.
func (p *Pipeline) Generate(ctx context.Context) (string, error) {
	theme := p.SelectTheme()
	logrus.Debugf("Selected content theme: %s", theme.Name)

	return p.completer.Complete(ctx, p.BuildPrompt(theme))
}

// SampleHashtags draws 2 core + 2 technical + 1 business + 1 trending tags,
// each without replacement from its pool
func (p *Pipeline) SampleHashtags() []string {
	tags := p.sample(p.pools.Core, 2)
	tags = append(tags, p.sample(p.pools.Technical, 2)...)
	tags = append(tags, p.sample(p.pools.Business, 1)...)
	tags = append(tags, p.sample(p.pools.Trending, 1)...)
	return tags
}

func (p *Pipeline) sample(pool []string, n int) []string {
	picked := make([]string, 0, n)
	for _, i := range p.rng.Perm(len(pool))[:n] {
		picked = append(picked, pool[i])
	}
	return picked
}

// FormatContent post-processes generated text into its publishable form.
// Model-generated hashtag sections are always discarded and replaced by a
// fresh deterministic sample.
func (p *Pipeline) FormatContent(content string) string {
	var formatted []string

	for _, section := range strings.Split(content, "\n\n") {
		if strings.TrimSpace(section) == "" {
			continue
		}

		clean := strings.ReplaceAll(section, "**", "")
		clean = strings.ReplaceAll(clean, "*", "")
		clean = strings.TrimSpace(clean)

		if strings.HasPrefix(clean, "#") {
			tags := p.SampleHashtags()
			for i, tag := range tags {
				tags[i] = "#" + tag
			}
			clean = strings.Join(tags, " ")
		}

		for _, emoji := range spacedEmojis {
			clean = strings.ReplaceAll(clean, emoji, emoji+" ")
		}

		formatted = append(formatted, clean)
	}

	result := strings.Join(formatted, "\n\n")

	// The profile URL renders on its own line
	if strings.Contains(result, p.profile.ProfileURL) {
		result = strings.ReplaceAll(result, p.profile.ProfileURL, "\n"+p.profile.ProfileURL)
	}

	words := strings.Fields(result)
	if len(words) > maxWordCount {
		result = strings.Join(words[:truncateWordCount], " ") + "..."
		result += "\n\n" + p.profile.ProfileURL
	}

	return strings.TrimSpace(result)
}

// ValidateLength reports whether the content's word count, excluding URL and
// hashtag tokens, lies within the publishable band
func (p *Pipeline) ValidateLength(content string) bool {
	stripped := urlPattern.ReplaceAllString(content, "")
	stripped = hashtagPattern.ReplaceAllString(stripped, "")
	count := len(strings.Fields(stripped))
	return count >= minWordCount && count <= maxWordCount
}

// KeywordDensity calculates, for each primary keyword, the percentage of
// lowercased tokens containing the keyword as a substring. Short keywords
// overcount; that matches product intent.
func (p *Pipeline) KeywordDensity(content string) map[string]float64 {
	tokens := strings.Fields(strings.ToLower(content))
	total := len(tokens)

	density := make(map[string]float64, len(p.profile.PrimaryKeywords))
	for _, keyword := range p.profile.PrimaryKeywords {
		if total == 0 {
			density[keyword] = 0
			continue
		}

		lower := strings.ToLower(keyword)
		count := 0
		for _, token := range tokens {
			if strings.Contains(token, lower) {
				count++
			}
		}

		pct := float64(count) / float64(total) * 100
		density[keyword] = math.Round(pct*100) / 100
	}

	return density
}

// WordCount counts whitespace-separated words
func WordCount(content string) int {
	return len(strings.Fields(content))
}

// CountHashtags counts hashtag symbols in the content
func CountHashtags(content string) int {
	return strings.Count(content, "#")
}

// CountEmojis counts occurrences of the tracked emoji glyphs
func CountEmojis(content string) int {
	count := 0
	for _, emoji := range countedEmojis {
		count += strings.Count(content, emoji)
	}
	return count
}
