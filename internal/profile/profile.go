package profile

// Profile is the static identity used to seed prompts. Immutable for the
// process lifetime; injected into the pipeline rather than read globally so
// tests can substitute fixed data.
type Profile struct {
	Name            string
	Pronouns        string
	Title           string
	Skills          []string
	ProfileURL      string
	PrimaryKeywords []string
}

// Theme is a named content angle constraining prompt structure and emoji choice
type Theme struct {
	Name           string
	HeadlineEmojis []string
	Focus          string
}

// HashtagPools holds the four named hashtag categories. A post's hashtag set
// samples 2 core + 2 technical + 1 business + 1 trending without replacement.
type HashtagPools struct {
	Core      []string
	Technical []string
	Business  []string
	Trending  []string
}

// Default returns the built-in profile
func Default() Profile {
	return Profile{
		Name:       "Muhammad Abdullah",
		Pronouns:   "(He/Him)",
		Title:      "AI & Machine Learning Developer | Generative AI & Chatbot Specialist",
		Skills:     []string{"Python", "Flask", "Streamlit", "Snowflake", "Docker"},
		ProfileURL: "https://www.linkedin.com/in/muhammad-abdullah-ai-ml-developer/",
		PrimaryKeywords: []string{
			"AI Developer",
			"Machine Learning Expert",
			"Generative AI Specialist",
			"Chatbot Developer",
			"Python Developer",
		},
	}
}

// DefaultThemes returns the fixed content themes used for variety and SEO impact
func DefaultThemes() []Theme {
	return []Theme{
		{
			Name:           "expertise_showcase",
			HeadlineEmojis: []string{"🚀", "💡"},
			Focus:          "Technical expertise and problem-solving capabilities",
		},
		{
			Name:           "thought_leadership",
			HeadlineEmojis: []string{"🤖", "🔮"},
			Focus:          "AI/ML industry insights and future trends",
		},
		{
			Name:           "solution_spotlight",
			HeadlineEmojis: []string{"⚡", "🎯"},
			Focus:          "Specific solutions and case studies",
		},
		{
			Name:           "technology_deep_dive",
			HeadlineEmojis: []string{"🔍", "💻"},
			Focus:          "Technical deep dives into AI/ML concepts",
		},
	}
}

// DefaultHashtagPools returns the rotating SEO-optimized hashtag pools
func DefaultHashtagPools() HashtagPools {
	return HashtagPools{
		Core:      []string{"AI", "MachineLearning", "GenerativeAI", "ArtificialIntelligence"},
		Technical: []string{"PythonProgramming", "DataScience", "ChatbotDevelopment", "MLOps"},
		Business:  []string{"DigitalTransformation", "TechInnovation", "BusinessAI", "AIStrategy"},
		Trending:  []string{"FutureOfAI", "AITechnology", "TechTrends", "Innovation"},
	}
}
