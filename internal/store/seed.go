package store

import (
	"time"

	"github.com/Zachkp/portfolio/internal/model"
)

func ptr(s string) *string { return &s }

// DefaultSeed is the fixture set served in seeded mode. Every record is
// stamped with now.
func DefaultSeed(now time.Time) Seed {
	return Seed{
		Projects: []model.Project{
			{
				ID:          "1",
				Title:       "Terminal Mail",
				Description: "A terminal-based email client built in Go with fuzzy-finder search.",
				FullDescription: "A keyboard-driven email client for the terminal, built on the Charmbracelet TUI " +
					"framework and go-imap. Threads, search and compose all stay in one window.",
				Status:       model.StatusIdeas,
				Progress:     15,
				Technologies: []string{"Go", "Bubble Tea", "IMAP"},
				Features:     []string{"Fuzzy-finder search", "Threaded inbox", "Offline drafts"},
				Impact:       map[string]string{},
				CreatedAt:    now,
			},
			{
				ID:          "2",
				Title:       "TUI Music Player",
				Description: "A terminal music streaming application with an elegant TUI.",
				FullDescription: "Streams YouTube Music from the command line, leaning on yt-dlp for " +
					"resolution and mpv for playback, wrapped in a Go TUI.",
				Status:       model.StatusInProgress,
				Progress:     65,
				Technologies: []string{"Go", "yt-dlp", "mpv"},
				GithubURL:    ptr("https://github.com/Zachkp"),
				Features:     []string{"Queue management", "Search", "Playback controls"},
				Impact:       map[string]string{"latency": "Sub-second Track Start"},
				CreatedAt:    now,
			},
			{
				ID:          "3",
				Title:       "Game Recommender",
				Description: "Machine-learning web app that recommends games from content analysis.",
				FullDescription: "Uses TF-IDF vectorization and cosine similarity to recommend games, with " +
					"interactive visualizations and real-time filtering by reviews and ratings.",
				Status:       model.StatusLaunched,
				Progress:     100,
				Technologies: []string{"Python", "scikit-learn", "Pandas"},
				ImageURL:     ptr("/images/game-recommender.png"),
				LiveURL:      ptr("https://example.com/games"),
				GithubURL:    ptr("https://github.com/Zachkp"),
				Features:     []string{"Content-based recommendations", "Rating filters", "Data visualizations"},
				Impact: map[string]string{
					"accuracy": "87% Relevant Picks",
					"catalog":  "40k Games Indexed",
				},
				CreatedAt: now,
			},
		},
		Timeline: []model.TimelineItem{
			{
				ID:          "1",
				Title:       "Presentation Expert",
				Company:     "Target",
				Period:      "Aug 2023 - Present",
				Description: "Executed over 300 merchandising transitions on tight timelines by organizing team workflows.",
				Skills:      []string{"Operations", "Team Coordination"},
				Order:       1,
				CreatedAt:   now,
			},
			{
				ID:          "2",
				Title:       "Bachelor of Computer Science",
				Company:     "Western Governors University",
				Period:      "Sept 2019 - May 2023",
				Description: "Graduated Magna Cum Laude. Senior project: machine-learning recommendation system.",
				Skills:      []string{"Data Structures", "Algorithms", "Web Development"},
				Order:       2,
				CreatedAt:   now,
			},
			{
				ID:          "3",
				Title:       "Manager",
				Company:     "Jasons Catered Events",
				Period:      "Aug 2016 - Present",
				Description: "Coordinated customized menus and event technology, reducing technical delays.",
				Skills:      []string{"Client Relations", "AV Support", "Logistics"},
				Order:       3,
				CreatedAt:   now,
			},
		},
		Testimonials: []model.Testimonial{
			{
				ID:        "1",
				Name:      "Sarah Chen",
				Role:      "VP of Product",
				Company:   ptr("TechFlow"),
				Quote:     "Bridges technical complexity and user needs better than anyone I have worked with.",
				CreatedAt: now,
			},
			{
				ID:        "2",
				Name:      "Marcus Rodriguez",
				Role:      "Founder",
				Company:   ptr("GrowthLab"),
				Quote:     "Took our tooling from chaos to something the whole team relies on.",
				CreatedAt: now,
			},
			{
				ID:        "3",
				Name:      "Jessica Kim",
				Role:      "Lead Designer",
				Quote:     "Sees the big picture while sweating the details.",
				CreatedAt: now,
			},
		},
	}
}

// DefaultBlurbs is the seeded copy for the single-document page sections.
func DefaultBlurbs() model.Blurbs {
	return model.Blurbs{
		Hero: model.Hero{
			Title:    "Hi, I'm Zach",
			Subtitle: "I build software that is both useful and fun.",
			Body:     "<p>Go, terminals, and the occasional machine-learning side quest.</p>",
			CTAText:  "See my work",
			CTALink:  "#projects",
		},
		About: model.About{
			Title: "About Me",
			Body: "<p>I love building software that's both useful and fun, and I'm always curious about how " +
				"things work behind the scenes. Most of my projects start with a simple idea and turn into a " +
				"chance to learn something new.</p>\n<p>When I'm not coding, you'll usually find me training " +
				"Muay Thai, shooting pool with friends, or chasing down a new challenge outside the screen.</p>",
			Highlights: []string{"Go", "TUIs", "Web backends"},
		},
		Passions: []model.Passion{
			{Icon: "🚀", Title: "Product Strategy", Description: "Turning complex problems into elegant solutions people actually want to use."},
			{Icon: "💡", Title: "Creative Coding", Description: "Code that not only works but also surprises and delights."},
			{Icon: "📊", Title: "Data-Driven Decisions", Description: "Good data turns hunches into validated strategies."},
			{Icon: "🎨", Title: "Design Systems", Description: "Consistent, scalable design languages that help teams ship faster."},
			{Icon: "🤝", Title: "Team Building", Description: "Environments where creativity thrives and everyone does their best work."},
			{Icon: "🌱", Title: "Continuous Learning", Description: "Always exploring new languages, tools and ways of thinking."},
		},
		Contact: model.ContactInfo{
			Title:    "Let's work together",
			Body:     "<p>Have a project in mind? Send a message and I'll get back to you soon.</p>",
			Email:    "hello@example.com",
			Location: "Remote",
			Socials: map[string]string{
				"github": "https://github.com/Zachkp",
			},
			ProjectTypes: []string{"product-strategy", "crm-automation", "web-development", "consulting", "other"},
		},
	}
}
