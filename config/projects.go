package config

import "portfolio/models"

// Projects is the static portfolio catalogue rendered by the public site.
var Projects = []models.Project{
	{
		ID:          "leet-ai",
		Subtitle:    "Leetcode AI Agent",
		Title:       "Leet AI",
		Description: "Browser extension that solves Leetcode problems from a natural-language description and commits the result to the user's GitHub repository.",
		Tech:        []string{"React", "API Integrations", "OpenAI", "MongoDB", "GitHub", "Extensions"},
		Links: models.ProjectLinks{
			GitHub: "https://github.com/samrathreddy/leetAI",
		},
	},
	{
		ID:          "day-code",
		Subtitle:    "Code Activity Tracker",
		Title:       "Day Code",
		Description: "Daily coding-activity tracker with Leetcode and GitHub integration, contest reminders and Google Calendar sync.",
		Tech:        []string{"React", "GraphQL", "TypeScript", "Tailwind CSS"},
		Links: models.ProjectLinks{
			Website: "https://daycode.vercel.app/",
			GitHub:  "https://github.com/samrathreddy/Daycode",
		},
	},
	{
		ID:          "honey-barrel",
		Subtitle:    "Price Comparison Extension",
		Title:       "Honey Barrel",
		Description: "Extension that scans retail listings and surfaces better prices for the same bottle across marketplaces.",
		Tech:        []string{"TypeScript", "Extensions", "REST APIs"},
		Links:       models.ProjectLinks{},
	},
}
