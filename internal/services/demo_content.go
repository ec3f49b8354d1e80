package services

import (
	"fmt"

	"github.com/virtualtechbox/backend/internal/models"
)

// demoModules returns placeholder modules for areas without stored content.
// Module and lesson ids are prefixed with the area id.
func demoModules(area string) []models.Module {
	id := func(suffix string) string {
		return fmt.Sprintf("%s-%s", area, suffix)
	}
	order := func(n int) *int {
		return &n
	}

	switch area {
	case models.AreaDevOps:
		return []models.Module{
			{
				ID:               id("intro"),
				Title:            "Introduction to DevOps",
				Description:      "Learn the fundamentals of DevOps culture and practices",
				Order:            order(1),
				EstimatedMinutes: 30,
				Lessons: []models.Lesson{{
					ID:      id("intro-1"),
					Title:   "What is DevOps?",
					Type:    models.LessonTypeText,
					Content: "# Introduction to DevOps\n\nDevOps is a set of practices that combines software development and IT operations...",
				}},
			},
			{
				ID:               id("git"),
				Title:            "Version Control with Git",
				Description:      "Master Git for collaborative development",
				Order:            order(2),
				EstimatedMinutes: 45,
				Lessons: []models.Lesson{{
					ID:      id("git-1"),
					Title:   "Git Basics",
					Type:    models.LessonTypeText,
					Content: "# Git Fundamentals\n\nGit is a distributed version control system...",
				}},
			},
			{
				ID:               id("docker"),
				Title:            "Containerization with Docker",
				Description:      "Learn to build and deploy containerized applications",
				Order:            order(3),
				EstimatedMinutes: 60,
				Lessons: []models.Lesson{{
					ID:      id("docker-1"),
					Title:   "Docker Basics",
					Type:    models.LessonTypeText,
					Content: "# Introduction to Docker\n\nDocker is a platform for developing, shipping, and running applications...",
				}},
			},
		}
	case models.AreaDevSecOps:
		return []models.Module{introModule(id("intro"), "Introduction to DevSecOps", "Security integration in DevOps pipelines", 30)}
	case models.AreaDataEngineering:
		return []models.Module{introModule(id("intro"), "Data Engineering Fundamentals", "Core concepts of data engineering", 35)}
	case models.AreaFullstack:
		return []models.Module{introModule(id("intro"), "Full Stack Development Overview", "Introduction to modern web development", 25)}
	case models.AreaAIML:
		return []models.Module{introModule(id("intro"), "AI/ML Fundamentals", "Introduction to artificial intelligence and machine learning", 40)}
	default:
		return []models.Module{}
	}
}

// introModule builds a first module without lessons
func introModule(id, title, description string, minutes int) models.Module {
	order := 1
	return models.Module{
		ID:               id,
		Title:            title,
		Description:      description,
		Order:            &order,
		EstimatedMinutes: minutes,
		Lessons:          []models.Lesson{},
	}
}
