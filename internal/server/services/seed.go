package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/portfolio/internal/dbx"
	"github.com/dmitrijs2005/portfolio/internal/server/models"
)

// SeedReport counts the rows SeedSamples inserted.
type SeedReport struct {
	Projects    int
	Skills      int
	Experiences int
	Abouts      int
}

func str(s string) *string { return &s }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sampleProjects() []models.Project {
	return []models.Project{
		{
			Title:        "E-Commerce Platform",
			Description:  "A full-stack e-commerce platform with user authentication, product management, shopping cart and payment integration.",
			ImageURL:     str("https://images.pexels.com/photos/3861969/pexels-photo-3861969.jpeg?auto=compress&cs=tinysrgb&w=1280&h=720&dpr=1"),
			GithubURL:    str("https://github.com/username/ecommerce-platform"),
			LiveURL:      str("https://ecommerce-platform.vercel.app"),
			Technologies: []string{"React", "Node.js", "MongoDB", "Stripe", "Tailwind CSS"},
			Featured:     true,
			Order:        1,
		},
		{
			Title:        "Task Management App",
			Description:  "A collaborative task manager with real-time updates, drag-and-drop and team features.",
			ImageURL:     str("https://images.pexels.com/photos/574071/pexels-photo-574071.jpeg?auto=compress&cs=tinysrgb&w=1280&h=720&dpr=1"),
			GithubURL:    str("https://github.com/username/task-management"),
			LiveURL:      str("https://task-management-app.vercel.app"),
			Technologies: []string{"React", "TypeScript", "Socket.io", "PostgreSQL", "Prisma"},
			Featured:     true,
			Order:        2,
		},
		{
			Title:        "Portfolio Website",
			Description:  "A responsive portfolio site showcasing projects, skills and experience, with dark mode support.",
			ImageURL:     str("https://images.pexels.com/photos/1181275/pexels-photo-1181275.jpeg?auto=compress&cs=tinysrgb&w=1280&h=720&dpr=1"),
			GithubURL:    str("https://github.com/username/portfolio"),
			LiveURL:      str("https://portfolio-website.vercel.app"),
			Technologies: []string{"React", "TypeScript", "Tailwind CSS", "Framer Motion"},
			Order:        3,
		},
	}
}

func sampleSkills() []models.Skill {
	return []models.Skill{
		{Name: "React", Category: "FRONTEND", Level: 5, Icon: str("react"), Order: 1},
		{Name: "TypeScript", Category: "LANGUAGES", Level: 4, Icon: str("typescript"), Order: 2},
		{Name: "Node.js", Category: "BACKEND", Level: 4, Icon: str("nodejs"), Order: 3},
		{Name: "PostgreSQL", Category: "DATABASE", Level: 3, Icon: str("postgresql"), Order: 4},
		{Name: "Docker", Category: "DEVOPS", Level: 3, Icon: str("docker"), Order: 5},
	}
}

func sampleExperiences() []models.Experience {
	end := date(2021, time.December, 31)
	return []models.Experience{
		{
			Title:        "Senior Frontend Developer",
			Company:      "Tech Company Inc.",
			Location:     str("San Francisco, CA"),
			StartDate:    date(2022, time.January, 1),
			Current:      true,
			Description:  "Leading frontend development for several web applications and mentoring junior developers.",
			Technologies: []string{"React", "TypeScript", "Next.js", "Tailwind CSS"},
			Order:        1,
		},
		{
			Title:        "Full Stack Developer",
			Company:      "StartupXYZ",
			Location:     str("Remote"),
			StartDate:    date(2020, time.June, 1),
			EndDate:      &end,
			Description:  "Built and maintained web applications together with cross-functional teams.",
			Technologies: []string{"React", "Node.js", "MongoDB", "Express"},
			Order:        2,
		},
	}
}

func sampleAbout() models.About {
	return models.About{
		Title:    "About Me",
		Content:  "I am a full-stack developer with over 5 years of experience building web applications.",
		ImageURL: str("https://images.pexels.com/photos/1181244/pexels-photo-1181244.jpeg?auto=compress&cs=tinysrgb&w=1280&h=720&dpr=1"),
		Order:    1,
	}
}

// SeedSamples inserts demo content in one transaction. Skills whose name
// already exists are skipped; everything else is always added.
func (s *ContentService) SeedSamples(ctx context.Context) (*SeedReport, error) {
	report := &SeedReport{}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, p := range sampleProjects() {
			if _, err := s.repomanager.Projects(tx).Create(ctx, &p); err != nil {
				return err
			}
			report.Projects++
		}

		skillRepo := s.repomanager.Skills(tx)
		existing, err := skillRepo.List(ctx)
		if err != nil {
			return err
		}
		taken := make(map[string]bool, len(existing))
		for _, sk := range existing {
			taken[sk.Name] = true
		}
		for _, sk := range sampleSkills() {
			if taken[sk.Name] {
				continue
			}
			if _, err := skillRepo.Create(ctx, &sk); err != nil {
				return err
			}
			report.Skills++
		}

		for _, e := range sampleExperiences() {
			if _, err := s.repomanager.Experiences(tx).Create(ctx, &e); err != nil {
				return err
			}
			report.Experiences++
		}

		a := sampleAbout()
		if _, err := s.repomanager.Abouts(tx).Create(ctx, &a); err != nil {
			return err
		}
		report.Abouts++

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error seeding content: %w", err)
	}

	return report, nil
}
