// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"devconnector/internal/auth"
	"devconnector/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options configures the seeder.
type Options struct {
	NumUsers int
	NumPosts int
}

var statuses = []string{
	"Developer", "Junior Developer", "Senior Developer", "Manager",
	"Student or Learning", "Instructor or Teacher", "Intern",
}

var skillPool = []string{
	"HTML", "CSS", "JavaScript", "TypeScript", "Go", "Python", "SQL",
	"PostgreSQL", "Redis", "Docker", "Kubernetes", "React", "Node.js",
}

// Seeder populates the database with realistic development data.
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a Seeder.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{db: db}
}

// ClearAll removes all seeded data. Child tables go first so foreign keys
// never dangle mid-run.
func (s *Seeder) ClearAll() error {
	tables := []string{"likes", "comments", "posts", "experiences", "educations", "profiles", "users"}
	for _, table := range tables {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

// Run seeds users with profiles, then a stream of posts with likes and
// comments attributed to random seeded users. Every account gets the
// password "password" for local login.
func (s *Seeder) Run(opts Options) error {
	users, err := s.seedUsers(opts.NumUsers)
	if err != nil {
		return err
	}
	return s.seedPosts(users, opts.NumPosts)
}

func (s *Seeder) seedUsers(n int) ([]models.User, error) {
	hash, err := auth.HashPassword("password")
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		name := gofakeit.Name()
		user := models.User{
			Name:     name,
			Email:    gofakeit.Email(),
			Password: hash,
			Avatar:   fmt.Sprintf("https://i.pravatar.cc/200?u=%s", gofakeit.UUID()),
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}

		if err := s.seedProfile(user); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func (s *Seeder) seedProfile(user models.User) error {
	handle := strings.ToLower(strings.ReplaceAll(user.Name, " ", "")) + fmt.Sprint(gofakeit.Number(10, 999))
	profile := models.Profile{
		UserID:         user.ID,
		Handle:         &handle,
		Company:        gofakeit.Company(),
		Location:       gofakeit.City(),
		Bio:            gofakeit.Sentence(12),
		Status:         statuses[rand.Intn(len(statuses))],
		GithubUsername: gofakeit.Username(),
		Skills:         pickSkills(2 + rand.Intn(4)),
	}
	if err := s.db.Create(&profile).Error; err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}

	for i := 0; i < 1+rand.Intn(3); i++ {
		from := gofakeit.DateRange(
			time.Now().AddDate(-10, 0, 0),
			time.Now().AddDate(-1, 0, 0),
		)
		entry := models.Experience{
			ProfileID:   profile.ID,
			Title:       gofakeit.JobTitle(),
			Company:     gofakeit.Company(),
			Location:    gofakeit.City(),
			From:        from,
			Current:     i == 0,
			Description: gofakeit.Sentence(10),
		}
		if !entry.Current {
			to := from.AddDate(0, 6+rand.Intn(30), 0)
			entry.To = &to
		}
		if err := s.db.Create(&entry).Error; err != nil {
			return fmt.Errorf("failed to create experience: %w", err)
		}
	}

	from := gofakeit.DateRange(
		time.Now().AddDate(-15, 0, 0),
		time.Now().AddDate(-5, 0, 0),
	)
	to := from.AddDate(4, 0, 0)
	education := models.Education{
		ProfileID:    profile.ID,
		School:       gofakeit.Company() + " University",
		Degree:       "BSc",
		FieldOfStudy: "Computer Science",
		From:         from,
		To:           &to,
	}
	if err := s.db.Create(&education).Error; err != nil {
		return fmt.Errorf("failed to create education: %w", err)
	}
	return nil
}

func (s *Seeder) seedPosts(users []models.User, n int) error {
	if len(users) == 0 {
		return nil
	}

	for i := 0; i < n; i++ {
		author := users[rand.Intn(len(users))]
		post := models.Post{
			UserID: author.ID,
			Text:   gofakeit.Paragraph(1, 2, 8, " "),
			Name:   author.Name,
			Avatar: author.Avatar,
		}
		if err := s.db.Create(&post).Error; err != nil {
			return fmt.Errorf("failed to create post: %w", err)
		}

		for _, liker := range pickUsers(users, rand.Intn(5)) {
			like := models.Like{PostID: post.ID, UserID: liker.ID}
			if err := s.db.Create(&like).Error; err != nil {
				return fmt.Errorf("failed to create like: %w", err)
			}
		}

		for _, commenter := range pickUsers(users, rand.Intn(3)) {
			comment := models.Comment{
				PostID: post.ID,
				UserID: commenter.ID,
				Text:   gofakeit.Sentence(10),
				Name:   commenter.Name,
				Avatar: commenter.Avatar,
			}
			if err := s.db.Create(&comment).Error; err != nil {
				return fmt.Errorf("failed to create comment: %w", err)
			}
		}
	}
	return nil
}

func pickSkills(n int) []string {
	perm := rand.Perm(len(skillPool))
	if n > len(skillPool) {
		n = len(skillPool)
	}
	skills := make([]string, 0, n)
	for _, i := range perm[:n] {
		skills = append(skills, skillPool[i])
	}
	return skills
}

// pickUsers returns up to n distinct users.
func pickUsers(users []models.User, n int) []models.User {
	perm := rand.Perm(len(users))
	if n > len(users) {
		n = len(users)
	}
	picked := make([]models.User, 0, n)
	for _, i := range perm[:n] {
		picked = append(picked, users[i])
	}
	return picked
}
