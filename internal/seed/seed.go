// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"echo/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Seeder populates the database with realistic demo users, tweets and a
// follow mesh between them.
type Seeder struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll removes all seeded rows. Relation tables go first.
func (s *Seeder) ClearAll() error {
	tables := []any{
		&models.Bookmark{}, &models.Like{}, &models.Follow{},
		&models.Comment{}, &models.Tweet{}, &models.User{},
	}
	for _, table := range tables {
		if err := s.db.Unscoped().Where("1 = 1").Delete(table).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedUsers creates count demo accounts. All accounts share the password
// "password123" so they are usable from the frontend during development.
func (s *Seeder) SeedUsers(count int) ([]models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, count)
	for i := 0; i < count; i++ {
		name := gofakeit.Name()
		username := strings.ToLower(gofakeit.Username()) + fmt.Sprintf("%d", gofakeit.Number(10, 999))
		users = append(users, models.User{
			Name:            name,
			Username:        username,
			Email:           gofakeit.Email(),
			Password:        string(hashed),
			Bio:             gofakeit.Sentence(8),
			ProfileImageURL: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
			BannerURL:       fmt.Sprintf("https://picsum.photos/seed/%s/1200/300", gofakeit.UUID()),
			CreatedAt:       s.spreadTime(60),
		})
	}
	if err := s.db.Create(&users).Error; err != nil {
		return nil, err
	}
	log.Printf("Seeded %d users", len(users))
	return users, nil
}

// SeedTweets posts count tweets from random seeded users.
func (s *Seeder) SeedTweets(users []models.User, count int) ([]models.Tweet, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("no users to tweet as")
	}

	tweets := make([]models.Tweet, 0, count)
	for i := 0; i < count; i++ {
		author := users[s.rng.Intn(len(users))]
		tweets = append(tweets, models.Tweet{
			Body:      gofakeit.Sentence(s.rng.Intn(20) + 3),
			UserID:    author.ID,
			CreatedAt: s.spreadTime(30),
		})
	}
	if err := s.db.Create(&tweets).Error; err != nil {
		return nil, err
	}
	log.Printf("Seeded %d tweets", len(tweets))
	return tweets, nil
}

// SeedGraph wires a follow mesh and sprinkles likes over the tweets.
func (s *Seeder) SeedGraph(users []models.User, tweets []models.Tweet) error {
	followCount := 0
	for _, follower := range users {
		// each user follows a handful of others
		for i := 0; i < s.rng.Intn(6)+1; i++ {
			followee := users[s.rng.Intn(len(users))]
			if followee.ID == follower.ID {
				continue
			}
			err := s.db.Clauses(clause.OnConflict{DoNothing: true}).
				Create(&models.Follow{FollowerID: follower.ID, FolloweeID: followee.ID}).Error
			if err != nil {
				return err
			}
			followCount++
		}
	}

	likeCount := 0
	for _, tweet := range tweets {
		for i := 0; i < s.rng.Intn(5); i++ {
			fan := users[s.rng.Intn(len(users))]
			err := s.db.Clauses(clause.OnConflict{DoNothing: true}).
				Create(&models.Like{UserID: fan.ID, TweetID: tweet.ID}).Error
			if err != nil {
				return err
			}
			likeCount++
		}
	}

	log.Printf("Seeded %d follows and %d likes", followCount, likeCount)
	return nil
}

// spreadTime returns a timestamp up to maxDays in the past so feeds look
// organic rather than all created at once.
func (s *Seeder) spreadTime(maxDays int) time.Time {
	daysBack := s.rng.Intn(maxDays)
	hoursBack := s.rng.Intn(24)
	minsBack := s.rng.Intn(60)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour -
		time.Duration(minsBack)*time.Minute)
}
