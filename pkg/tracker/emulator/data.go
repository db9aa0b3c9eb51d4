package emulator

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type Profile struct {
	ID             int       `json:"id"`
	User           User      `json:"user"`
	Bio            *string   `json:"bio"`
	ProfilePicture *string   `json:"profile_picture"`
	FitnessLevel   string    `json:"fitness_level"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type Team struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Owner       User      `json:"owner"`
	Members     []User    `json:"members"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Activity struct {
	ID              string    `json:"_id"`
	User            User      `json:"user"`
	ActivityType    string    `json:"activity_type"`
	DurationMinutes int       `json:"duration_minutes"`
	DistanceKM      *float64  `json:"distance_km"`
	CaloriesBurned  *int      `json:"calories_burned"`
	Description     string    `json:"description"`
	ActivityDate    time.Time `json:"activity_date"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type LeaderboardEntry struct {
	ID                   string    `json:"_id"`
	Team                 Team      `json:"team"`
	User                 User      `json:"user"`
	TotalActivities      int       `json:"total_activities"`
	TotalCalories        int       `json:"total_calories"`
	TotalDistance        float64   `json:"total_distance"`
	TotalDurationMinutes int       `json:"total_duration_minutes"`
	Rank                 int       `json:"rank"`
	Points               int       `json:"points"`
	UpdatedAt            time.Time `json:"updated_at"`
}

type Workout struct {
	ID               string    `json:"_id"`
	User             User      `json:"user"`
	FitnessLevel     string    `json:"fitness_level"`
	WorkoutType      string    `json:"workout_type"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	DurationMinutes  int       `json:"duration_minutes"`
	Exercises        []string  `json:"exercises"`
	DifficultyRating int       `json:"difficulty_rating"`
	SuggestedDate    time.Time `json:"suggested_date"`
	IsCompleted      bool      `json:"is_completed"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Data is the full content served by the emulator.
type Data struct {
	Users       []User             `json:"users"`
	Profiles    []Profile          `json:"profiles"`
	Teams       []Team             `json:"teams"`
	Activities  []Activity         `json:"activities"`
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
	Workouts    []Workout          `json:"workouts"`
}

// List returns the records of entity, or false if the API has no such list.
func (d *Data) List(entity string) (any, int, bool) {
	switch entity {
	case "users":
		return nonNil(d.Users), len(d.Users), true
	case "profiles":
		return nonNil(d.Profiles), len(d.Profiles), true
	case "teams":
		return nonNil(d.Teams), len(d.Teams), true
	case "activities":
		return nonNil(d.Activities), len(d.Activities), true
	case "leaderboard":
		return nonNil(d.Leaderboard), len(d.Leaderboard), true
	case "workouts":
		return nonNil(d.Workouts), len(d.Workouts), true
	default:
		return nil, 0, false
	}
}

// Entities lists the endpoints in the order the API root advertises them.
func Entities() []string {
	return []string{"users", "profiles", "teams", "activities", "leaderboard", "workouts"}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}

	return s
}

// objectID derives a stable 24 character hex identifier from name.
func objectID(name string) string {
	id := uuid.NewSHA1(uuid.NameSpaceOID, []byte(name))

	return strings.ReplaceAll(id.String(), "-", "")[:24]
}

func ptr[T any](v T) *T {
	return &v
}

// Seed returns the superhero fixture set, with timestamps relative to now.
func Seed(now time.Time) *Data {
	now = now.UTC().Truncate(time.Second)

	marvel := []User{
		{ID: 1, Username: "ironman", Email: "ironman@marvel.com", FirstName: "Tony", LastName: "Stark"},
		{ID: 2, Username: "captainamerica", Email: "cap@marvel.com", FirstName: "Steve", LastName: "Rogers"},
		{ID: 3, Username: "blackwidow", Email: "widow@marvel.com", FirstName: "Natasha", LastName: "Romanoff"},
	}
	dc := []User{
		{ID: 4, Username: "batman", Email: "batman@dc.com", FirstName: "Bruce", LastName: "Wayne"},
		{ID: 5, Username: "superman", Email: "superman@dc.com", FirstName: "Clark", LastName: "Kent"},
		{ID: 6, Username: "wonderwoman", Email: "wonderwoman@dc.com", FirstName: "Diana", LastName: "Prince"},
	}
	users := append(append([]User{}, marvel...), dc...)

	d := &Data{Users: users}

	for _, u := range users {
		d.Profiles = append(d.Profiles, Profile{
			ID:           u.ID,
			User:         u,
			FitnessLevel: "beginner",
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}

	marvelTeam := Team{
		ID:          objectID("team:Team Marvel"),
		Name:        "Team Marvel",
		Description: "Marvel Super Heroes",
		Owner:       marvel[0],
		Members:     marvel,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	dcTeam := Team{
		ID:          objectID("team:Team DC"),
		Name:        "Team DC",
		Description: "DC Super Heroes",
		Owner:       dc[0],
		Members:     dc,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	d.Teams = []Team{marvelTeam, dcTeam}

	for _, u := range marvel {
		d.Activities = append(d.Activities, Activity{
			ID:              objectID("activity:" + u.Username),
			User:            u,
			ActivityType:    "running",
			DurationMinutes: 30,
			DistanceKM:      ptr(5.0),
			CaloriesBurned:  ptr(300),
			Description:     "Morning run",
			ActivityDate:    now,
			CreatedAt:       now,
			UpdatedAt:       now,
		})
	}
	for _, u := range dc {
		d.Activities = append(d.Activities, Activity{
			ID:              objectID("activity:" + u.Username),
			User:            u,
			ActivityType:    "cycling",
			DurationMinutes: 45,
			DistanceKM:      ptr(15.0),
			CaloriesBurned:  ptr(500),
			Description:     "Evening ride",
			ActivityDate:    now,
			CreatedAt:       now,
			UpdatedAt:       now,
		})
	}

	for _, u := range users {
		d.Workouts = append(d.Workouts, Workout{
			ID:               objectID("workout:" + u.Username),
			User:             u,
			FitnessLevel:     "beginner",
			WorkoutType:      "cardio",
			Title:            "Hero Cardio",
			Description:      "Superhero cardio workout",
			DurationMinutes:  40,
			Exercises:        []string{"Warm-up", "Cardio", "Cool-down"},
			DifficultyRating: 7,
			SuggestedDate:    now.Add(24 * time.Hour),
			CreatedAt:        now,
			UpdatedAt:        now,
		})
	}

	for i, u := range users {
		entry := LeaderboardEntry{
			ID:                   objectID("leaderboard:" + u.Username),
			Team:                 dcTeam,
			User:                 u,
			TotalActivities:      1,
			TotalCalories:        500,
			TotalDistance:        15.0,
			TotalDurationMinutes: 45,
			Rank:                 i + 1,
			Points:               100 * (i + 1),
			UpdatedAt:            now,
		}
		if i < len(marvel) {
			entry.Team = marvelTeam
			entry.TotalCalories = 300
			entry.TotalDistance = 5.0
			entry.TotalDurationMinutes = 30
		}

		d.Leaderboard = append(d.Leaderboard, entry)
	}

	return d
}
