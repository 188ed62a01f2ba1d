package db_models

import (
	"time"

	"flowstate/internal/fieldmap"
)

type User struct {
	BaseModel
	Email                  string     `json:"email"`
	Name                   string     `json:"name"`
	Password               string     `json:"-"`
	Image                  *string    `json:"image,omitempty"`
	Age                    *int       `json:"age,omitempty"`
	DateOfBirth            *time.Time `json:"dateOfBirth,omitempty"`
	Gender                 *string    `json:"gender,omitempty"`
	PhoneNumber            *string    `json:"phoneNumber,omitempty"`
	Occupation             *string    `json:"occupation,omitempty"`
	Company                *string    `json:"company,omitempty"`
	JobTitle               *string    `json:"jobTitle,omitempty"`
	Industry               *string    `json:"industry,omitempty"`
	YearsOfExperience      *int       `json:"yearsOfExperience,omitempty"`
	EducationLevel         *string    `json:"educationLevel,omitempty"`
	FieldOfStudy           *string    `json:"fieldOfStudy,omitempty"`
	Institution            *string    `json:"institution,omitempty"`
	PrimaryGoals           []string   `json:"primaryGoals"`
	FocusAreas             []string   `json:"focusAreas"`
	Hobbies                []string   `json:"hobbies"`
	LearningInterests      []string   `json:"learningInterests"`
	PreferredWorkingHours  *string    `json:"preferredWorkingHours,omitempty"`
	WorkEnvironment        *string    `json:"workEnvironment,omitempty"`
	ProductivityChallenges []string   `json:"productivityChallenges"`
	Timezone               *string    `json:"timezone,omitempty"`
	Country                *string    `json:"country,omitempty"`
	City                   *string    `json:"city,omitempty"`
	Bio                    *string    `json:"bio,omitempty"`
	MusicAccessToken       *string    `json:"-"`
	MusicRefreshToken      *string    `json:"-"`
	MusicTokenExpiry       *time.Time `json:"-"`
}

func userBase(u *User) *BaseModel { return &u.BaseModel }

// UserMapping: a user is its own owner, so the key and owner column coincide.
var UserMapping = fieldmap.MustNew("users", "id", "id", nil, columns(userBase,
	fieldmap.String("email", "email", "", func(u *User) *string { return &u.Email }),
	fieldmap.String("name", "name", "", func(u *User) *string { return &u.Name }),
	fieldmap.String("password", "password", "", func(u *User) *string { return &u.Password }),
	fieldmap.OptString("image", "image", func(u *User) **string { return &u.Image }),
	fieldmap.OptInt("age", "age", func(u *User) **int { return &u.Age }),
	fieldmap.OptTime("dateOfBirth", "date_of_birth", func(u *User) **time.Time { return &u.DateOfBirth }),
	fieldmap.OptString("gender", "gender", func(u *User) **string { return &u.Gender }),
	fieldmap.OptString("phoneNumber", "phone_number", func(u *User) **string { return &u.PhoneNumber }),
	fieldmap.OptString("occupation", "occupation", func(u *User) **string { return &u.Occupation }),
	fieldmap.OptString("company", "company", func(u *User) **string { return &u.Company }),
	fieldmap.OptString("jobTitle", "job_title", func(u *User) **string { return &u.JobTitle }),
	fieldmap.OptString("industry", "industry", func(u *User) **string { return &u.Industry }),
	fieldmap.OptInt("yearsOfExperience", "years_of_experience", func(u *User) **int { return &u.YearsOfExperience }),
	fieldmap.OptString("educationLevel", "education_level", func(u *User) **string { return &u.EducationLevel }),
	fieldmap.OptString("fieldOfStudy", "field_of_study", func(u *User) **string { return &u.FieldOfStudy }),
	fieldmap.OptString("institution", "institution", func(u *User) **string { return &u.Institution }),
	fieldmap.Strings("primaryGoals", "primary_goals", func(u *User) *[]string { return &u.PrimaryGoals }),
	fieldmap.Strings("focusAreas", "focus_areas", func(u *User) *[]string { return &u.FocusAreas }),
	fieldmap.Strings("hobbies", "hobbies", func(u *User) *[]string { return &u.Hobbies }),
	fieldmap.Strings("learningInterests", "learning_interests", func(u *User) *[]string { return &u.LearningInterests }),
	fieldmap.OptString("preferredWorkingHours", "preferred_working_hours", func(u *User) **string { return &u.PreferredWorkingHours }),
	fieldmap.OptString("workEnvironment", "work_environment", func(u *User) **string { return &u.WorkEnvironment }),
	fieldmap.Strings("productivityChallenges", "productivity_challenges", func(u *User) *[]string { return &u.ProductivityChallenges }),
	fieldmap.OptString("timezone", "timezone", func(u *User) **string { return &u.Timezone }),
	fieldmap.OptString("country", "country", func(u *User) **string { return &u.Country }),
	fieldmap.OptString("city", "city", func(u *User) **string { return &u.City }),
	fieldmap.OptString("bio", "bio", func(u *User) **string { return &u.Bio }),
	fieldmap.OptString("musicAccessToken", "music_access_token", func(u *User) **string { return &u.MusicAccessToken }),
	fieldmap.OptString("musicRefreshToken", "music_refresh_token", func(u *User) **string { return &u.MusicRefreshToken }),
	fieldmap.OptTime("musicTokenExpiry", "music_token_expiry", func(u *User) **time.Time { return &u.MusicTokenExpiry }),
)...)
