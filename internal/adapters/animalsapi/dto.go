package animalsapi

import (
	"encoding/json"
	"strings"
	"time"

	"lost-found-search/internal/domain/animals"
)

// La API remota habla camelCase.

type locationDTO struct {
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
	Address    string   `json:"address"`
	City       string   `json:"city"`
	PostalCode string   `json:"postalCode"`
}

type animalDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Breed       string    `json:"breed"`
	Color       string    `json:"color"`
	EyeColor    string    `json:"eyeColor"`
	FurType     string    `json:"furType"`
	Gender      string    `json:"gender"`
	DateOfBirth *flexTime `json:"dateOfBirth"`
	Images      []string  `json:"images"`
}

type statusRecordDTO struct {
	StatusID   string       `json:"statusId"`
	Status     string       `json:"status"`
	ReportDate *flexTime    `json:"reportDate"`
	Comment    string       `json:"comment"`
	Location   *locationDTO `json:"location"`
	Animal     animalDTO    `json:"animal"`
}

type matchCandidateDTO struct {
	MatchedStatus statusRecordDTO `json:"matchedStatus"`
	MatchScore    float64         `json:"matchScore"`
	ColorScore    float64         `json:"colorScore"`
	BreedScore    float64         `json:"breedScore"`
	FurScore      float64         `json:"furScore"`
	EyesScore     float64         `json:"eyesScore"`
	DistanceScore float64         `json:"distanceScore"`
}

// flexTime acepta "2006-01-02", RFC3339 o fecha-hora local sin zona.
type flexTime struct {
	time.Time
}

var flexLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

func (t *flexTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	var lastErr error
	for _, layout := range flexLayouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			t.Time = parsed
			return nil
		}
		lastErr = err
	}
	return lastErr
}

func (d animalDTO) toDomain() animals.Animal {
	a := animals.Animal{
		ID:       d.ID,
		Name:     d.Name,
		Breed:    d.Breed,
		Color:    d.Color,
		EyeColor: d.EyeColor,
		FurType:  d.FurType,
		Gender:   d.Gender,
		Images:   d.Images,
	}
	if d.DateOfBirth != nil && !d.DateOfBirth.IsZero() {
		t := d.DateOfBirth.Time
		a.DateOfBirth = &t
	}
	return a
}

func (d statusRecordDTO) toDomain() animals.StatusRecord {
	r := animals.StatusRecord{
		StatusID: d.StatusID,
		Status:   animals.Status(strings.ToUpper(d.Status)),
		Comment:  d.Comment,
		Animal:   d.Animal.toDomain(),
	}
	if d.ReportDate != nil {
		r.ReportDate = d.ReportDate.Time
	}
	if d.Location != nil {
		r.Location = &animals.Location{
			Latitude:   d.Location.Latitude,
			Longitude:  d.Location.Longitude,
			Address:    d.Location.Address,
			City:       d.Location.City,
			PostalCode: d.Location.PostalCode,
		}
	}
	return r
}

func (d matchCandidateDTO) toDomain() animals.MatchCandidate {
	return animals.MatchCandidate{
		MatchedStatus: d.MatchedStatus.toDomain(),
		MatchScore:    d.MatchScore,
		Scores: animals.SubScores{
			Color:    d.ColorScore,
			Breed:    d.BreedScore,
			Fur:      d.FurScore,
			Eyes:     d.EyesScore,
			Distance: d.DistanceScore,
		},
	}
}

func fromAnimal(a animals.Animal) animalDTO {
	return animalDTO{
		ID:       a.ID,
		Name:     a.Name,
		Breed:    a.Breed,
		Color:    a.Color,
		EyeColor: a.EyeColor,
		FurType:  a.FurType,
		Gender:   a.Gender,
		Images:   a.Images,
	}
}
