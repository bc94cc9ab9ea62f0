package search

import (
	"time"

	"lost-found-search/internal/domain/animals"
	"lost-found-search/internal/ports/geocoding"
)

type locationFilterResponse struct {
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
	Radius     float64  `json:"radius"`
	Address    string   `json:"address"`
	City       string   `json:"city"`
	PostalCode string   `json:"postal_code"`
}

type filterStateResponse struct {
	Breed      string                 `json:"breed"`
	Color      string                 `json:"color"`
	EyeColor   string                 `json:"eye_color"`
	PostalCode string                 `json:"postal_code"`
	Location   locationFilterResponse `json:"location"`
}

type animalResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Breed       string     `json:"breed"`
	Color       string     `json:"color"`
	EyeColor    string     `json:"eye_color"`
	FurType     string     `json:"fur_type"`
	Gender      string     `json:"gender"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	Images      []string   `json:"images"`
}

type recordLocationResponse struct {
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
	Address    string   `json:"address"`
	City       string   `json:"city"`
	PostalCode string   `json:"postal_code"`
}

type statusRecordResponse struct {
	StatusID   string                  `json:"status_id"`
	Status     animals.Status          `json:"status"`
	ReportDate time.Time               `json:"report_date"`
	Comment    string                  `json:"comment"`
	Location   *recordLocationResponse `json:"location"`
	Animal     animalResponse          `json:"animal"`
}

type subScoresResponse struct {
	Color    float64 `json:"color"`
	Breed    float64 `json:"breed"`
	Fur      float64 `json:"fur"`
	Eyes     float64 `json:"eyes"`
	Distance float64 `json:"distance"`
}

type matchCandidateResponse struct {
	MatchedStatus statusRecordResponse `json:"matched_status"`
	MatchScore    float64              `json:"match_score"`
	Scores        subScoresResponse    `json:"scores"`
}

type sessionResponse struct {
	ID               string                 `json:"id"`
	Kind             animals.Status         `json:"kind"`
	Direction        animals.Direction      `json:"direction"`
	Status           ListStatus             `json:"status"`
	Error            string                 `json:"error,omitempty"`
	Filters          filterStateResponse    `json:"filters"`
	RawCount         int                    `json:"raw_count"`
	Filtered         []statusRecordResponse `json:"filtered"`
	MatchCounts      CountsSnapshot         `json:"match_counts"`
	Locating         bool                   `json:"locating"`
	GeolocationError string                 `json:"geolocation_error,omitempty"`
	Suggestions      []geocoding.Place      `json:"suggestions"`
	Searching        bool                   `json:"searching"`
	UpdatedAt        time.Time              `json:"updated_at"`
}

type locationResponse struct {
	Location geocoding.Place `json:"location"`
	Session  sessionResponse `json:"session"`
}

func toFilterStateResponse(f FilterState) filterStateResponse {
	return filterStateResponse{
		Breed:      f.Breed,
		Color:      f.Color,
		EyeColor:   f.EyeColor,
		PostalCode: f.PostalCode,
		Location: locationFilterResponse{
			Latitude:   f.Location.Latitude,
			Longitude:  f.Location.Longitude,
			Radius:     f.Location.Radius,
			Address:    f.Location.Address,
			City:       f.Location.City,
			PostalCode: f.Location.PostalCode,
		},
	}
}

func toStatusRecordResponse(r animals.StatusRecord) statusRecordResponse {
	out := statusRecordResponse{
		StatusID:   r.StatusID,
		Status:     r.Status,
		ReportDate: r.ReportDate,
		Comment:    r.Comment,
		Animal: animalResponse{
			ID:          r.Animal.ID,
			Name:        r.Animal.Name,
			Breed:       r.Animal.Breed,
			Color:       r.Animal.Color,
			EyeColor:    r.Animal.EyeColor,
			FurType:     r.Animal.FurType,
			Gender:      r.Animal.Gender,
			DateOfBirth: r.Animal.DateOfBirth,
			Images:      r.Animal.Images,
		},
	}
	if out.Animal.Images == nil {
		out.Animal.Images = []string{}
	}
	if r.Location != nil {
		out.Location = &recordLocationResponse{
			Latitude:   r.Location.Latitude,
			Longitude:  r.Location.Longitude,
			Address:    r.Location.Address,
			City:       r.Location.City,
			PostalCode: r.Location.PostalCode,
		}
	}
	return out
}

func toMatchCandidatesResponse(in []animals.MatchCandidate) []matchCandidateResponse {
	out := make([]matchCandidateResponse, 0, len(in))
	for _, c := range in {
		out = append(out, matchCandidateResponse{
			MatchedStatus: toStatusRecordResponse(c.MatchedStatus),
			MatchScore:    c.MatchScore,
			Scores: subScoresResponse{
				Color:    c.Scores.Color,
				Breed:    c.Scores.Breed,
				Fur:      c.Scores.Fur,
				Eyes:     c.Scores.Eyes,
				Distance: c.Scores.Distance,
			},
		})
	}
	return out
}

func toSessionResponse(s Snapshot) sessionResponse {
	filtered := make([]statusRecordResponse, 0, len(s.Filtered))
	for _, r := range s.Filtered {
		filtered = append(filtered, toStatusRecordResponse(r))
	}
	suggestions := s.Suggestions
	if suggestions == nil {
		suggestions = []geocoding.Place{}
	}
	return sessionResponse{
		ID:               s.ID,
		Kind:             s.Kind,
		Direction:        s.Direction,
		Status:           s.Status,
		Error:            s.Error,
		Filters:          toFilterStateResponse(s.Filters),
		RawCount:         s.RawCount,
		Filtered:         filtered,
		MatchCounts:      s.Counts,
		Locating:         s.Locating,
		GeolocationError: s.GeoError,
		Suggestions:      suggestions,
		Searching:        s.Searching,
		UpdatedAt:        s.UpdatedAt,
	}
}
