package httpapi

import (
	"time"

	"github.com/riskibarqy/proconnect-api/internal/usecase"
)

type lookupProfilesRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,max=100"`
}

type encodeIDsRequest struct {
	Kind string  `json:"kind" validate:"required"`
	IDs  []int64 `json:"ids" validate:"required,min=1,max=1000"`
}

type decodeIDsRequest struct {
	Kind   string   `json:"kind" validate:"required"`
	Tokens []string `json:"tokens" validate:"required,min=1,max=1000"`
}

type profileDTO struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Headline  string    `json:"headline,omitempty"`
	Company   string    `json:"company,omitempty"`
	Location  string    `json:"location,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type meDTO struct {
	Profile profileDTO `json:"profile"`
	Email   string     `json:"email,omitempty"`
}

type lookupProfilesDTO struct {
	Profiles []profileDTO `json:"profiles"`
	Missing  []string     `json:"missing"`
}

type contactDTO struct {
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	LinkedInURL string `json:"linkedin_url,omitempty"`
}

type investorDTO struct {
	ID        string      `json:"id"`
	FirmName  string      `json:"firm_name"`
	Focus     string      `json:"focus,omitempty"`
	TicketMin int64       `json:"ticket_min"`
	TicketMax int64       `json:"ticket_max"`
	Stage     string      `json:"stage"`
	Unlocked  bool        `json:"unlocked"`
	Contact   *contactDTO `json:"contact,omitempty"`
}

type unlockDTO struct {
	InvestorID string    `json:"investor_id"`
	UnlockedAt time.Time `json:"unlocked_at"`
	Created    bool      `json:"created"`
}

type unlockedInvestorDTO struct {
	Investor   investorDTO `json:"investor"`
	UnlockedAt time.Time   `json:"unlocked_at"`
}

type encodedIDDTO struct {
	ID    int64  `json:"id"`
	Token string `json:"token,omitempty"`
	Error string `json:"error,omitempty"`
}

type decodedTokenDTO struct {
	Token string `json:"token"`
	ID    *int64 `json:"id,omitempty"`
	Valid bool   `json:"valid"`
}

type idBatchDTO[T any] struct {
	Kind  string `json:"kind"`
	Items []T    `json:"items"`
}

func profileToDTO(view usecase.ProfileView) profileDTO {
	return profileDTO{
		ID:        view.ID,
		FullName:  view.FullName,
		Headline:  view.Headline,
		Company:   view.Company,
		Location:  view.Location,
		AvatarURL: view.AvatarURL,
		CreatedAt: view.CreatedAt,
	}
}

func lookupToDTO(result usecase.LookupResult) lookupProfilesDTO {
	out := lookupProfilesDTO{
		Profiles: make([]profileDTO, 0, len(result.Profiles)),
		Missing:  make([]string, 0, len(result.Missing)),
	}
	for _, view := range result.Profiles {
		out.Profiles = append(out.Profiles, profileToDTO(view))
	}
	out.Missing = append(out.Missing, result.Missing...)
	return out
}

func investorToDTO(view usecase.InvestorView) investorDTO {
	out := investorDTO{
		ID:        view.ID,
		FirmName:  view.FirmName,
		Focus:     view.Focus,
		TicketMin: view.TicketMin,
		TicketMax: view.TicketMax,
		Stage:     view.Stage,
		Unlocked:  view.Unlocked,
	}
	if view.Contact != nil {
		out.Contact = &contactDTO{
			Email:       view.Contact.Email,
			Phone:       view.Contact.Phone,
			LinkedInURL: view.Contact.LinkedInURL,
		}
	}
	return out
}

func unlockedInvestorsToDTO(items []usecase.UnlockedInvestor) []unlockedInvestorDTO {
	out := make([]unlockedInvestorDTO, 0, len(items))
	for _, item := range items {
		out = append(out, unlockedInvestorDTO{
			Investor:   investorToDTO(item.Investor),
			UnlockedAt: item.UnlockedAt,
		})
	}
	return out
}

func encodedIDsToDTO(items []usecase.EncodedID) []encodedIDDTO {
	out := make([]encodedIDDTO, 0, len(items))
	for _, item := range items {
		out = append(out, encodedIDDTO{ID: item.ID, Token: item.Token, Error: item.Error})
	}
	return out
}

func decodedTokensToDTO(items []usecase.DecodedToken) []decodedTokenDTO {
	out := make([]decodedTokenDTO, 0, len(items))
	for _, item := range items {
		entry := decodedTokenDTO{Token: item.Token, Valid: item.Valid}
		if item.Valid {
			id := item.ID
			entry.ID = &id
		}
		out = append(out, entry)
	}
	return out
}
