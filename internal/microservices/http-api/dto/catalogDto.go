package dto

import "comboshare/internal/microservices/http-api/models"

type CharacterResponse struct {
	ID   int64  `json:"id"`
	Slug string `json:"slug"`
	Name string `json:"name"`
}

type MoveResponse struct {
	ID          int64   `json:"id"`
	CharacterID int64   `json:"characterId"`
	Name        string  `json:"name"`
	Input       *string `json:"input,omitempty"`
}

// LookupResponse is a condition or attribute option
type LookupResponse struct {
	ID          int64   `json:"id"`
	Type        string  `json:"type"`
	Description *string `json:"description,omitempty"`
}

// LookupsResponse lists the options for the combo form
type LookupsResponse struct {
	Conditions []LookupResponse `json:"conditions"`
	Attributes []LookupResponse `json:"attributes"`
}

func NewLookupsResponse(conditions []models.Condition, attributes []models.Attribute) *LookupsResponse {
	out := &LookupsResponse{
		Conditions: make([]LookupResponse, 0, len(conditions)),
		Attributes: make([]LookupResponse, 0, len(attributes)),
	}
	for _, c := range conditions {
		out.Conditions = append(out.Conditions, LookupResponse{ID: c.ID, Type: c.Type, Description: c.Description})
	}
	for _, a := range attributes {
		out.Attributes = append(out.Attributes, LookupResponse{ID: a.ID, Type: a.Type, Description: a.Description})
	}
	return out
}

func FromModelsToCharacterResponses(list []models.Character) []CharacterResponse {
	out := make([]CharacterResponse, 0, len(list))
	for _, c := range list {
		out = append(out, CharacterResponse{ID: c.ID, Slug: c.Slug, Name: c.Name})
	}
	return out
}

func FromModelsToMoveResponses(list []models.Move) []MoveResponse {
	out := make([]MoveResponse, 0, len(list))
	for _, m := range list {
		out = append(out, MoveResponse{ID: m.ID, CharacterID: m.CharacterID, Name: m.Name, Input: m.Input})
	}
	return out
}
