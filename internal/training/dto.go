// AngelaMos | 2026
// dto.go

package training

import "encoding/json"

type QuizInput struct {
	Question     string   `json:"question"      validate:"required,max=500"`
	Options      []string `json:"options"       validate:"required,min=2,max=8,dive,required"`
	CorrectIndex int      `json:"correct_index" validate:"gte=0"`
}

type CreateTrainingRequest struct {
	Title       string      `json:"title"       validate:"required,min=3,max=200"`
	Description string      `json:"description" validate:"max=2000"`
	Scope       string      `json:"scope"       validate:"required,oneof=store regional company"`
	ScopeID     *string     `json:"scope_id"    validate:"required_unless=Scope company"`
	Roles       []string    `json:"roles"       validate:"omitempty,dive,required"`
	Status      string      `json:"status"      validate:"omitempty,oneof=draft active"`
	Quizzes     []QuizInput `json:"quizzes"     validate:"omitempty,dive"`
}

type UpdateTrainingRequest struct {
	Title       *string `json:"title"       validate:"omitempty,min=3,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft active completed archived"`
}

type UpdateRolesRequest struct {
	Roles []string `json:"roles" validate:"required,min=1,dive,required"`
}

func encodeOptions(options []string) json.RawMessage {
	encoded, err := json.Marshal(options)
	if err != nil {
		return json.RawMessage("[]")
	}
	return encoded
}
