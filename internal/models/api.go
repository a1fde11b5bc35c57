package models

// Response is the uniform envelope for every API reply.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func NewResponse(data interface{}) Response {
	return Response{
		Success: true,
		Data:    data,
	}
}

func NewError(message string) Response {
	return Response{
		Success: false,
		Error:   message,
	}
}

type GenerateQuestionsRequest struct {
	Profile   *CandidateProfile `json:"profile" validate:"required"`
	RoundType string            `json:"roundType" validate:"required,round_type"`
	Count     int               `json:"count" validate:"gte=0,lte=20"`
}

type EvaluateRoundRequest struct {
	Questions []Question `json:"questions" validate:"required,min=1"`
	Answers   []Answer   `json:"answers" validate:"dive"`
	RoundType string     `json:"roundType" validate:"required,round_type"`
}

type ComposeReportRequest struct {
	Profile        *CandidateProfile `json:"profile" validate:"required"`
	HRRound        *RoundEvaluation  `json:"hrRound"`
	TechnicalRound *RoundEvaluation  `json:"technicalRound"`
}

type SessionQuestionsRequest struct {
	RoundType string `json:"roundType" validate:"required,round_type"`
	Count     int    `json:"count" validate:"gte=0,lte=20"`
}

type SessionAnswersRequest struct {
	RoundType string   `json:"roundType" validate:"required,round_type"`
	Answers   []Answer `json:"answers" validate:"required,min=1,dive"`
}

type TranscriptionResponse struct {
	Text string `json:"text"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Provider string `json:"provider"`
}
