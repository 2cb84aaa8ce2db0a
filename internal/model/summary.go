package model

type SummaryResult struct {
	Success     bool   `json:"success"`
	Summary     string `json:"summary"`
	SentToSlack bool   `json:"sentToSlack"`
}
