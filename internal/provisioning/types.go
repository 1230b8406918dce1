package provisioning

import "fmt"

type Status string

const (
	StatusCreated  Status = "success"
	StatusUpdated  Status = "updated"
	StatusExisting Status = "existing"
	StatusError    Status = "error"
)

type Credentials struct {
	Role     string `json:"role"`
	Password string `json:"password"`
}

// Result is the outcome for a single account.
type Result struct {
	Email       string       `json:"email"`
	Status      Status       `json:"status"`
	Message     string       `json:"message"`
	Credentials *Credentials `json:"credentials,omitempty"`
}

// Summary is what the endpoint reports alongside the results. Existing
// counts every account that was already there, updated or not.
type Summary struct {
	Total    int `json:"total"`
	Created  int `json:"created"`
	Errors   int `json:"errors"`
	Existing int `json:"existing"`
}

type Response struct {
	Results []Result `json:"results"`
	Summary Summary  `json:"summary"`
	Error   string   `json:"error,omitempty"`
}

// Counts is Summary plus the figures only derivable from Results.
type Counts struct {
	Total    int `json:"total"`
	Created  int `json:"created"`
	Updated  int `json:"updated"`
	Errors   int `json:"errors"`
	Existing int `json:"existing"`
}

// Derive is the one place the updated count is computed.
func Derive(resp Response) Counts {
	c := Counts{
		Total:    resp.Summary.Total,
		Created:  resp.Summary.Created,
		Errors:   resp.Summary.Errors,
		Existing: resp.Summary.Existing,
	}
	for _, r := range resp.Results {
		if r.Status == StatusUpdated {
			c.Updated++
		}
	}
	return c
}

// Summarize builds the endpoint summary from a result list.
func Summarize(results []Result) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		switch r.Status {
		case StatusCreated:
			s.Created++
		case StatusError:
			s.Errors++
		case StatusUpdated, StatusExisting:
			s.Existing++
		}
	}
	return s
}

type Tone string

const (
	ToneSuccess Tone = "success"
	ToneNeutral Tone = "neutral"
	ToneError   Tone = "error"
)

type Notification struct {
	Tone    Tone   `json:"tone"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

func Notify(c Counts) Notification {
	if c.Created+c.Updated > 0 {
		return Notification{
			Tone:    ToneSuccess,
			Title:   "Users provisioned",
			Message: formatCounts(c),
		}
	}
	return Notification{
		Tone:    ToneNeutral,
		Title:   "No changes",
		Message: "All test users already exist.",
	}
}

// Failure is shown for any invocation error and never carries the cause.
func Failure() Notification {
	return Notification{
		Tone:    ToneError,
		Title:   "Provisioning failed",
		Message: "Could not create test users. Try again later.",
	}
}

func formatCounts(c Counts) string {
	return fmt.Sprintf("%d created, %d updated, %d errors", c.Created, c.Updated, c.Errors)
}
