package practicum

import (
	"encoding/json"
	"fmt"
)

// Review states the endpoint is allowed to report.
const (
	StatusApproved  = "approved"
	StatusReviewing = "reviewing"
	StatusRejected  = "rejected"
)

// verdicts is the fixed vocabulary relayed to the student. The texts are
// part of the bot's contract; do not edit casually.
var verdicts = map[string]string{
	StatusApproved:  "Работа проверена: ревьюеру всё понравилось. Ура!",
	StatusReviewing: "Работа взята на проверку ревьюером.",
	StatusRejected:  "Работа проверена: у ревьюера есть замечания.",
}

// Submission is one homework record. Fields stay raw until DescribeSubmission
// checks them, so a missing or mistyped key is reported by name.
type Submission struct {
	Status       json.RawMessage `json:"status"`
	HomeworkName json.RawMessage `json:"homework_name"`
}

// DescribeSubmission renders the notification text for a record:
//
//	Изменился статус проверки работы "<name>". <verdict>
func DescribeSubmission(sub Submission) (string, error) {
	status, err := stringField(sub.Status, "status")
	if err != nil {
		return "", err
	}
	name, err := stringField(sub.HomeworkName, "homework_name")
	if err != nil {
		return "", err
	}

	verdict, ok := verdicts[status]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, status)
	}

	return fmt.Sprintf(`Изменился статус проверки работы "%s". %s`, name, verdict), nil
}

func stringField(raw json.RawMessage, key string) (string, error) {
	if isAbsent(raw) {
		return "", fmt.Errorf("%w: missing key %q", ErrMalformedSubmission, key)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("%w: key %q is not a string", ErrMalformedSubmission, key)
	}
	return s, nil
}
