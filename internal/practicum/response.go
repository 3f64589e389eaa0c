package practicum

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// RawResponse is the endpoint payload after JSON decoding and before shape
// validation. Fields hold raw JSON so validation can report exactly which
// contract point the API broke; extra keys are ignored.
type RawResponse struct {
	Homeworks   json.RawMessage `json:"homeworks"`
	CurrentDate json.RawMessage `json:"current_date"`
}

// Update is a validated response. Only the newest submission is decoded: the
// API returns newest first and older entries never produce notifications.
type Update struct {
	Latest      Submission
	CurrentDate int64
}

// ValidateResponse checks the payload shape in a fixed order, one failure per
// defect: homeworks present and a list, list non-empty (ErrNoStatusChange
// otherwise, which is the normal steady state), current_date an integer,
// first record an object.
func ValidateResponse(raw *RawResponse) (*Update, error) {
	if raw == nil {
		return nil, fmt.Errorf("%w: not a JSON object", ErrMalformedResponse)
	}

	if isAbsent(raw.Homeworks) {
		return nil, fmt.Errorf("%w: homeworks missing or wrong type", ErrMalformedResponse)
	}
	var list []json.RawMessage
	if err := json.Unmarshal(raw.Homeworks, &list); err != nil {
		return nil, fmt.Errorf("%w: homeworks missing or wrong type", ErrMalformedResponse)
	}
	if len(list) == 0 {
		return nil, ErrNoStatusChange
	}

	if isAbsent(raw.CurrentDate) {
		return nil, fmt.Errorf("%w: current_date missing", ErrInvalidTimestamp)
	}
	var ts json.Number
	if err := json.Unmarshal(raw.CurrentDate, &ts); err != nil {
		return nil, fmt.Errorf("%w: current_date is not a number", ErrInvalidTimestamp)
	}
	unix, err := ts.Int64()
	if err != nil {
		return nil, fmt.Errorf("%w: current_date %s is not an integer", ErrInvalidTimestamp, ts)
	}

	if isAbsent(list[0]) {
		return nil, fmt.Errorf("%w: not an object", ErrMalformedSubmission)
	}
	var latest Submission
	if err := json.Unmarshal(list[0], &latest); err != nil {
		return nil, fmt.Errorf("%w: not an object", ErrMalformedSubmission)
	}

	return &Update{Latest: latest, CurrentDate: unix}, nil
}

// isAbsent reports a key that is missing entirely or set to JSON null.
// Decoding leaves both as something json.Unmarshal would wave through
// (null unmarshals into slices and structs without error), so they are
// rejected before type checks.
func isAbsent(b json.RawMessage) bool {
	if len(b) == 0 {
		return true
	}
	return bytes.Equal(bytes.TrimSpace(b), []byte("null"))
}
