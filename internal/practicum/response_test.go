package practicum

import (
	"encoding/json"
	"errors"
	"testing"
)

func decodeRaw(t *testing.T, body string) *RawResponse {
	t.Helper()
	var raw RawResponse
	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		t.Fatalf("decode %q: %v", body, err)
	}
	return &raw
}

func TestValidateResponseShapes(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		body string
		want error
	}{
		{name: "no homeworks key", body: `{}`, want: ErrMalformedResponse},
		{name: "homeworks null", body: `{"homeworks": null, "current_date": 1}`, want: ErrMalformedResponse},
		{name: "homeworks not a list", body: `{"homeworks": 5, "current_date": 1}`, want: ErrMalformedResponse},
		{name: "homeworks object", body: `{"homeworks": {"a": 1}, "current_date": 1}`, want: ErrMalformedResponse},
		{name: "empty list is steady state", body: `{"homeworks": [], "current_date": 1}`, want: ErrNoStatusChange},
		{name: "empty list wins over missing date", body: `{"homeworks": []}`, want: ErrNoStatusChange},
		{name: "missing current_date", body: `{"homeworks": [{"status": "approved"}]}`, want: ErrInvalidTimestamp},
		{name: "current_date null", body: `{"homeworks": [{}], "current_date": null}`, want: ErrInvalidTimestamp},
		{name: "current_date string", body: `{"homeworks": [{}], "current_date": "soon"}`, want: ErrInvalidTimestamp},
		{name: "current_date fractional", body: `{"homeworks": [{}], "current_date": 1.5}`, want: ErrInvalidTimestamp},
		{name: "date checked before first record", body: `{"homeworks": [5]}`, want: ErrInvalidTimestamp},
		{name: "first record not an object", body: `{"homeworks": [5], "current_date": 1}`, want: ErrMalformedSubmission},
		{name: "first record null", body: `{"homeworks": [null], "current_date": 1}`, want: ErrMalformedSubmission},
		{name: "first record string", body: `{"homeworks": ["x"], "current_date": 1}`, want: ErrMalformedSubmission},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateResponse(decodeRaw(t, tt.body))
			if !errors.Is(err, tt.want) {
				t.Fatalf("ValidateResponse(%s) error = %v, want %v", tt.body, err, tt.want)
			}
		})
	}
}

func TestValidateResponseNil(t *testing.T) {
	t.Parallel()
	if _, err := ValidateResponse(nil); !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("ValidateResponse(nil) error = %v, want %v", err, ErrMalformedResponse)
	}
}

func TestValidateResponseOK(t *testing.T) {
	t.Parallel()
	body := `{
		"homeworks": [
			{"status": "approved", "homework_name": "hw-final", "id": 7},
			{"status": "rejected", "homework_name": "hw-older"}
		],
		"current_date": 1700000000
	}`

	upd, err := ValidateResponse(decodeRaw(t, body))
	if err != nil {
		t.Fatalf("ValidateResponse error: %v", err)
	}
	if upd.CurrentDate != 1700000000 {
		t.Fatalf("CurrentDate = %d, want 1700000000", upd.CurrentDate)
	}

	// Only the newest record survives validation.
	text, err := DescribeSubmission(upd.Latest)
	if err != nil {
		t.Fatalf("DescribeSubmission error: %v", err)
	}
	want := `Изменился статус проверки работы "hw-final". Работа проверена: ревьюеру всё понравилось. Ура!`
	if text != want {
		t.Fatalf("text = %q, want %q", text, want)
	}
}

func TestValidateResponseExtraKeysIgnored(t *testing.T) {
	t.Parallel()
	body := `{"homeworks": [{"status": "reviewing", "homework_name": "hw"}], "current_date": 5, "source": "api"}`
	upd, err := ValidateResponse(decodeRaw(t, body))
	if err != nil {
		t.Fatalf("ValidateResponse error: %v", err)
	}
	if upd.CurrentDate != 5 {
		t.Fatalf("CurrentDate = %d, want 5", upd.CurrentDate)
	}
}
