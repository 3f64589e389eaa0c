package practicum

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestDescribeSubmissionVerdicts(t *testing.T) {
	t.Parallel()
	tests := []struct {
		status string
		want   string
	}{
		{
			status: "approved",
			want:   `Изменился статус проверки работы "hw". Работа проверена: ревьюеру всё понравилось. Ура!`,
		},
		{
			status: "reviewing",
			want:   `Изменился статус проверки работы "hw". Работа взята на проверку ревьюером.`,
		},
		{
			status: "rejected",
			want:   `Изменился статус проверки работы "hw". Работа проверена: у ревьюера есть замечания.`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.status, func(t *testing.T) {
			sub := Submission{
				Status:       json.RawMessage(`"` + tt.status + `"`),
				HomeworkName: json.RawMessage(`"hw"`),
			}
			got, err := DescribeSubmission(sub)
			if err != nil {
				t.Fatalf("DescribeSubmission error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("text = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDescribeSubmissionErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		sub     Submission
		want    error
		mention string
	}{
		{
			name:    "missing status",
			sub:     Submission{HomeworkName: json.RawMessage(`"hw"`)},
			want:    ErrMalformedSubmission,
			mention: "status",
		},
		{
			name:    "status not a string",
			sub:     Submission{Status: json.RawMessage(`5`), HomeworkName: json.RawMessage(`"hw"`)},
			want:    ErrMalformedSubmission,
			mention: "status",
		},
		{
			name:    "missing name",
			sub:     Submission{Status: json.RawMessage(`"approved"`)},
			want:    ErrMalformedSubmission,
			mention: "homework_name",
		},
		{
			name:    "name not a string",
			sub:     Submission{Status: json.RawMessage(`"approved"`), HomeworkName: json.RawMessage(`[]`)},
			want:    ErrMalformedSubmission,
			mention: "homework_name",
		},
		{
			name:    "unknown status",
			sub:     Submission{Status: json.RawMessage(`"burned"`), HomeworkName: json.RawMessage(`"hw"`)},
			want:    ErrUnknownStatus,
			mention: "burned",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := DescribeSubmission(tt.sub)
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
			if !strings.Contains(err.Error(), tt.mention) {
				t.Fatalf("error %q does not mention %q", err, tt.mention)
			}
		})
	}
}
