package schema

import (
	"testing"

	"github.com/yasshh17/AI-Task-Prioritizer/internal/errors"
	"github.com/yasshh17/AI-Task-Prioritizer/internal/session"
)

func TestNormalize_WellFormedResult(t *testing.T) {
	raw := `{"prioritized_tasks": [
		{"task": "Fix bug #42", "priority": "High", "reason": "Blocks the release"},
		{"task": "Write tests", "priority": "Medium", "reason": "Prevents regressions"},
		{"task": "Update docs", "priority": "Low", "reason": "Can wait until after ship"}
	]}`

	s, err := Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	if len(s.Tasks) != 3 {
		t.Fatalf("len(Tasks) = %d, want 3", len(s.Tasks))
	}
	if s.CreatedAt.IsZero() {
		t.Error("CreatedAt should be stamped")
	}

	wantDescriptions := []string{"Fix bug #42", "Write tests", "Update docs"}
	wantPriorities := []session.Priority{session.PriorityHigh, session.PriorityMedium, session.PriorityLow}
	for i, task := range s.Tasks {
		if task.Description != wantDescriptions[i] {
			t.Errorf("task %d: Description = %q, want %q (order preserved)", i, task.Description, wantDescriptions[i])
		}
		if task.Priority != wantPriorities[i] {
			t.Errorf("task %d: Priority = %q, want %q", i, task.Priority, wantPriorities[i])
		}
		if task.Reason == "" {
			t.Errorf("task %d: Reason should be populated", i)
		}
		if task.Done {
			t.Errorf("task %d: Done = true, want false", i)
		}
	}
}

func TestNormalize_MissingFieldsDefault(t *testing.T) {
	// Missing priority/reason must default, not fail the batch.
	s, err := Normalize(`{"prioritized_tasks":[{"task":"A"}]}`)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	if len(s.Tasks) != 1 {
		t.Fatalf("len(Tasks) = %d, want 1", len(s.Tasks))
	}
	task := s.Tasks[0]
	if task.Description != "A" {
		t.Errorf("Description = %q, want %q", task.Description, "A")
	}
	if task.Priority != session.PriorityUnspecified {
		t.Errorf("Priority = %q, want Unspecified", task.Priority)
	}
	if task.Reason != "" {
		t.Errorf("Reason = %q, want empty", task.Reason)
	}
	if task.Done {
		t.Error("Done = true, want false")
	}
}

func TestNormalize_MalformedEntryDoesNotDiscardBatch(t *testing.T) {
	raw := `{"prioritized_tasks": [
		{"task": "Good entry", "priority": "High", "reason": "fine"},
		"not an object",
		{"task": "Another good one", "priority": "Low", "reason": "also fine"}
	]}`

	s, err := Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if len(s.Tasks) != 3 {
		t.Fatalf("len(Tasks) = %d, want 3 (malformed entry kept as default)", len(s.Tasks))
	}
	if s.Tasks[1].Description != "" || s.Tasks[1].Priority != session.PriorityUnspecified {
		t.Errorf("malformed entry = %+v, want all-default task", s.Tasks[1])
	}
	if s.Tasks[2].Description != "Another good one" {
		t.Errorf("entry after malformed one was lost: %+v", s.Tasks[2])
	}
}

func TestNormalize_ForcesDoneFalse(t *testing.T) {
	s, err := Normalize(`{"prioritized_tasks":[{"task":"A","priority":"High","reason":"r","done":true}]}`)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if s.Tasks[0].Done {
		t.Error("Done = true, want force-set to false for fresh prioritizations")
	}
}

func TestNormalize_PriorityDomain(t *testing.T) {
	tests := []struct {
		raw  string
		want session.Priority
	}{
		{"High", session.PriorityHigh},
		{"HIGH", session.PriorityHigh},
		{"medium", session.PriorityMedium},
		{"low", session.PriorityLow},
		{"Critical", session.PriorityUnspecified},
		{"", session.PriorityUnspecified},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			s, err := Normalize(`{"prioritized_tasks":[{"task":"A","priority":"` + tt.raw + `"}]}`)
			if err != nil {
				t.Fatalf("Normalize failed: %v", err)
			}
			if s.Tasks[0].Priority != tt.want {
				t.Errorf("priority %q normalized to %q, want %q", tt.raw, s.Tasks[0].Priority, tt.want)
			}
		})
	}
}

func TestNormalize_EmptyTaskArrayIsValid(t *testing.T) {
	s, err := Normalize(`{"prioritized_tasks": []}`)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if len(s.Tasks) != 0 {
		t.Errorf("len(Tasks) = %d, want 0", len(s.Tasks))
	}
}

func TestNormalize_StructuralFailures(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "the model apologizes and explains itself"},
		{"json but not object", `["a", "b"]`},
		{"missing key", `{"tasks": [{"task": "A"}]}`},
		{"non-array value", `{"prioritized_tasks": {"task": "A"}}`},
		{"empty string", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.raw)
			if err == nil {
				t.Fatal("Normalize succeeded, want SchemaError")
			}
			var schemaErr *errors.SchemaError
			if !errors.As(err, &schemaErr) {
				t.Errorf("error type = %T, want *errors.SchemaError", err)
			}
			if !errors.Is(err, errors.ErrMalformedResult) {
				t.Error("error should match ErrMalformedResult")
			}
		})
	}
}

func TestNormalize_StripsMarkdownFences(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{
			name: "plain fence",
			raw:  "```\n{\"prioritized_tasks\":[{\"task\":\"A\",\"priority\":\"High\"}]}\n```",
		},
		{
			name: "fence with language tag",
			raw:  "```json\n{\"prioritized_tasks\":[{\"task\":\"A\",\"priority\":\"High\"}]}\n```",
		},
		{
			name: "surrounding whitespace",
			raw:  "\n\n  {\"prioritized_tasks\":[{\"task\":\"A\",\"priority\":\"High\"}]}  \n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Normalize(tt.raw)
			if err != nil {
				t.Fatalf("Normalize failed: %v", err)
			}
			if len(s.Tasks) != 1 || s.Tasks[0].Description != "A" {
				t.Errorf("unexpected tasks: %+v", s.Tasks)
			}
		})
	}
}

func TestNormalize_SerializeRoundTrip(t *testing.T) {
	s, err := Normalize(`{"prioritized_tasks":[{"task":"A","priority":"High","reason":"r"}]}`)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	data, err := s.Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	again, err := session.DecodeSession(data)
	if err != nil {
		t.Fatalf("DecodeSession failed: %v", err)
	}
	if len(again.Tasks) != 1 || again.Tasks[0] != s.Tasks[0] {
		t.Errorf("round trip changed the task: %+v vs %+v", again.Tasks[0], s.Tasks[0])
	}
}
