package rag

import (
	"strings"
	"testing"

	"praxis-chat-be/internal/dto"
)

func TestAssembleJoinsContentInRetrievalOrder(t *testing.T) {
	chunks := []dto.RetrievedChunk{
		{Content: "erster", Title: "Doc A", Distance: 0.1},
		{Content: "zweiter", Title: "Doc B", Distance: 0.2},
		{Content: "dritter", Title: "Doc C", Distance: 0.3},
	}

	contextText, sources := Assemble(chunks)

	want := "• erster\n• zweiter\n• dritter"
	if contextText != want {
		t.Errorf("contextText = %q, want %q", contextText, want)
	}
	if strings.Join(sources, ",") != "Doc A,Doc B,Doc C" {
		t.Errorf("sources = %v, want [Doc A Doc B Doc C]", sources)
	}
}

// First 3 titles by retrieval rank, duplicates preserved.
func TestAssembleSources(t *testing.T) {
	tests := []struct {
		name   string
		titles []string
		want   []string
	}{
		{
			name:   "duplicate titles preserved",
			titles: []string{"Rezeptbestellung", "Rezeptbestellung"},
			want:   []string{"Rezeptbestellung", "Rezeptbestellung"},
		},
		{
			name:   "capped at three",
			titles: []string{"A", "B", "C", "D", "E"},
			want:   []string{"A", "B", "C"},
		},
		{
			name:   "missing title becomes Unknown",
			titles: []string{""},
			want:   []string{"Unknown"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := make([]dto.RetrievedChunk, len(tt.titles))
			for i, title := range tt.titles {
				chunks[i] = dto.RetrievedChunk{Content: "c", Title: title}
			}

			_, sources := Assemble(chunks)

			if len(sources) != len(tt.want) {
				t.Fatalf("got %d sources, want %d", len(sources), len(tt.want))
			}
			for i := range tt.want {
				if sources[i] != tt.want[i] {
					t.Errorf("sources[%d] = %q, want %q", i, sources[i], tt.want[i])
				}
			}
		})
	}
}

// Zero chunks yield an empty context and an empty (non-nil) source list;
// there is no short-circuit.
func TestAssembleEmpty(t *testing.T) {
	contextText, sources := Assemble(nil)

	if contextText != "" {
		t.Errorf("contextText = %q, want empty", contextText)
	}
	if sources == nil {
		t.Error("sources is nil, want empty slice")
	}
	if len(sources) != 0 {
		t.Errorf("sources = %v, want empty", sources)
	}
}

func TestBuildMessages(t *testing.T) {
	messages := BuildMessages("Wie bestelle ich ein Rezept?", "• Kontext")

	if len(messages) != 2 {
		t.Fatalf("got %d messages, want 2", len(messages))
	}
	if messages[0].Role != "system" {
		t.Errorf("messages[0].Role = %q, want system", messages[0].Role)
	}
	if messages[1].Role != "user" {
		t.Errorf("messages[1].Role = %q, want user", messages[1].Role)
	}
	if !strings.Contains(messages[1].Content, "Question: Wie bestelle ich ein Rezept?") {
		t.Errorf("user content missing question: %q", messages[1].Content)
	}
	if !strings.Contains(messages[1].Content, "Context:\n• Kontext") {
		t.Errorf("user content missing context: %q", messages[1].Content)
	}
}
