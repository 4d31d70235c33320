package profile

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"refrescoBot/domain"
)

func answer(qID, optID uint64, latency float64) domain.Answer {
	return domain.Answer{
		QuestionID:     qID,
		OptionID:       optID,
		LatencySeconds: latency,
		AnsweredAt:     time.Now(),
	}
}

func TestBuildVectorAndSignals(t *testing.T) {
	b := NewBuilder(domain.DefaultQuestions())

	answers := []domain.Answer{
		answer(1, 11, 4.0), // loves sodas
		answer(3, 31, 3.5), // very sweet
		answer(4, 41, 5.0), // priority flavor
	}

	p, err := b.Build(answers)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if got := p.Signal(domain.CategoryConsumption); got != domain.ValueLovesSodas {
		t.Errorf("consumption signal = %q, want %q", got, domain.ValueLovesSodas)
	}
	if got := p.ByQuestion[4]; got != domain.ValuePriorityFlavor {
		t.Errorf("question 4 signal = %q, want %q", got, domain.ValuePriorityFlavor)
	}
	if len(p.Vector) != VectorSize {
		t.Fatalf("vector size = %d, want %d", len(p.Vector), VectorSize)
	}

	// consumption slot = option weight (1.0) * question weight (1.0)
	if got := p.Vector[1]; got != 1.0 {
		t.Errorf("consumption slot = %v, want 1.0", got)
	}
	// sweetness slot = 1.0 * 0.7
	if got := p.Vector[5]; got != 0.7 {
		t.Errorf("sweetness slot = %v, want 0.7", got)
	}
	// priority_flavor forces health affinity to zero
	if got := p.Vector[len(domain.QuestionCategories)+DerivedHealthAffinity]; got != 0.0 {
		t.Errorf("health affinity = %v, want 0.0", got)
	}
	if got := p.Vector[len(domain.QuestionCategories)+DerivedSweetTooth]; got != 1.0 {
		t.Errorf("sweet tooth = %v, want 1.0", got)
	}
}

func TestBuildDeterministic(t *testing.T) {
	b := NewBuilder(domain.DefaultQuestions())
	answers := []domain.Answer{
		answer(1, 14, 3.0),
		answer(4, 42, 2.5),
		answer(5, 51, 4.0),
	}

	first, err := b.Build(answers)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	second, err := b.Build(answers)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if !reflect.DeepEqual(first.Vector, second.Vector) {
		t.Errorf("vectors differ across identical builds: %v vs %v", first.Vector, second.Vector)
	}
	if !reflect.DeepEqual(first.ByQuestion, second.ByQuestion) {
		t.Errorf("signals differ across identical builds")
	}
}

func TestBuildMalformed(t *testing.T) {
	b := NewBuilder(domain.DefaultQuestions())

	tests := []struct {
		name    string
		answers []domain.Answer
	}{
		{
			name:    "unknown question",
			answers: []domain.Answer{answer(999, 11, 1.0)},
		},
		{
			name:    "option from another question",
			answers: []domain.Answer{answer(1, 41, 1.0)},
		},
		{
			name: "duplicate question",
			answers: []domain.Answer{
				answer(1, 11, 1.0),
				answer(1, 12, 1.0),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := b.Build(tt.answers)
			if !errors.Is(err, domain.ErrMalformedAnswer) {
				t.Errorf("Build() error = %v, want ErrMalformedAnswer", err)
			}
		})
	}
}

func TestLatencyStats(t *testing.T) {
	b := NewBuilder(domain.DefaultQuestions())
	answers := []domain.Answer{
		answer(1, 11, 1.0),
		answer(3, 33, 1.5),
		answer(4, 44, 6.5),
	}

	p, err := b.Build(answers)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if p.TotalAnswers != 3 || p.FastAnswers != 2 {
		t.Errorf("latency counts = %d/%d, want 2/3", p.FastAnswers, p.TotalAnswers)
	}
	if got := p.FastShare(); got < 0.66 || got > 0.67 {
		t.Errorf("FastShare() = %v, want ~0.667", got)
	}
	if got := p.MeanLatency; got != 3.0 {
		t.Errorf("MeanLatency = %v, want 3.0", got)
	}
}
