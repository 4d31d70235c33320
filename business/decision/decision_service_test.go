package decision

import (
	"testing"

	"refrescoBot/business/profile"
	"refrescoBot/domain"
)

func buildProfile(t *testing.T, picks map[uint64]uint64) profile.Profile {
	t.Helper()
	b := profile.NewBuilder(domain.DefaultQuestions())
	answers := make([]domain.Answer, 0, len(picks))
	// fixed iteration order so tests stay reproducible
	for q := uint64(1); q <= 9; q++ {
		if opt, ok := picks[q]; ok {
			answers = append(answers, domain.Answer{QuestionID: q, OptionID: opt})
		}
	}
	p, err := b.Build(answers)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return p
}

func TestDecideShortCircuit(t *testing.T) {
	e := NewEngine(DefaultRules(), 0.15)

	tests := []struct {
		name         string
		picks        map[uint64]uint64
		want         domain.CategoryDecision
		wantQuestion uint64
	}{
		{
			name:         "priority flavor wins over everything",
			picks:        map[uint64]uint64{1: 14, 4: 41, 5: 51},
			want:         domain.DecisionConventionalOnly,
			wantQuestion: 4,
		},
		{
			name:         "priority health wins over loving sodas",
			picks:        map[uint64]uint64{1: 11, 4: 42},
			want:         domain.DecisionHealthOnly,
			wantQuestion: 4,
		},
		{
			name:         "no priority answer falls to consumption",
			picks:        map[uint64]uint64{1: 14, 3: 32},
			want:         domain.DecisionHealthOnly,
			wantQuestion: 1,
		},
		{
			name:         "ambiguous consumption falls to drink type",
			picks:        map[uint64]uint64{1: 12, 2: 24},
			want:         domain.DecisionHealthOnly,
			wantQuestion: 2,
		},
		{
			name:         "zero sugar is decisive when earlier rules pass",
			picks:        map[uint64]uint64{1: 12, 2: 22, 3: 35},
			want:         domain.DecisionHealthOnly,
			wantQuestion: 3,
		},
		{
			name:         "caffeine positive leans conventional",
			picks:        map[uint64]uint64{1: 12, 8: 81},
			want:         domain.DecisionConventionalOnly,
			wantQuestion: 8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := buildProfile(t, tt.picks)
			out := e.Decide(p)
			if out.Decision != tt.want {
				t.Errorf("Decide() = %v, want %v", out.Decision, tt.want)
			}
			if !out.ShortCircuited() || out.QuestionID != tt.wantQuestion {
				t.Errorf("decided by question %d, want %d", out.QuestionID, tt.wantQuestion)
			}
		})
	}
}

func TestDecideFallback(t *testing.T) {
	e := NewEngine(DefaultRules(), 0.15)

	// varied drinks + caffeine neutral: no rule value matches, so the
	// weighted scores decide, and these two answers balance exactly.
	p := buildProfile(t, map[uint64]uint64{2: 22, 8: 82})
	out := e.Decide(p)

	if out.ShortCircuited() {
		t.Fatalf("expected fallback, decided by question %d", out.QuestionID)
	}
	if out.ScoreConventional == 0 && out.ScoreHealth == 0 {
		t.Fatal("fallback scores not populated")
	}
	if out.Decision != domain.DecisionMixed {
		t.Errorf("Decide() = %v, want mixed (conv=%.2f health=%.2f)",
			out.Decision, out.ScoreConventional, out.ScoreHealth)
	}
}

func TestDecideFallbackOutsideTolerance(t *testing.T) {
	// tight tolerance forces a single-category outcome
	e := NewEngine(DefaultRules(), 0.0001)

	p := buildProfile(t, map[uint64]uint64{1: 12, 2: 22, 8: 82})
	out := e.Decide(p)

	if out.Decision == domain.DecisionMixed {
		t.Errorf("Decide() = mixed, want a single category under tight tolerance")
	}
}

func TestDecideNoAnswers(t *testing.T) {
	e := NewEngine(DefaultRules(), 0.15)
	p := buildProfile(t, nil)
	out := e.Decide(p)
	if out.Decision != domain.DecisionConventionalOnly {
		t.Errorf("Decide() = %v, want conventional_only default", out.Decision)
	}
}

func TestDefaultRulesCoverCatalog(t *testing.T) {
	catalog := domain.DefaultQuestions()
	byID := make(map[uint64]domain.Question, len(catalog))
	for _, q := range catalog {
		byID[q.ID] = q
	}

	for _, r := range DefaultRules() {
		q, ok := byID[r.QuestionID]
		if !ok {
			t.Errorf("rule references unknown question %d", r.QuestionID)
			continue
		}
		if q.Category != r.Category {
			t.Errorf("rule %d category = %q, catalog says %q", r.QuestionID, r.Category, q.Category)
		}
		for v := range r.Outcomes {
			found := false
			for _, opt := range q.Options {
				if opt.Value == v {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("rule %d maps value %q not present in catalog", r.QuestionID, v)
			}
		}
	}
}
