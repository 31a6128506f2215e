package service

import (
	"fmt"

	"github.com/spiritually/spiritually/internal/domain"
)

// Decorate returns a copy of the tradition with derived enhanced content
// attached. The content is template text built from the record's own
// fields; the input record is left untouched and nothing is written back
// to the store.
func Decorate(t domain.Tradition) domain.Tradition {
	enhanced := &domain.EnhancedContent{
		PersonalInsights:    fmt.Sprintf("Deep insights into %s's practical applications in modern life.", t.Name),
		RecommendedReadings: []string{fmt.Sprintf("Essential readings for %s", t.Name)},
	}

	switch t.Kind {
	case domain.KindPhilosophy:
		enhanced.PracticalApplications = append([]string(nil), t.Practices...)
		enhanced.ModernInterpretations = fmt.Sprintf("Contemporary interpretation of %s's principles.", t.Name)
	case domain.KindReligion:
		enhanced.ModernPractices = append([]string(nil), t.Practices...)
		enhanced.CulturalContext = fmt.Sprintf("Cultural context and historical significance of %s.", t.Name)
	case domain.KindAstrology:
		enhanced.PracticalApplications = append([]string(nil), t.Elements...)
		enhanced.ModernInterpretations = fmt.Sprintf("Contemporary interpretation of %s's principles.", t.Name)
	}

	t.Enhanced = enhanced
	return t
}
