package resolving

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/vfg2006/ads-analytics-api/internal/domain"
)

var lastNDaysPattern = regexp.MustCompile(`(?:last|past)\s+(\d+)\s+days?`)

// resolveRange interpreta a expressão temporal da pergunta contra a data de
// referência. Sem expressão reconhecida, cai na janela padrão terminando hoje.
func resolveRange(question string, now time.Time, defaultRangeDays int) domain.DateRange {
	today := truncateToDay(now)

	if match := lastNDaysPattern.FindStringSubmatch(question); match != nil {
		days, err := strconv.Atoi(match[1])
		if err == nil && days > 0 {
			return domain.DateRange{
				Start: today.AddDate(0, 0, -(days - 1)),
				End:   today,
			}
		}
	}

	switch {
	case strings.Contains(question, "last month"):
		firstOfThisMonth := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
		return domain.DateRange{
			Start: firstOfThisMonth.AddDate(0, -1, 0),
			End:   firstOfThisMonth.AddDate(0, 0, -1),
		}

	case strings.Contains(question, "this month"):
		return domain.DateRange{
			Start: time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC),
			End:   today,
		}

	case strings.Contains(question, "last week"):
		monday := startOfWeek(today)
		return domain.DateRange{
			Start: monday.AddDate(0, 0, -7),
			End:   monday.AddDate(0, 0, -1),
		}

	case strings.Contains(question, "this week"):
		return domain.DateRange{
			Start: startOfWeek(today),
			End:   today,
		}

	case strings.Contains(question, "yesterday"):
		yesterday := today.AddDate(0, 0, -1)
		return domain.DateRange{Start: yesterday, End: yesterday}

	case strings.Contains(question, "today"):
		return domain.DateRange{Start: today, End: today}
	}

	return domain.DateRange{
		Start: today.AddDate(0, 0, -(defaultRangeDays - 1)),
		End:   today,
	}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// startOfWeek retorna a segunda-feira da semana da data
func startOfWeek(day time.Time) time.Time {
	weekday := int(day.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return day.AddDate(0, 0, -(weekday - 1))
}
