package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=processor.go -destination=mocks_test.go -package=processor

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"blastsms/internal/appstate"
	"blastsms/internal/observability"
)

// AnalyticsSource defines the state reads required by AnalyticsProcessor
type AnalyticsSource interface {
	Campaigns() []appstate.Campaign
	QueueMessages(filter appstate.QueueFilter) []appstate.QueueMessage
}

const (
	DefaultDays = 7
	MaxDays     = 90
	dateLayout  = "2006-01-02"
)

var ErrInvalidDateRange = errors.New("invalid date range")

type AnalyticsProcessor struct {
	source AnalyticsSource
	logger *observability.Logger
	now    func() time.Time
}

func New(source AnalyticsSource, logger *observability.Logger) AnalyticsProcessor {
	return AnalyticsProcessor{
		source: source,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Totals are summed from campaign counters. DeliveryRate is a percentage of
// processed messages.
type Totals struct {
	Sent            int     `json:"sent"`
	Delivered       int     `json:"delivered"`
	Failed          int     `json:"failed"`
	ActiveCampaigns int     `json:"activeCampaigns"`
	DeliveryRate    float64 `json:"deliveryRate"`
}

type DailyPoint struct {
	Date      string `json:"date"`
	Sent      int    `json:"sent"`
	Delivered int    `json:"delivered"`
	Failed    int    `json:"failed"`
}

type HourlyPoint struct {
	Hour     string `json:"hour"`
	Messages int    `json:"messages"`
}

type CampaignPerformance struct {
	ID           string                  `json:"id"`
	Name         string                  `json:"name"`
	Status       appstate.CampaignStatus `json:"status"`
	Delivered    int                     `json:"delivered"`
	Failed       int                     `json:"failed"`
	DeliveryRate float64                 `json:"deliveryRate"`
}

// Overview is everything the analytics dashboard charts.
type Overview struct {
	Totals          Totals                         `json:"totals"`
	Daily           []DailyPoint                   `json:"daily"`
	Hourly          []HourlyPoint                  `json:"hourly"`
	Campaigns       []CampaignPerformance          `json:"campaigns"`
	StatusBreakdown map[appstate.MessageStatus]int `json:"statusBreakdown"`
}

// GetOverview aggregates campaign counters and processed queue messages. The
// daily series covers the last days days, oldest first, with empty days present.
func (p *AnalyticsProcessor) GetOverview(ctx context.Context, days int) (Overview, error) {
	if days < 1 || days > MaxDays {
		return Overview{}, fmt.Errorf("%w: days must be between 1 and %d", ErrInvalidDateRange, MaxDays)
	}

	campaigns := p.source.Campaigns()
	messages := p.source.QueueMessages(appstate.QueueFilter{})

	overview := Overview{
		Totals:          totals(campaigns),
		Daily:           p.daily(messages, days),
		Hourly:          hourly(messages),
		Campaigns:       performance(campaigns),
		StatusBreakdown: make(map[appstate.MessageStatus]int),
	}
	for _, m := range messages {
		overview.StatusBreakdown[m.Status]++
	}

	p.logger.Debug(observability.WithFields(ctx,
		observability.Field{Key: "campaigns", Value: len(campaigns)},
		observability.Field{Key: "queue_messages", Value: len(messages)},
	), "analytics aggregated")
	return overview, nil
}

func totals(campaigns []appstate.Campaign) Totals {
	var t Totals
	for _, c := range campaigns {
		t.Delivered += c.Delivered
		t.Failed += c.Failed
		if c.Status == appstate.CampaignStatusRunning {
			t.ActiveCampaigns++
		}
	}
	t.Sent = t.Delivered + t.Failed
	t.DeliveryRate = rate(t.Delivered, t.Sent)
	return t
}

func (p *AnalyticsProcessor) daily(messages []appstate.QueueMessage, days int) []DailyPoint {
	today := p.now().UTC().Truncate(24 * time.Hour)
	first := today.AddDate(0, 0, -(days - 1))

	points := make([]DailyPoint, days)
	index := make(map[string]int, days)
	for i := range points {
		date := first.AddDate(0, 0, i).Format(dateLayout)
		points[i].Date = date
		index[date] = i
	}

	for _, m := range messages {
		if !processed(m) {
			continue
		}
		i, ok := index[m.Timestamp.UTC().Format(dateLayout)]
		if !ok {
			continue
		}
		points[i].Sent++
		if m.Status == appstate.MessageStatusDelivered {
			points[i].Delivered++
		} else {
			points[i].Failed++
		}
	}
	return points
}

func hourly(messages []appstate.QueueMessage) []HourlyPoint {
	points := make([]HourlyPoint, 24)
	for i := range points {
		points[i].Hour = fmt.Sprintf("%02d:00", i)
	}
	for _, m := range messages {
		if processed(m) {
			points[m.Timestamp.UTC().Hour()].Messages++
		}
	}
	return points
}

// performance lists campaigns with at least one processed message, best rate first.
func performance(campaigns []appstate.Campaign) []CampaignPerformance {
	out := make([]CampaignPerformance, 0, len(campaigns))
	for _, c := range campaigns {
		if c.Delivered == 0 && c.Failed == 0 {
			continue
		}
		out = append(out, CampaignPerformance{
			ID:           c.ID,
			Name:         c.Name,
			Status:       c.Status,
			Delivered:    c.Delivered,
			Failed:       c.Failed,
			DeliveryRate: rate(c.Delivered, c.Delivered+c.Failed),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DeliveryRate > out[j].DeliveryRate
	})
	return out
}

func processed(m appstate.QueueMessage) bool {
	return m.Status == appstate.MessageStatusDelivered || m.Status == appstate.MessageStatusFailed
}

func rate(delivered, sent int) float64 {
	if sent == 0 {
		return 0
	}
	return float64(delivered) / float64(sent) * 100
}
