package appstate

// Aggregate is the per-campaign tally of queue statuses.
type Aggregate struct {
	Total     int
	Queued    int
	Sending   int
	Delivered int
	Failed    int
}

// Done is the number of messages with a final outcome.
func (a Aggregate) Done() int {
	return a.Delivered + a.Failed
}

// Complete reports whether every generated message has an outcome.
func (a Aggregate) Complete() bool {
	return a.Total > 0 && a.Done() >= a.Total
}

// Recalculate groups messages by campaign and counts each status. It has no
// side effects; calling it twice on the same input yields the same result.
func Recalculate(messages []QueueMessage) map[string]Aggregate {
	out := make(map[string]Aggregate)
	for _, m := range messages {
		agg := out[m.CampaignID]
		agg.Total++
		switch m.Status {
		case MessageStatusQueued:
			agg.Queued++
		case MessageStatusSending:
			agg.Sending++
		case MessageStatusDelivered:
			agg.Delivered++
		case MessageStatusFailed:
			agg.Failed++
		}
		out[m.CampaignID] = agg
	}
	return out
}

// Apply writes an aggregate onto a campaign and promotes it to completed when
// every generated message has an outcome. Campaigns without queue entries are
// left untouched.
func (a Aggregate) Apply(c Campaign) Campaign {
	if a.Total == 0 {
		return c
	}
	c.Delivered = a.Delivered
	c.Failed = a.Failed
	c.Sending = a.Sending
	if a.Complete() {
		c.Status = CampaignStatusCompleted
	}
	return c
}
