package kafka

// Event streams emitted by the send pipeline and the inbox poller.
const (
	TopicQueueMessageUpdated = "blastsms.queue.message-updated"
	TopicCampaignCompleted   = "blastsms.campaign.completed"
	TopicInboundReceived     = "blastsms.inbox.message-received"
)
