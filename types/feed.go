package types

// FeedResponse represents the body of a ThingSpeak feeds.json reply.
type FeedResponse struct {
	Channel ChannelInfo `json:"channel"`
	Feeds   []FeedEntry `json:"feeds"`
}

// ChannelInfo represents the channel metadata block of a feed response.
type ChannelInfo struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	LastEntryID int    `json:"last_entry_id"`
}

// FeedEntry is one raw sample as the channel reports it. ThingSpeak sends
// field values as strings, numbers or null depending on how the device wrote
// them, so the fields stay untyped until the normalizer coerces them.
type FeedEntry struct {
	CreatedAt string `json:"created_at"`
	EntryID   int    `json:"entry_id"`
	Field1    any    `json:"field1"` // temperature
	Field2    any    `json:"field2"` // humidity
	Field3    any    `json:"field3"` // pressure
	Field4    any    `json:"field4"` // PM2.5 dust
	Field5    any    `json:"field5"` // CO2
	Field6    any    `json:"field6"` // TVOC
}
