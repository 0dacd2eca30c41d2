package chat

import "github.com/chrismlittle123/finchly/core"

// Event payload types for the chat platform's events API.
const (
	TypeURLVerification = "url_verification"
	TypeEventCallback   = "event_callback"

	EventLinkShared = "link_shared"
	EventMessage    = "message"
)

// SharedLink is one unfurled link inside a link_shared event.
type SharedLink struct {
	URL    string `json:"url"`
	Domain string `json:"domain"`
}

// Event is the inner event of an event_callback payload. Fields are a
// union over the link_shared and message shapes.
type Event struct {
	Type    string `json:"type"`
	Channel string `json:"channel"`
	User    string `json:"user"`

	// link_shared
	MessageTS string       `json:"message_ts"`
	Links     []SharedLink `json:"links"`

	// message
	TS   string `json:"ts"`
	Text string `json:"text"`
}

// Payload is the outer webhook payload.
type Payload struct {
	Type      string `json:"type"`
	Challenge string `json:"challenge"`
	Event     *Event `json:"event"`
}

// SavedURL is a URL pulled out of an event together with its
// provenance.
type SavedURL struct {
	URL       string
	ChannelID string
	UserID    string
	MessageTS string
}

// ExtractSavedURLs pulls saveable URLs from an event callback.
// link_shared events carry URLs explicitly; message events have them
// regex-extracted from the text. Other event types yield nothing.
func ExtractSavedURLs(payload *Payload) []SavedURL {
	if payload.Type != TypeEventCallback || payload.Event == nil {
		return nil
	}
	event := payload.Event

	var urls []string
	messageTS := ""

	switch event.Type {
	case EventLinkShared:
		for _, link := range event.Links {
			urls = append(urls, link.URL)
		}
		messageTS = event.MessageTS
	case EventMessage:
		urls = core.ExtractURLs(event.Text)
		messageTS = event.TS
	default:
		return nil
	}

	saved := make([]SavedURL, 0, len(urls))
	for _, url := range urls {
		saved = append(saved, SavedURL{
			URL:       url,
			ChannelID: event.Channel,
			UserID:    event.User,
			MessageTS: messageTS,
		})
	}
	return saved
}
