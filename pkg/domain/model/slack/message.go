package slack

import (
	"github.com/slack-go/slack/slackevents"
)

// Message is an inbound Slack message that may mention issue identifiers
type Message struct {
	id        string
	channelID string
	threadTS  string
	teamID    string
	userID    string
	botID     string
	subType   string
	text      string
}

// NewMessage extracts a Message from a Slack Events API callback. It returns nil for
// anything but message events. app_mention is not handled: Slack delivers the same post
// as a message event too, and handling both would reply twice.
func NewMessage(ev *slackevents.EventsAPIEvent) *Message {
	if ev == nil || ev.Type != slackevents.CallbackEvent {
		return nil
	}

	switch evt := ev.InnerEvent.Data.(type) {
	case *slackevents.MessageEvent:
		threadTS := ""
		if evt.ThreadTimeStamp != "" && evt.ThreadTimeStamp != evt.TimeStamp {
			threadTS = evt.ThreadTimeStamp
		}
		return &Message{
			id:        evt.TimeStamp,
			channelID: evt.Channel,
			threadTS:  threadTS,
			teamID:    ev.TeamID,
			userID:    evt.User,
			botID:     evt.BotID,
			subType:   evt.SubType,
			text:      evt.Text,
		}
	default:
		return nil
	}
}

// NewMessageFromData creates a Message from raw values
func NewMessageFromData(id, channelID, threadTS, userID, botID, subType, text string) *Message {
	return &Message{
		id:        id,
		channelID: channelID,
		threadTS:  threadTS,
		userID:    userID,
		botID:     botID,
		subType:   subType,
		text:      text,
	}
}

func (m *Message) ID() string {
	return m.id
}

func (m *Message) ChannelID() string {
	return m.channelID
}

func (m *Message) TeamID() string {
	return m.teamID
}

func (m *Message) UserID() string {
	return m.userID
}

func (m *Message) Text() string {
	return m.text
}

// ReplyTS is the timestamp a reply should be threaded under: the thread root for
// threaded messages, the message itself otherwise
func (m *Message) ReplyTS() string {
	if m.threadTS != "" {
		return m.threadTS
	}
	return m.id
}

// IsFromBot reports whether a bot posted the message
func (m *Message) IsFromBot() bool {
	return m.botID != "" || m.subType == "bot_message"
}

// IsEdit reports whether the event is a change notification rather than a new post.
// Broadcasts and file shares still carry fresh user text.
func (m *Message) IsEdit() bool {
	switch m.subType {
	case "", "thread_broadcast", "file_share":
		return false
	default:
		return true
	}
}
