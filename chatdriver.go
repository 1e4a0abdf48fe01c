package triviascot

import (
	"github.com/slack-go/slack"
)

// messageSender is implemented by any value that has the SendMessage method. It is synchronous and returns
// the information identifying the sent message.
//
// slack.Client implements this interface
type messageSender interface {
	SendMessage(channelID string, options ...slack.MsgOption) (rChannelID string, rTimestamp string, rText string, err error)
}

// selfInfoFinder defines the interface for finding our (the triviascot instance) user info
//
// slack.RTM implements this interface
type selfInfoFinder interface {
	GetInfo() (user *slack.Info)
}
