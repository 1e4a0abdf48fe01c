/*
Package inmemorydb provides an implementation of github.com/alexandre-normand/triviascot/store's StringStorer interface
as an in-memory data store relying on a wrapping StringStorer for actual persistence.

The main use-case for the inmemorydb is to shield the real StringStorer implementation (i.e. Google Cloud Datastore)
from a call on every channel join and to offer lower latency at the expense of increased memory usage.

Example code:

	import (
		"github.com/alexandre-normand/triviascot/store/datastoredb"
		"github.com/alexandre-normand/triviascot/store/inmemorydb"
		"google.golang.org/api/option"
	)

	func main() {
		// Create your persistent storer first
		persistentStorer, err := datastoredb.New("channelJoins", "triviascot", option.WithCredentialsFile(gcloudCredentialsFile))
		if err != nil {
			log.Fatalf("Opening [%s] db failed: %s", "channelJoins", err.Error())
		}

		// Create the inmemorydb
		channelJoinStorer, err := inmemorydb.New(persistentStorer)
		if err != nil {
			log.Fatalf("Opening creating in-memory db wrapper: %s", err.Error())
		}
		defer channelJoinStorer.Close()

		bot, err := triviascot.NewBot("triviascot", v, triviascot.OptionChannelJoinStorer(channelJoinStorer)).
		...
	}
*/
package inmemorydb
