// Package live defines the publishing contract used to stream best-solution
// records to external consumers such as dashboards.
package live

import (
	"context"

	"github.com/kilianp07/evoroute/core/archive"
)

// Publisher streams best-solution records to an external channel.
type Publisher interface {
	PublishBest(ctx context.Context, rec archive.Record) error
	Close() error
}
