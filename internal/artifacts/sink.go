// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package artifacts

import (
	"context"
	"time"

	"github.com/pdiddy/wordsmith/pkg/types"
)

// RunSink is a run-scoped view of the store handed to the pipeline
// driver. It assigns event sequence numbers so the driver never deals
// with trail bookkeeping. Not safe for concurrent use; the pipeline is
// strictly sequential.
type RunSink struct {
	store *Store
	runID string
	seq   int
}

// Sink returns a sink scoped to the given run.
func (s *Store) Sink(runID string) *RunSink {
	return &RunSink{store: s, runID: runID}
}

// RunID returns the run this sink writes to.
func (rs *RunSink) RunID() string { return rs.runID }

// SaveArtifact stores one stage product under the run.
func (rs *RunSink) SaveArtifact(ctx context.Context, stage types.Stage, iteration int, name, content string) error {
	return rs.store.SaveArtifact(ctx, rs.runID, stage, iteration, name, content)
}

// Event appends one audit-trail entry with the next sequence number.
func (rs *RunSink) Event(ctx context.Context, stage types.Stage, message, payload string) error {
	rs.seq++
	return rs.store.AppendEvent(ctx, rs.runID, types.PipelineEvent{
		Seq:       rs.seq,
		Stage:     stage,
		Message:   message,
		Payload:   payload,
		CreatedAt: time.Now().UTC(),
	})
}
