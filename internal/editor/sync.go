package editor

import (
	"fmt"
	"sort"
)

// SyncReport is the per-item outcome of a Synchronize pass.
type SyncReport struct {
	LessonID string
	// Created maps provisional ids to the durable ids issued for them.
	Created map[string]string
	Updated []string
	// Orphans are durable records deleted again because their local item
	// was removed while the create was in flight.
	Orphans  []string
	Skipped  []string
	Failures []*RemoteSyncError
}

// OK reports whether every attempted remote call succeeded.
func (r SyncReport) OK() bool {
	return len(r.Failures) == 0
}

func (r SyncReport) String() string {
	return fmt.Sprintf("created=%d updated=%d orphans=%d skipped=%d failed=%d",
		len(r.Created), len(r.Updated), len(r.Orphans), len(r.Skipped), len(r.Failures))
}

type pendingCreate struct {
	ProvisionalID string
	Content       NewContent
}

type pendingUpdate struct {
	ID     string
	Update ContentUpdate
}

// planCreates lists unlocked provisional items in list order.
func planCreates(s State) (creates []pendingCreate, skipped []string) {
	for _, item := range s.Items {
		if item.Persisted() {
			continue
		}
		if item.ID == s.EditingID {
			skipped = append(skipped, item.ID)
			continue
		}
		creates = append(creates, pendingCreate{
			ProvisionalID: item.ID,
			Content: NewContent{
				Kind:     item.Kind,
				Payload:  item.Payload,
				Caption:  item.Caption,
				Position: item.Position,
			},
		})
	}
	return creates, skipped
}

// planUpdates lists unlocked persisted items whose values differ from the
// last acknowledged snapshot.
func planUpdates(s State) (updates []pendingUpdate, skipped []string) {
	for _, item := range s.Items {
		if !item.Persisted() || !item.Pending() {
			continue
		}
		if item.ID == s.EditingID {
			skipped = append(skipped, item.ID)
			continue
		}
		updates = append(updates, pendingUpdate{
			ID: item.ID,
			Update: ContentUpdate{
				Payload:  item.Payload,
				Caption:  item.Caption,
				Position: item.Position,
			},
		})
	}
	return updates, skipped
}

// applyCreated swaps provisional ids for durable ones using the submission
// index. Items removed locally during the flight come back as orphans.
func applyCreated(s State, batch []pendingCreate, result BatchResult, report *SyncReport) (State, []string) {
	next := s.Clone()
	var orphans []string
	acked := make(map[int]bool, len(batch))

	for _, created := range result.Created {
		if created.Index < 0 || created.Index >= len(batch) || acked[created.Index] {
			report.Failures = append(report.Failures, &RemoteSyncError{
				ItemID: created.ID,
				Op:     OpCreate,
				Reason: ReasonRejected,
				Err:    fmt.Errorf("unexpected acknowledgement index %d", created.Index),
			})
			continue
		}
		acked[created.Index] = true
		submitted := batch[created.Index]

		idx, ok := next.Index(submitted.ProvisionalID)
		if !ok {
			orphans = append(orphans, created.ID)
			continue
		}
		next.Items[idx].ID = created.ID
		next.Items[idx].Synced = &Snapshot{
			Payload:  submitted.Content.Payload,
			Caption:  submitted.Content.Caption,
			Position: submitted.Content.Position,
		}
		if next.EditingID == submitted.ProvisionalID {
			next.EditingID = created.ID
		}
		report.Created[submitted.ProvisionalID] = created.ID
	}

	for _, failed := range result.Failed {
		if failed.Index < 0 || failed.Index >= len(batch) || acked[failed.Index] {
			continue
		}
		acked[failed.Index] = true
		report.Failures = append(report.Failures, remoteError(batch[failed.Index].ProvisionalID, OpCreate, failed.Err))
	}

	for idx, submitted := range batch {
		if acked[idx] {
			continue
		}
		report.Failures = append(report.Failures, &RemoteSyncError{
			ItemID: submitted.ProvisionalID,
			Op:     OpCreate,
			Reason: ReasonNetwork,
			Err:    ErrMissingResponse,
		})
	}
	return next, orphans
}

// markSynced records update acknowledgements for items that still exist.
func markSynced(s State, acked map[string]ContentUpdate) State {
	next := s.Clone()
	for idx, item := range next.Items {
		update, ok := acked[item.ID]
		if !ok {
			continue
		}
		next.Items[idx].Synced = &Snapshot{
			Payload:  update.Payload,
			Caption:  update.Caption,
			Position: update.Position,
		}
	}
	return next
}

// Hydrate replaces the items of s with stored records, ordered by their
// stored position and renumbered from 1.
func Hydrate(s State, stored []StoredContent) State {
	records := append([]StoredContent(nil), stored...)
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Position < records[j].Position
	})

	next := s.Clone()
	next.EditingID = ""
	next.Items = make([]Item, 0, len(records))
	for _, record := range records {
		next.Items = append(next.Items, Item{
			ID:      record.ID,
			Kind:    record.Kind,
			Payload: record.Payload,
			Caption: record.Caption,
			Synced: &Snapshot{
				Payload:  record.Payload,
				Caption:  record.Caption,
				Position: record.Position,
			},
		})
	}
	renumber(next.Items)
	return next
}

func chunk(creates []pendingCreate, size int) [][]pendingCreate {
	if size <= 0 || len(creates) <= size {
		return [][]pendingCreate{creates}
	}
	var out [][]pendingCreate
	for start := 0; start < len(creates); start += size {
		end := min(start+size, len(creates))
		out = append(out, creates[start:end])
	}
	return out
}
