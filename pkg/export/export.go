package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/pkariuki/sunsched/core/schedule"
)

// WriteJSON writes the full plan (entries plus unscheduled devices) to w.
func WriteJSON(w io.Writer, plan *schedule.Schedule) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(plan)
}

// WriteCSV writes the plan as flat rows, one per placed entry, for
// spreadsheet and dashboard ingestion.
func WriteCSV(w io.Writer, plan *schedule.Schedule) error {
	cw := csv.NewWriter(w)
	header := []string{"device_name", "start_slot", "end_slot", "start_time", "end_time", "overlap_score"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, e := range plan.Entries {
		rec := []string{
			e.DeviceName,
			strconv.Itoa(e.StartSlot),
			strconv.Itoa(e.EndSlot),
			e.StartTime,
			e.EndTime,
			strconv.FormatFloat(e.OverlapScore, 'f', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteUnscheduledCSV writes the devices that got no placement with their
// reasons.
func WriteUnscheduledCSV(w io.Writer, plan *schedule.Schedule) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"device_name", "reason"}); err != nil {
		return err
	}
	for _, u := range plan.Unscheduled {
		if err := cw.Write([]string{u.DeviceName, string(u.Reason)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
