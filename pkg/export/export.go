// Package export writes archived best solutions in interchange formats.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"time"

	"github.com/kilianp07/evoroute/core/archive"
)

// WriteJSON writes the records to w in JSON format.
func WriteJSON(w io.Writer, records []archive.Record) error {
	enc := json.NewEncoder(w)
	return enc.Encode(records)
}

// WriteCSV writes the records to w in CSV format, one row per stop.
func WriteCSV(w io.Writer, records []archive.Record) error {
	cw := csv.NewWriter(w)
	header := []string{"run_id", "generation", "timestamp", "route_id", "vehicle", "route_distance", "stop_order", "stop_id", "x", "y"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, rec := range records {
		for _, route := range rec.Routes {
			for i, stop := range route.Stops {
				row := []string{
					rec.RunID,
					strconv.Itoa(rec.Generation),
					rec.Timestamp.Format(time.RFC3339),
					route.ID,
					route.Vehicle,
					strconv.FormatFloat(route.Distance, 'f', -1, 64),
					strconv.Itoa(i + 1),
					stop.ID,
					strconv.FormatFloat(stop.X, 'f', -1, 64),
					strconv.FormatFloat(stop.Y, 'f', -1, 64),
				}
				if err := cw.Write(row); err != nil {
					return err
				}
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
