package golden

import "time"

// Heatmap projects the same per-hour computation the overlap engine runs into
// a 24 x N grid for visualization: one cell per (UTC hour, participant), plus
// the combined score per row.
func (e *Engine) Heatmap(participants []Participant, ref time.Time) (*HeatmapData, error) {
	windows, err := e.FindAllOverlapWindows(participants, ref)
	if err != nil {
		return nil, err
	}

	data := &HeatmapData{
		ParticipantIDs: make([]string, len(participants)),
	}
	for i := range participants {
		data.ParticipantIDs[i] = participants[i].ID
	}

	for _, w := range windows {
		row := HeatmapRow{
			UTCHour:      w.UTCHour,
			Cells:        make([]HeatmapCell, 0, len(w.Participants)),
			QualityScore: w.QualityScore,
			GoldenScore:  w.GoldenScore,
			AllAvailable: w.AllAvailable,
		}
		for _, pw := range w.Participants {
			row.Cells = append(row.Cells, HeatmapCell{
				ParticipantID: pw.ParticipantID,
				LocalHour:     pw.LocalHour,
				Sharpness:     pw.Sharpness,
				IsAvailable:   pw.IsAvailable,
			})
		}
		data.Rows[w.UTCHour] = row
	}
	return data, nil
}
