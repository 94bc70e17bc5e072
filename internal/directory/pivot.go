package directory

import (
	"database/sql"

	"github.com/talentscope/talentscope/pkg/profile"
)

// PillarKeys maps competency pillar codes to profile source keys.
var PillarKeys = map[string]string{
	"IDS": "Insight_Decision",
	"QDD": "Quality_Delivery",
	"FTC": "Forward_Thinking",
	"STO": "Team_Orientation",
	"CSI": "Commercial_Savvy",
	"VCU": "Value_Creation",
	"GDR": "Growth_Drive",
	"CEX": "Curiosity",
	"LIE": "Lead_Inspire",
	"SEA": "Social_Empathy",
}

// PAPIKeys maps PAPI scale codes to profile source keys.
var PAPIKeys = map[string]string{
	"Papi_P": "Papi_P",
	"Papi_W": "Papi_W",
}

type employeeRow struct {
	ID          string
	FullName    string
	Position    string
	Directorate string
	Grade       string
	Education   sql.NullString
	DISC        sql.NullString
	Pauli       sql.NullFloat64
	IQ          sql.NullFloat64
	GTQ         sql.NullFloat64
	TIKI        sql.NullFloat64
}

type scoreRow struct {
	EmployeeID string
	Code       string
	Score      sql.NullFloat64
}

func nullNumber(f sql.NullFloat64) profile.Value {
	if !f.Valid {
		return profile.Null()
	}
	return profile.Number(f.Float64)
}

func nullText(s sql.NullString) profile.Value {
	if !s.Valid {
		return profile.Null()
	}
	return profile.Text(s.String)
}

// pivot joins employee rows with their pillar and PAPI scores. Codes without
// a source key are ignored; when a code repeats, the highest score wins.
func pivot(base []employeeRow, comps, papi []scoreRow) []profile.EmployeeProfile {
	out := make([]profile.EmployeeProfile, len(base))
	index := make(map[string]int, len(base))

	for i, b := range base {
		out[i] = profile.EmployeeProfile{
			EmployeeID:  b.ID,
			FullName:    b.FullName,
			Position:    b.Position,
			Directorate: b.Directorate,
			Grade:       b.Grade,
			Attributes: map[string]profile.Value{
				"education":   nullText(b.Education),
				"disc":        nullText(b.DISC),
				"Pauli_Score": nullNumber(b.Pauli),
				"IQ_Score":    nullNumber(b.IQ),
				"GTQ_Score":   nullNumber(b.GTQ),
				"TIKI_Score":  nullNumber(b.TIKI),
			},
		}
		index[b.ID] = i
	}

	apply := func(rows []scoreRow, keys map[string]string) {
		for _, r := range rows {
			i, ok := index[r.EmployeeID]
			if !ok || !r.Score.Valid {
				continue
			}
			key, ok := keys[r.Code]
			if !ok {
				continue
			}
			attrs := out[i].Attributes
			if cur := attrs[key]; !cur.IsNull() {
				if f, err := cur.Float(); err == nil && f >= r.Score.Float64 {
					continue
				}
			}
			attrs[key] = profile.Number(r.Score.Float64)
		}
	}
	apply(comps, PillarKeys)
	apply(papi, PAPIKeys)

	return out
}
