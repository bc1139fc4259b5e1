package repository

import "attendance-tracker/models"

// Column assignments for a patch. Postgres columns and Mongo field names are
// the same, so both stores use these.

func attendanceAssignments(p models.AttendancePatch) map[string]any {
	set := make(map[string]any, 4)
	if p.Status.Set {
		set["status"] = p.Status.Value
	}
	if p.TimeIn.Set {
		set["time_in"] = p.TimeIn.Value
	}
	if p.TimeOut.Set {
		if p.TimeOut.Value == nil {
			set["time_out"] = nil
		} else {
			set["time_out"] = *p.TimeOut.Value
		}
	}
	if p.ConfidenceScore.Set {
		set["confidence_score"] = p.ConfidenceScore.Value
	}
	return set
}

func attendanceLogAssignments(p models.AttendanceLogPatch) map[string]any {
	set := make(map[string]any, 3)
	if p.Action.Set {
		set["action"] = p.Action.Value
	}
	if p.ConfidenceScore.Set {
		set["confidence_score"] = p.ConfidenceScore.Value
	}
	if p.Timestamp.Set {
		set["timestamp"] = p.Timestamp.Value
	}
	return set
}
