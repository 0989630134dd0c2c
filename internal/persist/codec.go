package persist

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/julianstephens/tinywins/internal/constants"
	apperrors "github.com/julianstephens/tinywins/internal/errors"
	"github.com/julianstephens/tinywins/internal/models"
	"github.com/julianstephens/tinywins/internal/utils"
)

// EncodeBlob serializes a snapshot into the stored blob format.
func EncodeBlob(snap models.Snapshot) ([]byte, error) {
	if snap.Anchors == nil {
		snap.Anchors = []string{}
	}
	if snap.Completed == nil {
		snap.Completed = []bool{}
	}
	if snap.History == nil {
		snap.History = []models.Entry{}
	}
	return json.Marshal(snap)
}

// DecodeBlob extracts the usable fields of a stored blob. An absent blob and
// the literals "undefined" and "null" decode to an empty patch. Fields with
// the wrong JSON type are ignored, as are history records without a valid date.
func DecodeBlob(data []byte) (models.StatePatch, error) {
	raw := strings.TrimSpace(string(data))
	if raw == "" || raw == "undefined" || raw == "null" {
		return models.StatePatch{}, nil
	}
	if !gjson.Valid(raw) {
		return models.StatePatch{}, fmt.Errorf("%w: malformed JSON", apperrors.ErrStorageRead)
	}

	root := gjson.Parse(raw)
	if !root.IsObject() {
		return models.StatePatch{}, fmt.Errorf("%w: expected a JSON object, got %s", apperrors.ErrStorageRead, root.Type)
	}

	var p models.StatePatch
	if v, ok := stringSlice(root.Get("anchors")); ok {
		p.Anchors = v
	}
	p.Explore = optString(root.Get("explore"))
	p.Journal = optString(root.Get("journal"))
	p.DateInput = optString(root.Get("dateInput"))
	p.LastSaved = optString(root.Get("lastSaved"))
	if v, ok := intValue(root.Get("mood")); ok {
		p.Mood = &v
	}
	p.Done = optBool(root.Get("done"))
	p.CheckIn = optBool(root.Get("checkIn"))
	if v, ok := boolSlice(root.Get("completed")); ok {
		p.Completed = v
	}

	history := root.Get("history")
	if history.IsArray() {
		p.HasHistory = true
		p.History = []models.Entry{}
		seen := map[string]bool{}
		for _, item := range history.Array() {
			entry, ok := decodeEntry(item)
			if !ok || seen[entry.Date] {
				p.Skipped++
				continue
			}
			seen[entry.Date] = true
			p.History = append(p.History, entry)
		}
	}

	return p, nil
}

func decodeEntry(r gjson.Result) (models.Entry, bool) {
	if !r.IsObject() {
		return models.Entry{}, false
	}
	date := r.Get("date")
	if date.Type != gjson.String || !utils.IsLocalDate(date.Str) {
		return models.Entry{}, false
	}

	e := models.Entry{Date: date.Str, Anchors: []string{}, Completed: []bool{}}

	if a := r.Get("anchors"); a.Exists() && a.Type != gjson.Null {
		v, ok := stringSlice(a)
		if !ok {
			return models.Entry{}, false
		}
		e.Anchors = v
	}
	if c := r.Get("completed"); c.Exists() && c.Type != gjson.Null {
		v, ok := boolSlice(c)
		if !ok {
			return models.Entry{}, false
		}
		e.Completed = v
	}
	if s := optString(r.Get("explore")); s != nil {
		e.Explore = *s
	}
	if s := optString(r.Get("journal")); s != nil {
		e.Journal = *s
	}
	if m := r.Get("mood"); m.Exists() && m.Type != gjson.Null {
		v, ok := intValue(m)
		if !ok || v < 0 || v > constants.MaxMood {
			return models.Entry{}, false
		}
		e.Mood = v
	}
	return e, true
}

func optString(r gjson.Result) *string {
	if r.Type != gjson.String {
		return nil
	}
	s := r.Str
	return &s
}

func optBool(r gjson.Result) *bool {
	if !r.IsBool() {
		return nil
	}
	b := r.Bool()
	return &b
}

func intValue(r gjson.Result) (int, bool) {
	if r.Type != gjson.Number || r.Num != math.Trunc(r.Num) {
		return 0, false
	}
	return int(r.Num), true
}

func stringSlice(r gjson.Result) ([]string, bool) {
	if !r.IsArray() {
		return nil, false
	}
	items := r.Array()
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item.Type != gjson.String {
			return nil, false
		}
		out = append(out, item.Str)
	}
	return out, true
}

func boolSlice(r gjson.Result) ([]bool, bool) {
	if !r.IsArray() {
		return nil, false
	}
	items := r.Array()
	out := make([]bool, 0, len(items))
	for _, item := range items {
		if !item.IsBool() {
			return nil, false
		}
		out = append(out, item.Bool())
	}
	return out, true
}
