// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract projects interactive session history into question/answer
// records.
//
// The stored JSON is an undocumented editor schema. Every lookup is a
// fallible step: a value, session, or request entry that does not have the
// expected shape is skipped, never reported as an error.
package extract

import (
	"github.com/tidwall/gjson"

	"github.com/pdiddy/workspace-chats/pkg/types"
)

// Field names in the stored session JSON.
const (
	requestsField = "requests"
	messageField  = "message"
	textField     = "text"
	responseField = "response"
	valueField    = "value"
)

// Stats counts what ExtractAll kept and skipped.
type Stats struct {
	// Values is the number of raw values processed.
	Values int

	// Malformed is the number of values that were not valid JSON or did not
	// hold a first session with a requests array.
	Malformed int

	// SkippedEntries is the number of request entries missing a question or
	// an answer.
	SkippedEntries int

	// Records is the number of ChatRecords produced.
	Records int
}

// ExtractAll extracts records from each raw value in order. Records from
// earlier values precede those from later ones. The result is never nil.
func ExtractAll(values []string) ([]types.ChatRecord, Stats) {
	records := []types.ChatRecord{}
	var stats Stats
	for _, raw := range values {
		stats.Values++
		requests, ok := sessionRequests(raw)
		if !ok {
			stats.Malformed++
			continue
		}
		for _, entry := range requests {
			rec, ok := chatRecord(entry)
			if !ok {
				stats.SkippedEntries++
				continue
			}
			records = append(records, rec)
		}
	}
	stats.Records = len(records)
	return records, stats
}

// Extract returns the records held by one raw value, in request order.
// It returns nil when the value has no usable session.
func Extract(raw string) []types.ChatRecord {
	requests, ok := sessionRequests(raw)
	if !ok {
		return nil
	}
	var records []types.ChatRecord
	for _, entry := range requests {
		if rec, ok := chatRecord(entry); ok {
			records = append(records, rec)
		}
	}
	return records
}

// sessionRequests returns the requests array of the first session in raw.
// Only the first session is read.
func sessionRequests(raw string) ([]gjson.Result, bool) {
	if !gjson.Valid(raw) {
		return nil, false
	}
	session, ok := first(gjson.Parse(raw))
	if !ok {
		return nil, false
	}
	requests, ok := field(session, requestsField)
	if !ok || !requests.IsArray() {
		return nil, false
	}
	return requests.Array(), true
}

// chatRecord builds a record from one request entry when both message.text
// and response[0].value are strings.
func chatRecord(entry gjson.Result) (types.ChatRecord, bool) {
	question, ok := questionOf(entry)
	if !ok {
		return types.ChatRecord{}, false
	}
	answer, ok := answerOf(entry)
	if !ok {
		return types.ChatRecord{}, false
	}
	return types.ChatRecord{Question: question, Answer: answer}, true
}

// questionOf resolves message.text.
func questionOf(entry gjson.Result) (string, bool) {
	msg, ok := field(entry, messageField)
	if !ok {
		return "", false
	}
	text, ok := field(msg, textField)
	if !ok {
		return "", false
	}
	return str(text)
}

// answerOf resolves response[0].value.
func answerOf(entry gjson.Result) (string, bool) {
	resp, ok := field(entry, responseField)
	if !ok {
		return "", false
	}
	part, ok := first(resp)
	if !ok {
		return "", false
	}
	value, ok := field(part, valueField)
	if !ok {
		return "", false
	}
	return str(value)
}

// field looks up name on an object. Non-objects have no fields.
func field(r gjson.Result, name string) (gjson.Result, bool) {
	if !r.IsObject() {
		return gjson.Result{}, false
	}
	v := r.Get(name)
	return v, v.Exists()
}

// first returns element 0 of an array.
func first(r gjson.Result) (gjson.Result, bool) {
	if !r.IsArray() {
		return gjson.Result{}, false
	}
	var out gjson.Result
	found := false
	r.ForEach(func(_, v gjson.Result) bool {
		out, found = v, true
		return false
	})
	return out, found
}

func str(r gjson.Result) (string, bool) {
	if r.Type != gjson.String {
		return "", false
	}
	return r.Str, true
}
