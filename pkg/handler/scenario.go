package handler

import (
	"net/http"
)

// Scenario names the failure behavior a path substring selects. The name
// is also used as the prometheus scenario label.
type Scenario string

const (
	// ScenarioNotFound always answers 404
	ScenarioNotFound Scenario = "notFound"
	// ScenarioServerError always answers 500
	ScenarioServerError Scenario = "serverError"
	// ScenarioSlow blocks before answering, to exercise client timeouts
	ScenarioSlow Scenario = "slow"
	// ScenarioFailThenOk answers 503 twice per path, then serves the fixture
	ScenarioFailThenOk Scenario = "failThenOk"
	// ScenarioWrongChecksum serves a body that matches no fixture checksum
	ScenarioWrongChecksum Scenario = "wrongChecksum"
	// ScenarioCorruptedZip serves a structurally invalid zip archive
	ScenarioCorruptedZip Scenario = "corruptedZip"
	// ScenarioSmallFile serves a body below any sane minimum size threshold
	ScenarioSmallFile Scenario = "smallFile"
)

type scenario struct {
	name  Scenario
	match string
	serve func(h *HTTP, w http.ResponseWriter, r *http.Request)
}

// scenarios returns the dispatch table. Entries are checked top to bottom
// against the request path; the first substring match wins.
func scenarios() []scenario {
	return []scenario{
		{ScenarioNotFound, "/404", (*HTTP).serveNotFound},
		{ScenarioServerError, "/500", (*HTTP).serveServerError},
		{ScenarioSlow, "/slow", (*HTTP).serveSlow},
		{ScenarioFailThenOk, failThenOkMatch, (*HTTP).serveFailThenOk},
		{ScenarioWrongChecksum, "/wrong-checksum", (*HTTP).serveWrongChecksum},
		{ScenarioCorruptedZip, "/corrupted.zip", (*HTTP).serveCorruptedZip},
		{ScenarioSmallFile, "/small-file", (*HTTP).serveSmallFile},
	}
}
