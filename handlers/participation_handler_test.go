package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"ecoTrackAPI/internal/types/challenge"
	"ecoTrackAPI/internal/types/participation"
	"ecoTrackAPI/services"
)

type participationFixture struct {
	router     *mux.Router
	challenges *stubChallengeRepo
	records    *stubParticipationRepo
}

func newParticipationFixture() *participationFixture {
	challenges := newStubChallengeRepo()
	records := newStubParticipationRepo()

	h := NewParticipationHandler(services.NewParticipationService(records, challenges))

	r := mux.NewRouter()
	r.HandleFunc("/challenges-join/{id}", h.JoinChallenge).Methods("PATCH")
	r.HandleFunc("/user-challenges/item/{id}", h.GetUserChallengeDetail).Methods("GET")
	r.HandleFunc("/user-challenges/update/{id}", h.TrackProgress).Methods("PATCH")
	r.HandleFunc("/user-challenges/{id}/progress", h.UpdateProgress).Methods("PATCH")
	r.HandleFunc("/user-challenges/{userId}", h.ListUserChallenges).Methods("GET")

	return &participationFixture{router: r, challenges: challenges, records: records}
}

func (f *participationFixture) seedChallenge(title string) string {
	id, _ := f.challenges.Insert(nil, &challenge.Challenge{Title: title})
	return id
}

func (f *participationFixture) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestJoinChallenge_MissingUserID(t *testing.T) {
	f := newParticipationFixture()
	id := f.seedChallenge("Plant a tree")

	rec := f.do("PATCH", "/challenges-join/"+id, `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400 (body %s)", rec.Code, rec.Body.String())
	}
}

func TestJoinChallenge_TwiceIncrementsOnce(t *testing.T) {
	f := newParticipationFixture()
	id := f.seedChallenge("Plant a tree")
	body := `{"userId":"alice@example.com"}`

	rec := f.do("PATCH", "/challenges-join/"+id, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("first join: status %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}

	rec = f.do("PATCH", "/challenges-join/"+id, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("second join: status %d, want 200", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if !strings.Contains(resp["message"], "Already joined") {
		t.Errorf("second join message = %q, want an already-joined message", resp["message"])
	}

	if got := f.challenges.increments[id]; got != 1 {
		t.Errorf("participants incremented %d times, want 1", got)
	}
	if len(f.records.byID) != 1 {
		t.Errorf("got %d participation records, want 1", len(f.records.byID))
	}
}

func TestJoinChallenge_MalformedChallengeID(t *testing.T) {
	f := newParticipationFixture()

	rec := f.do("PATCH", "/challenges-join/nope", `{"userId":"alice@example.com"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", rec.Code)
	}
}

func TestUpdateProgress_NotFound(t *testing.T) {
	f := newParticipationFixture()

	rec := f.do("PATCH", "/user-challenges/"+primitive.NewObjectID().Hex()+"/progress", `{"progress": 10}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status %d, want 404 (body %s)", rec.Code, rec.Body.String())
	}
}

func TestUpdateProgress_PartialUpdate(t *testing.T) {
	f := newParticipationFixture()
	challengeID := f.seedChallenge("Plant a tree")
	f.do("PATCH", "/challenges-join/"+challengeID, `{"userId":"alice@example.com"}`)

	var recordID string
	for id := range f.records.byID {
		recordID = id
	}

	rec := f.do("PATCH", "/user-challenges/"+recordID+"/progress", `{"progress": 30}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}

	stored := f.records.byID[recordID]
	if stored.Progress != 30 {
		t.Errorf("progress = %v, want 30", stored.Progress)
	}
	// Status was not supplied, so it must be untouched.
	if stored.Status != participation.StatusNotStarted {
		t.Errorf("status = %q, want %q", stored.Status, participation.StatusNotStarted)
	}
}

func TestTrackProgress_ReturnsRecordAndDefaultsStatus(t *testing.T) {
	f := newParticipationFixture()
	challengeID := f.seedChallenge("Plant a tree")
	f.do("PATCH", "/challenges-join/"+challengeID, `{"userId":"alice@example.com"}`)

	var recordID string
	for id := range f.records.byID {
		recordID = id
	}

	// progress arrives as a numeric string and must be coerced.
	rec := f.do("PATCH", "/user-challenges/update/"+recordID, `{"progress": "55.5"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}

	var got participation.UserChallenge
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if got.Progress != 55.5 {
		t.Errorf("progress = %v, want 55.5", got.Progress)
	}
	if got.Status != participation.StatusOngoing {
		t.Errorf("status = %q, want %q", got.Status, participation.StatusOngoing)
	}
}

func TestListUserChallenges(t *testing.T) {
	f := newParticipationFixture()
	first := f.seedChallenge("Plant a tree")
	second := f.seedChallenge("Bike to work")

	f.do("PATCH", "/challenges-join/"+first, `{"userId":"alice@example.com"}`)
	f.do("PATCH", "/challenges-join/"+second, `{"userId":"alice@example.com"}`)
	f.do("PATCH", "/challenges-join/"+first, `{"userId":"bob@example.com"}`)

	rec := f.do("GET", "/user-challenges/alice@example.com", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rec.Code)
	}

	var records []participation.UserChallenge
	if err := json.Unmarshal(rec.Body.Bytes(), &records); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("got %d records, want 2", len(records))
	}
}

func TestGetUserChallengeDetail_AttachesTitle(t *testing.T) {
	f := newParticipationFixture()
	challengeID := f.seedChallenge("Plant a tree")
	f.do("PATCH", "/challenges-join/"+challengeID, `{"userId":"alice@example.com"}`)

	var recordID string
	for id := range f.records.byID {
		recordID = id
	}

	rec := f.do("GET", "/user-challenges/item/"+recordID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}

	var got participation.UserChallenge
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if got.ChallengeTitle != "Plant a tree" {
		t.Errorf("challengeTitle = %q, want %q", got.ChallengeTitle, "Plant a tree")
	}
}
