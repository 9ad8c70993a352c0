package chi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/crimedex/crimedex/internal/domain"
	curationuc "github.com/crimedex/crimedex/internal/usecase/curation"
	healthuc "github.com/crimedex/crimedex/internal/usecase/health"
	queryuc "github.com/crimedex/crimedex/internal/usecase/query"
)

// --- Mocks ---

type mockQueryRepo struct {
	crimes      []domain.Crime
	codeCounts  []domain.CodeCount
	dayCounts   map[string]int
	areaCrimes  []domain.AreaCrimes
	leastCommon []domain.CrimeCount
	weaponAreas []domain.AreaWeapons
	err         error
}

func (m *mockQueryRepo) List(_ context.Context, _ int64) ([]domain.Crime, error) {
	return m.crimes, m.err
}

func (m *mockQueryRepo) CountByCode(_ context.Context, _, _ string) ([]domain.CodeCount, error) {
	return m.codeCounts, m.err
}

func (m *mockQueryRepo) CountByDay(_ context.Context, _ int, _ []string) (map[string]int, error) {
	return m.dayCounts, m.err
}

func (m *mockQueryRepo) MostCommonByArea(_ context.Context, _ string) ([]domain.AreaCrimes, error) {
	return m.areaCrimes, m.err
}

func (m *mockQueryRepo) LeastCommon(_ context.Context, _, _ string, _ int) ([]domain.CrimeCount, error) {
	return m.leastCommon, m.err
}

func (m *mockQueryRepo) WeaponsUsed(_ context.Context, _ int) ([]domain.AreaWeapons, error) {
	return m.weaponAreas, m.err
}

type mockCurationCrimeRepo struct {
	insertedID primitive.ObjectID
	exists     bool
	drNoExists bool
	topUpvoted []domain.TopUpvotedReport
	insertErr  error
}

func (m *mockCurationCrimeRepo) Insert(_ context.Context, _ domain.Crime) (primitive.ObjectID, error) {
	return m.insertedID, m.insertErr
}

func (m *mockCurationCrimeRepo) Exists(_ context.Context, _ primitive.ObjectID) (bool, error) {
	return m.exists, nil
}

func (m *mockCurationCrimeRepo) ExistsByReportNumber(_ context.Context, _ int64) (bool, error) {
	return m.drNoExists, nil
}

func (m *mockCurationCrimeRepo) TopUpvoted(_ context.Context, _ string, _ int) ([]domain.TopUpvotedReport, error) {
	return m.topUpvoted, nil
}

type mockUpvoteRepo struct {
	voted      bool
	topActive  []domain.OfficerActivity
	coverage   []domain.OfficerAreaCoverage
	multiBadge []domain.MultiBadgeUpvote
	areas      []domain.OfficerArea
	insertErr  error
}

func (m *mockUpvoteRepo) Insert(_ context.Context, _ domain.Upvote) error {
	return m.insertErr
}

func (m *mockUpvoteRepo) Exists(_ context.Context, _ primitive.ObjectID, _ string) (bool, error) {
	return m.voted, nil
}

func (m *mockUpvoteRepo) TopActiveOfficers(_ context.Context, _ int) ([]domain.OfficerActivity, error) {
	return m.topActive, nil
}

func (m *mockUpvoteRepo) AreaCoverage(_ context.Context, _ int) ([]domain.OfficerAreaCoverage, error) {
	return m.coverage, nil
}

func (m *mockUpvoteRepo) MultiBadge(_ context.Context) ([]domain.MultiBadgeUpvote, error) {
	return m.multiBadge, nil
}

func (m *mockUpvoteRepo) AreasForOfficer(_ context.Context, _ string) ([]domain.OfficerArea, error) {
	return m.areas, nil
}

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

func newTestRouter(t *testing.T, queryRepo *mockQueryRepo, crimeRepo *mockCurationCrimeRepo, upvoteRepo *mockUpvoteRepo, dbPing *mockPinger) *chi.Mux {
	t.Helper()
	server := NewServer(
		queryuc.New(queryRepo),
		curationuc.New(crimeRepo, upvoteRepo, zap.NewNop()),
		healthuc.New(dbPing, nil),
		zap.NewNop(),
	)
	r := chi.NewRouter()
	server.Routes(r)
	return r
}

func defaultRouter(t *testing.T) *chi.Mux {
	t.Helper()
	return newTestRouter(t, &mockQueryRepo{}, &mockCurationCrimeRepo{}, &mockUpvoteRepo{}, &mockPinger{})
}

func doRequest(t *testing.T, r http.Handler, method, target string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, http.NoBody)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func decodeJSON[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

// --- Query endpoints ---

func TestRandomCrime_OK(t *testing.T) {
	queryRepo := &mockQueryRepo{crimes: []domain.Crime{{ReportNumber: 200106753, CrimeCode: 624}}}
	r := newTestRouter(t, queryRepo, &mockCurationCrimeRepo{}, &mockUpvoteRepo{}, &mockPinger{})

	rr := doRequest(t, r, "GET", "/api/random_crime", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d, want %d", rr.Code, http.StatusOK)
	}

	crime := decodeJSON[domain.Crime](t, rr)
	if crime.ReportNumber != 200106753 {
		t.Errorf("unexpected crime: %+v", crime)
	}
}

func TestRandomCrime_EmptyStore_404(t *testing.T) {
	r := defaultRouter(t)

	rr := doRequest(t, r, "GET", "/api/random_crime", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("got %d, want %d", rr.Code, http.StatusNotFound)
	}

	resp := decodeJSON[errorResponse](t, rr)
	if resp.Code != codeNotFound {
		t.Errorf("error code: got %s, want %s", resp.Code, codeNotFound)
	}
	if resp.Message != "crime record not found" {
		t.Errorf("unexpected message: %q", resp.Message)
	}
}

func TestCountByCode_InvalidDate_400(t *testing.T) {
	r := defaultRouter(t)

	rr := doRequest(t, r, "GET", "/api/crimes/count-by-code?start_date=2020-03-01&end_date=03/15/2020", nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want %d", rr.Code, http.StatusBadRequest)
	}

	resp := decodeJSON[errorResponse](t, rr)
	if resp.Code != codeInvalidDate {
		t.Errorf("error code: got %s, want %s", resp.Code, codeInvalidDate)
	}
	if resp.Message != "invalid date format, use MM/DD/YYYY" {
		t.Errorf("unexpected message: %q", resp.Message)
	}
}

func TestCountByCode_EmptyResultIsEmptyList(t *testing.T) {
	r := defaultRouter(t)

	rr := doRequest(t, r, "GET", "/api/crimes/count-by-code?start_date=03/01/2020&end_date=03/15/2020", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d, want %d", rr.Code, http.StatusOK)
	}
	if body := strings.TrimSpace(rr.Body.String()); body != "[]" {
		t.Errorf("expected empty JSON array, got %s", body)
	}
}

func TestDailyCount_NonIntegerCode_400(t *testing.T) {
	r := defaultRouter(t)

	rr := doRequest(t, r, "GET", "/api/crimes/daily-count?crime_code=abc&start_date=03/01/2020&end_date=03/02/2020", nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestDailyCount_ZeroFilledSeries(t *testing.T) {
	queryRepo := &mockQueryRepo{dayCounts: map[string]int{"03/02/2020": 4}}
	r := newTestRouter(t, queryRepo, &mockCurationCrimeRepo{}, &mockUpvoteRepo{}, &mockPinger{})

	rr := doRequest(t, r, "GET", "/api/crimes/daily-count?crime_code=624&start_date=03/01/2020&end_date=03/03/2020", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d, want %d", rr.Code, http.StatusOK)
	}

	series := decodeJSON[[]domain.DailyCount](t, rr)
	if len(series) != 3 {
		t.Fatalf("expected 3 days, got %d", len(series))
	}
	if series[1].ReportCount != 4 || series[0].ReportCount != 0 {
		t.Errorf("unexpected series: %+v", series)
	}
}

func TestWeaponsUsed_EmptyResultIsMarker(t *testing.T) {
	r := defaultRouter(t)

	rr := doRequest(t, r, "GET", "/api/crimes/weapons-used?crime_code=510", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d, want %d", rr.Code, http.StatusOK)
	}

	resp := decodeJSON[messageResponse](t, rr)
	if resp.Message != "No weapon data found for the given crime code" {
		t.Errorf("unexpected marker: %q", resp.Message)
	}
}

// --- Curation endpoints ---

func upvoteBody(t *testing.T, crimeID string) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]string{
		"crime_id":      crimeID,
		"officer_name":  "J. Reyes",
		"officer_badge": "4411",
		"officer_email": "j.reyes@lapd.example.com",
	})
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	return body
}

func TestUpvote_OK(t *testing.T) {
	crimeRepo := &mockCurationCrimeRepo{exists: true}
	r := newTestRouter(t, &mockQueryRepo{}, crimeRepo, &mockUpvoteRepo{}, &mockPinger{})

	rr := doRequest(t, r, "POST", "/api/crimes/upvote", upvoteBody(t, primitive.NewObjectID().Hex()))
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d, want %d: %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	resp := decodeJSON[messageResponse](t, rr)
	if resp.Message != "Upvote registered successfully" {
		t.Errorf("unexpected message: %q", resp.Message)
	}
}

func TestUpvote_InvalidID_400(t *testing.T) {
	r := newTestRouter(t, &mockQueryRepo{}, &mockCurationCrimeRepo{exists: true}, &mockUpvoteRepo{}, &mockPinger{})

	rr := doRequest(t, r, "POST", "/api/crimes/upvote", upvoteBody(t, "not-hex"))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want %d", rr.Code, http.StatusBadRequest)
	}

	resp := decodeJSON[errorResponse](t, rr)
	if resp.Code != codeInvalidID {
		t.Errorf("error code: got %s, want %s", resp.Code, codeInvalidID)
	}
	if resp.Message != "invalid crime_id format" {
		t.Errorf("unexpected message: %q", resp.Message)
	}
}

func TestUpvote_UnknownCrime_404(t *testing.T) {
	r := defaultRouter(t)

	rr := doRequest(t, r, "POST", "/api/crimes/upvote", upvoteBody(t, primitive.NewObjectID().Hex()))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("got %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestUpvote_Duplicate_400(t *testing.T) {
	r := newTestRouter(t, &mockQueryRepo{}, &mockCurationCrimeRepo{exists: true}, &mockUpvoteRepo{voted: true}, &mockPinger{})

	rr := doRequest(t, r, "POST", "/api/crimes/upvote", upvoteBody(t, primitive.NewObjectID().Hex()))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want %d", rr.Code, http.StatusBadRequest)
	}

	resp := decodeJSON[errorResponse](t, rr)
	if resp.Code != codeDuplicateVote {
		t.Errorf("error code: got %s, want %s", resp.Code, codeDuplicateVote)
	}
	if resp.Message != "officer has already upvoted this crime record" {
		t.Errorf("unexpected message: %q", resp.Message)
	}
}

func TestUpvote_MalformedJSON_400(t *testing.T) {
	r := defaultRouter(t)

	rr := doRequest(t, r, "POST", "/api/crimes/upvote", []byte("{not json"))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestInsertReport_OK(t *testing.T) {
	id := primitive.NewObjectID()
	crimeRepo := &mockCurationCrimeRepo{insertedID: id}
	r := newTestRouter(t, &mockQueryRepo{}, crimeRepo, &mockUpvoteRepo{}, &mockPinger{})

	body, _ := json.Marshal(map[string]any{
		"DR_NO":             200106753,
		"date_reported":     "03/01/2020 12:00:00 AM",
		"date_occurred":     "03/01/2020 12:00:00 AM",
		"time_occurred":     1430,
		"area":              map[string]any{"id": 1, "name": "Central", "reporting_district": 163},
		"crime_code":        624,
		"crime_description": "BATTERY - SIMPLE ASSAULT",
		"status":            map[string]any{"code": "IC", "description": "Invest Cont"},
		"location":          map[string]any{"address": "700 S BROADWAY"},
	})
	rr := doRequest(t, r, "POST", "/api/crimes/insert", body)
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d, want %d: %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	resp := decodeJSON[insertResponse](t, rr)
	if resp.Message != "Crime report inserted successfully" {
		t.Errorf("unexpected message: %q", resp.Message)
	}
	if resp.CrimeID != id.Hex() {
		t.Errorf("expected crime_id %s, got %s", id.Hex(), resp.CrimeID)
	}
}

func TestInsertReport_DuplicateDRNo_400(t *testing.T) {
	crimeRepo := &mockCurationCrimeRepo{drNoExists: true}
	r := newTestRouter(t, &mockQueryRepo{}, crimeRepo, &mockUpvoteRepo{}, &mockPinger{})

	body, _ := json.Marshal(map[string]any{
		"DR_NO":             200106753,
		"date_reported":     "03/01/2020 12:00:00 AM",
		"date_occurred":     "03/01/2020 12:00:00 AM",
		"time_occurred":     1430,
		"area":              map[string]any{"id": 1, "name": "Central", "reporting_district": 163},
		"crime_code":        624,
		"crime_description": "BATTERY - SIMPLE ASSAULT",
		"status":            map[string]any{"code": "IC", "description": "Invest Cont"},
		"location":          map[string]any{"address": "700 S BROADWAY"},
	})
	rr := doRequest(t, r, "POST", "/api/crimes/insert", body)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want %d", rr.Code, http.StatusBadRequest)
	}

	resp := decodeJSON[errorResponse](t, rr)
	if resp.Message != "crime report already exists" {
		t.Errorf("unexpected message: %q", resp.Message)
	}
}

func TestInsertReport_MissingFields_400(t *testing.T) {
	r := defaultRouter(t)

	body, _ := json.Marshal(map[string]any{"DR_NO": 200106753})
	rr := doRequest(t, r, "POST", "/api/crimes/insert", body)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want %d", rr.Code, http.StatusBadRequest)
	}

	resp := decodeJSON[errorResponse](t, rr)
	if resp.Code != codeValidationFailed {
		t.Errorf("error code: got %s, want %s", resp.Code, codeValidationFailed)
	}
}

func TestInsertReport_MissingNestedObjects_400(t *testing.T) {
	r := defaultRouter(t)

	body, _ := json.Marshal(map[string]any{
		"DR_NO":             200106753,
		"date_reported":     "03/01/2020 12:00:00 AM",
		"date_occurred":     "03/01/2020 12:00:00 AM",
		"crime_code":        624,
		"crime_description": "BATTERY - SIMPLE ASSAULT",
	})
	rr := doRequest(t, r, "POST", "/api/crimes/insert", body)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want %d: %s", rr.Code, http.StatusBadRequest, rr.Body.String())
	}

	resp := decodeJSON[errorResponse](t, rr)
	if resp.Code != codeValidationFailed {
		t.Errorf("error code: got %s, want %s", resp.Code, codeValidationFailed)
	}
}

// --- Leaderboards and markers ---

func TestTopUpvoted_EmptyResultIsMarker(t *testing.T) {
	r := defaultRouter(t)

	rr := doRequest(t, r, "GET", "/api/crimes/top-upvoted?date=03/01/2020", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d, want %d", rr.Code, http.StatusOK)
	}

	resp := decodeJSON[messageResponse](t, rr)
	if resp.Message != "No upvoted reports found for the given date" {
		t.Errorf("unexpected marker: %q", resp.Message)
	}
}

func TestTopActiveOfficers_OK(t *testing.T) {
	upvoteRepo := &mockUpvoteRepo{topActive: []domain.OfficerActivity{{BadgeNumber: "4411", UpvoteCount: 12}}}
	r := newTestRouter(t, &mockQueryRepo{}, &mockCurationCrimeRepo{}, upvoteRepo, &mockPinger{})

	rr := doRequest(t, r, "GET", "/api/officers/top-active", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d, want %d", rr.Code, http.StatusOK)
	}

	officers := decodeJSON[[]domain.OfficerActivity](t, rr)
	if len(officers) != 1 || officers[0].BadgeNumber != "4411" {
		t.Errorf("unexpected officers: %+v", officers)
	}
}

func TestMarkerMessages(t *testing.T) {
	r := defaultRouter(t)

	cases := []struct {
		target string
		want   string
	}{
		{"/api/officers/top-active", "No officer upvote data found"},
		{"/api/officers/top-by-area", "No officer area data found"},
		{"/api/officers/upvoted-areas?officer_name=J.+Reyes", "No upvoted areas found for the given officer name"},
		{"/api/upvotes/multiple-badge", "No duplicate badge upvotes found"},
	}
	for _, tc := range cases {
		rr := doRequest(t, r, "GET", tc.target, nil)
		if rr.Code != http.StatusOK {
			t.Errorf("%s: got %d, want %d", tc.target, rr.Code, http.StatusOK)
			continue
		}
		resp := decodeJSON[messageResponse](t, rr)
		if resp.Message != tc.want {
			t.Errorf("%s: got marker %q, want %q", tc.target, resp.Message, tc.want)
		}
	}
}

func TestTopUpvoted_InvalidDate_400(t *testing.T) {
	r := defaultRouter(t)

	rr := doRequest(t, r, "GET", "/api/crimes/top-upvoted?date=bad", nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

// --- Internal errors and health ---

func TestQueryEndpoint_RepoFailure_500(t *testing.T) {
	queryRepo := &mockQueryRepo{err: errors.New("mongo: connection refused")}
	r := newTestRouter(t, queryRepo, &mockCurationCrimeRepo{}, &mockUpvoteRepo{}, &mockPinger{})

	rr := doRequest(t, r, "GET", "/api/crimes/count-by-code?start_date=03/01/2020&end_date=03/15/2020", nil)
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("got %d, want %d", rr.Code, http.StatusInternalServerError)
	}

	resp := decodeJSON[errorResponse](t, rr)
	if resp.Message != "internal error" {
		t.Errorf("internal details leaked: %q", resp.Message)
	}
}

func TestLiveness_OK(t *testing.T) {
	r := defaultRouter(t)

	rr := doRequest(t, r, "GET", "/healthz", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d, want %d", rr.Code, http.StatusOK)
	}
}

func TestReadiness_DBDown_503(t *testing.T) {
	r := newTestRouter(t, &mockQueryRepo{}, &mockCurationCrimeRepo{}, &mockUpvoteRepo{}, &mockPinger{err: errors.New("down")})

	rr := doRequest(t, r, "GET", "/readyz", nil)
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("got %d, want %d", rr.Code, http.StatusServiceUnavailable)
	}

	report := decodeJSON[healthuc.Report](t, rr)
	if report.Status != healthuc.Degraded {
		t.Errorf("expected degraded status, got %s", report.Status)
	}
}
