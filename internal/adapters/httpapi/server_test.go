package httpapi_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/vfrplanner-go/internal/adapters/httpapi"
	"github.com/andrescamacho/vfrplanner-go/internal/adapters/session"
	"github.com/andrescamacho/vfrplanner-go/internal/application/planning"
	"github.com/andrescamacho/vfrplanner-go/internal/application/setup"
	"github.com/andrescamacho/vfrplanner-go/internal/domain/navigation"
	"github.com/andrescamacho/vfrplanner-go/internal/domain/shared"
	"github.com/andrescamacho/vfrplanner-go/internal/infrastructure/config"
	"github.com/andrescamacho/vfrplanner-go/test/helpers"
)

func newTestServer(t *testing.T) (*httptest.Server, *http.Client) {
	t.Helper()
	fx := helpers.NewPlannerFixture()
	fx.Gazetteer.AddPlace("KLAX", shared.WaypointKindAirport, 33.9425, -118.4081, 125)

	registry := setup.NewHandlerRegistry(
		fx.Providers(),
		navigation.DefaultCorridorPolicy(),
		32,
		session.NewMemoryStore(16, time.Minute),
		planning.DefaultSettings(),
		nil,
	)
	m, err := registry.NewPlanningMediator(nil, nil)
	require.NoError(t, err)

	srv := httpapi.NewServer(httpapi.Options{
		Mediator: m,
		Server:   config.ServerConfig{CookieName: "vfr_session"},
		StaticMap: config.StaticMapConfig{
			BaseURL: "https://maps.googleapis.com/maps/api/staticmap",
			Size:    "640x400",
		},
		SessionTTL: 5 * time.Minute,
		Metrics:    prometheus.NewRegistry(),
	})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return ts, &http.Client{Jar: jar}
}

func decodePlan(t *testing.T, resp *http.Response) httpapi.PlanView {
	t.Helper()
	defer resp.Body.Close()
	var view httpapi.PlanView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	return view
}

func TestServer_PlanUpdateAndExport(t *testing.T) {
	ts, client := newTestServer(t)

	// Plan
	resp, err := client.PostForm(ts.URL+"/fplanner", url.Values{"orig": {"khpn"}, "dest": {"kgon"}, "alt": {"4500"}})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Cookies())
	plan := decodePlan(t, resp)

	assert.Equal(t, "KHPN", plan.Origin)
	assert.Equal(t, "KGON", plan.Destination)
	assert.Equal(t, 1500, plan.AltitudeFt)
	require.GreaterOrEqual(t, len(plan.Legs), 3)
	assert.Equal(t, 1, plan.Legs[0].Num)
	assert.Equal(t, shared.TopOfClimbName, plan.Legs[0].To)
	assert.Contains(t, plan.Advisories, "Changed cruising altitude from 4500 ft to 1500 ft")
	assert.Contains(t, plan.MapURL, "staticmap")

	// Update leg 2 (top of climb to the first landmark)
	place := ""
	for _, candidate := range []string{"Milford", "Guilford", "Norwalk"} {
		onRoute := false
		for _, leg := range plan.Legs {
			if leg.To == candidate {
				onRoute = true
			}
		}
		if !onRoute {
			place = candidate
			break
		}
	}
	require.NotEmpty(t, place)

	resp, err = client.PostForm(ts.URL+"/update", url.Values{"num": {"2"}, "place": {strings.ToUpper(place)}})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decodePlan(t, resp)
	assert.Equal(t, plan.ID, updated.ID)
	assert.Equal(t, place, updated.Legs[1].To)

	// Current plan
	resp, err = client.Get(ts.URL + "/plan")
	require.NoError(t, err)
	current := decodePlan(t, resp)
	assert.Equal(t, updated.Legs, current.Legs)

	// Export
	resp, err = client.Get(ts.URL + "/saveplan")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), plan.ID+".pdf")
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(body), "%PDF-"))
}

func TestServer_ErrorStatuses(t *testing.T) {
	ts, client := newTestServer(t)

	tests := []struct {
		name   string
		form   url.Values
		status int
	}{
		{"unknown airport", url.Values{"orig": {"KHPN"}, "dest": {"KXYZ"}}, http.StatusNotFound},
		{"too long", url.Values{"orig": {"KHPN"}, "dest": {"KLAX"}}, http.StatusUnprocessableEntity},
		{"missing destination", url.Values{"orig": {"KHPN"}}, http.StatusBadRequest},
		{"bad altitude", url.Values{"orig": {"KHPN"}, "dest": {"KGON"}, "alt": {"high"}}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := client.PostForm(ts.URL+"/fplanner", tt.form)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.status, resp.StatusCode)
			var body map[string]string
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestServer_NoSession(t *testing.T) {
	ts, client := newTestServer(t)

	resp, err := client.PostForm(ts.URL+"/update", url.Values{"num": {"1"}, "place": {"Milford"}})
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = client.Get(ts.URL + "/saveplan")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_PlanBySessionPath(t *testing.T) {
	// Arrange
	ts, client := newTestServer(t)
	resp, err := client.PostForm(ts.URL+"/fplanner", url.Values{"orig": {"KHPN"}, "dest": {"KGON"}})
	require.NoError(t, err)
	planned := decodePlan(t, resp)
	var sessionID string
	for _, c := range resp.Cookies() {
		if c.Name == "vfr_session" {
			sessionID = c.Value
		}
	}
	require.NotEmpty(t, sessionID)

	// Act: a cookie-less client addresses the session in the path
	resp, err = http.Get(ts.URL + "/plans/" + sessionID)
	require.NoError(t, err)

	// Assert
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, planned.ID, decodePlan(t, resp).ID)

	resp, err = http.Get(ts.URL + "/plans/expired")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_RoutingErrorsAreJSON(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/fplanner")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	resp2, err := http.Get(ts.URL + "/nowhere")
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp2.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp2.Body).Decode(&body))
	assert.Equal(t, "no such endpoint", body["error"])
}

func TestServer_UpdateRejectsBadLegNumber(t *testing.T) {
	ts, client := newTestServer(t)
	resp, err := client.PostForm(ts.URL+"/fplanner", url.Values{"orig": {"KHPN"}, "dest": {"KGON"}})
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = client.PostForm(ts.URL+"/update", url.Values{"num": {"0"}, "place": {"Milford"}})
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServer_Metrics(t *testing.T) {
	ts, client := newTestServer(t)

	resp, err := client.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, httpapi.StatusFor(shared.NewValidationError("x", "y")))
	assert.Equal(t, http.StatusNotFound, httpapi.StatusFor(shared.NewSessionNotFoundError("s")))
	assert.Equal(t, http.StatusNotFound, httpapi.StatusFor(shared.NewSubstitutionNotFoundError("Atlantis", 150)))
	assert.Equal(t, http.StatusUnprocessableEntity, httpapi.StatusFor(shared.NewCorridorSearchExhaustedError("KHPN", 5, 50)))
	assert.Equal(t, http.StatusInternalServerError, httpapi.StatusFor(errors.New("boom")))
}
