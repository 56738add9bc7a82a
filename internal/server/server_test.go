package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/copperworks/labelcheck/internal/model"
	"github.com/copperworks/labelcheck/internal/pipeline"
	"github.com/copperworks/labelcheck/internal/store"
	"github.com/copperworks/labelcheck/internal/warning"
)

type fakeRunner struct {
	lastReq pipeline.Request
	result  model.ApplicationResult
	err     error
}

func (f *fakeRunner) Run(_ context.Context, req pipeline.Request) (model.ApplicationResult, error) {
	f.lastReq = req
	return f.result, f.err
}

func newTestServer(t *testing.T, runner Runner) (*httptest.Server, store.Store) {
	t.Helper()
	st, err := store.NewSQLite(t.TempDir() + "/test.db")
	require.NoError(t, err)
	require.NoError(t, st.Migrate(context.Background()))
	t.Cleanup(func() { st.Close() }) //nolint:errcheck

	srv := httptest.NewServer(New(runner, st).Router())
	t.Cleanup(srv.Close)
	return srv, st
}

func passResult(appID string) model.ApplicationResult {
	return model.ApplicationResult{
		ID:            "rep-1",
		ApplicationID: appID,
		OverallStatus: model.OverallPass,
		TopReasons:    []string{"All validated fields match"},
		FieldResults: []model.FieldResult{
			{FieldKey: model.FieldBrand, FieldName: "Brand Name", ExtractedValue: "Old Tom", Status: model.StatusPass},
		},
		Warning: model.WarningResult{
			ExtractedWarning: warning.Canonical,
			WordingStatus:    model.StatusPass,
			UppercaseStatus:  model.StatusPass,
			BoldStatus:       model.BoldDetected,
			OverallStatus:    model.StatusPass,
		},
		ImageCount: 1,
	}
}

func verifyBody(t *testing.T, appID string) *bytes.Buffer {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"application_id":   appID,
		"application_name": "Old Tom Gin 750ml",
		"images": []map[string]string{
			{
				"name":       "front.jpg",
				"media_type": "image/jpeg",
				"data":       base64.StdEncoding.EncodeToString([]byte{0xFF, 0xD8}),
			},
		},
		"expected": map[string]string{"brand_name": "Old Tom"},
	})
	require.NoError(t, err)
	return bytes.NewBuffer(body)
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t, &fakeRunner{})

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestVerify_Success(t *testing.T) {
	runner := &fakeRunner{result: passResult("app-1")}
	srv, _ := newTestServer(t, runner)

	resp, err := http.Post(srv.URL+"/api/verify", "application/json", verifyBody(t, "app-1"))
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result model.ApplicationResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, model.OverallPass, result.OverallStatus)
	assert.Equal(t, "app-1", result.ApplicationID)

	require.Len(t, runner.lastReq.Images, 1)
	assert.Equal(t, "image/jpeg", runner.lastReq.Images[0].MediaType)
	assert.Equal(t, []byte{0xFF, 0xD8}, runner.lastReq.Images[0].Data)
	require.NotNil(t, runner.lastReq.Expected)
	assert.Equal(t, "Old Tom", runner.lastReq.Expected.BrandName)
}

func TestVerify_MissingApplicationID(t *testing.T) {
	srv, _ := newTestServer(t, &fakeRunner{})

	body := bytes.NewBufferString(`{"images":[{"media_type":"image/png","data":"aGk="}]}`)
	resp, err := http.Post(srv.URL+"/api/verify", "application/json", body)
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestVerify_NoImages(t *testing.T) {
	srv, _ := newTestServer(t, &fakeRunner{})

	body := bytes.NewBufferString(`{"application_id":"app-1","images":[]}`)
	resp, err := http.Post(srv.URL+"/api/verify", "application/json", body)
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestVerify_BadBase64(t *testing.T) {
	srv, _ := newTestServer(t, &fakeRunner{})

	body := bytes.NewBufferString(`{"application_id":"app-1","images":[{"media_type":"image/png","data":"not base64!!!"}]}`)
	resp, err := http.Post(srv.URL+"/api/verify", "application/json", body)
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestVerify_UnsupportedMediaType(t *testing.T) {
	srv, _ := newTestServer(t, &fakeRunner{})

	body := bytes.NewBufferString(`{"application_id":"app-1","images":[{"media_type":"application/pdf","data":"aGk="}]}`)
	resp, err := http.Post(srv.URL+"/api/verify", "application/json", body)
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestVerify_RunnerError(t *testing.T) {
	srv, _ := newTestServer(t, &fakeRunner{err: assert.AnError})

	resp, err := http.Post(srv.URL+"/api/verify", "application/json", verifyBody(t, "app-1"))
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestListReports(t *testing.T) {
	srv, st := newTestServer(t, &fakeRunner{})

	result := passResult("app-1")
	_, err := st.SaveReport(context.Background(), result)
	require.NoError(t, err)

	failed := passResult("app-2")
	failed.ID = "rep-2"
	failed.OverallStatus = model.OverallFail
	_, err = st.SaveReport(context.Background(), failed)
	require.NoError(t, err)

	resp, err := http.Get(srv.URL + "/api/reports")
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var reports []model.Report
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&reports))
	assert.Len(t, reports, 2)

	resp2, err := http.Get(srv.URL + "/api/reports?status=fail")
	require.NoError(t, err)
	defer resp2.Body.Close() //nolint:errcheck

	var filtered []model.Report
	require.NoError(t, json.NewDecoder(resp2.Body).Decode(&filtered))
	require.Len(t, filtered, 1)
	assert.Equal(t, "app-2", filtered[0].ApplicationID)
}

func TestListReports_EmptyIsArray(t *testing.T) {
	srv, _ := newTestServer(t, &fakeRunner{})

	resp, err := http.Get(srv.URL + "/api/reports")
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck

	var reports []model.Report
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&reports))
	assert.NotNil(t, reports)
	assert.Empty(t, reports)
}

func TestListReports_BadLimit(t *testing.T) {
	srv, _ := newTestServer(t, &fakeRunner{})

	resp, err := http.Get(srv.URL + "/api/reports?limit=abc")
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetReport(t *testing.T) {
	srv, st := newTestServer(t, &fakeRunner{})

	result := passResult("app-1")
	_, err := st.SaveReport(context.Background(), result)
	require.NoError(t, err)

	resp, err := http.Get(srv.URL + "/api/reports/" + result.ID)
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var report model.Report
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	assert.Equal(t, "app-1", report.ApplicationID)
	assert.Equal(t, model.OverallPass, report.Status)
}

func TestGetReport_NotFound(t *testing.T) {
	srv, _ := newTestServer(t, &fakeRunner{})

	resp, err := http.Get(srv.URL + "/api/reports/nope")
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteReport(t *testing.T) {
	srv, st := newTestServer(t, &fakeRunner{})

	result := passResult("app-1")
	_, err := st.SaveReport(context.Background(), result)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/api/reports/"+result.ID, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	_, err = st.GetReport(context.Background(), result.ID)
	assert.Error(t, err)
}

func TestDeleteReport_NotFound(t *testing.T) {
	srv, _ := newTestServer(t, &fakeRunner{})

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/api/reports/nope", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
