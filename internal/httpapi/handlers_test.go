package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"io"
	"mime"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DoyleJ11/xiangqi-picker/internal/catalog"
	"github.com/DoyleJ11/xiangqi-picker/internal/export"
	"github.com/DoyleJ11/xiangqi-picker/internal/hub"
	"github.com/DoyleJ11/xiangqi-picker/internal/render"
	"github.com/DoyleJ11/xiangqi-picker/internal/render/rendertest"
	wire "github.com/DoyleJ11/xiangqi-picker/pkg/types"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	rd, err := render.New(render.DefaultConfig(), render.WithSize(128), render.WithFont(rendertest.Font))
	require.NoError(t, err)

	h := hub.NewHub(ctx, catalog.Default(), nil)
	srv := httptest.NewServer(SetupRoutes(h, rd, export.DefaultFileName, nil))
	t.Cleanup(srv.Close)
	return srv
}

func createSession(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	resp, err := http.Post(srv.URL+"/sessions", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Code, 6)
	return body.Code
}

func post(t *testing.T, url string) (int, commandResponse) {
	t.Helper()
	resp, err := http.Post(url, "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body commandResponse
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	}
	return resp.StatusCode, body
}

func TestAPI_SelectUndoReset(t *testing.T) {
	srv := newServer(t)
	code := createSession(t, srv)
	base := srv.URL + "/sessions/" + code

	status, res := post(t, base+"/select/1")
	require.Equal(t, http.StatusOK, status)
	assert.True(t, res.Applied)
	assert.Equal(t, 1, res.State.Version)

	status, res = post(t, base+"/select/key/G")
	require.Equal(t, http.StatusOK, status)
	assert.True(t, res.Applied)
	assert.Equal(t, "馬", res.State.Slots[1].Glyph)
	assert.Equal(t, "left", res.State.Slots[1].Slot)

	status, res = post(t, base+"/undo")
	require.Equal(t, http.StatusOK, status)
	assert.True(t, res.Applied)
	assert.False(t, res.State.Slots[1].Occupied)
	assert.Equal(t, 2, res.State.Catalog[11].Remaining)
	assert.Equal(t, 1, res.State.Catalog[1].Remaining)

	status, res = post(t, base+"/reset")
	require.Equal(t, http.StatusOK, status)
	assert.False(t, res.State.Slots[0].Occupied)
	assert.Equal(t, 2, res.State.Catalog[1].Remaining)
}

func TestAPI_IgnoredSelectIsNotAnError(t *testing.T) {
	srv := newServer(t)
	base := srv.URL + "/sessions/" + createSession(t, srv)

	status, res := post(t, base+"/select/0")
	require.Equal(t, http.StatusOK, status)
	require.True(t, res.Applied)

	status, res = post(t, base+"/select/0")
	require.Equal(t, http.StatusOK, status)
	assert.False(t, res.Applied)
	assert.Equal(t, 1, res.State.Version)
	assert.True(t, res.State.Catalog[0].Exhausted)

	status, res = post(t, base+"/select/99")
	require.Equal(t, http.StatusOK, status)
	assert.False(t, res.Applied)
}

func TestAPI_BadRequests(t *testing.T) {
	srv := newServer(t)
	base := srv.URL + "/sessions/" + createSession(t, srv)

	status, _ := post(t, base+"/select/abc")
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = post(t, base+"/select/key/Z")
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = post(t, srv.URL+"/sessions/NOPE00/undo")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAPI_GetSession(t *testing.T) {
	srv := newServer(t)
	code := createSession(t, srv)
	post(t, srv.URL+"/sessions/"+code+"/select/13")

	resp, err := http.Get(srv.URL + "/sessions/" + code)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var snap wire.Snapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	assert.Equal(t, "卒", snap.Slots[0].Glyph)
	assert.Equal(t, "black", snap.Slots[0].Team)
	assert.Equal(t, "J", snap.Catalog[13].Key)
}

func TestAPI_Export(t *testing.T) {
	srv := newServer(t)
	code := createSession(t, srv)
	post(t, srv.URL+"/sessions/"+code+"/select/6")

	resp, err := http.Get(srv.URL + "/sessions/" + code + "/export?name=lineup")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))

	_, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition"))
	require.NoError(t, err)
	assert.Equal(t, "lineup.png", params["filename"])

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 128, img.Bounds().Dx())
}

func TestAPI_ExportDefaultName(t *testing.T) {
	srv := newServer(t)
	code := createSession(t, srv)

	resp, err := http.Get(srv.URL + "/sessions/" + code + "/export")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition"))
	require.NoError(t, err)
	assert.Equal(t, export.DefaultFileName, params["filename"])
}

func TestAPI_ExportRenderFailure(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h := hub.NewHub(ctx, catalog.Default(), nil)
	h.Ensure(ctx, "BROKEN")

	srv := httptest.NewServer(SetupRoutes(h, &render.Renderer{}, "", nil))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/sessions/BROKEN/export")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
}

func TestAPI_DeleteSession(t *testing.T) {
	srv := newServer(t)
	code := createSession(t, srv)

	del := func() int {
		req, err := http.NewRequest(http.MethodDelete, srv.URL+"/sessions/"+code, nil)
		require.NoError(t, err)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		return resp.StatusCode
	}

	assert.Equal(t, http.StatusNoContent, del())
	assert.Equal(t, http.StatusNotFound, del())

	status, _ := post(t, srv.URL+"/sessions/"+code+"/select/0")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestHealthz(t *testing.T) {
	srv := newServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGenerateCode(t *testing.T) {
	code, err := GenerateCode()
	require.NoError(t, err)
	assert.Regexp(t, `^[A-Z0-9]{6}$`, code)
}
