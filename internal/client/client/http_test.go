package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/petcheck/internal/client/models"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLookupServer(t *testing.T, routes func(r chi.Router)) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()
	routes(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newTestHTTPClient(t *testing.T, url string) *HTTPClient {
	t.Helper()
	c, err := NewHTTPClient(url, time.Second)
	require.NoError(t, err)
	return c
}

func TestHTTPClient_CheckCode_StructuredVerdict(t *testing.T) {
	var got checkCodeRequest
	srv := newLookupServer(t, func(r chi.Router) {
		r.Post("/api/check-barcode", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			writeJSON(w, http.StatusOK, map[string]any{"result": "Fine for dogs", "safe": true})
		})
	})

	res, err := newTestHTTPClient(t, srv.URL+"/").CheckCode(context.Background(), CodeQuery{Code: "3017620422003", Species: models.SpeciesDog})
	require.NoError(t, err)

	assert.Equal(t, checkCodeRequest{Barcode: "3017620422003", Animal: "chien"}, got)
	assert.Equal(t, CodeResult{Message: "Fine for dogs", Verdict: models.VerdictSafe}, res)
}

func TestHTTPClient_CheckCode_SendsServiceSpeciesKeys(t *testing.T) {
	known := map[string]bool{"chat": true, "chien": true, "lapin": true}
	srv := newLookupServer(t, func(r chi.Router) {
		r.Post("/api/check-barcode", func(w http.ResponseWriter, r *http.Request) {
			var req checkCodeRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			if !known[req.Animal] {
				writeJSON(w, http.StatusOK, map[string]any{"result": "Animal " + req.Animal + " non reconnu"})
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"result": "✅ OK pour " + req.Animal})
		})
	})
	c := newTestHTTPClient(t, srv.URL)

	for _, sp := range []models.Species{models.SpeciesDog, models.SpeciesCat, models.SpeciesRabbit} {
		t.Run(string(sp), func(t *testing.T) {
			res, err := c.CheckCode(context.Background(), CodeQuery{Code: "1", Species: sp})
			require.NoError(t, err)
			assert.Equal(t, models.VerdictSafe, res.Verdict, res.Message)
		})
	}
}

func TestHTTPClient_CheckCode_LegacyMarker(t *testing.T) {
	tests := []struct {
		name   string
		result string
		want   models.Verdict
	}{
		{"marked safe", "✅ No risk", models.VerdictSafe},
		{"unmarked", "❌ Contains xylitol", models.VerdictUnsafe},
		{"empty", "", models.VerdictUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newLookupServer(t, func(r chi.Router) {
				r.Post("/api/check-barcode", func(w http.ResponseWriter, r *http.Request) {
					writeJSON(w, http.StatusOK, map[string]any{"result": tt.result})
				})
			})

			res, err := newTestHTTPClient(t, srv.URL).CheckCode(context.Background(), CodeQuery{Code: "1", Species: models.SpeciesCat})
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Verdict)
			assert.Equal(t, tt.result, res.Message)
		})
	}
}

func TestHTTPClient_CheckCode_ServiceError(t *testing.T) {
	srv := newLookupServer(t, func(r chi.Router) {
		r.Post("/api/check-barcode", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "product not found"})
		})
	})

	_, err := newTestHTTPClient(t, srv.URL).CheckCode(context.Background(), CodeQuery{Code: "0000", Species: models.SpeciesDog})
	require.Error(t, err)

	var se *ServiceError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "product not found", se.Message)
	assert.False(t, errors.Is(err, ErrUnavailable))
}

func TestHTTPClient_TransportFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error without envelope", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "internal", http.StatusInternalServerError)
		}},
		{"malformed success body", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = io.WriteString(w, "<html>")
		}},
		{"empty success body", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newLookupServer(t, func(r chi.Router) {
				r.Post("/api/check-barcode", tt.handler)
			})

			_, err := newTestHTTPClient(t, srv.URL).CheckCode(context.Background(), CodeQuery{Code: "1", Species: models.SpeciesDog})
			require.ErrorIs(t, err, ErrUnavailable)
		})
	}
}

func TestHTTPClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newTestHTTPClient(t, url).CheckCode(context.Background(), CodeQuery{Code: "1", Species: models.SpeciesDog})
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestHTTPClient_Timeout(t *testing.T) {
	srv := newLookupServer(t, func(r chi.Router) {
		r.Post("/api/check-barcode", func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		})
	})

	c, err := NewHTTPClient(srv.URL, 50*time.Millisecond)
	require.NoError(t, err)

	_, err = c.CheckCode(context.Background(), CodeQuery{Code: "1", Species: models.SpeciesDog})
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestHTTPClient_CheckImage(t *testing.T) {
	image := []byte{0xff, 0xd8, 0xff, 0xe0, 'J', 'F', 'I', 'F'}

	srv := newLookupServer(t, func(r chi.Router) {
		r.Post("/api/scan-image", func(w http.ResponseWriter, r *http.Request) {
			assert.NoError(t, r.ParseMultipartForm(1<<20))
			assert.Equal(t, "chat", r.FormValue("animal"))

			f, _, err := r.FormFile("image")
			if !assert.NoError(t, err) {
				return
			}
			defer f.Close()
			b, _ := io.ReadAll(f)
			assert.Equal(t, image, b)

			writeJSON(w, http.StatusOK, map[string]any{
				"barcode": "5449000000996",
				"result":  "Too much sugar",
				"safe":    false,
			})
		})
	})

	res, err := newTestHTTPClient(t, srv.URL).CheckImage(context.Background(), ImageQuery{Image: image, Species: models.SpeciesCat})
	require.NoError(t, err)
	assert.Equal(t, ImageResult{Code: "5449000000996", Message: "Too much sugar", Verdict: models.VerdictUnsafe}, res)
}

func TestHTTPClient_CheckImage_ServiceError(t *testing.T) {
	srv := newLookupServer(t, func(r chi.Router) {
		r.Post("/api/scan-image", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "no barcode detected"})
		})
	})

	_, err := newTestHTTPClient(t, srv.URL).CheckImage(context.Background(), ImageQuery{Image: []byte("x"), Species: models.SpeciesDog})
	var se *ServiceError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "no barcode detected", se.Error())
}

func TestNewHTTPClient_InvalidURL(t *testing.T) {
	_, err := NewHTTPClient("not a url", time.Second)
	require.Error(t, err)

	c, err := NewHTTPClient("http://localhost:5000", 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultTimeout, c.http.Timeout)
	assert.NoError(t, c.Close())
}
