package netx

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostJSON(t *testing.T) {
	t.Run("success 200 OK", func(t *testing.T) {
		var gotBody map[string]string
		var gotCT, gotMethod string

		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotCT = r.Header.Get("Content-Type")
			b, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(b, &gotBody)
			w.Header().Set("Content-Type", "video/mp4")
			_, _ = w.Write([]byte("MP4"))
		}))
		defer ts.Close()

		resp, err := PostJSON(context.Background(), ts.Client(), ts.URL, map[string]string{"prompt": "hi"})
		require.NoError(t, err)
		assert.Equal(t, http.MethodPost, gotMethod)
		assert.Equal(t, "application/json", gotCT)
		assert.Equal(t, "hi", gotBody["prompt"])
		assert.True(t, resp.OK())
		assert.Equal(t, "video/mp4", resp.ContentType)
		assert.Equal(t, []byte("MP4"), resp.Body)
	})

	t.Run("non-2xx is a response", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusForbidden)
		}))
		defer ts.Close()

		resp, err := PostJSON(context.Background(), ts.Client(), ts.URL, struct{}{})
		require.NoError(t, err)
		assert.False(t, resp.OK())
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("unencodable payload", func(t *testing.T) {
		_, err := PostJSON(context.Background(), http.DefaultClient, "http://127.0.0.1:1", make(chan int))
		require.Error(t, err)
	})

	t.Run("context deadline", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer ts.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		_, err := PostJSON(ctx, ts.Client(), ts.URL, struct{}{})
		require.Error(t, err)
	})
}
