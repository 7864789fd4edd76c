package cmd

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags puts every flag back to its default so one run cannot leak
// into the next through cfg.
func resetFlags(t *testing.T, cmd *cobra.Command) {
	t.Helper()
	reset := func(f *pflag.Flag) {
		require.NoError(t, f.Value.Set(f.DefValue))
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.LocalFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(t, sub)
	}
}

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(t, rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestAskPrintsExchange(t *testing.T) {
	var gotKey, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("key")
		gotPath = r.URL.Path
		io.WriteString(w, `{"candidates":[{"content":{"parts":[{"text":"Hi there"}]}}]}`)
	}))
	defer srv.Close()

	out, err := runRoot(t, "ask", "--endpoint", srv.URL, "--api-key", "secret", "--model", "gemini-1.5-flash", "Hello")
	require.NoError(t, err)

	assert.Equal(t, "You: Hello\nBot: Hi there\n", out)
	assert.Equal(t, "secret", gotKey)
	assert.Equal(t, "/v1beta/models/gemini-1.5-flash:generateContent", gotPath)
}

func TestAskEndpointFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	out, err := runRoot(t, "ask", "--endpoint", srv.URL, "--api-key", "k", "X")
	require.NoError(t, err)
	assert.Equal(t, "You: X\nBot: Error fetching response\n", out)
}

func TestAskBlankInput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for blank input")
	}))
	defer srv.Close()

	out, err := runRoot(t, "ask", "--endpoint", srv.URL, "  ")
	assert.EqualError(t, err, "nothing to send")
	assert.Empty(t, out)
}

func TestAskRejectsBadEndpoint(t *testing.T) {
	_, err := runRoot(t, "ask", "--endpoint", "::not-a-url", "Hello")
	assert.Error(t, err)
}

func TestAskFlagsDoNotCarryOver(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("REACT_APP_GEMINI_API_KEY", "")

	var keys []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		keys = append(keys, r.URL.Query().Get("key"))
		io.WriteString(w, `{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`)
	}))
	defer srv.Close()

	_, err := runRoot(t, "ask", "--endpoint", srv.URL, "--api-key", "first", "one")
	require.NoError(t, err)
	_, err = runRoot(t, "ask", "--endpoint", srv.URL, "two")
	require.NoError(t, err)

	assert.Equal(t, []string{"first", ""}, keys)
}

func TestBadTimeoutEnvNeedsFlag(t *testing.T) {
	saved := loadErr
	loadErr = errors.New(`invalid GEMINI_TIMEOUT "soon"`)
	t.Cleanup(func() { loadErr = saved })

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`)
	}))
	defer srv.Close()

	_, err := runRoot(t, "ask", "--endpoint", srv.URL, "Hello")
	require.Error(t, err)
	assert.ErrorIs(t, err, loadErr)
	assert.Contains(t, err.Error(), "--timeout")

	out, err := runRoot(t, "ask", "--endpoint", srv.URL, "--timeout", "5s", "Hello")
	require.NoError(t, err)
	assert.Equal(t, "You: Hello\nBot: ok\n", out)
}
