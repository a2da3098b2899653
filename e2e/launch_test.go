//go:build e2e && unix

package main

import (
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startApp(t *testing.T, api *FakeAPI, args ...string) *TUITestFramework {
	t.Helper()
	tf := NewTUITest(t)
	t.Cleanup(tf.Cleanup)

	_, err := tf.CreateTestWorkspace()
	require.NoError(t, err, "Failed to create test workspace")

	require.NoError(t, tf.StartApp(api.URL(), args...), "Failed to start app")
	require.True(t, tf.Ready(), "Should receive ready signal")
	return tf
}

func TestFirstPageRenders(t *testing.T) {
	t.Parallel()
	api := NewFakeAPI(t, 22)
	tf := startApp(t, api)

	require.NoError(t, tf.SeePlainE("SpaceX Launches", 3*time.Second))
	require.NoError(t, tf.SeePlainE("Starlink-10", 3*time.Second))
	require.NoError(t, tf.SeePlainE("10 loaded", 3*time.Second))
	assert.NotContains(t, tf.SnapshotPlain(), "Starlink-11")

	reqs := api.Requests()
	require.NotEmpty(t, reqs)
	assert.Equal(t, 0, reqs[0].Options.Offset)
	assert.Equal(t, 10, reqs[0].Options.Limit)
	assert.Nil(t, reqs[0].Query.Name)
}

func TestScrollingLoadsUntilEndOfResults(t *testing.T) {
	t.Parallel()
	api := NewFakeAPI(t, 22)
	tf := startApp(t, api)

	require.NoError(t, tf.SeePlainE("10 loaded", 3*time.Second))

	// The whole first page fits on screen, so any move down reaches the end
	require.NoError(t, tf.Down())
	require.NoError(t, tf.SeePlainE("20 loaded", 3*time.Second))

	require.NoError(t, tf.Bottom())
	require.NoError(t, tf.SeePlainE("25 loaded", 3*time.Second))
	require.NoError(t, tf.SeePlainE("End of Results", 3*time.Second))
	require.NoError(t, tf.SeePlainE("Falcon Heavy Test Flight", 3*time.Second))

	// No request past the last page
	require.NoError(t, tf.Down())
	time.Sleep(300 * time.Millisecond)
	assert.Len(t, api.Requests(), 3)
}

func TestSearchReplacesList(t *testing.T) {
	t.Parallel()
	api := NewFakeAPI(t, 22)
	tf := startApp(t, api)

	require.NoError(t, tf.SeePlainE("10 loaded", 3*time.Second))
	require.NoError(t, tf.Search("falcon"))

	require.NoError(t, tf.SeePlainE("[Search: falcon]", 3*time.Second))
	require.NoError(t, tf.SeePlainE("3 loaded", 3*time.Second))
	require.NoError(t, tf.SeePlainE("FalconSat", 3*time.Second))
	require.NoError(t, tf.SeePlainE("End of Results", 3*time.Second))

	reqs := api.Requests()
	last := reqs[len(reqs)-1]
	require.NotNil(t, last.Query.Name)
	assert.Equal(t, "falcon", last.Query.Name.Regex)
	assert.Equal(t, "i", last.Query.Name.Options)
	assert.Equal(t, 0, last.Options.Offset)
}

func TestInitialSearchFlag(t *testing.T) {
	t.Parallel()
	api := NewFakeAPI(t, 22)
	tf := startApp(t, api, "--search", "Heavy")

	require.NoError(t, tf.SeePlainE("Falcon Heavy Test Flight", 3*time.Second))
	require.NoError(t, tf.SeePlainE("1 loaded", 3*time.Second))
}

func TestDetailsToggle(t *testing.T) {
	t.Parallel()
	api := NewFakeAPI(t, 22)
	tf := startApp(t, api)

	require.NoError(t, tf.SeePlainE("10 loaded", 3*time.Second))
	assert.NotContains(t, tf.SnapshotPlain(), "Starlink-1 mission details")

	require.NoError(t, tf.ToggleDetails())
	require.NoError(t, tf.SeePlainE("Starlink-1 mission details", 3*time.Second))
	require.NoError(t, tf.SeePlainE("Wikipedia:", 3*time.Second))
}

func TestFailureShowsErrorAndReloadRecovers(t *testing.T) {
	t.Parallel()
	api := NewFakeAPI(t, 22)
	api.FailNext(1)
	tf := startApp(t, api)

	require.NoError(t, tf.SeePlainE("server returned 500", 3*time.Second))
	require.NoError(t, tf.SeePlainE("r to reload", 3*time.Second))

	require.NoError(t, tf.Reload())
	require.NoError(t, tf.SeePlainE("Starlink-1", 3*time.Second))
	require.NoError(t, tf.SeePlainE("10 loaded", 3*time.Second))
}

func TestQuitExitsAndWritesLog(t *testing.T) {
	t.Parallel()
	api := NewFakeAPI(t, 22)
	tf := startApp(t, api)

	require.NoError(t, tf.SeePlainE("10 loaded", 3*time.Second))

	done := make(chan error, 1)
	go func() {
		done <- tf.cmd.Wait()
	}()

	require.NoError(t, tf.Quit())

	select {
	case err := <-done:
		assert.NoError(t, err, "Process should exit cleanly")
	case <-time.After(2 * time.Second):
		tf.DumpTailOnFail(t, "quit-failure", 4096)
		t.Fatal("app did not exit after quit")
	}

	data, err := os.ReadFile(tf.LogPath())
	require.NoError(t, err)
	assert.Contains(t, string(data), "configuration loaded")
	assert.Contains(t, string(data), "page loaded")
}

func TestHelpFlag(t *testing.T) {
	t.Parallel()

	out, err := exec.Command(binPath, "--help").CombinedOutput()
	require.NoError(t, err, "Help should run without error")

	output := string(out)
	assert.True(t, strings.Contains(output, "Usage"), "Help should contain usage")
	assert.Contains(t, output, "--endpoint")
	assert.Contains(t, output, "--search")
}
