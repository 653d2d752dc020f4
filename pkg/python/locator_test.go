// pkg/python/locator_test.go
package python

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blip-analyzer/envboot/internal/testutil"
	"github.com/blip-analyzer/envboot/pkg/core"
)

func TestLocatePrefersPython3(t *testing.T) {
	r := testutil.NewFakeRunner()
	r.SetPath("python3", "/usr/bin/python3")
	r.SetPath("python", "/usr/bin/python")
	r.Handle("/usr/bin/python3 --version", testutil.Response{Output: "Python 3.11.4\n"})

	interp, err := Locate(context.Background(), r)
	require.NoError(t, err)
	assert.Equal(t, "/usr/bin/python3", interp.Path)
	assert.Equal(t, 3, interp.Major)
	assert.Equal(t, 11, interp.Minor)
	assert.Equal(t, "3.11", interp.Version())
}

func TestLocateFallsBackToPython(t *testing.T) {
	r := testutil.NewFakeRunner()
	r.SetPath("python", "/usr/local/bin/python")
	r.Handle("/usr/local/bin/python --version", testutil.Response{Output: "Python 3.10.2"})

	interp, err := Locate(context.Background(), r)
	require.NoError(t, err)
	assert.Equal(t, "/usr/local/bin/python", interp.Path)
	assert.Equal(t, "3.10", interp.Version())
}

func TestLocateNotFound(t *testing.T) {
	r := testutil.NewFakeRunner()

	interp, err := Locate(context.Background(), r)
	require.Error(t, err)
	assert.Nil(t, interp)
	assert.True(t, errors.Is(err, core.ErrInterpreterNotFound))
}

func TestLocateSkipsUnparseableVersion(t *testing.T) {
	r := testutil.NewFakeRunner()
	r.SetPath("python3", "/opt/shim/python3")
	r.SetPath("python", "/usr/bin/python")
	r.Handle("/opt/shim/python3 --version", testutil.Response{Output: "not a python"})
	r.Handle("/usr/bin/python --version", testutil.Response{Output: "Python 3.12.1"})

	interp, err := Locate(context.Background(), r)
	require.NoError(t, err)
	assert.Equal(t, "/usr/bin/python", interp.Path)
}

func TestLocateSkipsFailingCandidate(t *testing.T) {
	r := testutil.NewFakeRunner()
	r.SetPath("python3", "/opt/broken/python3")
	r.Handle("/opt/broken/python3 --version", testutil.Response{Output: "segfault", ExitCode: 139})

	_, err := Locate(context.Background(), r)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrInterpreterNotFound))
}
